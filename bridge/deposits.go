package bridge

import (
	"goteleportbridge/types"

	"github.com/sirupsen/logrus"
)

// OnTransfer consumes a token-transfer notification from the token ledger.
// Transfers into the bridge account credit the sender's deposit; this is
// the only path by which deposits grow from outside.
func (e *Engine) OnTransfer(notice types.TransferNotice) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if notice.To != e.p.BridgeAccount || notice.From == e.p.BridgeAccount {
		return nil
	}

	if _, err := e.requireStats(); err != nil {
		return err
	}
	if !notice.Quantity.Valid() || notice.Quantity.Symbol != e.p.Symbol {
		return ErrWrongToken
	}
	if !notice.Quantity.IsPositive() {
		return ErrAmountInvalid
	}

	// a tx id seen before means the scan worker and the push callback
	// overlapped, or a batch was re-delivered after a crash
	if notice.TxID != "" {
		seen, err := e.store.HasSeenTransfer(notice.TxID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
	}

	deposit, err := e.store.GetDeposit(notice.From)
	if err != nil {
		return err
	}
	if deposit == nil {
		deposit = &types.Deposit{
			Account:  notice.From,
			Quantity: types.NewAsset(0, e.p.Symbol),
		}
	}
	deposit.Quantity = deposit.Quantity.Add(notice.Quantity)
	// credit and tx-id mark land together: a failed write leaves the tx
	// unseen so the scan worker can re-deliver it
	if err := e.store.CreditDeposit(deposit, notice.TxID); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"account":  notice.From,
		"quantity": notice.Quantity.String(),
		"tx":       notice.TxID,
	}).Info("deposit credited")
	return nil
}

// Withdraw returns part of an account's deposit to its token-ledger
// balance.
func (e *Engine) Withdraw(auth, account string, quantity types.Asset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireSelf(auth, account); err != nil {
		return err
	}
	if _, err := e.requireStats(); err != nil {
		return err
	}

	if !quantity.Valid() || quantity.Symbol != e.p.Symbol {
		return ErrWrongToken
	}
	if !quantity.IsPositive() {
		return ErrAmountInvalid
	}

	deposit, err := e.store.GetDeposit(account)
	if err != nil {
		return err
	}
	if deposit == nil {
		return ErrNoDeposit
	}
	if deposit.Quantity.Amount < quantity.Amount {
		return ErrInsufficientDeposit
	}

	deposit.Quantity = deposit.Quantity.Sub(quantity)
	if err := e.store.PutDeposit(deposit); err != nil {
		return err
	}
	if err := e.enqueueTransfer(account, quantity, "Withdraw"); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"account":  account,
		"quantity": quantity.String(),
	}).Info("withdrawal queued")
	return nil
}

// PayOracles splits the collected fee pool evenly across all registered
// oracles' deposits, floor division; the remainder stays pooled. Public
// action, harmless no-op when there is nothing to split.
func (e *Engine) PayOracles(auth string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if auth == "" {
		return ErrMissingAuthority
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	oracles, err := e.store.Oracles()
	if err != nil {
		return err
	}
	if stats.Collected == 0 || len(oracles) == 0 {
		return nil
	}

	share := int64(stats.Collected / uint64(len(oracles)))
	if share == 0 {
		return nil
	}

	for _, oracle := range oracles {
		deposit, err := e.store.GetDeposit(oracle)
		if err != nil {
			return err
		}
		if deposit == nil {
			deposit = &types.Deposit{
				Account:  oracle,
				Quantity: types.NewAsset(0, e.p.Symbol),
			}
		}
		deposit.Quantity.Amount += share
		if err := e.store.PutDeposit(deposit); err != nil {
			return err
		}
	}

	paid := uint64(share) * uint64(len(oracles))
	stats.Collected -= paid
	if err := e.store.PutStats(stats); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"oracles": len(oracles),
		"share":   share,
		"rest":    stats.Collected,
	}).Info("oracle payout")
	return nil
}

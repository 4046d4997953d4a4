package bridge

import (
	"time"

	"goteleportbridge/types"

	"github.com/sirupsen/logrus"
)

// Teleport escrows `quantity` out of the account's deposit and opens an
// outbound request for (quantity - fee) on the destination chain.
func (e *Engine) Teleport(auth, account string, quantity types.Asset, chainID int, address string) (*types.Teleport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireSelf(auth, account); err != nil {
		return nil, err
	}
	stats, err := e.requireStats()
	if err != nil {
		return nil, err
	}

	if !quantity.Valid() || quantity.Symbol != e.p.Symbol || !quantity.IsPositive() {
		return nil, ErrAmountInvalid
	}
	if quantity.Amount < stats.Min.Amount {
		return nil, ErrBelowMinimum
	}
	if stats.FreezeOut {
		return nil, ErrFrozenOut
	}

	deposit, err := e.store.GetDeposit(account)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, ErrNoDeposit
	}
	if deposit.Quantity.Amount < quantity.Amount {
		return nil, ErrInsufficientDeposit
	}

	charged := fee(stats, quantity.Amount)
	net := quantity.Amount - charged
	if net <= 0 {
		// unreachable while the fee bound against the minimum holds
		return nil, ErrFeeTooHigh
	}

	id, err := e.store.NextTeleportID()
	if err != nil {
		return nil, err
	}

	teleport := &types.Teleport{
		ID:         id,
		TsCreated:  e.Now().Unix(),
		Account:    account,
		Quantity:   types.NewAsset(net, e.p.Symbol),
		ChainID:    chainID,
		Address:    address,
		Oracles:    []string{},
		Signatures: []string{},
	}

	deposit.Quantity = deposit.Quantity.Sub(quantity)
	if err := e.store.PutDeposit(deposit); err != nil {
		return nil, err
	}
	stats.Collected += uint64(charged)
	if err := e.store.PutStats(stats); err != nil {
		return nil, err
	}
	if err := e.store.PutTeleport(teleport); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"teleport": teleport.ID,
		"account":  account,
		"chain":    chainID,
		"net":      teleport.Quantity.String(),
	}).Info("teleport requested")
	return teleport, nil
}

// Sign records one oracle's release signature for a teleport. Both the
// signer list and the signature values are kept duplicate-free.
func (e *Engine) Sign(auth, oracle string, id uint64, signature string) (*types.Teleport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOracle(auth, oracle); err != nil {
		return nil, err
	}
	if _, err := e.requireStats(); err != nil {
		return nil, err
	}

	teleport, err := e.store.GetTeleport(id)
	if err != nil {
		return nil, err
	}
	if teleport == nil {
		return nil, ErrTeleportNotFound
	}
	if teleport.Claimed {
		return nil, ErrAlreadyClaimed
	}

	for _, o := range teleport.Oracles {
		if o == oracle {
			return nil, ErrAlreadySigned
		}
	}
	for _, s := range teleport.Signatures {
		if s == signature {
			return nil, ErrDuplicateSignature
		}
	}

	teleport.Oracles = append(teleport.Oracles, oracle)
	teleport.Signatures = append(teleport.Signatures, signature)
	if err := e.store.PutTeleport(teleport); err != nil {
		return nil, err
	}
	return teleport, nil
}

// Claimed is an oracle's report that the destination-chain release has
// finalized. A single report is authoritative; only the quantity is
// cross-checked against the stored net amount.
func (e *Engine) Claimed(auth, oracle string, id uint64, address string, quantity types.Asset) (*types.Teleport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOracle(auth, oracle); err != nil {
		return nil, err
	}
	if _, err := e.requireStats(); err != nil {
		return nil, err
	}

	teleport, err := e.store.GetTeleport(id)
	if err != nil {
		return nil, err
	}
	if teleport == nil {
		return nil, ErrTeleportNotFound
	}
	if teleport.Claimed {
		return nil, ErrAlreadyClaimed
	}
	if teleport.Quantity != quantity {
		return nil, ErrQuantityMismatch
	}

	teleport.Claimed = true
	if err := e.store.PutTeleport(teleport); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"teleport": id,
		"oracle":   oracle,
	}).Info("teleport claimed")
	return teleport, nil
}

// Cancel refunds an unclaimed teleport back into the requester's deposit
// once the expiry window has elapsed. Any authenticated account may
// trigger it; the refund always goes to the original requester.
func (e *Engine) Cancel(auth string, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if auth == "" {
		return ErrMissingAuthority
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}
	if stats.FreezeCancel {
		return ErrFrozenCancel
	}

	teleport, err := e.store.GetTeleport(id)
	if err != nil {
		return err
	}
	if teleport == nil {
		return ErrTeleportNotFound
	}
	if teleport.Claimed {
		return ErrTeleportClaimed
	}
	if e.Now().Before(time.Unix(teleport.TsCreated, 0).Add(e.p.Expiry)) {
		return ErrNotExpired
	}

	deposit, err := e.store.GetDeposit(teleport.Account)
	if err != nil {
		return err
	}
	if deposit == nil {
		deposit = &types.Deposit{
			Account:  teleport.Account,
			Quantity: types.NewAsset(0, e.p.Symbol),
		}
	}
	deposit.Quantity = deposit.Quantity.Add(teleport.Quantity)
	if err := e.store.PutDeposit(deposit); err != nil {
		return err
	}
	if err := e.store.RemoveTeleport(id); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"teleport": id,
		"account":  teleport.Account,
	}).Info("teleport cancelled")
	return nil
}

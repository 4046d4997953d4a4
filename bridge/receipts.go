package bridge

import (
	"goteleportbridge/types"

	"github.com/sirupsen/logrus"
)

// Received is one oracle's vote that `quantity` arrived for `to` on chain
// `chainID` in transaction `ref`. Votes aggregate per (ref, chainID); the
// vote that first reaches the confirmation threshold completes the receipt,
// deducts the fee and releases the net amount to the destination account.
func (e *Engine) Received(auth, oracle, to, ref string, quantity types.Asset, chainID int) (*types.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOracle(auth, oracle); err != nil {
		return nil, err
	}
	stats, err := e.requireStats()
	if err != nil {
		return nil, err
	}
	if stats.FreezeIn {
		return nil, ErrFrozenIn
	}

	if !quantity.Valid() || quantity.Symbol != e.p.Symbol {
		return nil, ErrWrongToken
	}
	if !quantity.IsPositive() {
		return nil, ErrAmountInvalid
	}
	if ref == "" {
		return nil, ErrRefInvalid
	}

	receipt, err := e.store.FindReceipt(ref, chainID)
	if err != nil {
		return nil, err
	}

	if receipt == nil {
		id, err := e.store.NextReceiptID()
		if err != nil {
			return nil, err
		}
		receipt = &types.Receipt{
			ID:            id,
			TsCreated:     e.Now().Unix(),
			To:            to,
			Ref:           ref,
			ChainID:       chainID,
			Quantity:      quantity,
			Confirmations: 1,
			Approvers:     []string{oracle},
		}
	} else {
		if receipt.Completed {
			return nil, ErrReceiptCompleted
		}
		if receipt.To != to {
			return nil, ErrAccountMismatch
		}
		if receipt.Quantity != quantity {
			return nil, ErrQuantityMismatch
		}
		for _, a := range receipt.Approvers {
			if a == oracle {
				return nil, ErrAlreadyApproved
			}
		}
		receipt.Approvers = append(receipt.Approvers, oracle)
		receipt.Confirmations++
	}

	if receipt.Confirmations >= stats.Threshold {
		if err := e.completeReceipt(stats, receipt); err != nil {
			return nil, err
		}
	} else if err := e.store.PutReceipt(receipt); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"receipt":       receipt.ID,
		"oracle":        oracle,
		"confirmations": receipt.Confirmations,
		"completed":     receipt.Completed,
	}).Info("inbound vote recorded")
	return receipt, nil
}

// completeReceipt runs the threshold transition exactly once: the fee goes
// to the collected pool and the remainder is released to the destination
// account. When the fee swallows the whole quantity nothing is released
// and the full amount is collected. Receipt, pool and payout are handed to
// the store as one commit, so a failed transition can simply be re-voted.
func (e *Engine) completeReceipt(stats *types.Stats, receipt *types.Receipt) error {
	charged := fee(stats, receipt.Quantity.Amount)
	if charged > receipt.Quantity.Amount {
		charged = receipt.Quantity.Amount
	}
	net := receipt.Quantity.Amount - charged

	var transfer *types.OutgoingTransfer
	if net > 0 {
		now := e.Now().Unix()
		transfer = &types.OutgoingTransfer{
			Status:    types.TransferPending,
			Account:   receipt.To,
			Quantity:  types.NewAsset(net, e.p.Symbol),
			Memo:      "Teleport received",
			TsCreated: now,
			TsUpdated: now,
		}
	}

	stats.Collected += uint64(charged)
	receipt.Completed = true
	return e.store.CompleteReceipt(receipt, stats, transfer)
}

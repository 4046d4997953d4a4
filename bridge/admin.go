package bridge

import (
	"sort"
	"time"

	"goteleportbridge/types"
)

// Initialize creates the stats singleton. The freeze flag starts every
// action family frozen, which lets an operator bring the bridge up dark.
func (e *Engine) Initialize(auth string, min, fixFee types.Asset, varFee float64, freeze bool, threshold, version int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}

	existing, err := e.store.GetStats()
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	if min.Symbol != e.p.Symbol || fixFee.Symbol != e.p.Symbol {
		return ErrWrongToken
	}
	if varFee < 0 || varFee > 0.20 {
		return ErrFeeOutOfRange
	}
	if threshold <= 0 {
		return ErrInvalidThreshold
	}
	probe := &types.Stats{FixFee: fixFee, VarFee: varFee}
	if min.Amount-fee(probe, min.Amount) <= 0 {
		return ErrFeeTooHigh
	}

	stats := &types.Stats{
		TokenContract: e.p.TokenContract,
		Min:           min,
		FixFee:        fixFee,
		VarFee:        varFee,
		FreezeIn:      freeze,
		FreezeOut:     freeze,
		FreezeCancel:  freeze,
		FreezeOracles: freeze,
		Threshold:     threshold,
		Version:       version,
		Chains:        []types.Chain{},
	}
	if err := e.store.PutStats(stats); err != nil {
		return err
	}

	e.log.WithField("threshold", threshold).Info("bridge initialized")
	return nil
}

func (e *Engine) AddChain(auth string, chain types.Chain) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	for _, c := range stats.Chains {
		if c.ID == chain.ID {
			return ErrChainExists
		}
	}

	stats.Chains = append(stats.Chains, chain)
	sort.Slice(stats.Chains, func(i, j int) bool { return stats.Chains[i].ID < stats.Chains[j].ID })
	return e.store.PutStats(stats)
}

func (e *Engine) RemoveChain(auth string, chainID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	for i, c := range stats.Chains {
		if c.ID == chainID {
			stats.Chains = append(stats.Chains[:i], stats.Chains[i+1:]...)
			return e.store.PutStats(stats)
		}
	}
	return ErrChainNotFound
}

func (e *Engine) RegisterOracle(auth, oracle string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}
	if stats.FreezeOracles {
		return ErrFrozenOracles
	}

	ok, err := e.store.HasOracle(oracle)
	if err != nil {
		return err
	}
	if ok {
		return ErrOracleExists
	}

	if err := e.store.AddOracle(oracle); err != nil {
		return err
	}
	stats.Oracles++
	if err := e.store.PutStats(stats); err != nil {
		return err
	}

	e.log.WithField("oracle", oracle).Info("oracle registered")
	return nil
}

func (e *Engine) UnregisterOracle(auth, oracle string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}
	if stats.FreezeOracles {
		return ErrFrozenOracles
	}

	ok, err := e.store.HasOracle(oracle)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOracleNotFound
	}

	if err := e.store.RemoveOracle(oracle); err != nil {
		return err
	}
	stats.Oracles--
	if err := e.store.PutStats(stats); err != nil {
		return err
	}

	e.log.WithField("oracle", oracle).Info("oracle unregistered")
	return nil
}

func (e *Engine) SetMinimum(auth string, min types.Asset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	if min.Symbol != e.p.Symbol {
		return ErrWrongToken
	}

	stats.Min = min
	return e.store.PutStats(stats)
}

func (e *Engine) SetFee(auth string, fixFee types.Asset, varFee float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	if varFee < 0 || varFee > 0.20 {
		return ErrFeeOutOfRange
	}
	if fixFee.Symbol != e.p.Symbol {
		return ErrWrongToken
	}
	// a transfer at the configured minimum must keep positive net proceeds
	probe := &types.Stats{FixFee: fixFee, VarFee: varFee}
	if stats.Min.Amount-fee(probe, stats.Min.Amount) <= 0 {
		return ErrFeeTooHigh
	}

	stats.FixFee = fixFee
	stats.VarFee = varFee
	return e.store.PutStats(stats)
}

func (e *Engine) SetThreshold(auth string, threshold int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	if threshold <= 0 {
		return ErrInvalidThreshold
	}

	stats.Threshold = threshold
	return e.store.PutStats(stats)
}

// SetFreeze halts or resumes the four action families independently.
func (e *Engine) SetFreeze(auth string, in, out, cancel, oracles bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	stats, err := e.requireStats()
	if err != nil {
		return err
	}

	stats.FreezeIn = in
	stats.FreezeOut = out
	stats.FreezeCancel = cancel
	stats.FreezeOracles = oracles
	return e.store.PutStats(stats)
}

// RepairReceipt is the administrative override for a misreported receipt.
// It rewrites the recorded quantity, approver list and completion flag and
// never re-triggers a payout.
func (e *Engine) RepairReceipt(auth string, id uint64, quantity types.Asset, approvers []string, completed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return err
	}
	if _, err := e.requireStats(); err != nil {
		return err
	}

	receipt, err := e.store.GetReceipt(id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return ErrReceiptNotFound
	}

	if !quantity.Valid() || quantity.Symbol != e.p.Symbol {
		return ErrAssetInvalid
	}
	if quantity.IsNegative() {
		return ErrNegativeQuantity
	}

	receipt.Quantity = quantity
	receipt.Approvers = append([]string(nil), approvers...)
	receipt.Confirmations = len(approvers)
	receipt.Completed = completed
	if err := e.store.PutReceipt(receipt); err != nil {
		return err
	}

	e.log.WithField("receipt", id).Warn("receipt repaired")
	return nil
}

// DeleteReceipts prunes completed receipts created strictly before the
// given time. Incomplete receipts are never pruned.
func (e *Engine) DeleteReceipts(auth string, before time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return 0, err
	}
	if _, err := e.requireStats(); err != nil {
		return 0, err
	}

	receipts, err := e.store.Receipts()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, r := range receipts {
		if r.Completed && r.TsCreated < before.Unix() {
			if err := e.store.RemoveReceipt(r.ID); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

// DeleteTeleports prunes claimed teleports with ids strictly below the
// boundary. The boundary id itself must exist and is kept, as is every
// unclaimed record regardless of position.
func (e *Engine) DeleteTeleports(auth string, boundaryID uint64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireOwner(auth); err != nil {
		return 0, err
	}
	if _, err := e.requireStats(); err != nil {
		return 0, err
	}

	boundary, err := e.store.GetTeleport(boundaryID)
	if err != nil {
		return 0, err
	}
	if boundary == nil {
		return 0, ErrTeleportIDNotFound
	}

	teleports, err := e.store.Teleports()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, t := range teleports {
		if t.ID < boundaryID && t.Claimed {
			if err := e.store.RemoveTeleport(t.ID); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

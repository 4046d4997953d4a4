package bridge

import (
	"math"
	"sync"
	"time"

	"goteleportbridge/types"

	"github.com/sirupsen/logrus"
)

// Params are the engine's fixed identity: who owns it, which account
// escrows funds on the token ledger and which token it bridges.
type Params struct {
	Owner         string
	BridgeAccount string
	TokenContract string
	Symbol        types.Symbol
	Expiry        time.Duration // cancellation window for unclaimed teleports
}

// Engine executes every bridge action against a Store. Actions are
// serialized by a single mutex, which stands in for the total transaction
// order a host ledger would provide: an action either fully commits or,
// when it returns an error, has written nothing.
type Engine struct {
	store Store
	p     Params
	mu    sync.Mutex
	log   *logrus.Entry

	// Now is the ledger clock; tests override it.
	Now func() time.Time
}

func NewEngine(store Store, p Params) *Engine {
	if p.Expiry == 0 {
		p.Expiry = 30 * 24 * time.Hour
	}
	return &Engine{
		store: store,
		p:     p,
		log:   logrus.WithField("component", "bridge"),
		Now:   time.Now,
	}
}

func (e *Engine) Params() Params {
	return e.p
}

func (e *Engine) requireOwner(auth string) error {
	if auth != e.p.Owner {
		return ErrMissingAuthority
	}
	return nil
}

func (e *Engine) requireSelf(auth, account string) error {
	if auth != account {
		return ErrMissingAuthority
	}
	return nil
}

// requireOracle checks both the authority and the registry membership.
func (e *Engine) requireOracle(auth, oracle string) error {
	if auth != oracle {
		return ErrMissingAuthority
	}
	ok, err := e.store.HasOracle(oracle)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAnOracle
	}
	return nil
}

func (e *Engine) requireStats() (*types.Stats, error) {
	stats, err := e.store.GetStats()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrNotInitialized
	}
	return stats, nil
}

// fee computes floor(amount*varfee) + fixfee in the token's smallest unit.
func fee(stats *types.Stats, amount int64) int64 {
	return int64(math.Floor(float64(amount)*stats.VarFee)) + stats.FixFee.Amount
}

// enqueueTransfer records an outward token-ledger transfer to be executed
// by the transfer worker.
func (e *Engine) enqueueTransfer(account string, quantity types.Asset, memo string) error {
	now := e.Now().Unix()
	return e.store.EnqueueTransfer(&types.OutgoingTransfer{
		Status:    types.TransferPending,
		Account:   account,
		Quantity:  quantity,
		Memo:      memo,
		TsCreated: now,
		TsUpdated: now,
	})
}

package bridge

import "goteleportbridge/types"

// Store is the persistent keyed table storage the engine runs on. Lookups
// that miss return (nil, nil); list methods return rows in key order.
// Serialization of mutations is the engine's job, not the store's.
type Store interface {
	GetStats() (*types.Stats, error)
	PutStats(*types.Stats) error

	Oracles() ([]string, error)
	HasOracle(account string) (bool, error)
	AddOracle(account string) error
	RemoveOracle(account string) error

	GetDeposit(account string) (*types.Deposit, error)
	PutDeposit(*types.Deposit) error
	// CreditDeposit persists the deposit and records the inbound tx id
	// in one commit, so a failed write can be re-delivered without the
	// tx id already counting as seen.
	CreditDeposit(d *types.Deposit, txID string) error
	RemoveDeposit(account string) error
	Deposits() ([]*types.Deposit, error)

	// NextReceiptID hands out sequential ids starting at 0.
	NextReceiptID() (uint64, error)
	GetReceipt(id uint64) (*types.Receipt, error)
	// FindReceipt is the secondary, content-addressed lookup by
	// (source tx ref, chain id).
	FindReceipt(ref string, chainID int) (*types.Receipt, error)
	PutReceipt(*types.Receipt) error
	// CompleteReceipt persists the completed receipt, the updated fee
	// pool and the queued payout (nil when the fee swallowed the whole
	// quantity) in one commit.
	CompleteReceipt(r *types.Receipt, stats *types.Stats, transfer *types.OutgoingTransfer) error
	RemoveReceipt(id uint64) error
	Receipts() ([]*types.Receipt, error)

	NextTeleportID() (uint64, error)
	GetTeleport(id uint64) (*types.Teleport, error)
	PutTeleport(*types.Teleport) error
	RemoveTeleport(id uint64) error
	Teleports() ([]*types.Teleport, error)

	EnqueueTransfer(*types.OutgoingTransfer) error
	TransfersByStatus(status string) ([]*types.OutgoingTransfer, error)
	UpdateTransfer(t *types.OutgoingTransfer, prevStatus string) error

	// HasSeenTransfer reports whether an inbound token-ledger tx id was
	// already credited. Read-only; CreditDeposit does the recording.
	HasSeenTransfer(txID string) (bool, error)

	// Scan cursor of the deposit worker over the token ledger history.
	GetScanCursor() (string, error)
	SetScanCursor(cursor string) error
}

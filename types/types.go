package types

// Chain is one destination-chain entry of the registry embedded in the
// stats singleton.
type Chain struct {
	ID            int
	Name          string
	ShortName     string
	NetID         string
	BridgeAddress string
	TokenAddress  string
}

// Stats is the bridge configuration singleton. It exists exactly once,
// created by the ini action, and owns the chain registry.
type Stats struct {
	TokenContract string
	Collected     uint64 // fee pool, token's smallest unit
	FreezeIn      bool
	FreezeOut     bool
	FreezeCancel  bool
	FreezeOracles bool
	Oracles       int
	Min           Asset
	FixFee        Asset
	VarFee        float64
	Threshold     int
	Version       int
	Chains        []Chain // kept sorted by ID
}

// Deposit is an account's escrowed balance, funded by incoming token
// transfers and oracle payouts.
type Deposit struct {
	Account  string
	Quantity Asset
}

// Receipt aggregates oracle votes for one externally observed deposit.
// The (Ref, ChainID) pair is the content-addressed aggregation key.
type Receipt struct {
	ID            uint64
	TsCreated     int64
	To            string
	Ref           string // source-chain transaction hash
	ChainID       int
	Quantity      Asset
	Confirmations int
	Approvers     []string // insertion order, no duplicates
	Completed     bool
}

// Teleport is an outbound bridge request. Quantity is the net amount after
// the fee was deducted, owed on the destination chain.
type Teleport struct {
	ID         uint64
	TsCreated  int64
	Account    string
	Quantity   Asset
	ChainID    int
	Address    string   // destination-chain address
	Oracles    []string // oracles that signed, no duplicates
	Signatures []string // no duplicate values, even across oracles
	Claimed    bool
}

// OutgoingTransfer is a queued call into the external token ledger,
// executed asynchronously by the transfer worker.
type OutgoingTransfer struct {
	ID        string
	Status    string
	Account   string
	Quantity  Asset
	Memo      string
	TsCreated int64
	TsUpdated int64
	TxID      string // transaction id on the token ledger once executed
	Message   string // messsages that help to track processing/errors
	Attempts  int
}

const (
	TransferPending   = "pending"
	TransferExecuting = "executing"
	TransferSuccess   = "success"
	TransferFailed    = "failed"
)

// TransferNotice is an incoming token-transfer notification observed on
// the token ledger.
type TransferNotice struct {
	TxID     string
	From     string
	To       string
	Quantity Asset
	Memo     string
}

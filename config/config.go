package config

type Configuration struct {
	// Server config
	Server struct {
		UseSSL    bool   `yaml:"ssl"`
		Port      int    `yaml:"port"`
		RedisPort int    `yaml:"redis_port"`
		RedisHost string `yaml:"redis_host"`
	} `yaml:"server"`
	// token-ledger-related config
	Token struct {
		Contract      string   `yaml:"contract"`  // token contract account, e.g. alien.worlds
		Symbol        string   `yaml:"symbol"`    // e.g. TLM
		Precision     uint8    `yaml:"precision"` // e.g. 4
		RPCList       []string `yaml:"rpc_list"`  // token ledger JSON-RPC endpoints
		Confirmations int      `yaml:"confirmations"`
	} `yaml:"token"`
	// bridge ledger config
	Bridge struct {
		Account           string `yaml:"account"` // escrow account on the token ledger
		Owner             string `yaml:"owner"`   // account allowed to run admin actions
		ExpirySeconds     int64  `yaml:"expiry_seconds"`
		RequireSignatures bool   `yaml:"require_signatures"`
	} `yaml:"bridge"`
}

var Config Configuration

// maximum number of token-ledger/EVM RPC retries
const RPC_RETRIES = 3

// default cancellation window when bridge.expiry_seconds is not set
const DEFAULT_EXPIRY_SECONDS = 30 * 24 * 3600

// EVM RPC endpoints per registered chain id, used by the read-only
// destination-chain balance endpoint. The on-ledger chain registry holds
// only contract addresses; RPC endpoints are service configuration.
var EVMRPCList = map[int][]string{
	1: {"https://eth.drpc.org", "https://eth.llamarpc.com"},
	2: {"https://rpc.ankr.com/bsc", "https://bsc.drpc.org", "https://bsc.meowrpc.com"},
}

var TransferStatusSets = map[string]string{
	"pending":   "transfers:pending",   // queued by the bridge core, not yet sent
	"executing": "transfers:executing", // handed to the token ledger RPC
	"success":   "transfers:success",   // accepted by the token ledger
	"failed":    "transfers:failed",    // gave up after retries, needs operator attention
}

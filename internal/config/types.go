package config

// Account sources.
const (
	AccountSourceNode   = "node"   // node-managed accounts, eth_sendTransaction
	AccountSourceWallet = "wallet" // keyring wallets, signed locally
)

// Config holds all fundraiser configuration.
type Config struct {
	DefaultNetwork string              `json:"default_network"`
	AccountSource  string              `json:"account_source"` // "node" | "wallet"
	RPCAlgorithm   string              `json:"rpc_algorithm"`  // "fastest" | "failover"
	ArtifactPath   string              `json:"artifact_path,omitempty"`
	ConfirmTimeout int                 `json:"confirm_timeout"` // seconds
	CustomRPCs     map[string][]string `json:"custom_rpcs"`

	// internal: config dir path used for Save()
	configDir string
}

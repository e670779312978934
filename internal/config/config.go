package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// EnvConfigDir overrides the default config directory.
const EnvConfigDir = "FUNDRAISER_CONFIG_DIR"

const (
	defaultNetwork   = "development"
	defaultAlgorithm = "fastest"

	configFile      = "config.json"
	walletsFile     = "wallets.json"
	deploymentsFile = "deployments.json"
	keyringDir      = "keyring"
)

// Load reads config from dir (or creates defaults). dir defaults to
// $FUNDRAISER_CONFIG_DIR, then ~/.fundraiser.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".fundraiser")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	if cfg.AccountSource == "" {
		cfg.AccountSource = AccountSourceNode
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = DefaultConfirmTimeout
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// SetAccountSource validates and sets where accounts come from.
func (c *Config) SetAccountSource(source string) error {
	source = strings.ToLower(strings.TrimSpace(source))
	switch source {
	case AccountSourceNode, AccountSourceWallet:
		c.AccountSource = source
		return nil
	}
	return fmt.Errorf("unknown account source %q (want %s or %s)", source, AccountSourceNode, AccountSourceWallet)
}

// SetConfirmTimeout sets the confirmation wait in seconds.
func (c *Config) SetConfirmTimeout(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("confirm timeout must be positive, got %d", seconds)
	}
	c.ConfirmTimeout = seconds
	return nil
}

// ConfirmTimeoutDuration returns the confirmation wait.
func (c *Config) ConfirmTimeoutDuration() time.Duration {
	if c.ConfirmTimeout <= 0 {
		return DefaultConfirmTimeout * time.Second
	}
	return time.Duration(c.ConfirmTimeout) * time.Second
}

// AddRPC adds a custom RPC URL for a network.
func (c *Config) AddRPC(network, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[network], url) {
		return fmt.Errorf("RPC %s already exists for network %s", url, network)
	}
	c.CustomRPCs[network] = append(c.CustomRPCs[network], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a network.
func (c *Config) RemoveRPC(network, url string) error {
	rpcs := c.CustomRPCs[network]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for network %s", url, network)
	}
	c.CustomRPCs[network] = slices.Delete(rpcs, idx, idx+1)
	if len(c.CustomRPCs[network]) == 0 {
		delete(c.CustomRPCs, network)
	}
	return nil
}

// GetRPCs returns custom RPCs for a network.
func (c *Config) GetRPCs(network string) []string {
	return c.CustomRPCs[network]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is the wallet metadata file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// DeploymentsPath is the deployment override file.
func (c *Config) DeploymentsPath() string {
	return filepath.Join(c.configDir, deploymentsFile)
}

// KeyringDir is where the file keyring backend keeps encrypted keys.
func (c *Config) KeyringDir() string {
	return filepath.Join(c.configDir, keyringDir)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		DefaultNetwork: defaultNetwork,
		AccountSource:  AccountSourceNode,
		RPCAlgorithm:   defaultAlgorithm,
		ConfirmTimeout: DefaultConfirmTimeout,
		CustomRPCs:     make(map[string][]string),
		configDir:      dir,
	}
}

package chain

import (
	"errors"
	"strings"
)

// ErrNetworkNotFound is returned when a network is not in the registry.
var ErrNetworkNotFound = errors.New("network not found")

// Network holds metadata for one well-known EVM network.
type Network struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	// NetworkID is the net_version value, which keys deployment artifacts.
	NetworkID string   `json:"network_id"`
	ChainID   int64    `json:"chain_id"`
	RPCs      []string `json:"rpcs"`
	Explorer  string   `json:"explorer,omitempty"`
	Local     bool     `json:"local"`
}

// Registry is the network registry.
type Registry struct {
	networks []Network
	byName   map[string]*Network
	byID     map[string]*Network
}

// NewRegistry returns the registry of built-in networks.
func NewRegistry() *Registry {
	networks := allNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
		byID:     make(map[string]*Network, len(networks)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
		r.byID[n.NetworkID] = n
	}
	return r
}

// All returns every network in the registry.
func (r *Registry) All() []Network {
	return r.networks
}

// GetByName finds a network by its slug (e.g. "development", "sepolia").
func (r *Registry) GetByName(name string) (*Network, error) {
	n, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return n, nil
}

// GetByNetworkID finds a network by its net_version identifier.
func (r *Registry) GetByNetworkID(id string) (*Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return n, nil
}

// TxURL returns the explorer link for a transaction, or "" for networks
// without an explorer.
func (n *Network) TxURL(hash string) string {
	if n.Explorer == "" {
		return ""
	}
	return strings.TrimSuffix(n.Explorer, "/") + "/tx/" + hash
}

// AddressURL returns the explorer link for an address, or "".
func (n *Network) AddressURL(addr string) string {
	if n.Explorer == "" {
		return ""
	}
	return strings.TrimSuffix(n.Explorer, "/") + "/address/" + addr
}

// --- network data ---

func allNetworks() []Network {
	return []Network{
		{
			Name: "development", DisplayName: "Ganache (Truffle develop)", NetworkID: "5777", ChainID: 1337,
			RPCs:  []string{"http://127.0.0.1:7545"},
			Local: true,
		},
		{
			Name: "ganache", DisplayName: "Ganache CLI", NetworkID: "1337", ChainID: 1337,
			RPCs:  []string{"http://127.0.0.1:8545"},
			Local: true,
		},
		{
			Name: "hardhat", DisplayName: "Hardhat / Anvil", NetworkID: "31337", ChainID: 31337,
			RPCs:  []string{"http://127.0.0.1:8545"},
			Local: true,
		},
		{
			Name: "sepolia", DisplayName: "Sepolia", NetworkID: "11155111", ChainID: 11155111,
			RPCs:     []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://rpc.sepolia.org"},
			Explorer: "https://sepolia.etherscan.io",
		},
		{
			Name: "holesky", DisplayName: "Holesky", NetworkID: "17000", ChainID: 17000,
			RPCs:     []string{"https://ethereum-holesky-rpc.publicnode.com"},
			Explorer: "https://holesky.etherscan.io",
		},
		{
			Name: "mainnet", DisplayName: "Ethereum", NetworkID: "1", ChainID: 1,
			RPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer: "https://etherscan.io",
		},
	}
}

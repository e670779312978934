package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrDeploymentNotFound is returned when no override exists for a network id.
	ErrDeploymentNotFound = errors.New("deployment not found")
	// ErrInvalidAddress is returned for a stored address that is not 20-byte hex.
	ErrInvalidAddress     = errors.New("invalid address")
)

// DeploymentEntry is a stored address override for one network.
type DeploymentEntry struct {
	NetworkID string `json:"network_id"`
	// Network is the registry name at the time the entry was set, for display.
	Network         string `json:"network,omitempty"`
	Address         string `json:"address"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}

// Deployments stores local address overrides that take precedence over the
// artifact's networks map.
type Deployments struct {
	path    string
	entries map[string]*DeploymentEntry // key: network id
}

// NewDeployments creates a store backed by a JSON file.
func NewDeployments(path string) *Deployments {
	return &Deployments{
		path:    path,
		entries: make(map[string]*DeploymentEntry),
	}
}

// Load reads stored overrides from disk. A missing file is not an error.
func (d *Deployments) Load() error {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []DeploymentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing %s: %w", d.path, err)
	}
	for i := range entries {
		e := &entries[i]
		if !common.IsHexAddress(e.Address) {
			return fmt.Errorf("%s: network id %s: %w %q", d.path, e.NetworkID, ErrInvalidAddress, e.Address)
		}
		d.entries[e.NetworkID] = e
	}
	return nil
}

// Save writes all overrides to disk.
func (d *Deployments) Save() error {
	data, err := json.MarshalIndent(d.All(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, data, 0o600)
}

// Set adds or replaces the override for e.NetworkID.
func (d *Deployments) Set(e *DeploymentEntry) {
	d.entries[e.NetworkID] = e
}

// Get returns the override for networkID.
func (d *Deployments) Get(networkID string) (*DeploymentEntry, error) {
	e, ok := d.entries[networkID]
	if !ok {
		return nil, fmt.Errorf("%w: network id %s", ErrDeploymentNotFound, networkID)
	}
	return e, nil
}

// All returns every override sorted by network id.
func (d *Deployments) All() []*DeploymentEntry {
	out := make([]*DeploymentEntry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NetworkID < out[j].NetworkID })
	return out
}

// Remove deletes the override for networkID.
func (d *Deployments) Remove(networkID string) error {
	if _, ok := d.entries[networkID]; !ok {
		return fmt.Errorf("%w: network id %s", ErrDeploymentNotFound, networkID)
	}
	delete(d.entries, networkID)
	return nil
}

// Overrides converts the stored entries into artifact deployments.
func (d *Deployments) Overrides() map[string]Deployment {
	out := make(map[string]Deployment, len(d.entries))
	for id, e := range d.entries {
		out[id] = Deployment{
			Address:         common.HexToAddress(e.Address),
			TransactionHash: e.TransactionHash,
		}
	}
	return out
}

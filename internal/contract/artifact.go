package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUnsupportedNetwork is returned when the artifact has no deployment for
// the network the provider is connected to.
var ErrUnsupportedNetwork = errors.New("contract not deployed on this network")

// Deployment is one entry of an artifact's networks map.
type Deployment struct {
	Address         common.Address `json:"address"`
	TransactionHash string         `json:"transactionHash,omitempty"`
}

// Artifact is a compiled contract's ABI plus its per-network deployments,
// keyed by network id (net_version). It is read-only once loaded.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	// Source is the file the artifact was read from, or "builtin:<id>".
	Source   string
	networks map[string]Deployment
}

// rawArtifact covers Truffle and Hardhat artifact files. Hardhat artifacts
// carry no networks map.
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Networks     map[string]struct {
		Address         string `json:"address"`
		TransactionHash string `json:"transactionHash"`
	} `json:"networks"`
}

// LoadArtifact reads an artifact from a local file that is either:
//   - a Truffle/Hardhat artifact: {"contractName":..,"abi":[...],"networks":{...}}
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//
// Both formats are detected automatically. A raw ABI has no deployments;
// addresses then come from overrides only.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("artifact file is empty: %s", path)
	}
	a, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.Source = path
	return a, nil
}

// ParseArtifact parses artifact JSON in either supported format.
func ParseArtifact(data []byte) (*Artifact, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		parsed, err := parseABI(data)
		if err != nil {
			return nil, err
		}
		return &Artifact{ABI: parsed, networks: map[string]Deployment{}}, nil
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}
	if len(raw.ABI) < 2 || raw.ABI[0] != '[' {
		return nil, fmt.Errorf("artifact has no \"abi\" array")
	}
	parsed, err := parseABI(raw.ABI)
	if err != nil {
		return nil, err
	}

	a := &Artifact{
		ContractName: raw.ContractName,
		ABI:          parsed,
		networks:     make(map[string]Deployment, len(raw.Networks)),
	}
	for id, n := range raw.Networks {
		if !common.IsHexAddress(n.Address) {
			return nil, fmt.Errorf("network %s: invalid address %q", id, n.Address)
		}
		a.networks[id] = Deployment{
			Address:         common.HexToAddress(n.Address),
			TransactionHash: n.TransactionHash,
		}
	}
	return a, nil
}

// BuiltinArtifact returns an artifact for an embedded ABI with no deployments.
func BuiltinArtifact(id string) (*Artifact, error) {
	b, ok := GetBuiltin(id)
	if !ok {
		return nil, fmt.Errorf("unknown built-in contract %q", id)
	}
	return &Artifact{
		ContractName: b.Name,
		ABI:          b.ABI,
		Source:       "builtin:" + id,
		networks:     map[string]Deployment{},
	}, nil
}

// Resolve returns the deployment for networkID, or ErrUnsupportedNetwork.
func (a *Artifact) Resolve(networkID string) (Deployment, error) {
	d, ok := a.networks[networkID]
	if !ok || d.Address == (common.Address{}) {
		return Deployment{}, fmt.Errorf("%w: network id %s (known: %s)",
			ErrUnsupportedNetwork, networkID, strings.Join(a.NetworkIDs(), ", "))
	}
	return d, nil
}

// WithOverrides returns a copy of a whose networks are overlaid with
// overrides. An override replaces the artifact's entry for the same id.
func (a *Artifact) WithOverrides(overrides map[string]Deployment) *Artifact {
	merged := make(map[string]Deployment, len(a.networks)+len(overrides))
	for id, d := range a.networks {
		merged[id] = d
	}
	for id, d := range overrides {
		merged[id] = d
	}
	return &Artifact{
		ContractName: a.ContractName,
		ABI:          a.ABI,
		Source:       a.Source,
		networks:     merged,
	}
}

// NetworkIDs returns the ids with a deployment, sorted.
func (a *Artifact) NetworkIDs() []string {
	ids := make([]string, 0, len(a.networks))
	for id := range a.networks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func parseABI(data []byte) (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("invalid ABI JSON: expected an array of function/event definitions: %w", err)
	}
	if len(parsed.Methods) == 0 && len(parsed.Events) == 0 {
		return abi.ABI{}, fmt.Errorf("ABI has no functions or events")
	}
	return parsed, nil
}

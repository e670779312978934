// Package session performs provider bootstrap: it collects the authorized
// accounts and network id from a provider, resolves the factory deployment
// for that network and binds a contract handle. The result is an immutable
// Session consumed by the fundraiser flow.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/provider"
	"github.com/ethereum/go-ethereum/common"
)

// Errors.
var (
	// ErrBootstrap matches every bootstrap failure.
	ErrBootstrap = errors.New("failed to load provider, accounts, or contract")
	// ErrNoAccounts is returned when the provider authorizes no accounts.
	ErrNoAccounts = errors.New("no authorized accounts")
)

// Step names the bootstrap stage that failed.
type Step string

const (
	StepProvider Step = "provider"
	StepAccounts Step = "accounts"
	StepNetwork  Step = "network"
	StepArtifact Step = "artifact"
	StepBind     Step = "bind"
)

// BootstrapError reports which step failed and why.
type BootstrapError struct {
	Step Step
	Err  error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap %s: %v", e.Step, e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// Is makes every BootstrapError match ErrBootstrap.
func (e *BootstrapError) Is(target error) bool { return target == ErrBootstrap }

// Session is the result of a completed bootstrap. All fields are set at
// construction and never change. A nil *Session means bootstrap did not
// complete.
type Session struct {
	provider   provider.Provider
	accounts   []common.Address
	networkID  string
	deployment contract.Deployment
	handle     *contract.Handle
}

// Opener obtains a provider.
type Opener func(ctx context.Context) (provider.Provider, error)

// Open obtains a provider with open and bootstraps it. A provider that was
// opened is closed again if a later step fails.
func Open(ctx context.Context, open Opener, artifact *contract.Artifact) (*Session, error) {
	p, err := open(ctx)
	if err != nil {
		return nil, &BootstrapError{Step: StepProvider, Err: err}
	}
	s, err := Bootstrap(ctx, p, artifact)
	if err != nil {
		p.Close()
		return nil, err
	}
	return s, nil
}

// Bootstrap requests accounts, queries the network id, resolves the
// artifact entry for that network and binds the contract. Any failure
// returns a *BootstrapError and a nil Session.
func Bootstrap(ctx context.Context, p provider.Provider, artifact *contract.Artifact) (*Session, error) {
	if p == nil {
		return nil, &BootstrapError{Step: StepProvider, Err: errors.New("no provider")}
	}

	accounts, err := p.RequestAccounts(ctx)
	if err != nil {
		return nil, &BootstrapError{Step: StepAccounts, Err: err}
	}
	if len(accounts) == 0 {
		return nil, &BootstrapError{Step: StepAccounts, Err: ErrNoAccounts}
	}

	networkID, err := p.NetworkID(ctx)
	if err != nil {
		return nil, &BootstrapError{Step: StepNetwork, Err: err}
	}

	if artifact == nil {
		return nil, &BootstrapError{Step: StepArtifact, Err: errors.New("no artifact loaded")}
	}
	deployment, err := artifact.Resolve(networkID)
	if err != nil {
		return nil, &BootstrapError{Step: StepArtifact, Err: err}
	}

	handle := p.Bind(artifact.ABI, deployment.Address)
	if handle == nil {
		return nil, &BootstrapError{Step: StepBind, Err: errors.New("provider returned no contract handle")}
	}

	return &Session{
		provider:   p,
		accounts:   append([]common.Address(nil), accounts...),
		networkID:  networkID,
		deployment: deployment,
		handle:     handle,
	}, nil
}

// Ready reports whether s is a completed session. Safe on nil.
func (s *Session) Ready() bool {
	return s != nil && s.provider != nil && len(s.accounts) > 0 && s.handle != nil
}

// Provider returns the provider the session was built on.
func (s *Session) Provider() provider.Provider { return s.provider }

// Accounts returns a copy of the authorized accounts.
func (s *Session) Accounts() []common.Address {
	return append([]common.Address(nil), s.accounts...)
}

// Sender is the account transactions are sent from: accounts[0].
func (s *Session) Sender() common.Address { return s.accounts[0] }

// NetworkID is the net_version reported during bootstrap.
func (s *Session) NetworkID() string { return s.networkID }

// Deployment is the resolved artifact entry.
func (s *Session) Deployment() contract.Deployment { return s.deployment }

// Contract is the bound factory handle.
func (s *Session) Contract() *contract.Handle { return s.handle }

// Close releases the provider. Safe on nil.
func (s *Session) Close() {
	if s != nil && s.provider != nil {
		s.provider.Close()
	}
}

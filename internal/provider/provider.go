// Package provider connects the client to an EVM node. A Provider lists the
// authorized accounts, reports the network id and binds contract handles
// whose transactions it knows how to sign and send.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// ErrUnknownAccount is returned when asked to send from an account the
// provider cannot sign for.
var ErrUnknownAccount = errors.New("account not managed by this provider")

// ErrWouldRevert is returned when gas estimation shows the transaction
// reverts. Nothing is broadcast.
var ErrWouldRevert = errors.New("transaction would revert")

// Provider is a connection to a node with a set of usable accounts.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	NetworkID(ctx context.Context) (string, error)
	Bind(parsed abi.ABI, address common.Address) *contract.Handle
	Close()
}

// Options configures Open.
type Options struct {
	URL string
	// AccountSource is config.AccountSourceNode or config.AccountSourceWallet.
	AccountSource string
	// Wallets supplies signing accounts for the wallet source.
	Wallets *wallet.Manager
	// FromWallet, when set, moves that wallet to the front of the account list.
	FromWallet   string
	PollInterval time.Duration
	Logger       zerolog.Logger
}

// Open dials opts.URL and returns the provider for the configured account
// source.
func Open(ctx context.Context, opts Options) (Provider, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = config.ReceiptPollInterval
	}

	var signers []*wallet.Signer
	switch opts.AccountSource {
	case "", config.AccountSourceNode:
		if opts.FromWallet != "" {
			return nil, fmt.Errorf("--from-wallet requires account_source %q", config.AccountSourceWallet)
		}
	case config.AccountSourceWallet:
		if opts.Wallets == nil {
			return nil, fmt.Errorf("wallet account source needs a wallet manager")
		}
		var err error
		signers, err = orderedSigners(opts.Wallets, opts.FromWallet)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown account source %q", opts.AccountSource)
	}

	client, err := chain.Dial(ctx, opts.URL)
	if err != nil {
		return nil, err
	}

	if opts.AccountSource == config.AccountSourceWallet {
		return NewWalletProvider(client, signers, opts.PollInterval, opts.Logger), nil
	}
	return NewNodeProvider(client, opts.PollInterval, opts.Logger), nil
}

func orderedSigners(m *wallet.Manager, from string) ([]*wallet.Signer, error) {
	wallets, err := m.Ordered()
	if err != nil {
		return nil, err
	}
	if from != "" {
		w, err := m.Get(from)
		if err != nil {
			return nil, err
		}
		reordered := []*wallet.Wallet{w}
		for _, other := range wallets {
			if other.Name != w.Name {
				reordered = append(reordered, other)
			}
		}
		wallets = reordered
	}

	signers := make([]*wallet.Signer, 0, len(wallets))
	for _, w := range wallets {
		signers = append(signers, wallet.NewSigner(w, m.Keystore()))
	}
	return signers, nil
}

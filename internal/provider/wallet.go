package provider

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// WalletProvider uses local keyring wallets. Transactions are built as
// EIP-1559 dynamic-fee transactions, signed locally and broadcast raw.
type WalletProvider struct {
	client   *chain.Client
	signers  []*wallet.Signer
	interval time.Duration
	log      zerolog.Logger
}

var (
	_ Provider         = (*WalletProvider)(nil)
	_ contract.Backend = (*WalletProvider)(nil)
)

// NewWalletProvider wraps a dialed client. signers[0] is accounts[0].
func NewWalletProvider(client *chain.Client, signers []*wallet.Signer, pollInterval time.Duration, logger zerolog.Logger) *WalletProvider {
	return &WalletProvider{
		client:   client,
		signers:  signers,
		interval: pollInterval,
		log:      logging.For(logger, logging.ComponentProvider).With().Str("source", "wallet").Logger(),
	}
}

// RequestAccounts returns the wallet addresses, default first. No node call
// is made.
func (p *WalletProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	out := make([]common.Address, 0, len(p.signers))
	for _, s := range p.signers {
		out = append(out, s.Address())
	}
	return out, nil
}

func (p *WalletProvider) NetworkID(ctx context.Context) (string, error) {
	return p.client.NetworkID(ctx)
}

func (p *WalletProvider) Bind(parsed abi.ABI, address common.Address) *contract.Handle {
	return contract.NewHandle(parsed, address, p)
}

func (p *WalletProvider) Close() { p.client.Close() }

// CallContract implements contract.Backend.
func (p *WalletProvider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return p.client.Call(ctx, to, data)
}

// SendTransaction implements contract.Backend.
func (p *WalletProvider) SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	signer := p.signerFor(from)
	if signer == nil {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnknownAccount, from.Hex())
	}

	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("chain id: %w", err)
	}
	nonce, err := p.client.PendingNonce(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	fees, err := p.client.SuggestFees(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fees: %w", err)
	}
	gas, err := p.client.EstimateGas(ctx, chain.TxArgs{From: from, To: &to, Data: data})
	switch {
	case err != nil && isRevert(err):
		return common.Hash{}, fmt.Errorf("%w: %v", ErrWouldRevert, err)
	case err != nil:
		p.log.Warn().Err(err).Uint64("gas", config.GasLimitFallback).Msg("gas estimation failed, using fallback limit")
		gas = config.GasLimitFallback
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: fees.TipCap,
		GasFeeCap: fees.FeeCap,
		Gas:       gas,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})
	raw, err := signer.SignTx(tx, chainID)
	if err != nil {
		return common.Hash{}, err
	}

	hash, err := p.client.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, err
	}
	p.log.Debug().
		Str("wallet", signer.Name()).
		Str("tx", hash.Hex()).
		Uint64("nonce", nonce).
		Uint64("gas", gas).
		Str("fee_cap", fees.FeeCap.String()).
		Msg("transaction sent")
	return hash, nil
}

// WaitMined implements contract.Backend.
func (p *WalletProvider) WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	return p.client.WaitForReceipt(ctx, hash, p.interval)
}

func (p *WalletProvider) signerFor(addr common.Address) *wallet.Signer {
	for _, s := range p.signers {
		if s.Address() == addr {
			return s
		}
	}
	return nil
}

// isRevert reports whether a node error comes from EVM execution rather than
// from the node lacking eth_estimateGas or failing to answer.
func isRevert(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "execution reverted")
}

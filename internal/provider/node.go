package provider

import (
	"context"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// NodeProvider uses the accounts unlocked on the node. The node signs every
// transaction (eth_sendTransaction), as Ganache and Hardhat do for their dev
// accounts.
type NodeProvider struct {
	client   *chain.Client
	interval time.Duration
	log      zerolog.Logger
}

var (
	_ Provider         = (*NodeProvider)(nil)
	_ contract.Backend = (*NodeProvider)(nil)
)

// NewNodeProvider wraps a dialed client.
func NewNodeProvider(client *chain.Client, pollInterval time.Duration, logger zerolog.Logger) *NodeProvider {
	return &NodeProvider{
		client:   client,
		interval: pollInterval,
		log:      logging.For(logger, logging.ComponentProvider).With().Str("source", "node").Logger(),
	}
}

func (p *NodeProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return p.client.RequestAccounts(ctx)
}

func (p *NodeProvider) NetworkID(ctx context.Context) (string, error) {
	return p.client.NetworkID(ctx)
}

func (p *NodeProvider) Bind(parsed abi.ABI, address common.Address) *contract.Handle {
	return contract.NewHandle(parsed, address, p)
}

func (p *NodeProvider) Close() { p.client.Close() }

// CallContract implements contract.Backend.
func (p *NodeProvider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return p.client.Call(ctx, to, data)
}

// SendTransaction implements contract.Backend. Gas is left to the node.
func (p *NodeProvider) SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	hash, err := p.client.SendTransaction(ctx, chain.TxArgs{From: from, To: &to, Data: data})
	if err != nil {
		return common.Hash{}, err
	}
	p.log.Debug().Str("from", from.Hex()).Str("to", to.Hex()).Str("tx", hash.Hex()).Msg("transaction sent")
	return hash, nil
}

// WaitMined implements contract.Backend.
func (p *NodeProvider) WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	return p.client.WaitForReceipt(ctx, hash, p.interval)
}

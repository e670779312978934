package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrMethodNotFound is returned when a method name is not in the bound ABI.
var ErrMethodNotFound = errors.New("method not found in ABI")

// Backend executes calls and transactions for a Handle. Providers implement
// it: a node-managed provider lets the node sign, a wallet provider signs
// locally.
type Backend interface {
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error)
	WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error)
}

// Handle is a contract bound to an address and ABI.
type Handle struct {
	address common.Address
	abi     abi.ABI
	backend Backend
}

// NewHandle binds parsed at address through backend.
func NewHandle(parsed abi.ABI, address common.Address, backend Backend) *Handle {
	return &Handle{address: address, abi: parsed, backend: backend}
}

// Address returns the bound contract address.
func (h *Handle) Address() common.Address { return h.address }

// ABI returns the bound interface.
func (h *Handle) ABI() abi.ABI { return h.abi }

// Transact packs method with args and sends it from the given account.
// It returns as soon as the node accepts the transaction.
func (h *Handle) Transact(ctx context.Context, from common.Address, method string, args ...interface{}) (common.Hash, error) {
	data, err := h.pack(method, args...)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := h.backend.SendTransaction(ctx, from, h.address, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sending %s: %w", method, err)
	}
	return hash, nil
}

// Call runs a read-only method and returns its unpacked outputs.
func (h *Handle) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := h.pack(method, args...)
	if err != nil {
		return nil, err
	}
	out, err := h.backend.CallContract(ctx, h.address, data)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	if len(out) == 0 && len(h.abi.Methods[method].Outputs) > 0 {
		return nil, fmt.Errorf("calling %s: empty result (is a contract deployed at %s?)", method, h.address.Hex())
	}
	values, err := h.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return values, nil
}

// Confirm waits until the transaction is mined. A reverted transaction
// returns its receipt with chain.ErrTxReverted.
func (h *Handle) Confirm(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	return h.backend.WaitMined(ctx, hash)
}

func (h *Handle) pack(method string, args ...interface{}) ([]byte, error) {
	if _, ok := h.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}
	data, err := h.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	return data, nil
}

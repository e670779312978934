package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Errors.
var (
	ErrTxReverted = errors.New("transaction reverted")
	ErrNotMined   = errors.New("transaction not mined")
)

// Client is a JSON-RPC client for EVM nodes.
type Client struct {
	url string
	rpc *rpc.Client
}

// TxArgs is the transaction object accepted by eth_sendTransaction,
// eth_estimateGas and eth_call.
type TxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to,omitempty"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Gas   *hexutil.Uint64 `json:"gas,omitempty"`
}

// Receipt holds the on-chain receipt of a mined transaction.
type Receipt struct {
	Hash        common.Hash
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
	Logs        []Log
}

// Log is one event emitted by a mined transaction.
type Log struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool { return r != nil && r.Status == 1 }

// Dial connects to the node at url. For HTTP endpoints no request is made
// until the first call.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialOptions(ctx, url, rpc.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return &Client{url: url, rpc: c}, nil
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string { return c.url }

// Close releases the underlying connection.
func (c *Client) Close() { c.rpc.Close() }

// NetworkID returns the node's network identifier (net_version). Dev nodes
// such as Ganache report a network id that differs from the chain id.
func (c *Client) NetworkID(ctx context.Context) (string, error) {
	var raw json.RawMessage
	if err := c.rpc.CallContext(ctx, &raw, "net_version"); err != nil {
		return "", err
	}
	return parseNetworkID(raw)
}

// ChainID returns the EIP-155 chain id used for signing.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var id hexutil.Big
	if err := c.rpc.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return nil, err
	}
	return id.ToInt(), nil
}

// RequestAccounts asks the node for the accounts it is authorized to use.
// Nodes without eth_requestAccounts fall back to eth_accounts.
func (c *Client) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := c.rpc.CallContext(ctx, &accounts, "eth_requestAccounts")
	if err == nil {
		return accounts, nil
	}
	if !isMethodNotFound(err) {
		return nil, err
	}
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var n hexutil.Uint64
	if err := c.rpc.CallContext(ctx, &n, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// Ping tests the endpoint and returns latency + block number.
func (c *Client) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// PendingNonce returns the next nonce for address, counting queued transactions.
func (c *Client) PendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	var n hexutil.Uint64
	if err := c.rpc.CallContext(ctx, &n, "eth_getTransactionCount", address, "pending"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// GasPrice returns the node's legacy gas price suggestion.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	var gp hexutil.Big
	if err := c.rpc.CallContext(ctx, &gp, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return gp.ToInt(), nil
}

// EstimateGas estimates the gas needed to execute args.
func (c *Client) EstimateGas(ctx context.Context, args TxArgs) (uint64, error) {
	var gas hexutil.Uint64
	if err := c.rpc.CallContext(ctx, &gas, "eth_estimateGas", args); err != nil {
		return 0, err
	}
	return uint64(gas), nil
}

// Call executes a read-only call against the latest block.
func (c *Client) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var out hexutil.Bytes
	params := map[string]interface{}{
		"to":   to,
		"data": hexutil.Bytes(data),
	}
	if err := c.rpc.CallContext(ctx, &out, "eth_call", params, "latest"); err != nil {
		return nil, err
	}
	return out, nil
}

// SendTransaction asks the node to sign and broadcast args with one of its
// own accounts.
func (c *Client) SendTransaction(ctx context.Context, args TxArgs) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// SendRawTransaction broadcasts an already signed transaction.
func (c *Client) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

type rawReceipt struct {
	Status      hexutil.Uint64 `json:"status"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	GasUsed     hexutil.Uint64 `json:"gasUsed"`
	Logs        []Log          `json:"logs"`
}

// TransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	var r *rawReceipt
	if err := c.rpc.CallContext(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return &Receipt{
		Hash:        hash,
		Status:      uint64(r.Status),
		BlockNumber: uint64(r.BlockNumber),
		GasUsed:     uint64(r.GasUsed),
		Logs:        r.Logs,
	}, nil
}

// WaitForReceipt polls every interval until the transaction is mined or ctx
// is done. A reverted transaction returns its receipt together with
// ErrTxReverted.
func (c *Client) WaitForReceipt(ctx context.Context, hash common.Hash, interval time.Duration) (*Receipt, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNotMined, hash.Hex(), ctx.Err())
			}
			return nil, err
		}
		if receipt != nil {
			if !receipt.Succeeded() {
				return receipt, fmt.Errorf("%w (hash: %s)", ErrTxReverted, hash.Hex())
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotMined, hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// parseNetworkID accepts both the standard string form and the bare number
// some nodes return.
func parseNetworkID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "0x") {
			n, err := hexutil.DecodeBig(s)
			if err != nil {
				return "", fmt.Errorf("parsing network id %q: %w", s, err)
			}
			return n.String(), nil
		}
		if s == "" {
			return "", fmt.Errorf("empty network id")
		}
		return s, nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unexpected network id %s", string(raw))
	}
	return strconv.FormatUint(n, 10), nil
}

func isMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == -32601 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "method not found") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "not supported")
}

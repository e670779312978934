package provider

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat/Anvil test accounts #0 and #1.
const (
	testKey0  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testKey1  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	testAddr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	nodeAccount = "0x1111111111111111111111111111111111111111"
	factory     = "0xABC0000000000000000000000000000000000abc"
	txHash      = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

type mockNode struct {
	mu    sync.Mutex
	calls []rpcRequest
}

func (m *mockNode) byMethod(method string) []rpcRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []rpcRequest
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// rpcError is a responses value answered as a JSON-RPC error.
type rpcError struct {
	Code    int
	Message string
}

// rpcMock answers each method with a fixed result. Methods absent from
// responses get a -32601 error.
func rpcMock(t *testing.T, responses map[string]interface{}) (*httptest.Server, *mockNode) {
	t.Helper()
	node := &mockNode{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		node.mu.Lock()
		node.calls = append(node.calls, req)
		node.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if result, ok := responses[req.Method]; ok {
			if e, isErr := result.(rpcError); isErr {
				resp["error"] = map[string]interface{}{"code": e.Code, "message": e.Message}
			} else {
				resp["result"] = result
			}
		} else {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv, node
}

func minedReceipt() map[string]interface{} {
	return map[string]interface{}{"status": "0x1", "blockNumber": "0x5", "gasUsed": "0x5208"}
}

func nodeResponses() map[string]interface{} {
	return map[string]interface{}{
		"net_version":               "5777",
		"eth_requestAccounts":       []string{nodeAccount},
		"eth_sendTransaction":       txHash,
		"eth_getTransactionReceipt": minedReceipt(),
	}
}

func walletResponses() map[string]interface{} {
	return map[string]interface{}{
		"net_version":               "5777",
		"eth_chainId":               "0x539",
		"eth_getTransactionCount":   "0x3",
		"eth_gasPrice":              "0x3b9aca00",
		"eth_maxPriorityFeePerGas":  "0x3b9aca00",
		"eth_getBlockByNumber":      map[string]interface{}{"baseFeePerGas": "0x7"},
		"eth_estimateGas":           "0x1d4c0",
		"eth_sendRawTransaction":    txHash,
		"eth_getTransactionReceipt": minedReceipt(),
	}
}

func factoryHandle(t *testing.T, p Provider) *contract.Handle {
	t.Helper()
	b, ok := contract.GetBuiltin(contract.BuiltinFactory)
	require.True(t, ok)
	h := p.Bind(b.ABI, common.HexToAddress(factory))
	require.NotNil(t, h)
	return h
}

func testWallets(t *testing.T) *wallet.Manager {
	t.Helper()
	m := wallet.NewManager()
	_, err := m.AddWithKey("first", testKey0)
	require.NoError(t, err)
	_, err = m.AddWithKey("second", testKey1)
	require.NoError(t, err)
	return m
}

func openProvider(t *testing.T, opts Options) Provider {
	t.Helper()
	opts.PollInterval = 10 * time.Millisecond
	opts.Logger = zerolog.Nop()
	p, err := Open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

// ---------------------------------------------------------------------------
// NodeProvider
// ---------------------------------------------------------------------------

func TestNodeProviderAccountsAndNetwork(t *testing.T) {
	srv, _ := rpcMock(t, nodeResponses())
	p := openProvider(t, Options{URL: srv.URL})
	require.IsType(t, &NodeProvider{}, p)

	accounts, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.HexToAddress(nodeAccount)}, accounts)

	id, err := p.NetworkID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5777", id)
}

func TestNodeProviderTransactAndConfirm(t *testing.T) {
	srv, node := rpcMock(t, nodeResponses())
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceNode})
	h := factoryHandle(t, p)

	from := common.HexToAddress(nodeAccount)
	beneficiary := common.HexToAddress(testAddr1)
	hash, err := h.Transact(context.Background(), from, "createFundraiser", "a", "b", "c", "d", beneficiary)
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash(txHash), hash)

	sent := node.byMethod("eth_sendTransaction")
	require.Len(t, sent, 1)
	var args struct {
		From common.Address `json:"from"`
		To   common.Address `json:"to"`
		Data hexutil.Bytes  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sent[0].Params[0], &args))
	assert.Equal(t, from, args.From)
	assert.Equal(t, common.HexToAddress(factory), args.To)
	assert.Equal(t, h.ABI().Methods["createFundraiser"].ID, []byte(args.Data[:4]))

	receipt, err := h.Confirm(context.Background(), hash)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, uint64(5), receipt.BlockNumber)
}

// ---------------------------------------------------------------------------
// WalletProvider
// ---------------------------------------------------------------------------

func TestWalletProviderAccountsDefaultFirst(t *testing.T) {
	srv, node := rpcMock(t, walletResponses())
	m := testWallets(t)
	require.NoError(t, m.SetDefault("second"))

	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: m})
	require.IsType(t, &WalletProvider{}, p)

	accounts, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.HexToAddress(testAddr1), common.HexToAddress(testAddr0)}, accounts)
	assert.Empty(t, node.byMethod("eth_requestAccounts"), "wallet accounts need no node call")
}

func TestWalletProviderFromWalletOverride(t *testing.T) {
	srv, _ := rpcMock(t, walletResponses())
	p := openProvider(t, Options{
		URL:           srv.URL,
		AccountSource: config.AccountSourceWallet,
		Wallets:       testWallets(t),
		FromWallet:    "second",
	})

	accounts, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddr1), accounts[0])
}

func TestWalletProviderSignsDynamicFeeTx(t *testing.T) {
	srv, node := rpcMock(t, walletResponses())
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: testWallets(t)})
	h := factoryHandle(t, p)

	from := common.HexToAddress(testAddr0)
	hash, err := h.Transact(context.Background(), from, "createFundraiser", "a", "b", "c", "d", common.HexToAddress(testAddr1))
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash(txHash), hash)
	assert.Empty(t, node.byMethod("eth_sendTransaction"))

	sent := node.byMethod("eth_sendRawTransaction")
	require.Len(t, sent, 1)
	var raw hexutil.Bytes
	require.NoError(t, json.Unmarshal(sent[0].Params[0], &raw))

	var tx types.Transaction
	require.NoError(t, tx.UnmarshalBinary(raw))
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	assert.Equal(t, big.NewInt(1337), tx.ChainId())
	assert.Equal(t, uint64(3), tx.Nonce())
	assert.Equal(t, uint64(120000), tx.Gas())
	assert.Equal(t, common.HexToAddress(factory), *tx.To())
	// 2*base + tip
	assert.Equal(t, big.NewInt(1_000_000_014), tx.GasFeeCap())

	sender, err := types.Sender(types.NewLondonSigner(big.NewInt(1337)), &tx)
	require.NoError(t, err)
	assert.Equal(t, from, sender)
}

func TestWalletProviderGasFallback(t *testing.T) {
	responses := walletResponses()
	delete(responses, "eth_estimateGas")
	srv, node := rpcMock(t, responses)
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: testWallets(t)})
	h := factoryHandle(t, p)

	_, err := h.Transact(context.Background(), common.HexToAddress(testAddr0), "createFundraiser", "", "", "", "", common.Address{})
	require.NoError(t, err)

	var raw hexutil.Bytes
	require.NoError(t, json.Unmarshal(node.byMethod("eth_sendRawTransaction")[0].Params[0], &raw))
	var tx types.Transaction
	require.NoError(t, tx.UnmarshalBinary(raw))
	assert.Equal(t, config.GasLimitFallback, tx.Gas())
}

func TestWalletProviderRevertingEstimateNotSent(t *testing.T) {
	responses := walletResponses()
	responses["eth_estimateGas"] = rpcError{Code: 3, Message: "execution reverted: beneficiary required"}
	srv, node := rpcMock(t, responses)
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: testWallets(t)})
	h := factoryHandle(t, p)

	_, err := h.Transact(context.Background(), common.HexToAddress(testAddr0), "createFundraiser", "", "", "", "", common.Address{})
	require.ErrorIs(t, err, ErrWouldRevert)
	assert.Contains(t, err.Error(), "beneficiary required")
	assert.Empty(t, node.byMethod("eth_sendRawTransaction"))
}

func TestWalletProviderUnknownAccount(t *testing.T) {
	srv, node := rpcMock(t, walletResponses())
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: testWallets(t)})
	h := factoryHandle(t, p)

	_, err := h.Transact(context.Background(), common.HexToAddress(nodeAccount), "createFundraiser", "", "", "", "", common.Address{})
	assert.ErrorIs(t, err, ErrUnknownAccount)
	assert.Empty(t, node.byMethod("eth_sendRawTransaction"))
}

func TestWalletProviderNoWallets(t *testing.T) {
	srv, _ := rpcMock(t, walletResponses())
	p := openProvider(t, Options{URL: srv.URL, AccountSource: config.AccountSourceWallet, Wallets: wallet.NewManager()})

	accounts, err := p.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"no url", Options{}, "no RPC URL"},
		{"unknown source", Options{URL: "http://127.0.0.1:7545", AccountSource: "metamask"}, "unknown account source"},
		{"from wallet on node", Options{URL: "http://127.0.0.1:7545", FromWallet: "alice"}, "--from-wallet"},
		{"wallet without manager", Options{URL: "http://127.0.0.1:7545", AccountSource: config.AccountSourceWallet}, "wallet manager"},
		{"missing from wallet", Options{URL: "http://127.0.0.1:7545", AccountSource: config.AccountSourceWallet, Wallets: wallet.NewManager(), FromWallet: "ghost"}, "wallet not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(ctx, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

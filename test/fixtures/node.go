package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RPCCall is one JSON-RPC request received by a Node.
type RPCCall struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

// Node is an httptest JSON-RPC server answering each method with a fixed
// result. Methods without a result get a -32601 error.
type Node struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]interface{}
	calls     []RPCCall
}

// NewGanacheNode serves rpc/ganache.json with overrides applied on top. The
// server is closed when the test ends.
func NewGanacheNode(t *testing.T, overrides map[string]interface{}) *Node {
	t.Helper()
	responses := LoadRPCResponses(t, "ganache.json")
	for k, v := range overrides {
		responses[k] = v
	}

	n := &Node{responses: responses}
	n.Server = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.Close)
	return n
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	var req RPCCall
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, req)
	result, ok := n.responses[req.Method]
	n.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if ok {
		resp["result"] = result
	} else {
		resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}

// Calls returns the requests received for method, in order.
func (n *Node) Calls(method string) []RPCCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []RPCCall
	for _, c := range n.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

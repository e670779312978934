package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockServer answers every JSON-RPC request with blockNum as the result.
func blockServer(t *testing.T, blockNum uint64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, blockNum)
	}))
}

func TestBenchmarkKeepsOrder(t *testing.T) {
	a := blockServer(t, 100)
	defer a.Close()
	b := blockServer(t, 200)
	defer b.Close()

	results := Benchmark(context.Background(), []string{a.URL, b.URL})
	require.Len(t, results, 2)
	assert.Equal(t, a.URL, results[0].URL)
	assert.Equal(t, uint64(100), results[0].BlockNumber)
	assert.Equal(t, b.URL, results[1].URL)
	assert.Equal(t, uint64(200), results[1].BlockNumber)
	assert.True(t, results[0].Healthy())
}

func TestBenchmarkUnreachable(t *testing.T) {
	results := Benchmark(context.Background(), []string{"http://127.0.0.1:19994"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Healthy())
}

func TestSelectSingleURLSkipsProbe(t *testing.T) {
	url, err := Select(context.Background(), []string{"http://127.0.0.1:19994"}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:19994", url)
}

func TestSelectEmpty(t *testing.T) {
	_, err := Select(context.Background(), nil, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectPrefersLiveEndpoint(t *testing.T) {
	live := blockServer(t, 500)
	defer live.Close()

	url, err := Select(context.Background(), []string{"http://127.0.0.1:19994", live.URL}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, live.URL, url)
}

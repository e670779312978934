// Package fixtures loads canned artifacts and node responses for tests.
package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Values baked into the fixture files.
const (
	FactoryAddress = "0xABC0000000000000000000000000000000000abc"
	NodeAccount    = "0x1111111111111111111111111111111111111111"
	TxHash         = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	// CreatedFundraiser is the address in the ganache receipt's
	// FundraiserCreated log.
	CreatedFundraiser = "0xf00000000000000000000000000000000000000d"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// ArtifactPath returns the absolute path of an artifact fixture.
func ArtifactPath(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join(fixturesDir(), "artifacts", filename)
	_, err := os.Stat(path)
	require.NoError(t, err, "missing fixture artifact: %s", filename)
	return path
}

// LoadArtifact returns the raw bytes of an artifact fixture.
func LoadArtifact(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(ArtifactPath(t, filename))
	require.NoError(t, err, "failed to load fixture artifact: %s", filename)
	return data
}

// LoadRPCResponses loads a method → result map for a mock node.
func LoadRPCResponses(t *testing.T, filename string) map[string]interface{} {
	t.Helper()
	path := filepath.Join(fixturesDir(), "rpc", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture RPC responses: %s", filename)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

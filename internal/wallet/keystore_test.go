package wallet

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known Hardhat/Anvil test account #0, never fund on mainnet.
const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// testKeystore returns a file-backed Keystore isolated to a temp directory.
// Using the FileBackend avoids OS keychain prompts in CI.
func testKeystore(t *testing.T) *Keystore {
	t.Helper()
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      "fundraiser-test",
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("testpass"),
	})
	require.NoError(t, err)
	return NewKeystore(ring)
}

func TestNormaliseHexKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0xabc123", "abc123"},
		{"0Xabc123", "abc123"},
		{"abc123", "abc123"},
		{"  0xabc  ", "abc"},
		{"0x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normaliseHexKey(tt.in), tt.in)
	}
}

func TestKeystoreStoreRetrieveDelete(t *testing.T) {
	t.Setenv(EnvPrivateKey, "")
	ks := testKeystore(t)

	ref, err := ks.Store("alice", "0x"+testPrivKeyHex)
	require.NoError(t, err)
	assert.Equal(t, "fundraiser.alice", ref)

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, testPrivKeyHex, got, "stored without 0x prefix")

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

func TestKeystoreDeleteMissingIsNoop(t *testing.T) {
	ks := testKeystore(t)
	assert.NoError(t, ks.Delete("fundraiser.ghost"))
}

func TestKeystoreRetrieveEnvVarOverride(t *testing.T) {
	t.Setenv(EnvPrivateKey, "0x"+testPrivKeyHex)

	ks := &Keystore{ring: nil} // nil ring, must be served by env var
	got, err := ks.Retrieve("fundraiser.any-ref")
	require.NoError(t, err)
	assert.Equal(t, testPrivKeyHex, got)
}

func TestKeystoreNilRing(t *testing.T) {
	t.Setenv(EnvPrivateKey, "")
	ks := &Keystore{ring: nil}

	_, err := ks.Retrieve("fundraiser.ghost")
	assert.ErrorContains(t, err, "keystore not available")

	_, err = ks.Store("x", testPrivKeyHex)
	assert.Error(t, err)

	assert.NoError(t, ks.Delete("fundraiser.anything"))
}

func TestInMemoryKeystore(t *testing.T) {
	ks := NewInMemoryKeystore()
	ref, err := ks.Store("bob", "0x"+testPrivKeyHex)
	require.NoError(t, err)

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, testPrivKeyHex, got)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

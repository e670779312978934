package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.DefaultNetwork)
	assert.Equal(t, config.AccountSourceNode, cfg.AccountSource)
	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
	assert.Equal(t, 120, cfg.ConfirmTimeout)
	assert.Equal(t, 120*time.Second, cfg.ConfirmTimeoutDuration())
	assert.Empty(t, cfg.ArtifactPath)
}

func TestLoadUsesEnvDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "envdir")
	t.Setenv(config.EnvConfigDir, dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir())

	_, err = os.Stat(dir)
	assert.NoError(t, err, "config dir should be created")
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.DefaultNetwork = "sepolia"
	cfg.RPCAlgorithm = "failover"
	cfg.ArtifactPath = "/tmp/FundraiserFactory.json"
	require.NoError(t, cfg.SetAccountSource("wallet"))
	require.NoError(t, cfg.SetConfirmTimeout(30))

	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sepolia", reloaded.DefaultNetwork)
	assert.Equal(t, "failover", reloaded.RPCAlgorithm)
	assert.Equal(t, "/tmp/FundraiserFactory.json", reloaded.ArtifactPath)
	assert.Equal(t, config.AccountSourceWallet, reloaded.AccountSource)
	assert.Equal(t, 30*time.Second, reloaded.ConfirmTimeoutDuration())
}

func TestLoadFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"default_network":"hardhat","account_source":"","confirm_timeout":0}`), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "hardhat", cfg.DefaultNetwork)
	assert.Equal(t, config.AccountSourceNode, cfg.AccountSource)
	assert.Equal(t, 120, cfg.ConfirmTimeout)
	assert.NotNil(t, cfg.CustomRPCs)
}

func TestLoadCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSetAccountSource(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.SetAccountSource(" Wallet "))
	assert.Equal(t, config.AccountSourceWallet, cfg.AccountSource)

	assert.Error(t, cfg.SetAccountSource("metamask"))
	assert.Equal(t, config.AccountSourceWallet, cfg.AccountSource, "unchanged on error")
}

func TestSetConfirmTimeoutRejectsNonPositive(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, cfg.SetConfirmTimeout(0))
	assert.Error(t, cfg.SetConfirmTimeout(-5))
	assert.Equal(t, 120, cfg.ConfirmTimeout)
}

func TestAddAndRemoveCustomRPC(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.AddRPC("sepolia", "https://rpc1.sepolia"))
	require.NoError(t, cfg.AddRPC("sepolia", "https://rpc2.sepolia"))
	assert.Error(t, cfg.AddRPC("sepolia", "https://rpc1.sepolia"), "duplicate")

	require.NoError(t, cfg.RemoveRPC("sepolia", "https://rpc1.sepolia"))
	assert.Equal(t, []string{"https://rpc2.sepolia"}, cfg.GetRPCs("sepolia"))

	require.NoError(t, cfg.RemoveRPC("sepolia", "https://rpc2.sepolia"))
	assert.Empty(t, cfg.GetRPCs("sepolia"))
	_, ok := cfg.CustomRPCs["sepolia"]
	assert.False(t, ok)

	assert.Error(t, cfg.RemoveRPC("sepolia", "https://nonexistent.rpc"))
}

func TestFilePaths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
	assert.Equal(t, filepath.Join(dir, "deployments.json"), cfg.DeploymentsPath())
	assert.Equal(t, filepath.Join(dir, "keyring"), cfg.KeyringDir())
}

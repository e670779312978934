package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/fundraiser/test/fixtures"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary before all E2E tests.
	tmp, err := os.MkdirTemp("", "fundraiser-e2e-test")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "fundraiser")
	// Build from the module root (two levels up from test/e2e/).
	moduleRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		panic(err)
	}
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = moduleRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func command(configDir string, args ...string) *exec.Cmd {
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"FUNDRAISER_CONFIG_DIR="+configDir,
		"FUNDRAISER_KEYRING_BACKEND=file",
		"FUNDRAISER_KEYRING_PASSWORD=e2e-password",
		"NO_COLOR=1",
	)
	return cmd
}

func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	out, err := command(configDir, args...).CombinedOutput()
	return string(out), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "fundraiser")
	assert.Contains(t, out, "1.0.0")
}

func TestHelpCommand(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--help")
	require.NoError(t, err)
	for _, want := range []string{"home", "new", "network", "wallet", "deployment", "rpc", "config", "--artifact", "--from-wallet"} {
		assert.Contains(t, out, want)
	}
}

func TestNetworkList(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "network", "list")
	require.NoError(t, err)
	for _, n := range []string{"development", "5777", "ganache", "hardhat", "31337", "sepolia"} {
		assert.Contains(t, out, n)
	}
}

func TestNetworkUse(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "network", "use", "31337")
	require.NoError(t, err)
	assert.Contains(t, out, "hardhat")

	cfgOut, err := runCLI(t, dir, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, cfgOut, `"default_network": "hardhat"`)
}

func TestNetworkUseUnknown(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "network", "use", "unknownchain99")
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"default_network": "development"`)
	assert.Contains(t, out, `"account_source": "node"`)
	assert.Contains(t, out, `"rpc_algorithm": "fastest"`)
	assert.Contains(t, out, `"confirm_timeout": 120`)
}

func TestConfigSetters(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "config", "set-account-source", "wallet")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "config", "set-confirm-timeout", "30")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "rpc", "algorithm", "set", "failover")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"account_source": "wallet"`)
	assert.Contains(t, out, `"confirm_timeout": 30`)
	assert.Contains(t, out, `"rpc_algorithm": "failover"`)

	_, err = runCLI(t, dir, "config", "set-account-source", "metamask")
	assert.Error(t, err)
	_, err = runCLI(t, dir, "config", "set-confirm-timeout", "0")
	assert.Error(t, err)
}

func TestRPCAddAndList(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "rpc", "add", "sepolia", "https://custom.rpc.url")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "rpc", "list", "sepolia")
	require.NoError(t, err)
	assert.Contains(t, out, "custom.rpc.url")
	assert.Contains(t, out, "overridden")
}

func TestDeploymentLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "deployment", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No deployments")

	_, err = runCLI(t, dir, "deployment", "set", "development", fixtures.FactoryAddress)
	require.NoError(t, err)

	out, err = runCLI(t, dir, "deployment", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "5777")
	assert.Contains(t, strings.ToLower(out), strings.ToLower(fixtures.FactoryAddress))
	assert.Contains(t, out, "local")

	out, err = runCLI(t, dir, "deployment", "show", "5777")
	require.NoError(t, err)
	assert.Contains(t, out, "0x11d752ad")
	assert.Contains(t, out, "createFundraiser(string,string,string,string,address)")
	assert.Contains(t, out, "FundraiserCreated")

	_, err = runCLI(t, dir, "deployment", "remove", "development")
	require.NoError(t, err)
	out, err = runCLI(t, dir, "deployment", "show", "development")
	require.NoError(t, err)
	assert.Contains(t, out, "not deployed")

	_, err = runCLI(t, dir, "deployment", "set", "development", "0xnothex")
	assert.Error(t, err)
}

func TestWalletLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "wallet", "add", "dev",
		"--key", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err, out)
	assert.Contains(t, out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	out, err = runCLI(t, dir, "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")

	cmd := command(dir, "wallet", "remove", "dev")
	cmd.Stdin = strings.NewReader("y\n")
	require.NoError(t, cmd.Run())

	out, err = runCLI(t, dir, "wallet", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No wallets")
}

func TestNewCreatesFundraiserOnNode(t *testing.T) {
	node := fixtures.NewGanacheNode(t, nil)
	artifact := fixtures.ArtifactPath(t, "FundraiserFactory.json")

	out, err := runCLI(t, t.TempDir(),
		"--rpc", node.URL, "--artifact", artifact,
		"new",
		"--name", "Beneficiary Name",
		"--website", "Beneficiary Website",
		"--image", "Beneficiary Image",
		"--description", "Beneficiary Description",
		"--beneficiary", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	)
	require.NoError(t, err, out)
	assert.Equal(t, 1, strings.Count(out, "Successfully created fundraiser!"))
	assert.NotContains(t, out, "Failed")
	assert.Contains(t, out, fixtures.TxHash)
	assert.Len(t, node.Calls("eth_sendTransaction"), 1)
}

func TestNewWithoutDeploymentFailsBootstrap(t *testing.T) {
	node := fixtures.NewGanacheNode(t, nil)

	out, err := runCLI(t, t.TempDir(), "--rpc", node.URL,
		"new", "--name", "x", "--beneficiary", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.Error(t, err)
	assert.Contains(t, out, "Failed to load provider, accounts, or contract.")
	assert.NotContains(t, out, "bootstrap failed", "the cause is only logged with --verbose")
	assert.Empty(t, node.Calls("eth_sendTransaction"))
}

func TestNewBootstrapCauseWithVerbose(t *testing.T) {
	node := fixtures.NewGanacheNode(t, nil)

	out, err := runCLI(t, t.TempDir(), "--verbose", "--rpc", node.URL,
		"new", "--name", "x", "--beneficiary", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.Error(t, err)
	assert.Contains(t, out, "bootstrap failed")
	assert.Contains(t, out, "5777")
}

func TestNewRejectsBadBeneficiary(t *testing.T) {
	node := fixtures.NewGanacheNode(t, nil)

	out, err := runCLI(t, t.TempDir(),
		"--rpc", node.URL, "--artifact", fixtures.ArtifactPath(t, "FundraiserFactory.json"),
		"new", "--name", "x", "--beneficiary", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, out, "Failed to create fundraiser.")
	assert.NotContains(t, out, "Successfully")
	assert.Empty(t, node.Calls("eth_sendTransaction"))
}

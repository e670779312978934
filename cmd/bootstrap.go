package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/provider"
	"github.com/Mohsinsiddi/fundraiser/internal/rpc"
	"github.com/Mohsinsiddi/fundraiser/internal/session"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
	"github.com/Mohsinsiddi/fundraiser/internal/wallet"
)

// bootstrapFailed is the single notification shown for every bootstrap
// failure. The cause goes to the logger.
const bootstrapFailed = "Failed to load provider, accounts, or contract. Run with --verbose for details."

// resolveNetwork returns the network named by --network, or the configured
// default. A bare network id (e.g. 5777) is accepted too.
func resolveNetwork() (*chain.Network, error) {
	name := networkFlag
	if name == "" {
		name = cfg.DefaultNetwork
	}
	reg := chain.NewRegistry()
	if n, err := reg.GetByName(name); err == nil {
		return n, nil
	}
	if n, err := reg.GetByNetworkID(name); err == nil {
		return n, nil
	}
	return nil, fmt.Errorf("unknown network %q, run `fundraiser network list` to see all networks", name)
}

// rpcURLs returns the endpoints to choose from: --rpc, else the configured
// custom RPCs, else the registry's.
func rpcURLs(n *chain.Network) []string {
	if rpcFlag != "" {
		return []string{rpcFlag}
	}
	if custom := cfg.GetRPCs(n.Name); len(custom) > 0 {
		return custom
	}
	return n.RPCs
}

// loadArtifact reads the factory artifact from --artifact, the configured
// artifact_path or the built-in ABI, with local deployment overrides merged
// over its networks.
func loadArtifact() (*contract.Artifact, error) {
	path := artifactFlag
	if path == "" {
		path = cfg.ArtifactPath
	}

	var (
		art *contract.Artifact
		err error
	)
	if path != "" {
		art, err = contract.LoadArtifact(path)
	} else {
		art, err = contract.BuiltinArtifact(contract.BuiltinFactory)
	}
	if err != nil {
		return nil, err
	}

	deps := contract.NewDeployments(cfg.DeploymentsPath())
	if err := deps.Load(); err != nil {
		return nil, err
	}
	return art.WithOverrides(deps.Overrides()), nil
}

// newWalletManager creates a Manager backed by the config-dir JSON store and
// the keyring.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeystore(wallet.DefaultKeystore(cfg.KeyringDir())),
	)
}

// opener selects an endpoint for n and opens the configured provider on it.
func opener(n *chain.Network) session.Opener {
	return func(ctx context.Context) (provider.Provider, error) {
		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return nil, err
		}

		selectCtx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
		url, err := rpc.Select(selectCtx, rpcURLs(n), algo)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Name, err)
		}
		rpcLog := logging.For(logger, logging.ComponentRPC)
		rpcLog.Debug().
			Str("network", n.Name).
			Str("url", url).
			Str("algorithm", string(algo)).
			Msg("endpoint selected")

		opts := provider.Options{
			URL:           url,
			AccountSource: cfg.AccountSource,
			FromWallet:    fromWalletFlag,
			Logger:        logging.For(logger, logging.ComponentProvider),
		}
		if cfg.AccountSource == config.AccountSourceWallet {
			opts.Wallets = newWalletManager()
		}
		return provider.Open(ctx, opts)
	}
}

// openSession runs provider bootstrap for the selected network. Failures
// print the generic notification to out, log the cause and return an error
// wrapping errReported.
func openSession(ctx context.Context, out io.Writer) (*session.Session, *chain.Network, error) {
	log := logging.For(logger, logging.ComponentSession)

	n, err := resolveNetwork()
	if err != nil {
		return nil, nil, err
	}

	var sess *session.Session
	art, err := loadArtifact()
	if err != nil {
		err = &session.BootstrapError{Step: session.StepArtifact, Err: err}
	} else {
		stop := startSpinner("Loading provider, accounts, and contract...")
		sess, err = session.Open(ctx, opener(n), art)
		stop()
	}
	if err != nil {
		log.Debug().Err(err).Str("network", n.Name).Msg("bootstrap failed")
		fmt.Fprintln(out, ui.Err(bootstrapFailed))
		return nil, nil, fmt.Errorf("%w: %w", errReported, err)
	}

	log.Debug().
		Str("network_id", sess.NetworkID()).
		Str("factory", sess.Deployment().Address.Hex()).
		Str("sender", sess.Sender().Hex()).
		Int("accounts", len(sess.Accounts())).
		Msg("session ready")
	return sess, n, nil
}

// interactive reports whether stdin and stdout are both terminals.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// startSpinner starts a spinner on stderr when it is a terminal. The returned
// stop func is always safe to call.
func startSpinner(msg string) func() {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}
	s := ui.NewSpinner(os.Stderr, msg)
	s.Start()
	return s.Stop
}

// lookupNetwork accepts a registry name or a network id and returns the
// network id plus a display name (empty for ids outside the registry).
func lookupNetwork(arg string) (id, name string) {
	reg := chain.NewRegistry()
	if n, err := reg.GetByName(arg); err == nil {
		return n.NetworkID, n.Name
	}
	if n, err := reg.GetByNetworkID(arg); err == nil {
		return n.NetworkID, n.Name
	}
	return strings.TrimSpace(arg), ""
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/fundraiser/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir         string
	cfg            *config.Config
	logger         = logging.Nop()
	verbose        bool
	networkFlag    string
	rpcFlag        string
	artifactFlag   string
	fromWalletFlag string
)

// errReported wraps failures that were already shown to the user, so
// Execute only sets the exit code.
var errReported = errors.New("already reported")

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "fundraiser",
	Short: "Create and browse on-chain fundraisers",
	Long: ui.Banner(Version) + `
Talks to a FundraiserFactory contract through an EVM node.

Accounts come from the node itself (Ganache, Hardhat, Anvil) or from local
keyring wallets, see: fundraiser config set-account-source.

Global flags --network, --rpc and --artifact override the configured network,
endpoint and contract artifact for a single invocation.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logger = logging.New(cmd.ErrOrStderr(), logging.Level(verbose))

		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cliLog := logging.For(logger, logging.ComponentCLI)
		cliLog.Debug().
			Str("dir", cfg.Dir()).
			Str("command", cmd.CommandPath()).
			Msg("config loaded")
		return nil
	},
}

// Execute runs the root command. Ctrl-C cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: $"+config.EnvConfigDir+" or ~/.fundraiser)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network to use (default: config default_network)")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC URL, bypasses endpoint selection")
	rootCmd.PersistentFlags().StringVar(&artifactFlag, "artifact", "", "FundraiserFactory artifact JSON (default: config artifact_path or built-in ABI)")
	rootCmd.PersistentFlags().StringVar(&fromWalletFlag, "from-wallet", "", "wallet to send from (wallet account source only)")

	rootCmd.AddCommand(
		initCmd,
		homeCmd,
		newCmd,
		networkCmd,
		walletCmd,
		deploymentCmd,
		rpcCmd,
		configCmd,
	)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.StyleTitle.Render("Current Configuration"))
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetAccountSourceCmd = &cobra.Command{
	Use:       "set-account-source <node|wallet>",
	Short:     "Choose where accounts come from",
	Long:      "node: accounts unlocked on the node, signed by eth_sendTransaction.\nwallet: local keyring wallets, signed locally and sent raw.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{config.AccountSourceNode, config.AccountSourceWallet},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SetAccountSource(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Account source set to %q", args[0])))
		return nil
	},
}

var configSetArtifactCmd = &cobra.Command{
	Use:   "set-artifact [path]",
	Short: "Set the FundraiserFactory artifact (no path = built-in ABI)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			cfg.ArtifactPath = ""
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("Using the built-in FundraiserFactory ABI"))
			return nil
		}

		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return err
		}
		art, err := contract.LoadArtifact(path)
		if err != nil {
			return err
		}
		cfg.ArtifactPath = path
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Artifact set to %s", path)))
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%s, deployed on network ids: %v", art.ContractName, art.NetworkIDs())))
		return nil
	},
}

var configSetConfirmTimeoutCmd = &cobra.Command{
	Use:   "set-confirm-timeout <seconds>",
	Short: "Set how long to wait for a transaction to be mined",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", args[0], err)
		}
		if err := cfg.SetConfirmTimeout(secs); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Confirmation timeout set to %s", cfg.ConfirmTimeoutDuration())))
		return nil
	},
}

func init() {
	configCmd.AddCommand(
		configListCmd,
		configSetAccountSourceCmd,
		configSetArtifactCmd,
		configSetConfirmTimeoutCmd,
	)
}

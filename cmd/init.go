package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long:  "Choose the default network, account source, RPC algorithm and factory artifact.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !interactive() {
			return fmt.Errorf("init needs a terminal, use `fundraiser config` and `fundraiser network use` instead")
		}
		fmt.Fprintln(out, ui.Banner(Version))

		var names []string
		for _, n := range chain.NewRegistry().All() {
			names = append(names, n.Name)
		}
		result, err := ui.RunWizard(names)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Fprintln(out, ui.Meta("Cancelled, nothing saved."))
			return nil
		}

		if result.DefaultNetwork != "" {
			cfg.DefaultNetwork = result.DefaultNetwork
		}
		if result.AccountSource != "" {
			if err := cfg.SetAccountSource(result.AccountSource); err != nil {
				return err
			}
		}
		if result.RPCAlgorithm != "" {
			cfg.RPCAlgorithm = result.RPCAlgorithm
		}
		if result.ArtifactPath != "" {
			if _, err := contract.LoadArtifact(result.ArtifactPath); err != nil {
				fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Artifact not saved: %v", err)))
			} else {
				cfg.ArtifactPath = result.ArtifactPath
			}
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintln(out, ui.Success("fundraiser configured! Run `fundraiser home` to list fundraisers."))
		if cfg.ArtifactPath == "" {
			fmt.Fprintln(out, ui.Hint("Point at your factory with: fundraiser deployment set "+cfg.DefaultNetwork+" 0xYourFactory"))
		}
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage networks",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		reg := chain.NewRegistry()
		t := ui.NewTable([]ui.Column{
			{Title: "", Width: 1},
			{Title: "Name", Width: 12},
			{Title: "Display", Width: 26},
			{Title: "Network ID", Width: 10},
			{Title: "Chain ID", Width: 10},
			{Title: "RPC", Width: 44},
		})

		for _, n := range reg.All() {
			marker := ""
			if n.Name == cfg.DefaultNetwork {
				marker = "*"
			}
			rpcs := rpcURLs(&n)
			rpcCell := ""
			if len(rpcs) > 0 {
				rpcCell = rpcs[0]
				if len(rpcs) > 1 {
					rpcCell = fmt.Sprintf("%s (+%d)", rpcs[0], len(rpcs)-1)
				}
			}
			t.AddRow(ui.Row{
				marker,
				n.Name,
				n.DisplayName,
				n.NetworkID,
				fmt.Sprintf("%d", n.ChainID),
				rpcCell,
			})
		}

		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d networks, * = default", len(reg.All()))))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use [network]",
	Short: "Set the default network",
	Long: `Set the default network and persist it to config. Without an argument an
interactive picker is shown.

Examples:
  fundraiser network use development
  fundraiser network use 31337`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			if !interactive() {
				return fmt.Errorf("network name required")
			}
			items := make([]ui.PickerItem, 0, len(reg.All()))
			for _, n := range reg.All() {
				items = append(items, ui.PickerItem{
					Label:    n.Name,
					SubLabel: fmt.Sprintf("%s · %s", n.NetworkID, n.DisplayName),
					Value:    n.Name,
					Current:  n.Name == cfg.DefaultNetwork,
				})
			}
			picked, err := ui.PickItem("Select default network", items)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		n, err := reg.GetByName(name)
		if err != nil {
			n, err = reg.GetByNetworkID(name)
		}
		if err != nil {
			return fmt.Errorf("unknown network %q, run `fundraiser network list` to see all networks", name)
		}

		cfg.DefaultNetwork = n.Name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default network set to %s (%s)", ui.ChainName(n.Name), n.NetworkID)))
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}

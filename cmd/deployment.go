package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var deploymentTxFlag string

var deploymentCmd = &cobra.Command{
	Use:   "deployment",
	Short: "Manage FundraiserFactory addresses per network",
	Long: `Inspect and override where the FundraiserFactory is deployed.

Addresses come from the artifact's networks map (--artifact or config
artifact_path). Entries set here are stored in deployments.json and take
precedence over the artifact for the same network id.`,
}

var deploymentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known deployments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		art, err := loadArtifact()
		if err != nil {
			return err
		}
		store, err := loadDeployments()
		if err != nil {
			return err
		}

		ids := art.NetworkIDs()
		if len(ids) == 0 {
			fmt.Fprintln(out, ui.Info("No deployments known for "+art.Source+"."))
			fmt.Fprintln(out, ui.Hint("Add one with: fundraiser deployment set development 0xYourFactory"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Network ID", Width: 10},
			{Title: "Network", Width: 12},
			{Title: "Address", Width: 42},
			{Title: "Source", Width: 10},
		})
		for _, id := range ids {
			d, err := art.Resolve(id)
			if err != nil {
				continue
			}
			_, name := lookupNetwork(id)
			source := "artifact"
			if _, err := store.Get(id); err == nil {
				source = "local"
			}
			t.AddRow(ui.Row{id, name, d.Address.Hex(), source})
		}
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta("Artifact: "+art.Source))
		return nil
	},
}

var deploymentSetCmd = &cobra.Command{
	Use:   "set <network> <address>",
	Short: "Store the factory address for a network",
	Long: `Store the factory address for a network, given by name or network id.

Examples:
  fundraiser deployment set development 0xABC0000000000000000000000000000000000abc
  fundraiser deployment set 5777 0xABC0000000000000000000000000000000000abc --tx 0x...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, name := lookupNetwork(args[0])
		if id == "" {
			return fmt.Errorf("network required")
		}
		if !common.IsHexAddress(args[1]) {
			return fmt.Errorf("invalid address %q", args[1])
		}
		addr := common.HexToAddress(args[1])

		store, err := loadDeployments()
		if err != nil {
			return err
		}
		store.Set(&contract.DeploymentEntry{
			NetworkID:       id,
			Network:         name,
			Address:         addr.Hex(),
			TransactionHash: deploymentTxFlag,
		})
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Factory for network %s set to %s", id, ui.Addr(addr.Hex()))))
		return nil
	},
}

var deploymentRemoveCmd = &cobra.Command{
	Use:   "remove <network>",
	Short: "Remove a stored factory address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := lookupNetwork(args[0])
		store, err := loadDeployments()
		if err != nil {
			return err
		}
		if err := store.Remove(id); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Stored factory for network %s removed.", id)))
		return nil
	},
}

var deploymentShowCmd = &cobra.Command{
	Use:   "show [network]",
	Short: "Show the factory deployment and ABI for a network",
	Long: `Show the factory address that bootstrap would bind for a network (default:
the current network) along with the ABI's functions and events. No node is
contacted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var id, name string
		if len(args) == 1 {
			id, name = lookupNetwork(args[0])
		} else {
			n, err := resolveNetwork()
			if err != nil {
				return err
			}
			id, name = n.NetworkID, n.Name
		}

		art, err := loadArtifact()
		if err != nil {
			return err
		}

		pairs := [][2]string{
			{"Contract", art.ContractName},
			{"Artifact", art.Source},
			{"Network ID", id},
		}
		if name != "" {
			pairs = append(pairs, [2]string{"Network", ui.ChainName(name)})
		}
		d, err := art.Resolve(id)
		switch {
		case err == nil:
			pairs = append(pairs, [2]string{"Address", ui.Addr(d.Address.Hex())})
			if d.TransactionHash != "" {
				pairs = append(pairs, [2]string{"Deploy tx", ui.Addr(d.TransactionHash)})
			}
		case errors.Is(err, contract.ErrUnsupportedNetwork):
			pairs = append(pairs, [2]string{"Address", ui.Warn("not deployed")})
		default:
			return err
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Deployment", pairs))

		t := ui.NewTable([]ui.Column{
			{Title: "Selector", Width: 10},
			{Title: "Function", Width: 58},
			{Title: "Kind", Width: 8},
		})
		for _, m := range contract.Methods(art.ABI) {
			kind := "write"
			if m.ReadOnly {
				kind = "view"
			}
			t.AddRow(ui.Row{fmt.Sprintf("0x%x", m.Selector), m.Sig, kind})
		}
		fmt.Fprintln(out, t.Render())

		names := make([]string, 0, len(art.ABI.Events))
		for name := range art.ABI.Events {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ev := art.ABI.Events[name]
			fmt.Fprintf(out, "%s %s\n  %s\n", ui.Meta("event"), ev.Sig, ui.Meta(ev.ID.Hex()))
		}
		return nil
	},
}

func loadDeployments() (*contract.Deployments, error) {
	store := contract.NewDeployments(cfg.DeploymentsPath())
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	deploymentSetCmd.Flags().StringVar(&deploymentTxFlag, "tx", "", "deployment transaction hash")
	deploymentCmd.AddCommand(deploymentListCmd, deploymentSetCmd, deploymentRemoveCmd, deploymentShowCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/rpc"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints",
	Long: `Manage the RPC endpoints used to reach each network.

Custom endpoints replace the built-in ones for that network. When a network
has more than one endpoint they are pinged in parallel before each command
and one is picked by the configured algorithm (fastest or failover).`,
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC URL for a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown network %q", args[0])
		}
		if err := cfg.AddRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(n.Name), args[1])))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Removed RPC for %s: %s", args[0], args[1])))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list <network>",
	Short: "List the RPCs for a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		n, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown network %q", args[0])
		}

		fmt.Fprintln(out, ui.StyleTitle.Render(fmt.Sprintf("RPCs for %s", n.DisplayName)))
		custom := cfg.GetRPCs(n.Name)
		fmt.Fprintln(out, ui.StyleHeader.Render("Built-in:"))
		for _, u := range n.RPCs {
			suffix := ""
			if len(custom) > 0 {
				suffix = " " + ui.Meta("(overridden)")
			}
			fmt.Fprintf(out, "  %s%s\n", u, suffix)
		}
		if len(custom) > 0 {
			fmt.Fprintln(out, ui.StyleHeader.Render("Custom:"))
			for _, u := range custom {
				fmt.Fprintf(out, "  %s\n", u)
			}
		}
		fmt.Fprintln(out, ui.Meta("Algorithm: "+cfg.RPCAlgorithm))
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark [network]",
	Short: "Ping every RPC for a network and show which one would be picked",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			networkFlag = args[0]
		}
		n, err := resolveNetwork()
		if err != nil {
			return err
		}
		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, ui.StyleTitle.Render(fmt.Sprintf("Benchmarking %s RPCs...", n.DisplayName)))

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()
		results := rpc.Benchmark(ctx, rpcURLs(n))

		winner, pickErr := rpc.Pick(results, algo)

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 44},
			{Title: "Latency", Width: 10},
			{Title: "Block #", Width: 12},
			{Title: "Status", Width: 10},
		})
		for i, r := range results {
			status := "healthy"
			latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
			block := fmt.Sprintf("%d", r.BlockNumber)
			if !r.Healthy() {
				status, latency, block = "down", "-", "-"
			}
			if winner != nil && winner.URL == r.URL {
				status = "selected"
				t.SelIdx = i
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Fprintln(out, t.Render())

		if pickErr != nil {
			fmt.Fprintln(out, ui.Warn(pickErr.Error()))
			return nil
		}
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("Algorithm %s picked %s", algo, winner.URL)))
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm",
	Short: "Manage the RPC selection algorithm",
}

var rpcAlgorithmSetCmd = &cobra.Command{
	Use:       "set <fastest|failover>",
	Short:     "Set the RPC selection algorithm",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(rpc.AlgorithmFastest), string(rpc.AlgorithmFailover)},
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC algorithm set to %q", algo)))
		return nil
	},
}

func init() {
	rpcAlgorithmCmd.AddCommand(rpcAlgorithmSetCmd)
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}

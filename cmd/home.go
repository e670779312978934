package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/fundraiser"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var (
	homeLimit  uint64
	homeOffset uint64
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "List fundraisers created by the factory",
	Long: `Connect to the node, load the FundraiserFactory for the current network and
list its fundraisers one page at a time.

Examples:
  fundraiser home
  fundraiser home --limit 5 --offset 10
  fundraiser home --network hardhat --rpc http://127.0.0.1:8545`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		sess, n, err := openSession(cmd.Context(), out)
		if err != nil {
			return err
		}
		defer sess.Close()

		fmt.Fprintln(out, ui.KeyValueBlock("FundraiserFactory", [][2]string{
			{"Network", ui.ChainName(n.Name) + " " + ui.Meta("("+sess.NetworkID()+")")},
			{"Factory", ui.Addr(sess.Deployment().Address.Hex())},
			{"Account", ui.Addr(sess.Sender().Hex())},
		}))

		creator := fundraiser.NewCreator(fundraiser.WithLogger(logging.For(logger, logging.ComponentFundraiser)))
		stop := startSpinner("Reading fundraisers...")
		page, err := creator.List(cmd.Context(), sess, homeLimit, homeOffset)
		stop()
		if err != nil {
			return fmt.Errorf("listing fundraisers: %w", err)
		}

		if len(page.Items) == 0 {
			if page.Total == 0 {
				fmt.Fprintln(out, ui.Info("No fundraisers yet."))
				fmt.Fprintln(out, ui.Hint("Create one with: fundraiser new"))
			} else {
				fmt.Fprintln(out, ui.Info(fmt.Sprintf("No fundraisers at offset %d (%d total).", page.Offset, page.Total)))
			}
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "#", Width: 4},
			{Title: "Name", Width: 24},
			{Title: "Website", Width: 28},
			{Title: "Beneficiary", Width: 13},
			{Title: "Donations", Width: 9},
			{Title: "Raised (ETH)", Width: 14},
			{Title: "Address", Width: 42},
		})
		for i, s := range page.Items {
			t.AddRow(ui.Row{
				fmt.Sprintf("%d", page.Offset+uint64(i)+1),
				s.Name,
				s.URL,
				ui.TruncateAddr(s.Beneficiary.Hex()),
				fmt.Sprintf("%d", s.DonationsCount),
				formatEther(s.TotalDonations),
				s.Address.Hex(),
			})
		}
		fmt.Fprintln(out, t.Render())

		end := page.Offset + uint64(len(page.Items))
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("Showing %d-%d of %d", page.Offset+1, end, page.Total)))
		if end < page.Total {
			fmt.Fprintln(out, ui.Hint(fmt.Sprintf("Next page: fundraiser home --limit %d --offset %d", page.Limit, end)))
		}
		return nil
	},
}

// formatEther renders a wei amount in ether with up to 6 decimals, trailing
// zeros trimmed.
func formatEther(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}
	eth := new(big.Rat).SetFrac(wei, big.NewInt(1e18))
	s := eth.FloatString(6)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "0" || s == "-0" {
		return "<0.000001"
	}
	return s
}

func init() {
	homeCmd.Flags().Uint64Var(&homeLimit, "limit", 10, "fundraisers per page")
	homeCmd.Flags().Uint64Var(&homeOffset, "offset", 0, "index of the first fundraiser to show")
}

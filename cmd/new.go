package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/fundraiser/internal/fundraiser"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var (
	newDraft fundraiser.Draft
	newForm  bool
)

var draftFlags = []string{"name", "website", "image", "description", "beneficiary"}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new fundraiser",
	Long: `Create a fundraiser through the FundraiserFactory.

Without field flags an interactive form is shown. With flags the values are
sent as given; empty fields are passed through unchanged. The transaction is
sent from the first authorized account and the command waits for it to be
mined (config confirm_timeout).

Examples:
  fundraiser new
  fundraiser new --name "Clean Water" --website https://water.example \
    --image https://water.example/logo.png --description "Wells for villages" \
    --beneficiary 0x70997970C51812dc3A010C7d01b50e0d17dc79C8
  fundraiser new --name "Clean Water" --form   # pre-fill the form`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		sess, n, err := openSession(cmd.Context(), out)
		if err != nil {
			return err
		}
		defer sess.Close()

		draft := newDraft
		if newForm || !anyChanged(cmd, draftFlags...) {
			if !interactive() {
				return fmt.Errorf("no terminal for the form, pass --name, --website, --image, --description and --beneficiary")
			}
			d, submitted, err := ui.RunForm(draft)
			if err != nil {
				return err
			}
			if !submitted {
				fmt.Fprintln(out, ui.Meta("Cancelled."))
				return nil
			}
			draft = d
		}

		creator := fundraiser.NewCreator(
			fundraiser.WithConfirmTimeout(cfg.ConfirmTimeoutDuration()),
			fundraiser.WithLogger(logging.For(logger, logging.ComponentFundraiser)),
		)

		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("Sending createFundraiser from %s on %s", sess.Sender().Hex(), n.Name)))
		stop := startSpinner("Waiting for confirmation...")
		receipt, err := creator.Submit(cmd.Context(), sess, draft, stopFirst{stop: stop, Notifier: ui.NewNotifier(out)})
		stop()
		if err != nil {
			return fmt.Errorf("%w: %w", errReported, err)
		}

		pairs := [][2]string{
			{"Transaction", ui.Addr(receipt.TxHash.Hex())},
			{"Block", fmt.Sprintf("%d", receipt.BlockNumber)},
			{"Gas used", fmt.Sprintf("%d", receipt.GasUsed)},
			{"From", ui.Addr(receipt.From.Hex())},
		}
		if receipt.Fundraiser != (common.Address{}) {
			pairs = append(pairs, [2]string{"Fundraiser", ui.Addr(receipt.Fundraiser.Hex())})
		}
		if link := n.TxURL(receipt.TxHash.Hex()); link != "" {
			pairs = append(pairs, [2]string{"Explorer", link})
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Fundraiser Created", pairs))
		return nil
	},
}

// stopFirst stops the spinner before a notification is printed.
type stopFirst struct {
	stop func()
	fundraiser.Notifier
}

func (s stopFirst) Success(msg string) {
	s.stop()
	s.Notifier.Success(msg)
}

func (s stopFirst) Error(msg string, err error) {
	s.stop()
	s.Notifier.Error(msg, err)
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func init() {
	newCmd.Flags().StringVar(&newDraft.Name, "name", "", "fundraiser name")
	newCmd.Flags().StringVar(&newDraft.Website, "website", "", "fundraiser website")
	newCmd.Flags().StringVar(&newDraft.ImageURL, "image", "", "fundraiser image URL")
	newCmd.Flags().StringVar(&newDraft.Description, "description", "", "fundraiser description")
	newCmd.Flags().StringVar(&newDraft.Beneficiary, "beneficiary", "", "beneficiary address (0x...)")
	newCmd.Flags().BoolVar(&newForm, "form", false, "open the form pre-filled with the given flags")
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/ui"
)

var (
	walletKeyFlag string
	walletYesFlag bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
	Long: `Manage local signing wallets. Keys are kept in the OS keychain, or in an
encrypted file under the config directory when no keychain is available.

Wallets are only used with the wallet account source:
  fundraiser config set-account-source wallet`,
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a signing wallet from a private key",
	Long: `Add a signing wallet. The private key is read from --key or, when omitted,
prompted for without echo.

Examples:
  fundraiser wallet add deployer --key 0xac09...ff80
  fundraiser wallet add deployer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		key := walletKeyFlag
		if key == "" {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("private key required: pass --key")
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.StyleWarning.Render("Private key: "))
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("reading key: %w", err)
			}
			key = strings.TrimSpace(string(raw))
		}

		w, err := newWalletManager().AddWithKey(name, key)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
		if !w.IsDefault {
			fmt.Fprintln(out, ui.Hint(fmt.Sprintf("Send from it by default with: fundraiser wallet use %s", name)))
		}
		if cfg.AccountSource != config.AccountSourceWallet {
			fmt.Fprintln(out, ui.Hint("Enable wallets with: fundraiser config set-account-source wallet"))
		}
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		wallets, err := newWalletManager().Ordered()
		if err != nil {
			return err
		}

		if len(wallets) == 0 {
			fmt.Fprintln(out, ui.Info("No wallets configured yet."))
			fmt.Fprintln(out, ui.Hint("Add one with: fundraiser wallet add myWallet --key <private-key>"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 42},
			{Title: "Default", Width: 7},
			{Title: "Added", Width: 20},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address, def, w.CreatedAt})
		}
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d wallet(s), account source: %s", len(wallets), cfg.AccountSource)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()
		if !walletYesFlag && !ui.ConfirmDanger(cmd.InOrStdin(), out, fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the wallet transactions are sent from",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			if !interactive() {
				return fmt.Errorf("wallet name required")
			}
			wallets, err := mgr.List()
			if err != nil {
				return err
			}
			items := make([]ui.PickerItem, 0, len(wallets))
			for _, w := range wallets {
				items = append(items, ui.PickerItem{Label: w.Name, SubLabel: w.Address, Value: w.Name, Current: w.IsDefault})
			}
			picked, err := ui.PickItem("Select default wallet", items)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "hex private key (prompted when omitted)")
	walletRemoveCmd.Flags().BoolVarP(&walletYesFlag, "yes", "y", false, "skip confirmation")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}

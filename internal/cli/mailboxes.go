package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/config"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/datasource/imap"
)

// mailboxesCmd represents the mailboxes command
var mailboxesCmd = &cobra.Command{
	Use:   "mailboxes",
	Short: "List the account's mailboxes",
	Long: `Mailboxes connects with the configured credentials and prints every
mailbox name, for picking a MAILBOX value.`,
	RunE: listMailboxes,
}

func init() {
	rootCmd.AddCommand(mailboxesCmd)
}

func listMailboxes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := imap.Connect(cfg.Addr(), cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	defer client.Logout()

	names, err := client.Mailboxes()
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}

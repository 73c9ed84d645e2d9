// Package cli wires the command-line surface of the digest filter.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GitCommit is stamped at link time.
var GitCommit string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arxivfilter",
	Short: "Filter arXiv digest emails by keyword",
	Long: `arxivfilter fetches unread arXiv digest emails over IMAP, extracts the
paper listings from each digest, keeps the ones whose title or abstract
matches your keywords, writes them to a text report, and marks the
processed emails as read.

Configuration comes from environment variables or a .env file in the
working directory (GMAIL_ADDRESS, GMAIL_APP_PASSWORD, ARXIV_SENDER, ...).`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if GitCommit == "" {
			fmt.Println("arxivfilter (dev)")
			return
		}
		fmt.Printf("arxivfilter %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

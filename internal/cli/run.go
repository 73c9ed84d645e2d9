package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/config"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/filter"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
)

var (
	keywordsFile string
	outputFile   string
	mailbox      string
	dryRun       bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch unread digests, filter them and write the report",
	Long: `Run performs one sweep: every unread digest email from the configured
sender is parsed, its listings are matched against the keyword file,
matches are written to the output file, and handled emails are marked
as read.

Example:
  arxivfilter run
  arxivfilter run --keywords ml-keywords.txt --output ml-papers.txt
  arxivfilter run --dry-run`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&keywordsFile, "keywords", "", "keywords file, one term per line (overrides KEYWORDS_FILE)")
	runCmd.Flags().StringVar(&outputFile, "output", "", "report file path (overrides OUTPUT_FILE)")
	runCmd.Flags().StringVar(&mailbox, "mailbox", "", "mailbox to sweep (overrides MAILBOX)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not mark any email as read")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if keywordsFile != "" {
		cfg.KeywordsFile = keywordsFile
	}
	if outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if mailbox != "" {
		cfg.Mailbox = mailbox
	}
	if dryRun {
		cfg.DryRun = true
	}

	log := logger.Init(cfg.LogLevel)
	defer logger.Close()

	log.Infow("starting sweep",
		"mailbox", cfg.Mailbox,
		"sender", cfg.Sender,
		"dryRun", cfg.DryRun)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return filter.Run(ctx, cfg)
}

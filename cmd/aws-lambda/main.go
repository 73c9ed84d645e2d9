package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/config"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/filter"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
)

var GitCommit string

// HandleRequest runs one digest sweep. Configuration comes from the Lambda
// environment; the function is meant to be triggered on a schedule.
func HandleRequest(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(cfg.LogLevel)
	defer logger.Close()

	log.Infow("starting scheduled sweep",
		"commit", GitCommit,
		"mailbox", cfg.Mailbox,
		"sender", cfg.Sender)

	return filter.Run(ctx, cfg)
}

func main() {
	lambda.Start(HandleRequest)
}

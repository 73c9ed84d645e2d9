// Package filter orchestrates one digest sweep: fetch unread digest emails,
// extract their paper listings, match them against the keyword set, persist
// the report, and mark handled emails read.
package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/arxiv"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/config"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/datasource/imap"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/keyword"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/report"
)

// Message is one unread digest email, exposing only what a sweep needs: the
// decoded body and a way to flag the message handled on the server.
type Message interface {
	Body() string
	Subject() string
	Date() time.Time
	MarkRead() error
}

// Inbox supplies the unread digest messages of one account.
type Inbox interface {
	UnreadDigests(mailbox, sender, subjectFilter string) ([]Message, error)
}

// Service runs digest sweeps against an inbox with an immutable keyword set.
type Service struct {
	Inbox         Inbox
	Keywords      keyword.Set
	Mailbox       string
	Sender        string
	SubjectFilter string

	// DryRun leaves every message unread.
	DryRun bool
}

// Result summarizes one sweep.
type Result struct {
	Matches   []keyword.Match
	Processed int // digests parsed, filtered and flagged read
	Skipped   int // messages left unread because no body could be extracted
	Dropped   int // malformed listing blocks across all digests
}

// Sweep processes every unread digest once. Parse problems are contained per
// message and per listing: one bad digest never aborts the rest, and a
// message is only marked read after its body was processed.
func (s *Service) Sweep(ctx context.Context) (Result, error) {
	log := logger.GetLogger()

	if s.Keywords.Empty() {
		return Result{}, keyword.ErrEmptySet
	}

	msgs, err := s.Inbox.UnreadDigests(s.Mailbox, s.Sender, s.SubjectFilter)
	if err != nil {
		return Result{}, fmt.Errorf("fetching unread digests: %w", err)
	}

	var res Result
	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		log.Infow("processing digest",
			"subject", msg.Subject(),
			"date", msg.Date())

		body := msg.Body()
		if body == "" {
			log.Warnw("could not extract email body, leaving unread",
				"subject", msg.Subject())
			res.Skipped++
			continue
		}

		digest := arxiv.ParseDigest(body)
		if digest.Empty() {
			log.Warnw("no listings found in digest",
				"subject", msg.Subject())
		}
		res.Dropped += digest.Dropped

		matches, err := keyword.Filter(digest.Listings, s.Keywords)
		if err != nil {
			return res, err
		}
		res.Matches = append(res.Matches, matches...)
		res.Processed++

		if s.DryRun {
			continue
		}
		if err := msg.MarkRead(); err != nil {
			log.Warnw("could not mark email as read",
				"subject", msg.Subject(),
				"error", err)
		}
	}

	return res, nil
}

// Run executes one full sweep with cfg: load keywords, connect, sweep, write
// the report. Configuration problems abort before any mail is touched so no
// message gets marked read by a misconfigured run.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.GetLogger()
	defer log.Sync()

	terms, err := config.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return err
	}

	set, err := keyword.NewSet(terms)
	if err != nil {
		return fmt.Errorf("loading keywords from %s: %w", cfg.KeywordsFile, err)
	}

	log.Infow("keywords loaded",
		"file", cfg.KeywordsFile,
		"count", set.Len())

	client, err := imap.Connect(cfg.Addr(), cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	defer client.Logout()

	svc := &Service{
		Inbox:         imapInbox{client},
		Keywords:      set,
		Mailbox:       cfg.Mailbox,
		Sender:        cfg.Sender,
		SubjectFilter: cfg.SubjectFilter,
		DryRun:        cfg.DryRun,
	}

	res, err := svc.Sweep(ctx)
	if err != nil {
		return err
	}

	if err := report.WriteFile(cfg.OutputFile, res.Matches, time.Now()); err != nil {
		return err
	}

	log.Infow("sweep finished",
		"processed", res.Processed,
		"skipped", res.Skipped,
		"droppedListings", res.Dropped,
		"matches", len(res.Matches),
		"output", cfg.OutputFile)

	return nil
}

// imapInbox adapts the IMAP client to the Inbox interface.
type imapInbox struct {
	client *imap.Client
}

func (i imapInbox) UnreadDigests(mailbox, sender, subjectFilter string) ([]Message, error) {
	emails, err := i.client.UnreadDigests(mailbox, sender, subjectFilter)
	if err != nil {
		return nil, err
	}

	msgs := make([]Message, len(emails))
	for j, e := range emails {
		msgs[j] = e
	}

	return msgs, nil
}

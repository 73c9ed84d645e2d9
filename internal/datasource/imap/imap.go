// Package imap is the mail-side collaborator: it fetches unread digest
// emails for the configured account and flags handled ones as read.
package imap

import (
	"errors"
	"fmt"
	"io"

	_imap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
)

// Client is an authenticated IMAP session.
type Client struct {
	conn *client.Client
}

// Connect dials addr over TLS and logs in.
func Connect(addr, username, password string) (*Client, error) {
	conn, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}

	if err := conn.Login(username, password); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}

	return &Client{conn: conn}, nil
}

// UnreadDigests selects mailbox read-write and returns every unseen message
// from sender, in mailbox order, with plain-text bodies decoded. A non-empty
// subjectFilter narrows the search to subjects containing it. Messages whose
// body cannot be extracted are returned with an empty body so the caller can
// decide to leave them unread.
func (c *Client) UnreadDigests(mailbox, sender, subjectFilter string) ([]*Email, error) {
	log := logger.GetLogger()

	if _, err := c.conn.Select(mailbox, false); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", mailbox, err)
	}

	criteria := _imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{_imap.SeenFlag}
	criteria.Header.Add("From", sender)
	if subjectFilter != "" {
		criteria.Header.Add("Subject", subjectFilter)
	}

	uids, err := c.conn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", mailbox, err)
	}

	log.Infow("unread digests found",
		"mailbox", mailbox,
		"count", len(uids))

	if len(uids) == 0 {
		return nil, nil
	}

	seqset := new(_imap.SeqSet)
	seqset.AddNum(uids...)

	var section _imap.BodySectionName
	items := []_imap.FetchItem{section.FetchItem(), _imap.FetchEnvelope, _imap.FetchUid}

	messages := make(chan *_imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.conn.UidFetch(seqset, items, messages)
	}()

	var emails []*Email
	for msg := range messages {
		email := &Email{
			uid:  msg.Uid,
			conn: c.conn,
		}
		if msg.Envelope != nil {
			email.subject = msg.Envelope.Subject
			email.date = msg.Envelope.Date
		}

		body, err := textBody(msg, &section)
		if err != nil {
			log.Warnw("could not extract message body",
				"uid", msg.Uid,
				"error", err)
		} else {
			email.body = body
		}

		emails = append(emails, email)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}

	return emails, nil
}

// Mailboxes lists the account's mailbox names, for picking a MAILBOX value.
func (c *Client) Mailboxes() ([]string, error) {
	infos := make(chan *_imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.conn.List("", "*", infos)
	}()

	var mailboxes []string
	for info := range infos {
		mailboxes = append(mailboxes, info.Name)
	}

	if err := <-done; err != nil {
		return nil, err
	}

	return mailboxes, nil
}

// Logout terminates the session.
func (c *Client) Logout() error {
	return c.conn.Logout()
}

// textBody decodes the first inline text/plain part of the message,
// ignoring attachments. Digests are plain text or multipart with a
// text/plain alternative; another inline part is kept only as a fallback.
func textBody(msg *_imap.Message, section *_imap.BodySectionName) (string, error) {
	r := msg.GetBody(section)
	if r == nil {
		return "", errors.New("server returned no body section")
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", fmt.Errorf("reading message: %w", err)
	}

	var fallback string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading message part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		b, err := io.ReadAll(p.Body)
		if err != nil {
			return "", fmt.Errorf("decoding message part: %w", err)
		}

		ctype, _, _ := h.ContentType()
		if ctype == "text/plain" {
			return string(b), nil
		}
		if fallback == "" {
			fallback = string(b)
		}
	}

	if fallback == "" {
		return "", errors.New("no text part found in message")
	}

	return fallback, nil
}

package imap

import (
	"time"

	_imap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Email is one fetched message, bound to the session that fetched it so it
// can be flagged on the server.
type Email struct {
	uid     uint32
	subject string
	date    time.Time
	body    string
	conn    *client.Client
}

func (e *Email) UID() uint32 {
	return e.uid
}

func (e *Email) Subject() string {
	return e.subject
}

func (e *Email) Date() time.Time {
	return e.date
}

// Body returns the decoded plain-text body, empty when extraction failed.
func (e *Email) Body() string {
	return e.body
}

// MarkRead flags the message \Seen on the server so the next run skips it.
func (e *Email) MarkRead() error {
	seqset := new(_imap.SeqSet)
	seqset.AddNum(e.uid)

	item := _imap.FormatFlagsOp(_imap.AddFlags, true)
	flags := []interface{}{_imap.SeenFlag}

	return e.conn.UidStore(seqset, item, flags, nil)
}

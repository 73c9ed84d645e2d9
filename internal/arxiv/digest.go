// Package arxiv parses the plain-text paper digests that arxiv.org mails to
// mailing-list subscribers.
package arxiv

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
)

// Listing is one paper record extracted from a digest body. Immutable once
// extracted: a Listing always carries a non-empty Title and an arXiv
// abstract-page URL.
type Listing struct {
	Title    string
	Abstract string
	Link     string
}

// Digest holds the result of parsing one email body. Dropped counts blocks
// that were recognized as entries but could not be parsed into a Listing.
type Digest struct {
	Listings []Listing
	Dropped  int
}

// Empty reports that the body contained no recognizable listing section.
func (d Digest) Empty() bool {
	return len(d.Listings) == 0 && d.Dropped == 0
}

var (
	errMissingTitle = errors.New("entry has no title")
	errMissingLink  = errors.New("entry has no arXiv link or identifier")
)

// Digest bodies wrap every entry between 78-column dash rows; the catalog
// section ends at a %%-- row. The link token mirrors the digest footer of
// each entry: \\ ( https://arxiv.org/abs/<id> ,  <n>kb).
var (
	linkPattern  = regexp.MustCompile(`\\ \( (https?://arxiv\.org/abs/\S+) ,\s*\d+kb\)`)
	labelPattern = regexp.MustCompile(`(?i)^(arXiv|Date|Title|Authors|Categories|Comments|Report-no|Journal-ref|DOI|ACM-class|MSC-class):`)
)

const (
	entryMarker       = `\\`
	terminatorPrefix  = "%%--"
	minSeparatorWidth = 60
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineSeparator
	lineTerminator
	lineEntryMarker
	lineLink
	lineLabel
	lineText
)

func classify(line string) lineKind {
	switch {
	case line == "":
		return lineBlank
	case isSeparator(line):
		return lineSeparator
	case strings.HasPrefix(line, terminatorPrefix):
		return lineTerminator
	case line == entryMarker:
		return lineEntryMarker
	case linkPattern.MatchString(line):
		return lineLink
	case labelPattern.MatchString(line):
		return lineLabel
	default:
		return lineText
	}
}

func isSeparator(line string) bool {
	if len(line) < minSeparatorWidth {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

// ParseDigest extracts every paper listing from the plain-text body of one
// digest email, in order of appearance. Parsing is a pure function of the
// body: re-running it yields an identical result. Malformed entries are
// dropped with a warning and never abort the surrounding digest.
func ParseDigest(body string) Digest {
	log := logger.GetLogger()

	section, ok := listingSection(body)
	if !ok {
		return Digest{}
	}

	var digest Digest
	for _, block := range splitBlocks(section) {
		if !strings.HasPrefix(strings.TrimSpace(block), entryMarker) {
			continue
		}

		listing, err := parseBlock(block)
		if err != nil {
			digest.Dropped++
			log.Warnw("dropping malformed digest entry", "error", err)
			continue
		}

		digest.Listings = append(digest.Listings, listing)
	}

	return digest
}

// listingSection bounds the catalog portion of the body: it starts after the
// first separator row and ends at the terminator row (or end of body).
func listingSection(body string) (string, bool) {
	lines := strings.Split(body, "\n")

	start := -1
	end := len(lines)
	for i, line := range lines {
		switch classify(strings.TrimSpace(line)) {
		case lineSeparator:
			if start < 0 {
				start = i + 1
			}
		case lineTerminator:
			if start >= 0 {
				end = i
				return strings.Join(lines[start:end], "\n"), true
			}
		}
	}

	if start < 0 {
		return "", false
	}

	return strings.Join(lines[start:end], "\n"), true
}

func splitBlocks(section string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(section, "\n") {
		if classify(strings.TrimSpace(line)) == lineSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

type blockState int

const (
	stateHeaders blockState = iota
	stateAbstract
	stateDone
)

// parseBlock runs the per-entry state machine: an opening entry marker,
// labeled header fields (soft line wraps rejoined onto the field last seen),
// a second marker opening the abstract, and a link token closing the entry.
// The link falls back to the arXiv identifier header when the token is
// absent.
func parseBlock(block string) (Listing, error) {
	var (
		state    = stateHeaders
		fields   = map[string]string{}
		label    string
		abstract []string
		link     string
		opened   bool
	)

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)

		switch classify(line) {
		case lineBlank:
			label = ""

		case lineEntryMarker:
			if !opened {
				opened = true
				continue
			}
			if state == stateHeaders {
				state = stateAbstract
			}

		case lineLink:
			link = linkPattern.FindStringSubmatch(line)[1]
			state = stateDone

		case lineLabel:
			if state != stateHeaders {
				continue
			}
			name, value, _ := strings.Cut(line, ":")
			label = strings.ToLower(name)
			fields[label] = strings.TrimSpace(value)

		case lineText:
			switch state {
			case stateHeaders:
				if label != "" {
					fields[label] = strings.TrimSpace(fields[label] + " " + line)
				}
			case stateAbstract:
				abstract = append(abstract, line)
			}
		}
	}

	title := fields["title"]
	if title == "" {
		return Listing{}, errMissingTitle
	}

	if link == "" {
		id := fields["arxiv"]
		if id == "" || strings.ContainsAny(id, " \t") {
			return Listing{}, errMissingLink
		}
		link = "https://arxiv.org/abs/" + id
	}

	return Listing{
		Title:    title,
		Abstract: strings.Join(abstract, " "),
		Link:     link,
	}, nil
}

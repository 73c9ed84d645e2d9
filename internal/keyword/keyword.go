// Package keyword filters paper listings against a user-supplied term set.
package keyword

import (
	"errors"
	"strings"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/arxiv"
	"github.com/Philanthropists/arxiv-email-autofilter/internal/logger"
)

// ErrEmptySet reports a keyword source that yielded no usable terms. It is a
// configuration error: the caller must halt before any mail is touched.
var ErrEmptySet = errors.New("keyword set is empty")

// Set is an ordered, lowercased collection of filter terms, immutable for
// the duration of a run.
type Set struct {
	terms []string
}

// NewSet normalizes terms to lowercase, preserving order and skipping
// blanks.
func NewSet(terms []string) (Set, error) {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		normalized = append(normalized, term)
	}

	if len(normalized) == 0 {
		return Set{}, ErrEmptySet
	}

	return Set{terms: normalized}, nil
}

func (s Set) Len() int {
	return len(s.terms)
}

func (s Set) Empty() bool {
	return len(s.terms) == 0
}

// Terms returns the normalized terms in load order.
func (s Set) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Match reports whether any term occurs, case-insensitively, as a substring
// of the listing's title or abstract. Terms are checked in load order and
// the first hit wins; the matched term is returned for diagnostics.
func (s Set) Match(listing arxiv.Listing) (string, bool) {
	haystack := strings.ToLower(listing.Title + " " + listing.Abstract)
	for _, term := range s.terms {
		if strings.Contains(haystack, term) {
			return term, true
		}
	}

	return "", false
}

// Match is the record kept for a listing that satisfied the filter.
type Match struct {
	Title string
	Link  string
}

// Filter returns a Match for every listing that satisfies the set,
// preserving input order. An empty set is rejected outright rather than
// matching everything or nothing.
func Filter(listings []arxiv.Listing, set Set) ([]Match, error) {
	if set.Empty() {
		return nil, ErrEmptySet
	}

	log := logger.GetLogger()

	var matches []Match
	for _, listing := range listings {
		term, ok := set.Match(listing)
		if !ok {
			continue
		}

		log.Infow("keyword hit",
			"keyword", term,
			"title", listing.Title)
		matches = append(matches, Match{Title: listing.Title, Link: listing.Link})
	}

	return matches, nil
}

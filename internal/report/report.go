// Package report renders keyword matches into the run's output file.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Philanthropists/arxiv-email-autofilter/internal/keyword"
)

const noMatches = "No matching papers found in the processed emails.\n"

// Write renders matches as a commented header carrying the processing
// timestamp followed by one numbered stanza per match. A run with no matches
// produces a single explanatory line instead.
func Write(w io.Writer, matches []keyword.Match, processedAt time.Time) error {
	if len(matches) == 0 {
		_, err := io.WriteString(w, noMatches)
		return err
	}

	_, err := fmt.Fprintf(w, "# arXiv Papers Matching Your Keywords\n# Processed on: %s\n\n",
		processedAt.Format(time.RFC1123Z))
	if err != nil {
		return err
	}

	for i, match := range matches {
		_, err := fmt.Fprintf(w, "Match %d:\n  Title: %s\n  Link: %s\n\n",
			i+1, match.Title, match.Link)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteFile truncates path and writes the run's matches there.
func WriteFile(path string, matches []keyword.Match, processedAt time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := Write(f, matches, processedAt); err != nil {
		f.Close()
		return fmt.Errorf("writing output file %s: %w", path, err)
	}

	return f.Close()
}

package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadKeywords reads filter terms from path, one per line, skipping blank
// lines. A missing file is an error: a run without keywords must not touch
// the mailbox.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keywords file %s: %w", path, err)
	}
	defer f.Close()

	var keywords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keywords = append(keywords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading keywords file %s: %w", path, err)
	}

	return keywords, nil
}

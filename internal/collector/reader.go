// Package collector reads community submission dumps for import. Dumps
// are newline-delimited JSON, one submission per line.
package collector

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/launchpick/launchpick/internal/model"
)

// maxLineBytes bounds a single NDJSON line. Community posts run long but
// not megabytes long; anything past this is a malformed dump.
const maxLineBytes = 1 << 20

// submissionLine is the wire shape of one dump line.
type submissionLine struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	BodyText  string    `json:"body_text"`
	Community string    `json:"community"`
	Upvotes   int       `json:"upvotes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadSubmissions parses an NDJSON dump. Blank lines are skipped; a
// malformed line fails the read with its line number so the dump can be
// fixed rather than silently truncated.
func ReadSubmissions(r io.Reader) ([]model.Submission, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var submissions []model.Submission
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw submissionLine
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}
		if err := validateLine(raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		submissions = append(submissions, model.Submission{
			ID:        raw.ID,
			Title:     raw.Title,
			BodyText:  raw.BodyText,
			Community: raw.Community,
			Upvotes:   raw.Upvotes,
			Comments:  raw.Comments,
			CreatedAt: raw.CreatedAt,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	return submissions, nil
}

func validateLine(raw submissionLine) error {
	if strings.TrimSpace(raw.ID) == "" {
		return fmt.Errorf("missing submission id")
	}
	if strings.TrimSpace(raw.Title) == "" {
		return fmt.Errorf("missing title for submission %s", raw.ID)
	}
	if strings.TrimSpace(raw.Community) == "" {
		return fmt.Errorf("missing community for submission %s", raw.ID)
	}
	if raw.Upvotes < 0 || raw.Comments < 0 {
		return fmt.Errorf("negative engagement counts for submission %s", raw.ID)
	}
	return nil
}

// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Submission represents a single user post collected from the source platform.
// Submissions are immutable inputs; the pipeline never mutates them.
type Submission struct {
	CreatedAt time.Time
	ID        string
	Title     string
	BodyText  string
	Community string // Source sub-forum the post was collected from
	Upvotes   int
	Comments  int
}

// CandidateID derives the stable natural key for the candidate extracted
// from this submission. The same submission always maps to the same key,
// which is what makes re-runs idempotent at the storage layer.
func (s *Submission) CandidateID() string {
	data := fmt.Sprintf("%s:%s", s.Community, s.ID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Text returns the combined title and body for signal extraction.
func (s *Submission) Text() string {
	if s.BodyText == "" {
		return s.Title
	}
	return s.Title + "\n" + s.BodyText
}

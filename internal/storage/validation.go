package storage

import (
	"context"
	"fmt"

	"github.com/launchpick/launchpick/internal/model"
)

// validateContext ensures a usable context was provided.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	return ctx.Err()
}

// validateString ensures a required string field is non-empty.
func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// validateSubmissions checks a batch before persistence.
func validateSubmissions(submissions []model.Submission) error {
	if len(submissions) == 0 {
		return fmt.Errorf("no submissions to save")
	}
	for i := range submissions {
		if submissions[i].ID == "" {
			return fmt.Errorf("submission at index %d has no id", i)
		}
		if submissions[i].Community == "" {
			return fmt.Errorf("submission %s has no community", submissions[i].ID)
		}
	}
	return nil
}

// validateRecord checks an opportunity record before persistence.
func validateRecord(record *model.OpportunityRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if record.Candidate.CandidateID == "" {
		return fmt.Errorf("record has no candidate id")
	}
	if record.Candidate.SubmissionID == "" {
		return fmt.Errorf("record %s has no submission id", record.Candidate.CandidateID)
	}
	if record.Status == "" {
		return fmt.Errorf("record %s has no status", record.Candidate.CandidateID)
	}
	return nil
}

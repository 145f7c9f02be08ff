package model

// Status tracks an opportunity through its lifecycle.
type Status string

// Opportunity status constants.
const (
	StatusIdentified   Status = "IDENTIFIED"
	StatusDisqualified Status = "DISQUALIFIED"
	StatusEnriched     Status = "ENRICHED"
)

// Candidate is a proposed product idea derived from one submission.
// It may be re-derived (and overwritten) when the pipeline runs again
// over the same submission.
type Candidate struct {
	CandidateID      string
	SubmissionID     string
	AppName          string
	ProblemStatement string
	TargetSegment    string
	CoreFunctions    []string
}

// Profile is the structured product profile returned by the enrichment
// collaborator for an admitted candidate.
type Profile struct {
	ValueProposition  string
	TargetUser        string
	MonetizationModel string
	CoreFunctions     []string // Possibly revised by the enricher
}

package engine

import (
	"github.com/launchpick/launchpick/internal/config"
	"github.com/launchpick/launchpick/internal/model"
)

// AdmissionGate is the cost-control checkpoint in front of enrichment.
// It decides purely from stored scores, so it can be re-evaluated on any
// later run without re-running extraction.
type AdmissionGate struct {
	cfg config.Admission
}

// NewAdmissionGate creates a gate bound to the given thresholds.
func NewAdmissionGate(cfg config.Admission) AdmissionGate {
	return AdmissionGate{cfg: cfg}
}

// Admit reports whether the record crosses the enrichment threshold.
// Disqualified records never pass, no matter their total score. In hybrid
// mode the trust score must clear its own threshold as well. Admission is
// monotonic in total score: at a fixed threshold, raising the total never
// flips an admitted record to rejected.
func (g AdmissionGate) Admit(record *model.OpportunityRecord) bool {
	if record.Status == model.StatusDisqualified {
		return false
	}
	if record.TotalScore < g.cfg.ScoreThreshold {
		return false
	}
	if g.cfg.RequireTrust && record.Trust.TrustScore < g.cfg.TrustThreshold {
		return false
	}
	return true
}

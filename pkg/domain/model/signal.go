package model

import "github.com/aegis-sec/aegis/pkg/domain/types"

// RiskSignal is a typed indicator emitted by matching a normalized answer
// against the static rule table. Signals are derived data and are
// regenerated on every scoring run, never stored independently.
type RiskSignal struct {
	Category         types.SignalCategory
	Text             string
	SourceQuestionID types.QuestionID
	SourceAnswer     string
	Severity         types.SignalSeverity
	AffectedThreats  []types.ThreatID
}

// Affects reports whether the signal points at the given threat
func (s *RiskSignal) Affects(id types.ThreatID) bool {
	for _, t := range s.AffectedThreats {
		if t == id {
			return true
		}
	}
	return false
}

// SignalsForThreat filters signals down to those affecting one threat,
// preserving emission order
func SignalsForThreat(signals []*RiskSignal, id types.ThreatID) []*RiskSignal {
	var out []*RiskSignal
	for _, s := range signals {
		if s.Affects(id) {
			out = append(out, s)
		}
	}
	return out
}

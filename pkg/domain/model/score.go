package model

import (
	"time"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// ThreatScore is the scored result for one catalog threat within one
// assessment run. Scores are always replaced atomically per threat, never
// partially updated.
type ThreatScore struct {
	ThreatID   types.ThreatID `json:"threat_id" firestore:"threat_id"`
	ThreatName string         `json:"threat_name" firestore:"threat_name"`

	// Factors. Exposure is 0 for three-factor catalogs and 1-5 otherwise.
	ThreatLikelihood int `json:"threat_likelihood" firestore:"threat_likelihood"`
	Vulnerability    int `json:"vulnerability" firestore:"vulnerability"`
	Impact           int `json:"impact" firestore:"impact"`
	Exposure         int `json:"exposure,omitempty" firestore:"exposure"`

	RawScore        int `json:"raw_score" firestore:"raw_score"`
	NormalizedScore int `json:"normalized_score" firestore:"normalized_score"`

	Classification types.Classification `json:"classification" firestore:"classification"`
	Confidence     types.Confidence     `json:"confidence" firestore:"confidence"`

	Evidence         []string                 `json:"evidence,omitempty" firestore:"evidence"`
	ControlGaps      []string                 `json:"control_gaps,omitempty" firestore:"control_gaps"`
	PriorityControls []*ControlRecommendation `json:"priority_controls,omitempty" firestore:"priority_controls"`

	// Adjustments counts how many completion-service numeric fields had to
	// be clamped into range before use. Zero for algorithmic scores.
	Adjustments int `json:"adjustments,omitempty" firestore:"adjustments"`
}

// FourFactor reports whether this score carries an exposure factor
func (s *ThreatScore) FourFactor() bool {
	return s.Exposure > 0
}

// ControlRecommendation is one mitigating control recommended for one or
// more threats
type ControlRecommendation struct {
	Name            string               `json:"name" firestore:"name"`
	Category        string               `json:"category" firestore:"category"`
	Urgency         types.ControlUrgency `json:"urgency" firestore:"urgency"`
	AddressesThreat []types.ThreatID     `json:"addresses_threats" firestore:"addresses_threats"`
	EstimatedCost   string               `json:"estimated_cost,omitempty" firestore:"estimated_cost"`
}

// AssessmentRun bundles the full output of one orchestrated scoring run
type AssessmentRun struct {
	RunID        string               `json:"run_id" firestore:"run_id"`
	AssessmentID int64                `json:"assessment_id" firestore:"assessment_id"`
	ThreatScores []*ThreatScore       `json:"threat_scores" firestore:"threat_scores"`
	Mode         types.ScoringMode    `json:"mode" firestore:"mode"`
	Confidence   types.Confidence     `json:"confidence" firestore:"confidence"`
	ElapsedMs    int64                `json:"elapsed_ms" firestore:"elapsed_ms"`
	Gaps         []string             `json:"gaps,omitempty" firestore:"gaps"`
	CreatedAt    time.Time            `json:"created_at" firestore:"created_at"`
}

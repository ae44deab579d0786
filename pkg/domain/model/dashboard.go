package model

import (
	"time"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// AssessmentDashboard is the aggregate roll-up over all threat scores of one
// assessment. It is derived data recomputed on demand; the threat scores
// remain the system of record.
type AssessmentDashboard struct {
	OverallScore          int                  `json:"overall_score"`
	OverallClassification types.Classification `json:"overall_classification"`

	ThreatCount   int `json:"threat_count"`
	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`

	Mode       types.ScoringMode `json:"mode"`
	Confidence types.Confidence  `json:"confidence"`

	// PriorityControls is deduplicated across threats and sorted by urgency,
	// then by number of threats addressed, ties broken by first-seen order.
	PriorityControls []*ControlRecommendation `json:"priority_controls"`

	// CompletionGaps lists required questions still unanswered.
	CompletionGaps []types.QuestionID `json:"completion_gaps,omitempty"`

	// Gaps carries explicit notations for threats that could not be scored.
	Gaps []string `json:"gaps,omitempty"`

	NextSteps []string `json:"next_steps"`

	GeneratedAt time.Time `json:"generated_at"`
}

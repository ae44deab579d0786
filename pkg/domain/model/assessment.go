package model

import (
	"time"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// Assessment is one physical-security risk assessment: the subject under
// review, the template governing its catalog, and the recorded interview
// answers.
type Assessment struct {
	ID          int64            `json:"id" firestore:"id"`
	Title       string           `json:"title" firestore:"title"`
	SubjectName string           `json:"subject_name,omitempty" firestore:"subject_name"`
	TemplateID  types.TemplateID `json:"template_id" firestore:"template_id"`

	Answers AnswerSet `json:"answers,omitempty" firestore:"answers"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// Control is one entry of the control library, used to validate and
// cost-enrich recommended control names
type Control struct {
	ID            types.ControlID `json:"id" firestore:"id"`
	Name          string          `json:"name" firestore:"name"`
	Category      string          `json:"category" firestore:"category"`
	EstimatedCost string          `json:"estimated_cost,omitempty" firestore:"estimated_cost"`
}

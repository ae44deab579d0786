package model

import (
	"time"

	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// ExistingControl is a control already in place at the facility, with its
// assessed effectiveness on a 0-10 scale
type ExistingControl struct {
	Name          string `json:"name" firestore:"name"`
	Effectiveness int    `json:"effectiveness" firestore:"effectiveness"`
}

// TreatmentPlan is a proposed mitigation linked to a scenario. Its effect
// reduces either likelihood or impact by the stated integer value.
type TreatmentPlan struct {
	ID     int64                 `json:"id" firestore:"id"`
	Name   string                `json:"name" firestore:"name"`
	Effect types.TreatmentEffect `json:"effect" firestore:"effect"`
	Value  int                   `json:"value" firestore:"value"`
}

// Scenario is one facility risk scenario with its inherent likelihood and
// impact estimates (1-5 scales), existing controls, and an optional linked
// treatment plan.
type Scenario struct {
	ID           int64  `json:"id" firestore:"id"`
	AssessmentID int64  `json:"assessment_id" firestore:"assessment_id"`
	Name         string `json:"name" firestore:"name"`
	Description  string `json:"description,omitempty" firestore:"description"`

	Likelihood int `json:"likelihood" firestore:"likelihood"`
	Impact     int `json:"impact" firestore:"impact"`

	ExistingControls []ExistingControl `json:"existing_controls,omitempty" firestore:"existing_controls"`
	TreatmentPlan    *TreatmentPlan    `json:"treatment_plan,omitempty" firestore:"treatment_plan"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

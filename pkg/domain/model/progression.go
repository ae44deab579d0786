package model

import "github.com/aegis-sec/aegis/pkg/domain/types"

// RiskStage is one stage of the facility inherent / current / residual
// progression. Likelihood and Impact are on the 1-5 scale, Score is their
// product on the 1-25 scale.
type RiskStage struct {
	Likelihood int             `json:"likelihood" firestore:"likelihood"`
	Impact     int             `json:"impact" firestore:"impact"`
	Score      int             `json:"score" firestore:"score"`
	Level      types.RiskLevel `json:"level" firestore:"level"`

	// ReductionPercent is only set on the current stage: the percentage of
	// likelihood reduction applied from existing controls.
	ReductionPercent int `json:"reduction_percent,omitempty" firestore:"reduction_percent,omitempty"`
}

// RiskProgression shows how a scenario's risk moves from inherent (no
// controls) through current (existing controls) to residual (after the
// linked treatment plan).
type RiskProgression struct {
	Inherent RiskStage `json:"inherent" firestore:"inherent"`
	Current  RiskStage `json:"current" firestore:"current"`
	Residual RiskStage `json:"residual" firestore:"residual"`
}

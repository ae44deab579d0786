package model

import "github.com/aegis-sec/aegis/pkg/domain/types"

// CompletionStatus summarizes how much of the interview has been answered
type CompletionStatus struct {
	IsComplete           bool               `json:"is_complete"`
	CompletionPercentage int                `json:"completion_percentage"`
	AnsweredCount        int                `json:"answered_count"`
	TotalExpected        int                `json:"total_expected"`
	MissingRequired      []types.QuestionID `json:"missing_required,omitempty"`
	Warnings             []string           `json:"warnings,omitempty"`
}

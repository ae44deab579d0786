package interview

import (
	"fmt"
	"math"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
)

// completionThreshold is the minimum completion percentage for an
// interview to count as complete
const completionThreshold = 90

// ValidateCompletion computes how much of the template's interview has
// been answered. An interview is complete when no required question is
// missing and the completion percentage reaches the threshold.
func ValidateCompletion(answers model.AnswerSet, cat *catalog.Catalog) *model.CompletionStatus {
	status := &model.CompletionStatus{
		TotalExpected: cat.TotalExpected(),
	}

	for _, section := range cat.Sections {
		answered := 0
		for _, q := range section.Questions {
			if _, ok := NormalizeValue(answers.Get(q)); ok {
				answered++
			}
		}
		status.AnsweredCount += answered

		// Partial-section heuristic: warn when a section was started but
		// not finished.
		if answered > 0 && answered < len(section.Questions) {
			status.Warnings = append(status.Warnings,
				fmt.Sprintf("section %q partially answered (%d/%d)", section.Name, answered, len(section.Questions)))
		}
	}

	for _, q := range cat.Required {
		if _, ok := NormalizeValue(answers.Get(q)); !ok {
			status.MissingRequired = append(status.MissingRequired, q)
		}
	}

	if status.TotalExpected > 0 {
		status.CompletionPercentage = int(math.Round(float64(status.AnsweredCount) / float64(status.TotalExpected) * 100))
	}

	status.IsComplete = len(status.MissingRequired) == 0 && status.CompletionPercentage >= completionThreshold

	return status
}

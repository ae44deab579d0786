package interview

import (
	"strings"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
)

// ExtractSignals matches normalized answers against the catalog's rule
// table and emits the signals whose rules fire. Matching is plain
// case-insensitive substring containment so the behavior stays auditable.
// Signals are emitted in rule-table order; multiple rules may fire on the
// same question.
func ExtractSignals(answers model.AnswerSet, rules []catalog.SignalRule) []*model.RiskSignal {
	var signals []*model.RiskSignal

	for _, rule := range rules {
		stored, ok := NormalizeValue(answers.Get(rule.QuestionID))
		if !ok {
			continue
		}
		lowered := strings.ToLower(stored)

		for _, bad := range rule.BadAnswers {
			if strings.Contains(lowered, strings.ToLower(bad)) {
				signals = append(signals, &model.RiskSignal{
					Category:         rule.Category,
					Text:             rule.Signal,
					SourceQuestionID: rule.QuestionID,
					SourceAnswer:     stored,
					Severity:         rule.Severity,
					AffectedThreats:  rule.AffectedThreats,
				})
				break
			}
		}
	}

	return signals
}

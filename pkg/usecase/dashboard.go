package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/interview"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
)

// Dashboard aggregates the latest stored run of an assessment together
// with its current interview completion state
func (uc *ScoringUseCase) Dashboard(ctx context.Context, assessmentID int64) (*model.AssessmentDashboard, error) {
	run, err := uc.repo.Run().Latest(ctx, assessmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load latest run",
			goerr.V("assessment_id", assessmentID),
		)
	}

	assessment, err := uc.repo.Assessment().Get(ctx, assessmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load assessment",
			goerr.V("assessment_id", assessmentID),
		)
	}
	cat, err := uc.registry.Get(assessment.TemplateID)
	if err != nil {
		return nil, goerr.Wrap(err, "unknown assessment template",
			goerr.V("template_id", assessment.TemplateID),
		)
	}

	return Aggregate(run, interview.ValidateCompletion(assessment.Answers, cat)), nil
}

// Aggregate rolls one run's threat scores up into a dashboard. It is a pure
// function of its inputs: calling it twice on the same frozen run produces
// identical output apart from the generation timestamp.
func Aggregate(run *model.AssessmentRun, completion *model.CompletionStatus) *model.AssessmentDashboard {
	dashboard := &model.AssessmentDashboard{
		ThreatCount: len(run.ThreatScores),
		Mode:        run.Mode,
		Confidence:  run.Confidence,
		Gaps:        run.Gaps,
		GeneratedAt: time.Now(),
	}
	if completion != nil {
		dashboard.CompletionGaps = completion.MissingRequired
	}

	if len(run.ThreatScores) == 0 {
		return dashboard
	}

	sum := 0
	for _, score := range run.ThreatScores {
		sum += score.NormalizedScore
		switch score.Classification {
		case types.ClassificationCritical:
			dashboard.CriticalCount++
		case types.ClassificationHigh:
			dashboard.HighCount++
		case types.ClassificationMedium:
			dashboard.MediumCount++
		case types.ClassificationLow:
			dashboard.LowCount++
		}
	}

	dashboard.OverallScore = int(float64(sum)/float64(len(run.ThreatScores)) + 0.5)
	dashboard.OverallClassification = overallClassification(dashboard)
	dashboard.PriorityControls = mergeControls(run.ThreatScores)
	dashboard.NextSteps = nextSteps(dashboard)

	return dashboard
}

// overallClassification escalates past the mean-score breakpoints: a single
// critical threat makes the whole assessment critical, two or more high
// threats make it high.
func overallClassification(d *model.AssessmentDashboard) types.Classification {
	switch {
	case d.CriticalCount > 0:
		return types.ClassificationCritical
	case d.HighCount >= 2:
		return types.ClassificationHigh
	default:
		return scoring.Classify(d.OverallScore)
	}
}

// mergeControls deduplicates recommendations across threats. Controls are
// keyed by exact name; duplicates accumulate addressed threats and keep the
// most urgent value seen. Ordering is urgency ascending, then addressed
// count descending, ties broken by first-seen order.
func mergeControls(scores []*model.ThreatScore) []*model.ControlRecommendation {
	var merged []*model.ControlRecommendation
	byName := map[string]*model.ControlRecommendation{}

	for _, score := range scores {
		for _, rec := range score.PriorityControls {
			existing, ok := byName[rec.Name]
			if !ok {
				clone := &model.ControlRecommendation{
					Name:            rec.Name,
					Category:        rec.Category,
					Urgency:         rec.Urgency,
					AddressesThreat: append([]types.ThreatID{}, rec.AddressesThreat...),
					EstimatedCost:   rec.EstimatedCost,
				}
				byName[rec.Name] = clone
				merged = append(merged, clone)
				continue
			}

			existing.Urgency = existing.Urgency.MoreUrgent(rec.Urgency)
			for _, id := range rec.AddressesThreat {
				if !containsThreat(existing.AddressesThreat, id) {
					existing.AddressesThreat = append(existing.AddressesThreat, id)
				}
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Urgency.Rank() != merged[j].Urgency.Rank() {
			return merged[i].Urgency.Rank() < merged[j].Urgency.Rank()
		}
		return len(merged[i].AddressesThreat) > len(merged[j].AddressesThreat)
	})

	return merged
}

func containsThreat(ids []types.ThreatID, id types.ThreatID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func nextSteps(d *model.AssessmentDashboard) []string {
	var steps []string

	if len(d.CompletionGaps) > 0 {
		steps = append(steps, fmt.Sprintf("Answer the %d outstanding required interview questions", len(d.CompletionGaps)))
	}
	if d.CriticalCount > 0 {
		steps = append(steps, fmt.Sprintf("Address %d critical threat(s) before all other work", d.CriticalCount))
	}
	if len(d.PriorityControls) > 0 {
		top := d.PriorityControls[0]
		steps = append(steps, fmt.Sprintf("Implement %q (%s)", top.Name, top.Urgency))
	}
	if d.Confidence == types.ConfidenceFallback {
		steps = append(steps, "Re-run with the completion service available to refine scores")
	}

	return steps
}

package usecase

import (
	"math"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
)

// ComputeProgression derives the inherent, current, and residual risk
// stages for a facility scenario. Likelihood and impact stay on the 1-5
// scale throughout; each stage's level is reclassified from its own
// likelihood x impact product.
func ComputeProgression(s *model.Scenario) *model.RiskProgression {
	inherent := newStage(s.Likelihood, s.Impact)

	// Existing controls reduce likelihood by 10% per mean effectiveness
	// point, floor-rounded, never below 1.
	reductionPercent := 0
	currentLikelihood := inherent.Likelihood
	if len(s.ExistingControls) > 0 {
		sum := 0
		for _, ctrl := range s.ExistingControls {
			sum += clampScale(ctrl.Effectiveness, 0, 10)
		}
		mean := float64(sum) / float64(len(s.ExistingControls))
		reductionPercent = int(math.Round(mean * 10))

		reduction := int(math.Floor(float64(inherent.Likelihood) * mean / 10))
		currentLikelihood = inherent.Likelihood - reduction
		if currentLikelihood < 1 {
			currentLikelihood = 1
		}
	}

	current := newStage(currentLikelihood, inherent.Impact)
	current.ReductionPercent = reductionPercent

	residualLikelihood := current.Likelihood
	residualImpact := current.Impact
	if plan := s.TreatmentPlan; plan != nil {
		switch plan.Effect {
		case types.TreatmentReduceLikelihood:
			residualLikelihood = floorOne(residualLikelihood - plan.Value)
		case types.TreatmentReduceImpact:
			residualImpact = floorOne(residualImpact - plan.Value)
		}
	}
	residual := newStage(residualLikelihood, residualImpact)

	return &model.RiskProgression{
		Inherent: inherent,
		Current:  current,
		Residual: residual,
	}
}

func newStage(likelihood, impact int) model.RiskStage {
	likelihood = clampScale(likelihood, 1, 5)
	impact = clampScale(impact, 1, 5)
	product := likelihood * impact
	return model.RiskStage{
		Likelihood: likelihood,
		Impact:     impact,
		Score:      product,
		Level:      scoring.ClassifyProduct(product),
	}
}

func clampScale(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// Factor baselines for the algorithmic strategy
const (
	baselineThreat        = 3.0
	baselineVulnerability = 5.0
	baselineImpact        = 5.0
	baselineExposure      = 2.0
)

// Per-signal factor deltas, keyed by signal category
const (
	deltaThreatSignal        = 1.0
	deltaVulnerabilitySignal = 0.5
	deltaExposureSignal      = 0.5
	deltaImpactSignal        = 0.5
)

// netWorthImpact sets the impact baseline for subjects in a known net
// worth bracket. Brackets below 10m keep the default baseline.
var netWorthImpact = map[string]float64{
	"10m-50m":   7,
	"50m-250m":  8,
	"over-250m": 9,
}

// exposureByLevel maps the profile's public exposure onto the E factor
var exposureByLevel = map[types.ExposureLevel]float64{
	types.ExposureModerate:    3,
	types.ExposureSignificant: 4,
	types.ExposureExtensive:   5,
}

// maxAlgorithmicControls caps how many controls the algorithmic strategy
// recommends per threat
const maxAlgorithmicControls = 3

// Algorithmic is the deterministic, rule-based scoring strategy. It never
// fails and always reports medium confidence.
type Algorithmic struct{}

// NewAlgorithmic creates the algorithmic strategy
func NewAlgorithmic() *Algorithmic {
	return &Algorithmic{}
}

// Name returns the strategy name
func (a *Algorithmic) Name() string {
	return "algorithmic"
}

// ScoreThreat derives the factor set from fixed baselines plus fixed
// deltas for profile flags and matching signals, then rounds and clamps
// each factor before combining.
func (a *Algorithmic) ScoreThreat(ctx context.Context, in *Input) (*model.ThreatScore, error) {
	t := baselineThreat
	v := baselineVulnerability
	i := baselineImpact
	e := baselineExposure

	var evidence []string
	var gaps []string

	if in.Profile.KnownThreatHistory {
		t += 3
		evidence = append(evidence, "Documented threat history raises threat likelihood")
	}
	if in.Profile.ActiveAdversary {
		t += 2
		evidence = append(evidence, "Active adversary raises threat likelihood")
	}
	if in.Profile.TravelFrequency == types.TravelConstant || in.Profile.TravelFrequency == types.TravelFrequent {
		if len(in.Profile.HighRiskDestinations) > 0 {
			t += 1
			evidence = append(evidence, "Frequent travel to high-risk destinations")
		}
	}

	if len(in.Profile.CurrentMeasures) == 0 {
		v += 2
		gaps = append(gaps, "No protective measures currently in place")
	}

	if base, ok := netWorthImpact[in.Profile.NetWorthBracket]; ok {
		i = base
		evidence = append(evidence, fmt.Sprintf("Net worth bracket %s sets impact baseline", in.Profile.NetWorthBracket))
	}

	if level, ok := exposureByLevel[in.Profile.ExposureLevel]; ok {
		e = level
		evidence = append(evidence, fmt.Sprintf("Public exposure is %s", in.Profile.ExposureLevel))
	}

	for _, sig := range model.SignalsForThreat(in.Signals, in.Threat.ID) {
		switch sig.Category {
		case types.SignalCategoryThreat:
			t += deltaThreatSignal
		case types.SignalCategoryVulnerability:
			v += deltaVulnerabilitySignal
			gaps = append(gaps, sig.Text)
		case types.SignalCategoryExposure:
			e += deltaExposureSignal
		case types.SignalCategoryImpactAmplifier:
			i += deltaImpactSignal
		}
		evidence = append(evidence, sig.Text)
	}

	score := &model.ThreatScore{
		ThreatID:         in.Threat.ID,
		ThreatName:       in.Threat.Name,
		ThreatLikelihood: RoundClamp(t, FactorMin, FactorMax),
		Vulnerability:    RoundClamp(v, FactorMin, FactorMax),
		Impact:           RoundClamp(i, FactorMin, FactorMax),
		Confidence:       types.ConfidenceMedium,
		Evidence:         evidence,
		ControlGaps:      gaps,
	}

	score.RawScore = score.ThreatLikelihood * score.Vulnerability * score.Impact
	if in.Catalog.FourFactor {
		score.Exposure = RoundClamp(e, ExposureMin, ExposureMax)
		score.RawScore *= score.Exposure
	}

	score.NormalizedScore = Normalize(score.RawScore, in.Catalog.Divisor, in.Threat.BaseWeight)
	score.Classification = Classify(score.NormalizedScore)
	score.PriorityControls = a.recommendControls(in, score)

	return score, nil
}

// recommendControls picks controls from the allowed library whose category
// matches the threat's category. Urgency follows the classification.
// Selection order follows library order so results stay deterministic.
func (a *Algorithmic) recommendControls(in *Input, score *model.ThreatScore) []*model.ControlRecommendation {
	urgency := types.UrgencyMediumTerm
	switch score.Classification {
	case types.ClassificationCritical:
		urgency = types.UrgencyImmediate
	case types.ClassificationHigh:
		urgency = types.UrgencyShortTerm
	}

	var out []*model.ControlRecommendation
	for _, ctrl := range in.AllowedControls {
		if !strings.EqualFold(ctrl.Category, in.Threat.Category) {
			continue
		}
		out = append(out, &model.ControlRecommendation{
			Name:            ctrl.Name,
			Category:        ctrl.Category,
			Urgency:         urgency,
			AddressesThreat: []types.ThreatID{in.Threat.ID},
			EstimatedCost:   ctrl.EstimatedCost,
		})
		if len(out) >= maxAlgorithmicControls {
			break
		}
	}
	return out
}

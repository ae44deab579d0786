package scoring_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
)

func fourFactorInput(profile *model.SubjectProfile, signals []*model.RiskSignal) *scoring.Input {
	cat := catalog.BuiltinExecutiveProtection()
	def, _ := cat.Threat("kidnapping")
	return &scoring.Input{
		Threat:     def,
		Catalog:    cat,
		Profile:    profile,
		Signals:    signals,
		Completion: &model.CompletionStatus{CompletionPercentage: 100, IsComplete: true},
	}
}

func TestAlgorithmicBaselines(t *testing.T) {
	// A blank profile with one measure in place scores pure baselines:
	// T=3 V=5 I=5 E=2.
	profile := &model.SubjectProfile{
		ExposureLevel:   types.ExposureNone,
		TravelFrequency: types.TravelNone,
		CurrentMeasures: []string{"alarm-system"},
	}

	score, err := scoring.NewAlgorithmic().ScoreThreat(context.Background(), fourFactorInput(profile, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.ThreatLikelihood != 3 || score.Vulnerability != 5 || score.Impact != 5 || score.Exposure != 2 {
		t.Errorf("factors = T%d V%d I%d E%d, want T3 V5 I5 E2",
			score.ThreatLikelihood, score.Vulnerability, score.Impact, score.Exposure)
	}
	if want := 3 * 5 * 5 * 2; score.RawScore != want {
		t.Errorf("RawScore = %d, want %d", score.RawScore, want)
	}
	// normalized = min(100, round(150/50*1.5)) = 5... raw=150 -> 150/50=3, *1.5=4.5 -> 5
	if score.NormalizedScore != 5 {
		t.Errorf("NormalizedScore = %d, want 5", score.NormalizedScore)
	}
	if score.Classification != types.ClassificationLow {
		t.Errorf("Classification = %v, want low", score.Classification)
	}
	if score.Confidence != types.ConfidenceMedium {
		t.Errorf("Confidence = %v, want medium (always, for algorithmic)", score.Confidence)
	}
}

func TestAlgorithmicProfileDeltas(t *testing.T) {
	profile := &model.SubjectProfile{
		ExposureLevel:        types.ExposureExtensive,
		TravelFrequency:      types.TravelConstant,
		HighRiskDestinations: []string{"region-a"},
		NetWorthBracket:      "over-250m",
		KnownThreatHistory:   true,
		ActiveAdversary:      true,
	}

	score, err := scoring.NewAlgorithmic().ScoreThreat(context.Background(), fourFactorInput(profile, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// T = 3 + 3 (history) + 2 (adversary) + 1 (high-risk travel) = 9
	if score.ThreatLikelihood != 9 {
		t.Errorf("ThreatLikelihood = %d, want 9", score.ThreatLikelihood)
	}
	// V = 5 + 2 (no measures at all) = 7
	if score.Vulnerability != 7 {
		t.Errorf("Vulnerability = %d, want 7", score.Vulnerability)
	}
	// I set by bracket baseline.
	if score.Impact != 9 {
		t.Errorf("Impact = %d, want 9", score.Impact)
	}
	// E set by extensive exposure.
	if score.Exposure != 5 {
		t.Errorf("Exposure = %d, want 5", score.Exposure)
	}

	if want := 9 * 7 * 9 * 5; score.RawScore != want {
		t.Errorf("RawScore = %d, want %d", score.RawScore, want)
	}
	if score.NormalizedScore != 100 {
		t.Errorf("NormalizedScore = %d, want capped at 100", score.NormalizedScore)
	}
	if score.Classification != types.ClassificationCritical {
		t.Errorf("Classification = %v, want critical", score.Classification)
	}
}

func TestAlgorithmicSignalDeltas(t *testing.T) {
	profile := &model.SubjectProfile{
		ExposureLevel:   types.ExposureNone,
		TravelFrequency: types.TravelNone,
		CurrentMeasures: []string{"cctv"},
	}
	signals := []*model.RiskSignal{
		{
			Category:        types.SignalCategoryVulnerability,
			Text:            "No secure transport",
			Severity:        types.SeverityConcern,
			AffectedThreats: []types.ThreatID{"kidnapping"},
		},
		{
			Category:        types.SignalCategoryVulnerability,
			Text:            "Predictable routines",
			Severity:        types.SeverityConcern,
			AffectedThreats: []types.ThreatID{"kidnapping"},
		},
		{
			Category:        types.SignalCategoryThreat,
			Text:            "signal for another threat, must not count",
			Severity:        types.SeverityConcern,
			AffectedThreats: []types.ThreatID{"stalking"},
		},
	}

	score, err := scoring.NewAlgorithmic().ScoreThreat(context.Background(), fourFactorInput(profile, signals))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// V = 5 + 0.5 + 0.5 = 6.
	if score.Vulnerability != 6 {
		t.Errorf("Vulnerability = %d, want 6", score.Vulnerability)
	}
	if want := []string{"No secure transport", "Predictable routines"}; !reflect.DeepEqual(score.ControlGaps, want) {
		t.Errorf("ControlGaps = %v, want %v", score.ControlGaps, want)
	}
}

func TestAlgorithmicDeterministic(t *testing.T) {
	profile := &model.SubjectProfile{
		ExposureLevel:      types.ExposureSignificant,
		TravelFrequency:    types.TravelFrequent,
		NetWorthBracket:    "10m-50m",
		KnownThreatHistory: true,
	}

	strategy := scoring.NewAlgorithmic()
	first, err := strategy.ScoreThreat(context.Background(), fourFactorInput(profile, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := strategy.ScoreThreat(context.Background(), fourFactorInput(profile, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("algorithmic strategy must be deterministic for identical inputs")
	}
}

func TestAlgorithmicThreeFactor(t *testing.T) {
	cat := catalog.BuiltinFacility()
	def, _ := cat.Threat("theft")
	in := &scoring.Input{
		Threat:  def,
		Catalog: cat,
		Profile: &model.SubjectProfile{
			ExposureLevel:   types.ExposureNone,
			TravelFrequency: types.TravelNone,
			CurrentMeasures: []string{"guard-force"},
		},
		Completion: &model.CompletionStatus{},
	}

	score, err := scoring.NewAlgorithmic().ScoreThreat(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.Exposure != 0 {
		t.Errorf("three-factor score should carry no exposure, got %d", score.Exposure)
	}
	if want := 3 * 5 * 5; score.RawScore != want {
		t.Errorf("RawScore = %d, want %d", score.RawScore, want)
	}
	if score.FourFactor() {
		t.Error("FourFactor() should be false for facility scores")
	}
}

func TestAlgorithmicControlRecommendations(t *testing.T) {
	profile := &model.SubjectProfile{
		ExposureLevel:      types.ExposureExtensive,
		TravelFrequency:    types.TravelNone,
		NetWorthBracket:    "over-250m",
		KnownThreatHistory: true,
		ActiveAdversary:    true,
	}
	in := fourFactorInput(profile, nil)
	in.AllowedControls = []*model.Control{
		{ID: "ctl-1", Name: "Executive Protection Detail", Category: "Targeted Violence", EstimatedCost: "$$$"},
		{ID: "ctl-2", Name: "Residential CCTV Upgrade", Category: "Residential", EstimatedCost: "$$"},
		{ID: "ctl-3", Name: "Route Variation Program", Category: "Targeted Violence", EstimatedCost: "$"},
	}

	score, err := scoring.NewAlgorithmic().ScoreThreat(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(score.PriorityControls) != 2 {
		t.Fatalf("got %d controls, want the 2 matching the threat category", len(score.PriorityControls))
	}
	for _, ctrl := range score.PriorityControls {
		if ctrl.Category != "Targeted Violence" {
			t.Errorf("control %q category = %q, want Targeted Violence", ctrl.Name, ctrl.Category)
		}
		if ctrl.Urgency != types.UrgencyImmediate {
			t.Errorf("critical classification should yield immediate urgency, got %v", ctrl.Urgency)
		}
	}
}

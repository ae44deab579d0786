package usecase_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/repository/memory"
	"github.com/aegis-sec/aegis/pkg/service/controls"
	"github.com/aegis-sec/aegis/pkg/service/scoring"
	"github.com/aegis-sec/aegis/pkg/usecase"
)

// fakeAssisted is a completion-service test double with per-threat delays
// and failures
type fakeAssisted struct {
	delays   map[types.ThreatID]time.Duration
	fail     map[types.ThreatID]bool
	failAll  bool
	adjust   map[types.ThreatID]int
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (f *fakeAssisted) Name() string { return "assisted" }

func (f *fakeAssisted) ScoreThreat(ctx context.Context, in *scoring.Input) (*model.ThreatScore, error) {
	if f.failAll || f.fail[in.Threat.ID] {
		return nil, goerr.New("completion service unavailable")
	}

	cur := f.inFlight.Add(1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	defer f.inFlight.Add(-1)

	if d := f.delays[in.Threat.ID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	raw := 8 * 7 * 9 * 4
	return &model.ThreatScore{
		ThreatID:         in.Threat.ID,
		ThreatName:       in.Threat.Name,
		ThreatLikelihood: 8,
		Vulnerability:    7,
		Impact:           9,
		Exposure:         4,
		RawScore:         raw,
		NormalizedScore:  scoring.Normalize(raw, in.Catalog.Divisor, in.Threat.BaseWeight),
		Classification:   types.ClassificationHigh,
		Confidence:       types.ConfidenceHigh,
		Adjustments:      f.adjust[in.Threat.ID],
	}, nil
}

func newScoringUseCase(t *testing.T, assisted scoring.Strategy) (*usecase.ScoringUseCase, interfaces.Repository) {
	t.Helper()

	repo := memory.New()
	seedControls(t, repo)

	library := controls.NewLibrary(repo.Control())
	uc := usecase.NewScoringUseCase(repo, catalog.NewBuiltinRegistry(), library, assisted, 5)
	return uc, repo
}

func seedControls(t *testing.T, repo interfaces.Repository) {
	t.Helper()
	for _, c := range []*model.Control{
		{ID: "executive-protection-detail", Name: "Executive Protection Detail", Category: "Targeted Violence", EstimatedCost: "$$$"},
		{ID: "secure-transport", Name: "Secure Transport Program", Category: "Mobility", EstimatedCost: "$$"},
	} {
		if err := repo.Control().Put(context.Background(), c); err != nil {
			t.Fatalf("failed to seed control: %v", err)
		}
	}
}

func testAssessment() *model.Assessment {
	return &model.Assessment{
		ID:         1,
		Title:      "Principal Review",
		TemplateID: "executive-protection",
		Answers: model.AnswerSet{
			"public-profile-level": {Answer: "significant"},
			"travel-frequency":     {Answer: "frequent"},
			"threat-history":       {Answer: true},
		},
	}
}

func TestRunAssessmentOrderMatchesCatalog(t *testing.T) {
	cat := catalog.BuiltinExecutiveProtection()

	// Invert completion order: earlier catalog threats finish last.
	delays := make(map[types.ThreatID]time.Duration)
	for i := range cat.Threats {
		delays[cat.Threats[i].ID] = time.Duration(len(cat.Threats)-i) * 5 * time.Millisecond
	}
	fake := &fakeAssisted{delays: delays}

	uc, _ := newScoringUseCase(t, fake)
	run, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{UseAssisted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(run.ThreatScores) != len(cat.Threats) {
		t.Fatalf("got %d scores, want %d", len(run.ThreatScores), len(cat.Threats))
	}
	for i, score := range run.ThreatScores {
		if score.ThreatID != cat.Threats[i].ID {
			t.Errorf("score[%d] = %s, want %s", i, score.ThreatID, cat.Threats[i].ID)
		}
	}
	if run.Mode != types.ModeAssisted || run.Confidence != types.ConfidenceHigh {
		t.Errorf("mode/confidence = %v/%v, want assisted/high", run.Mode, run.Confidence)
	}
}

func TestRunAssessmentBoundsConcurrency(t *testing.T) {
	cat := catalog.BuiltinExecutiveProtection()
	delays := make(map[types.ThreatID]time.Duration)
	for i := range cat.Threats {
		delays[cat.Threats[i].ID] = 10 * time.Millisecond
	}
	fake := &fakeAssisted{delays: delays}

	uc, _ := newScoringUseCase(t, fake)
	if _, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{UseAssisted: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if max := fake.maxSeen.Load(); max > 5 {
		t.Errorf("observed %d concurrent calls, limit is 5", max)
	}
}

func TestRunAssessmentFullFailureFallsBack(t *testing.T) {
	cat := catalog.BuiltinExecutiveProtection()
	fake := &fakeAssisted{failAll: true}

	uc, _ := newScoringUseCase(t, fake)
	run, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{UseAssisted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Mode != types.ModeAlgorithmic {
		t.Errorf("mode = %v, want algorithmic", run.Mode)
	}
	if run.Confidence != types.ConfidenceFallback {
		t.Errorf("confidence = %v, want fallback", run.Confidence)
	}
	if len(run.ThreatScores) != len(cat.Threats) {
		t.Errorf("got %d scores, want full catalog of %d", len(run.ThreatScores), len(cat.Threats))
	}
	for _, score := range run.ThreatScores {
		if score.Confidence != types.ConfidenceFallback {
			t.Errorf("threat %s confidence = %v, want fallback", score.ThreatID, score.Confidence)
		}
	}
}

func TestRunAssessmentPartialFailureIsHybrid(t *testing.T) {
	cat := catalog.BuiltinExecutiveProtection()
	fake := &fakeAssisted{
		fail: map[types.ThreatID]bool{cat.Threats[0].ID: true},
	}

	uc, _ := newScoringUseCase(t, fake)
	run, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{UseAssisted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Mode != types.ModeHybrid {
		t.Errorf("mode = %v, want hybrid", run.Mode)
	}
	// 7 of 8 threats assisted is above the 80% line.
	if run.Confidence != types.ConfidenceHigh {
		t.Errorf("confidence = %v, want high", run.Confidence)
	}
	if run.ThreatScores[0].Confidence != types.ConfidenceFallback {
		t.Errorf("failed threat confidence = %v, want fallback", run.ThreatScores[0].Confidence)
	}
	if len(run.ThreatScores) != len(cat.Threats) {
		t.Errorf("got %d scores, want %d", len(run.ThreatScores), len(cat.Threats))
	}
}

func TestRunAssessmentCancelledStillCompletes(t *testing.T) {
	cat := catalog.BuiltinExecutiveProtection()
	delays := make(map[types.ThreatID]time.Duration)
	for i := range cat.Threats {
		delays[cat.Threats[i].ID] = time.Second
	}
	fake := &fakeAssisted{delays: delays}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	uc, _ := newScoringUseCase(t, fake)
	run, err := uc.RunAssessment(ctx, testAssessment(), usecase.RunOptions{UseAssisted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(run.ThreatScores) != len(cat.Threats) {
		t.Fatalf("cancelled run yielded %d scores, want full catalog of %d", len(run.ThreatScores), len(cat.Threats))
	}
	if run.Mode != types.ModeAlgorithmic {
		t.Errorf("mode = %v, want algorithmic after cancellation", run.Mode)
	}
}

func TestRunAssessmentAlgorithmicIsDeterministic(t *testing.T) {
	uc, _ := newScoringUseCase(t, nil)

	first, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.RunAssessment(context.Background(), testAssessment(), usecase.RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.ThreatScores) != len(second.ThreatScores) {
		t.Fatal("runs differ in threat count")
	}
	for i := range first.ThreatScores {
		a, b := first.ThreatScores[i], second.ThreatScores[i]
		if a.ThreatID != b.ThreatID || a.RawScore != b.RawScore || a.NormalizedScore != b.NormalizedScore {
			t.Errorf("threat %s differs between identical runs", a.ThreatID)
		}
	}
}

func TestScorePersistsRun(t *testing.T) {
	uc, repo := newScoringUseCase(t, nil)

	created, err := repo.Assessment().Create(context.Background(), testAssessment())
	if err != nil {
		t.Fatalf("failed to create assessment: %v", err)
	}

	run, err := uc.Score(context.Background(), created.ID, usecase.RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.RunID == "" {
		t.Fatal("expected generated run ID")
	}

	stored, err := repo.Run().Get(context.Background(), created.ID, run.RunID)
	if err != nil {
		t.Fatalf("run was not persisted: %v", err)
	}
	if len(stored.ThreatScores) != len(run.ThreatScores) {
		t.Error("stored run differs from returned run")
	}
}

func TestRunModeAndConfidence(t *testing.T) {
	cases := []struct {
		name           string
		total          int
		assisted       int
		clamped        int
		wantMode       types.ScoringMode
		wantConfidence types.Confidence
	}{
		{"all assisted", 10, 10, 0, types.ModeAssisted, types.ConfidenceHigh},
		{"none assisted", 10, 0, 0, types.ModeAlgorithmic, types.ConfidenceFallback},
		{"eighty percent", 10, 8, 0, types.ModeHybrid, types.ConfidenceHigh},
		{"half assisted", 10, 5, 0, types.ModeHybrid, types.ConfidenceMedium},
		{"below half", 10, 3, 0, types.ModeHybrid, types.ConfidenceLow},
		{"heavy clamping degrades", 10, 10, 4, types.ModeAssisted, types.ConfidenceMedium},
		{"light clamping keeps level", 10, 10, 2, types.ModeAssisted, types.ConfidenceHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, confidence := usecase.RunModeAndConfidence(tc.total, tc.assisted, tc.clamped)
			if mode != tc.wantMode {
				t.Errorf("mode = %v, want %v", mode, tc.wantMode)
			}
			if confidence != tc.wantConfidence {
				t.Errorf("confidence = %v, want %v", confidence, tc.wantConfidence)
			}
		})
	}
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

func sampleRun(assessmentID int64, runID string, createdAt time.Time) *model.AssessmentRun {
	return &model.AssessmentRun{
		RunID:        runID,
		AssessmentID: assessmentID,
		Mode:         types.ModeHybrid,
		Confidence:   types.ConfidenceMedium,
		ElapsedMs:    1200,
		CreatedAt:    createdAt,
		ThreatScores: []*model.ThreatScore{
			{
				ThreatID:         "kidnapping",
				ThreatName:       "Kidnapping / Abduction",
				ThreatLikelihood: 8,
				Vulnerability:    7,
				Impact:           9,
				Exposure:         4,
				RawScore:         2016,
				NormalizedScore:  60,
				Classification:   types.ClassificationHigh,
				Confidence:       types.ConfidenceHigh,
				Evidence:         []string{"Documented threat history"},
			},
			{
				ThreatID:         "stalking",
				ThreatName:       "Stalking / Harassment",
				ThreatLikelihood: 3,
				Vulnerability:    5,
				Impact:           5,
				Exposure:         2,
				RawScore:         150,
				NormalizedScore:  4,
				Classification:   types.ClassificationLow,
				Confidence:       types.ConfidenceFallback,
			},
		},
	}
}

func runRunRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then Get round-trips the whole batch", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		run := sampleRun(1, "run-a", time.Now().UTC())
		if err := repo.Run().Put(ctx, run); err != nil {
			t.Fatalf("failed to put run: %v", err)
		}

		got, err := repo.Run().Get(ctx, 1, "run-a")
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if len(got.ThreatScores) != 2 {
			t.Fatalf("got %d scores, want 2", len(got.ThreatScores))
		}
		if got.ThreatScores[0].ThreatID != "kidnapping" || got.ThreatScores[0].RawScore != 2016 {
			t.Errorf("first score = %+v", got.ThreatScores[0])
		}
		if got.Mode != types.ModeHybrid || got.Confidence != types.ConfidenceMedium {
			t.Errorf("mode/confidence = %v/%v", got.Mode, got.Confidence)
		}
	})

	t.Run("Put without run ID fails", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Run().Put(context.Background(), &model.AssessmentRun{AssessmentID: 1})
		if err == nil {
			t.Fatal("expected error for missing run ID")
		}
	})

	t.Run("Get unknown run returns not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Run().Get(context.Background(), 1, "missing")
		if !isNotFound(err) {
			t.Errorf("expected not-found error, got: %v", err)
		}
	})

	t.Run("Latest returns the newest run per assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		if err := repo.Run().Put(ctx, sampleRun(7, "run-old", base)); err != nil {
			t.Fatalf("failed to put run: %v", err)
		}
		if err := repo.Run().Put(ctx, sampleRun(7, "run-new", base.Add(30*time.Minute))); err != nil {
			t.Fatalf("failed to put run: %v", err)
		}
		if err := repo.Run().Put(ctx, sampleRun(8, "run-other", base.Add(2*time.Hour))); err != nil {
			t.Fatalf("failed to put run: %v", err)
		}

		latest, err := repo.Run().Latest(ctx, 7)
		if err != nil {
			t.Fatalf("failed to get latest run: %v", err)
		}
		if latest.RunID != "run-new" {
			t.Errorf("latest run = %q, want run-new", latest.RunID)
		}
	})

	t.Run("Latest with no runs returns not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Run().Latest(context.Background(), 42)
		if !isNotFound(err) {
			t.Errorf("expected not-found error, got: %v", err)
		}
	})

	t.Run("List returns runs newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		for i, id := range []string{"first", "second", "third"} {
			if err := repo.Run().Put(ctx, sampleRun(3, id, base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("failed to put run %s: %v", id, err)
			}
		}

		runs, err := repo.Run().List(ctx, 3)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("got %d runs, want 3", len(runs))
		}
		if runs[0].RunID != "third" || runs[2].RunID != "first" {
			t.Errorf("unexpected order: %s, %s, %s", runs[0].RunID, runs[1].RunID, runs[2].RunID)
		}
	})
}

func TestMemoryRunRepository(t *testing.T) {
	runRunRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreRunRepository(t *testing.T) {
	runRunRepositoryTest(t, newFirestoreRepository)
}

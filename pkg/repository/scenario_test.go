package repository_test

import (
	"context"
	"testing"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

func runScenarioRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get keep controls and treatment plan", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Scenario().Create(ctx, &model.Scenario{
			AssessmentID: 1,
			Name:         "After-hours intrusion",
			Likelihood:   4,
			Impact:       5,
			ExistingControls: []model.ExistingControl{
				{Name: "CCTV Coverage", Effectiveness: 6},
			},
			TreatmentPlan: &model.TreatmentPlan{
				Name:   "Guard force expansion",
				Effect: types.TreatmentReduceLikelihood,
				Value:  1,
			},
		})
		if err != nil {
			t.Fatalf("failed to create scenario: %v", err)
		}
		if created.ID == 0 {
			t.Error("expected assigned ID")
		}

		got, err := repo.Scenario().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get scenario: %v", err)
		}
		if len(got.ExistingControls) != 1 || got.ExistingControls[0].Effectiveness != 6 {
			t.Errorf("controls = %+v", got.ExistingControls)
		}
		if got.TreatmentPlan == nil || got.TreatmentPlan.Effect != types.TreatmentReduceLikelihood {
			t.Errorf("treatment plan = %+v", got.TreatmentPlan)
		}
	})

	t.Run("ListByAssessment filters by parent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, s := range []*model.Scenario{
			{AssessmentID: 1, Name: "Theft", Likelihood: 3, Impact: 3},
			{AssessmentID: 1, Name: "Sabotage", Likelihood: 2, Impact: 4},
			{AssessmentID: 2, Name: "Vandalism", Likelihood: 3, Impact: 2},
		} {
			if _, err := repo.Scenario().Create(ctx, s); err != nil {
				t.Fatalf("failed to create scenario: %v", err)
			}
		}

		scenarios, err := repo.Scenario().ListByAssessment(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list scenarios: %v", err)
		}
		if len(scenarios) != 2 {
			t.Fatalf("got %d scenarios, want 2", len(scenarios))
		}
	})

	t.Run("Update keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Scenario().Create(ctx, &model.Scenario{
			AssessmentID: 1,
			Name:         "Theft",
			Likelihood:   3,
			Impact:       3,
		})
		if err != nil {
			t.Fatalf("failed to create scenario: %v", err)
		}

		created.Likelihood = 2
		updated, err := repo.Scenario().Update(ctx, created)
		if err != nil {
			t.Fatalf("failed to update scenario: %v", err)
		}
		if updated.Likelihood != 2 {
			t.Errorf("likelihood = %d, want 2", updated.Likelihood)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Error("CreatedAt must not change on update")
		}
	})

	t.Run("Delete removes the scenario", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Scenario().Create(ctx, &model.Scenario{
			AssessmentID: 1,
			Name:         "Disposable",
			Likelihood:   1,
			Impact:       1,
		})
		if err != nil {
			t.Fatalf("failed to create scenario: %v", err)
		}

		if err := repo.Scenario().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete scenario: %v", err)
		}
		if _, err := repo.Scenario().Get(ctx, created.ID); !isNotFound(err) {
			t.Errorf("expected not-found after delete, got: %v", err)
		}
	})
}

func TestMemoryScenarioRepository(t *testing.T) {
	runScenarioRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreScenarioRepository(t *testing.T) {
	runScenarioRepositoryTest(t, newFirestoreRepository)
}

package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type ScenarioUseCase struct {
	repo interfaces.Repository
}

func NewScenarioUseCase(repo interfaces.Repository) *ScenarioUseCase {
	return &ScenarioUseCase{repo: repo}
}

func (uc *ScenarioUseCase) Create(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, err
	}

	created, err := uc.repo.Scenario().Create(ctx, scenario)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scenario")
	}
	return created, nil
}

func (uc *ScenarioUseCase) Get(ctx context.Context, id int64) (*model.Scenario, error) {
	scenario, err := uc.repo.Scenario().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get scenario", goerr.V("scenario_id", id))
	}
	return scenario, nil
}

func (uc *ScenarioUseCase) ListByAssessment(ctx context.Context, assessmentID int64) ([]*model.Scenario, error) {
	scenarios, err := uc.repo.Scenario().ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scenarios",
			goerr.V("assessment_id", assessmentID),
		)
	}
	return scenarios, nil
}

func (uc *ScenarioUseCase) Update(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Scenario().Update(ctx, scenario)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update scenario",
			goerr.V("scenario_id", scenario.ID),
		)
	}
	return updated, nil
}

func (uc *ScenarioUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Scenario().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete scenario", goerr.V("scenario_id", id))
	}
	return nil
}

// Progression computes the inherent / current / residual trend for a stored
// scenario
func (uc *ScenarioUseCase) Progression(ctx context.Context, id int64) (*model.RiskProgression, error) {
	scenario, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ComputeProgression(scenario), nil
}

func validateScenario(scenario *model.Scenario) error {
	if scenario.Name == "" {
		return goerr.New("scenario name is required")
	}
	if scenario.Likelihood < 1 || scenario.Likelihood > 5 {
		return goerr.New("scenario likelihood must be between 1 and 5",
			goerr.V("likelihood", scenario.Likelihood),
		)
	}
	if scenario.Impact < 1 || scenario.Impact > 5 {
		return goerr.New("scenario impact must be between 1 and 5",
			goerr.V("impact", scenario.Impact),
		)
	}
	for _, ctrl := range scenario.ExistingControls {
		if ctrl.Effectiveness < 0 || ctrl.Effectiveness > 10 {
			return goerr.New("control effectiveness must be between 0 and 10",
				goerr.V("control", ctrl.Name),
				goerr.V("effectiveness", ctrl.Effectiveness),
			)
		}
	}
	if plan := scenario.TreatmentPlan; plan != nil {
		if !plan.Effect.IsValid() {
			return goerr.New("invalid treatment effect", goerr.V("effect", plan.Effect))
		}
		if plan.Value < 0 {
			return goerr.New("treatment value must not be negative",
				goerr.V("value", plan.Value),
			)
		}
	}
	return nil
}

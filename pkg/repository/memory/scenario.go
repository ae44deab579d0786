package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type scenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[int64]*model.Scenario
	nextID    int64
}

func newScenarioRepository() *scenarioRepository {
	return &scenarioRepository{
		scenarios: make(map[int64]*model.Scenario),
		nextID:    1,
	}
}

func copyScenario(s *model.Scenario) *model.Scenario {
	copied := &model.Scenario{
		ID:           s.ID,
		AssessmentID: s.AssessmentID,
		Name:         s.Name,
		Description:  s.Description,
		Likelihood:   s.Likelihood,
		Impact:       s.Impact,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	copied.ExistingControls = append([]model.ExistingControl{}, s.ExistingControls...)
	if s.TreatmentPlan != nil {
		plan := *s.TreatmentPlan
		copied.TreatmentPlan = &plan
	}
	return copied
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyScenario(scenario)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.scenarios[created.ID] = created
	return copyScenario(created), nil
}

func (r *scenarioRepository) Get(ctx context.Context, id int64) (*model.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", id))
	}
	return copyScenario(scenario), nil
}

func (r *scenarioRepository) ListByAssessment(ctx context.Context, assessmentID int64) ([]*model.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var scenarios []*model.Scenario
	for _, s := range r.scenarios {
		if s.AssessmentID == assessmentID {
			scenarios = append(scenarios, copyScenario(s))
		}
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, nil
}

func (r *scenarioRepository) Update(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.scenarios[scenario.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", scenario.ID))
	}

	updated := copyScenario(scenario)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.scenarios[updated.ID] = updated
	return copyScenario(updated), nil
}

func (r *scenarioRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[id]; !exists {
		return goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", id))
	}
	delete(r.scenarios, id)
	return nil
}

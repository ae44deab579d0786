package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type scenarioRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newScenarioRepository(client *firestore.Client) *scenarioRepository {
	return &scenarioRepository{client: client}
}

func (r *scenarioRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_scenarios"
	}
	return "scenarios"
}

func (r *scenarioRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "scenario_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stored := *scenario
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, &stored); err != nil {
		return nil, goerr.Wrap(err, "failed to create scenario")
	}
	return &stored, nil
}

func (r *scenarioRepository) Get(ctx context.Context, id int64) (*model.Scenario, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get scenario", goerr.V("id", id))
	}

	var scenario model.Scenario
	if err := doc.DataTo(&scenario); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal scenario", goerr.V("id", id))
	}
	return &scenario, nil
}

func (r *scenarioRepository) ListByAssessment(ctx context.Context, assessmentID int64) ([]*model.Scenario, error) {
	iter := r.client.Collection(r.collection()).
		Where("assessment_id", "==", assessmentID).
		Documents(ctx)
	defer iter.Stop()

	var scenarios []*model.Scenario
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scenarios",
				goerr.V("assessment_id", assessmentID),
			)
		}

		var scenario model.Scenario
		if err := doc.DataTo(&scenario); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal scenario")
		}
		scenarios = append(scenarios, &scenario)
	}

	return scenarios, nil
}

func (r *scenarioRepository) Update(ctx context.Context, scenario *model.Scenario) (*model.Scenario, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", scenario.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", scenario.ID))
		}
		return nil, goerr.Wrap(err, "failed to get scenario", goerr.V("id", scenario.ID))
	}

	var existing model.Scenario
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal scenario", goerr.V("id", scenario.ID))
	}

	updated := *scenario
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update scenario", goerr.V("id", scenario.ID))
	}
	return &updated, nil
}

func (r *scenarioRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "scenario not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get scenario", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete scenario", goerr.V("id", id))
	}
	return nil
}

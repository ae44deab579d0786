package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type runRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRunRepository(client *firestore.Client) *runRepository {
	return &runRepository{client: client}
}

func (r *runRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_runs"
	}
	return "runs"
}

// runDocID namespaces run documents per assessment so one flat collection
// can hold every run batch
func runDocID(assessmentID int64, runID string) string {
	return fmt.Sprintf("%d_%s", assessmentID, runID)
}

func (r *runRepository) Put(ctx context.Context, run *model.AssessmentRun) error {
	if run.RunID == "" {
		return goerr.New("run ID is required")
	}

	// The whole run batch is written as a single document so threat scores
	// are stored atomically, never one by one.
	docRef := r.client.Collection(r.collection()).Doc(runDocID(run.AssessmentID, run.RunID))
	if _, err := docRef.Set(ctx, run); err != nil {
		return goerr.Wrap(err, "failed to store run",
			goerr.V("assessment_id", run.AssessmentID),
			goerr.V("run_id", run.RunID),
		)
	}
	return nil
}

func (r *runRepository) Get(ctx context.Context, assessmentID int64, runID string) (*model.AssessmentRun, error) {
	docRef := r.client.Collection(r.collection()).Doc(runDocID(assessmentID, runID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "run not found",
				goerr.V("assessment_id", assessmentID),
				goerr.V("run_id", runID),
			)
		}
		return nil, goerr.Wrap(err, "failed to get run", goerr.V("run_id", runID))
	}

	var run model.AssessmentRun
	if err := doc.DataTo(&run); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal run", goerr.V("run_id", runID))
	}
	return &run, nil
}

func (r *runRepository) Latest(ctx context.Context, assessmentID int64) (*model.AssessmentRun, error) {
	iter := r.client.Collection(r.collection()).
		Where("assessment_id", "==", assessmentID).
		OrderBy("created_at", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "no runs recorded",
			goerr.V("assessment_id", assessmentID),
		)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest run",
			goerr.V("assessment_id", assessmentID),
		)
	}

	var run model.AssessmentRun
	if err := doc.DataTo(&run); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal run")
	}
	return &run, nil
}

func (r *runRepository) List(ctx context.Context, assessmentID int64) ([]*model.AssessmentRun, error) {
	iter := r.client.Collection(r.collection()).
		Where("assessment_id", "==", assessmentID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var runs []*model.AssessmentRun
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate runs",
				goerr.V("assessment_id", assessmentID),
			)
		}

		var run model.AssessmentRun
		if err := doc.DataTo(&run); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal run")
		}
		runs = append(runs, &run)
	}

	return runs, nil
}

package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
)

type Firestore struct {
	client     *firestore.Client
	assessment *assessmentRepository
	run        *runRepository
	scenario   *scenarioRepository
	control    *controlRepository
}

var _ interfaces.Repository = &Firestore{}

type options struct {
	collectionPrefix string
	databaseID       string
}

type Option func(*options)

// WithCollectionPrefix namespaces all collections, used to isolate test
// data on a shared project
func WithCollectionPrefix(prefix string) Option {
	return func(o *options) {
		o.collectionPrefix = prefix
	}
}

// WithDatabaseID selects a named Firestore database instead of "(default)"
func WithDatabaseID(databaseID string) Option {
	return func(o *options) {
		o.databaseID = databaseID
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var client *firestore.Client
	var err error
	if o.databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, o.databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", o.databaseID))
	}

	f := &Firestore{
		client:     client,
		assessment: newAssessmentRepository(client),
		run:        newRunRepository(client),
		scenario:   newScenarioRepository(client),
		control:    newControlRepository(client),
	}
	f.assessment.collectionPrefix = o.collectionPrefix
	f.run.collectionPrefix = o.collectionPrefix
	f.scenario.collectionPrefix = o.collectionPrefix
	f.control.collectionPrefix = o.collectionPrefix

	return f, nil
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Run() interfaces.RunRepository {
	return f.run
}

func (f *Firestore) Scenario() interfaces.ScenarioRepository {
	return f.scenario
}

func (f *Firestore) Control() interfaces.ControlRepository {
	return f.control
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

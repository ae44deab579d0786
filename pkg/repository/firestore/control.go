package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

type controlRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newControlRepository(client *firestore.Client) *controlRepository {
	return &controlRepository{client: client}
}

func (r *controlRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_controls"
	}
	return "controls"
}

func (r *controlRepository) List(ctx context.Context) ([]*model.Control, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var controls []*model.Control
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate controls")
		}

		var control model.Control
		if err := doc.DataTo(&control); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal control")
		}
		controls = append(controls, &control)
	}

	return controls, nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V("id", id))
	}

	var control model.Control
	if err := doc.DataTo(&control); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control", goerr.V("id", id))
	}
	return &control, nil
}

func (r *controlRepository) Put(ctx context.Context, control *model.Control) error {
	if control.ID == "" {
		return goerr.New("control ID is required")
	}
	if control.Name == "" {
		return goerr.New("control name is required")
	}

	docRef := r.client.Collection(r.collection()).Doc(string(control.ID))
	if _, err := docRef.Set(ctx, control); err != nil {
		return goerr.Wrap(err, "failed to store control", goerr.V("id", control.ID))
	}
	return nil
}

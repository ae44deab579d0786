package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

type controlRepository struct {
	mu       sync.RWMutex
	controls map[types.ControlID]*model.Control
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		controls: make(map[types.ControlID]*model.Control),
	}
}

func (r *controlRepository) List(ctx context.Context) ([]*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controls := make([]*model.Control, 0, len(r.controls))
	for _, c := range r.controls {
		copied := *c
		controls = append(controls, &copied)
	}
	sort.Slice(controls, func(i, j int) bool {
		return controls[i].ID < controls[j].ID
	})
	return controls, nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, exists := r.controls[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}
	copied := *control
	return &copied, nil
}

func (r *controlRepository) Put(ctx context.Context, control *model.Control) error {
	if control.ID == "" {
		return goerr.New("control ID is required")
	}
	if control.Name == "" {
		return goerr.New("control name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *control
	r.controls[control.ID] = &copied
	return nil
}

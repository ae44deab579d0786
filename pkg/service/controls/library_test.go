package controls_test

import (
	"context"
	"testing"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/service/controls"
)

type countingControlRepo struct {
	calls int
	items []*model.Control
}

func (r *countingControlRepo) List(ctx context.Context) ([]*model.Control, error) {
	r.calls++
	return r.items, nil
}

func (r *countingControlRepo) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *countingControlRepo) Put(ctx context.Context, control *model.Control) error {
	r.items = append(r.items, control)
	return nil
}

func TestLibraryReadThrough(t *testing.T) {
	repo := &countingControlRepo{
		items: []*model.Control{
			{ID: "access-control-upgrade", Name: "Access Control Upgrade", Category: "Perimeter"},
		},
	}
	lib := controls.NewLibrary(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := lib.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d controls, want 1", len(items))
		}
	}
	if repo.calls != 1 {
		t.Errorf("repository List called %d times, want 1", repo.calls)
	}
}

func TestLibraryInvalidate(t *testing.T) {
	repo := &countingControlRepo{}
	lib := controls.NewLibrary(repo)
	ctx := context.Background()

	if _, err := lib.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.items = append(repo.items, &model.Control{ID: "cctv-coverage", Name: "CCTV Coverage"})

	// Still serving the cached (empty) generation.
	items, _ := lib.List(ctx)
	if len(items) != 0 {
		t.Fatalf("expected cached result before invalidation, got %d items", len(items))
	}

	lib.Invalidate()
	items, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d controls after invalidation, want 1", len(items))
	}
	if repo.calls != 2 {
		t.Errorf("repository List called %d times, want 2", repo.calls)
	}
}

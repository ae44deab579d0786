package controls

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

// Library is a read-through cache over the control repository. Scoring
// strategies consult the library on every threat, so the backing store is
// read at most once per cache generation. Invalidate between runs to pick
// up library edits.
type Library struct {
	repo interfaces.ControlRepository

	mu     sync.RWMutex
	loaded bool
	items  []*model.Control
}

// NewLibrary creates a control library backed by the given repository
func NewLibrary(repo interfaces.ControlRepository) *Library {
	return &Library{repo: repo}
}

// List returns all controls, loading from the repository on first use
func (l *Library) List(ctx context.Context) ([]*model.Control, error) {
	l.mu.RLock()
	if l.loaded {
		items := l.items
		l.mu.RUnlock()
		return items, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return l.items, nil
	}

	items, err := l.repo.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load control library")
	}

	l.items = items
	l.loaded = true
	logging.From(ctx).Debug("loaded control library", "count", len(items))

	return l.items, nil
}

// Invalidate drops the cached controls so the next List reloads them
func (l *Library) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.items = nil
}

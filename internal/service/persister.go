package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"task-tracker/internal/store"
)

// SnapshotRepository is the persistence backend the services need.
type SnapshotRepository interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
}

// Persister writes store snapshots. Saves are serialised so documents from
// two snapshots never interleave.
type Persister struct {
	mu     sync.Mutex
	store  *store.Store
	repo   SnapshotRepository
	logger *zap.Logger
}

func NewPersister(st *store.Store, repo SnapshotRepository, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{store: st, repo: repo, logger: logger}
}

// Save persists the current store contents.
func (p *Persister) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.repo.Save(ctx, p.store.Snapshot()); err != nil {
		p.logger.Error("persist snapshot", zap.Error(err))
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// OpenStore loads the persisted snapshot into a new store. If loading had to
// repair anything (missing Default priority, newly delayed tasks, dropped
// reminders) the repaired state is written back.
func OpenStore(ctx context.Context, repo SnapshotRepository, logger *zap.Logger, opts ...store.Option) (*store.Store, store.LoadResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, store.LoadResult{}, fmt.Errorf("load snapshot: %w", err)
	}

	st := store.New(append([]store.Option{store.WithLogger(logger)}, opts...)...)
	result, err := st.Load(snap)
	if err != nil {
		return nil, result, fmt.Errorf("load snapshot: %w", err)
	}

	if result.DefaultCreated || result.Delayed > 0 || result.DroppedReminders > 0 {
		if err := repo.Save(ctx, st.Snapshot()); err != nil {
			return nil, result, fmt.Errorf("save repaired snapshot: %w", err)
		}
	}
	return st, result, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"task-tracker/internal/store"
)

const (
	categoriesFile = "categories.json"
	prioritiesFile = "priorities.json"
	tasksFile      = "tasks.json"
	remindersFile  = "reminders.json"
)

// JSONRepository keeps one JSON document per collection in a directory.
type JSONRepository struct {
	mu      sync.Mutex
	dataDir string
	logger  *zap.Logger
}

// NewJSONRepository creates dataDir if needed.
func NewJSONRepository(dataDir string, logger *zap.Logger) (*JSONRepository, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dataDir, err)
	}
	return &JSONRepository{dataDir: dataDir, logger: logger}, nil
}

// Load reads categories, priorities, tasks and reminders in that order. A
// missing file is an empty collection.
func (r *JSONRepository) Load(ctx context.Context) (store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return store.Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var recs Records
	if err := r.read(categoriesFile, &recs.Categories); err != nil {
		return store.Snapshot{}, err
	}
	if err := r.read(prioritiesFile, &recs.Priorities); err != nil {
		return store.Snapshot{}, err
	}
	if err := r.read(tasksFile, &recs.Tasks); err != nil {
		return store.Snapshot{}, err
	}
	if err := r.read(remindersFile, &recs.Reminders); err != nil {
		return store.Snapshot{}, err
	}
	return recs.Snapshot()
}

// Save writes all four documents. Every document is staged in a temp file
// first; the files are renamed into place only once all of them are written,
// so a failed write leaves the previous set untouched.
func (r *JSONRepository) Save(ctx context.Context, snap store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := NewRecords(snap)
	docs := []struct {
		name string
		v    any
	}{
		{categoriesFile, recs.Categories},
		{prioritiesFile, recs.Priorities},
		{tasksFile, recs.Tasks},
		{remindersFile, recs.Reminders},
	}

	staged := make([]string, 0, len(docs))
	for _, doc := range docs {
		if err := r.stage(doc.name, doc.v); err != nil {
			r.discard(staged)
			return err
		}
		staged = append(staged, doc.name)
	}
	for i, name := range staged {
		if err := os.Rename(r.path(name)+".tmp", r.path(name)); err != nil {
			r.discard(staged[i:])
			return fmt.Errorf("replace %s: %w", name, err)
		}
	}
	return nil
}

func (r *JSONRepository) Close() error {
	return nil
}

func (r *JSONRepository) path(name string) string {
	return filepath.Join(r.dataDir, name)
}

func (r *JSONRepository) read(name string, dst any) error {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("snapshot file not found, starting fresh", zap.String("file", name))
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (r *JSONRepository) stage(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(r.path(name)+".tmp", data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *JSONRepository) discard(names []string) {
	for _, name := range names {
		if err := os.Remove(r.path(name) + ".tmp"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("remove temp file", zap.String("file", name), zap.Error(err))
		}
	}
}

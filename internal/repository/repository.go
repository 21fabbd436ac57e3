package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"task-tracker/internal/store"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Repository persists whole store snapshots.
type Repository interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
	Close() error
}

// Open returns the backend selected by storage: JSON documents in dataDir or a
// SQLite database at dsn.
func Open(storage, dataDir, dsn string, logger *zap.Logger) (Repository, error) {
	switch storage {
	case StorageJSON, "":
		return NewJSONRepository(dataDir, logger)
	case StorageSQLite:
		db, err := NewDB(dsn, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", storage)
	}
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/store"
)

// SQLiteRepository stores snapshots as ordered rows, one table per collection.
type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (store.Snapshot, error) {
	var recs Records
	db := r.db.WithContext(ctx)
	if err := db.Order("position ASC").Find(&recs.Categories).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load categories: %w", err)
	}
	if err := db.Order("position ASC").Find(&recs.Priorities).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load priorities: %w", err)
	}
	if err := db.Order("position ASC").Find(&recs.Tasks).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}
	if err := db.Order("position ASC").Find(&recs.Reminders).Error; err != nil {
		return store.Snapshot{}, fmt.Errorf("load reminders: %w", err)
	}
	return recs.Snapshot()
}

// Save replaces every row in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, snap store.Snapshot) error {
	recs := NewRecords(snap)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceAll(tx, &CategoryRecord{}, recs.Categories); err != nil {
			return fmt.Errorf("save categories: %w", err)
		}
		if err := replaceAll(tx, &PriorityRecord{}, recs.Priorities); err != nil {
			return fmt.Errorf("save priorities: %w", err)
		}
		if err := replaceAll(tx, &TaskRecord{}, recs.Tasks); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
		if err := replaceAll(tx, &ReminderRecord{}, recs.Reminders); err != nil {
			return fmt.Errorf("save reminders: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func replaceAll[T any](tx *gorm.DB, table *T, rows []T) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

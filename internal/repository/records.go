package repository

import (
	"fmt"

	"task-tracker/internal/model"
	"task-tracker/internal/store"
)

// Persisted record shapes. The JSON tags define the snapshot documents; the
// gorm tags define the SQLite tables. Dates are ISO calendar dates. UID is the
// entity ID the surfaces hand out; records written without one get a fresh ID
// on load.

type CategoryRecord struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	Position int    `json:"-" gorm:"index"`
	UID      string `json:"id,omitempty" gorm:"column:uid"`
	Name     string `json:"name"`
}

type PriorityRecord struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	Position int    `json:"-" gorm:"index"`
	UID      string `json:"id,omitempty" gorm:"column:uid"`
	Name     string `json:"name"`
}

type TaskRecord struct {
	ID          uint   `json:"-" gorm:"primaryKey"`
	Position    int    `json:"-" gorm:"index"`
	UID         string `json:"id,omitempty" gorm:"column:uid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline,omitempty"`
	Status      string `json:"status"`
}

type ReminderRecord struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	Position   int    `json:"-" gorm:"index"`
	UID        string `json:"id,omitempty" gorm:"column:uid"`
	Task       string `json:"task"`
	Kind       string `json:"kind"`
	CustomDate string `json:"customDate,omitempty"`
}

// Records is the four persisted collections.
type Records struct {
	Categories []CategoryRecord
	Priorities []PriorityRecord
	Tasks      []TaskRecord
	Reminders  []ReminderRecord
}

func NewRecords(snap store.Snapshot) Records {
	recs := Records{
		Categories: make([]CategoryRecord, 0, len(snap.Categories)),
		Priorities: make([]PriorityRecord, 0, len(snap.Priorities)),
		Tasks:      make([]TaskRecord, 0, len(snap.Tasks)),
		Reminders:  make([]ReminderRecord, 0, len(snap.Reminders)),
	}
	for i, c := range snap.Categories {
		recs.Categories = append(recs.Categories, CategoryRecord{Position: i, UID: c.ID, Name: c.Name})
	}
	for i, p := range snap.Priorities {
		recs.Priorities = append(recs.Priorities, PriorityRecord{Position: i, UID: p.ID, Name: p.Name})
	}
	for i, t := range snap.Tasks {
		recs.Tasks = append(recs.Tasks, TaskRecord{
			Position:    i,
			UID:         t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Priority:    t.Priority,
			Deadline:    model.FormatDate(t.Deadline),
			Status:      string(t.Status),
		})
	}
	for i, r := range snap.Reminders {
		rec := ReminderRecord{Position: i, UID: r.ID, Task: r.TaskTitle, Kind: string(r.Kind)}
		if r.Kind == model.ReminderCustomDate {
			rec.CustomDate = model.FormatDate(r.CustomDate)
		}
		recs.Reminders = append(recs.Reminders, rec)
	}
	return recs
}

// Snapshot converts records back into a store snapshot. Only date syntax is
// checked here; the store validates everything else on Load.
func (r Records) Snapshot() (store.Snapshot, error) {
	snap := store.Snapshot{
		Categories: make([]model.Category, 0, len(r.Categories)),
		Priorities: make([]model.Priority, 0, len(r.Priorities)),
		Tasks:      make([]model.Task, 0, len(r.Tasks)),
		Reminders:  make([]store.ReminderRecord, 0, len(r.Reminders)),
	}
	for _, c := range r.Categories {
		snap.Categories = append(snap.Categories, model.Category{ID: c.UID, Name: c.Name})
	}
	for _, p := range r.Priorities {
		snap.Priorities = append(snap.Priorities, model.Priority{ID: p.UID, Name: p.Name})
	}
	for _, t := range r.Tasks {
		deadline, err := model.ParseOptionalDate(t.Deadline)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("task %q: deadline: %w", t.Title, err)
		}
		snap.Tasks = append(snap.Tasks, model.Task{
			ID:          t.UID,
			Title:       t.Title,
			Description: t.Description,
			Category:    t.Category,
			Priority:    t.Priority,
			Deadline:    deadline,
			Status:      model.Status(t.Status),
		})
	}
	for _, rem := range r.Reminders {
		custom, err := model.ParseOptionalDate(rem.CustomDate)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("reminder for %q: custom date: %w", rem.Task, err)
		}
		snap.Reminders = append(snap.Reminders, store.ReminderRecord{
			ID:         rem.UID,
			TaskTitle:  rem.Task,
			Kind:       model.ReminderKind(rem.Kind),
			CustomDate: custom,
		})
	}
	return snap, nil
}

package store

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/model"
)

// Snapshot is a full, ordered copy of the store. Reminders refer to their task
// by title, which is how they are persisted. Entity IDs are carried so they
// stay stable across restarts.
type Snapshot struct {
	Categories []model.Category
	Priorities []model.Priority
	Tasks      []model.Task
	Reminders  []ReminderRecord
}

type ReminderRecord struct {
	ID         string
	TaskTitle  string
	Kind       model.ReminderKind
	CustomDate *time.Time
}

// LoadResult reports what Load had to fix up.
type LoadResult struct {
	DefaultCreated   bool
	Delayed          int
	DroppedReminders int
}

// Snapshot copies all collections under the store lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Categories: make([]model.Category, 0, len(s.categories)),
		Priorities: make([]model.Priority, 0, len(s.priorities)),
		Tasks:      make([]model.Task, 0, len(s.taskOrder)),
		Reminders:  make([]ReminderRecord, 0, len(s.reminders)),
	}
	for _, c := range s.categories {
		snap.Categories = append(snap.Categories, *c)
	}
	for _, p := range s.priorities {
		snap.Priorities = append(snap.Priorities, *p)
	}
	for _, id := range s.taskOrder {
		snap.Tasks = append(snap.Tasks, s.tasks[id].Clone())
	}
	for _, r := range s.reminders {
		snap.Reminders = append(snap.Reminders, ReminderRecord{
			ID:         r.ID,
			TaskTitle:  s.tasks[r.TaskID].Title,
			Kind:       r.Kind,
			CustomDate: model.DayPtr(r.CustomDate),
		})
	}
	return snap
}

// Load replaces the store contents with snap. Categories and priorities are
// restored first, then tasks, then reminders resolved by task title. Default is
// created if missing and overdue tasks are marked DELAYED. Reminders that
// resolve to no task, or to a completed one, are dropped. Malformed data
// returns ErrValidation and leaves the store as it was.
func (s *Store) Load(snap Snapshot) (LoadResult, error) {
	next := &Store{now: s.now, logger: s.logger, tasks: make(map[string]*model.Task)}
	var result LoadResult

	for i, c := range snap.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return result, validationf("category #%d: name is blank", i+1)
		}
		if next.findCategory(name) != nil {
			return result, validationf("category #%d: duplicate name %q", i+1, name)
		}
		next.categories = append(next.categories, &model.Category{ID: idOrNew(c.ID), Name: name})
	}
	for i, p := range snap.Priorities {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return result, validationf("priority #%d: name is blank", i+1)
		}
		if next.findPriority(name) != nil {
			return result, validationf("priority #%d: duplicate name %q", i+1, name)
		}
		next.priorities = append(next.priorities, &model.Priority{ID: idOrNew(p.ID), Name: name})
	}
	result.DefaultCreated = next.ensureDefaultPriority()

	for i, t := range snap.Tasks {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			return result, validationf("task #%d: title is blank", i+1)
		}
		if next.findTaskByTitle(title) != nil {
			return result, validationf("task #%d: duplicate title %q", i+1, title)
		}
		category := next.findCategory(t.Category)
		if category == nil {
			return result, validationf("task %q: category does not exist: %q", title, t.Category)
		}
		priority := next.findPriority(t.Priority)
		if priority == nil {
			return result, validationf("task %q: priority does not exist: %q", title, t.Priority)
		}
		status := t.Status
		if status == "" {
			status = model.StatusOpen
		}
		if !status.Valid() {
			return result, validationf("task %q: unknown status %q", title, status)
		}
		id := idOrNew(t.ID)
		if _, taken := next.tasks[id]; taken {
			id = newID()
		}
		next.insertTask(&model.Task{
			ID:          id,
			Title:       title,
			Description: t.Description,
			Category:    category.Name,
			Priority:    priority.Name,
			Deadline:    model.DayPtr(t.Deadline),
			Status:      status,
		})
	}

	reminderIDs := make(map[string]bool, len(snap.Reminders))
	for i, r := range snap.Reminders {
		if !r.Kind.Valid() {
			return result, validationf("reminder #%d: unknown kind %q", i+1, r.Kind)
		}
		var custom *time.Time
		if r.Kind == model.ReminderCustomDate {
			if r.CustomDate == nil {
				return result, validationf("reminder #%d: custom date is missing", i+1)
			}
			custom = model.DayPtr(r.CustomDate)
		}
		t := next.findTaskByTitle(r.TaskTitle)
		if t == nil {
			s.logger.Warn("dropping reminder for unknown task", zap.String("task", r.TaskTitle))
			result.DroppedReminders++
			continue
		}
		if t.Status == model.StatusCompleted {
			s.logger.Warn("dropping reminder for completed task", zap.String("task", t.Title))
			result.DroppedReminders++
			continue
		}
		if _, err := model.ReminderDate(r.Kind, t.Deadline, custom); err != nil {
			s.logger.Warn("dropping reminder", zap.String("task", t.Title), zap.Error(err))
			result.DroppedReminders++
			continue
		}
		id := idOrNew(r.ID)
		if reminderIDs[id] {
			id = newID()
		}
		reminderIDs[id] = true
		next.reminders = append(next.reminders, &model.Reminder{ID: id, TaskID: t.ID, Kind: r.Kind, CustomDate: custom})
	}

	result.Delayed = next.markDelayedTasks()

	s.mu.Lock()
	s.tasks = next.tasks
	s.taskOrder = next.taskOrder
	s.categories = next.categories
	s.priorities = next.priorities
	s.reminders = next.reminders
	s.mu.Unlock()

	s.logger.Info("store loaded",
		zap.Int("categories", len(next.categories)),
		zap.Int("priorities", len(next.priorities)),
		zap.Int("tasks", len(next.taskOrder)),
		zap.Int("reminders", len(next.reminders)),
		zap.Bool("default_created", result.DefaultCreated),
		zap.Int("delayed", result.Delayed),
		zap.Int("dropped_reminders", result.DroppedReminders))
	return result, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return newID()
}

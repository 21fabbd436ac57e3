package store

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/model"
)

// TaskUpdate carries optional task changes. Blank strings and a nil deadline
// leave the field untouched.
type TaskUpdate struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Deadline    *time.Time
}

// AddTask validates and inserts a task. The stored copy gets a fresh ID,
// canonical category/priority names and, if overdue, the DELAYED status.
func (s *Store) AddTask(task model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(task.Title)
	if title == "" {
		return model.Task{}, validationf("task title is required")
	}
	if s.findTaskByTitle(title) != nil {
		return model.Task{}, validationf("task already exists: %q", title)
	}
	category := s.findCategory(task.Category)
	if category == nil {
		return model.Task{}, validationf("category does not exist: %q", task.Category)
	}
	priority := s.findPriority(task.Priority)
	if priority == nil {
		return model.Task{}, validationf("priority does not exist: %q", task.Priority)
	}
	status := task.Status
	if status == "" {
		status = model.StatusOpen
	}
	if !status.Valid() {
		return model.Task{}, validationf("unknown status %q", status)
	}

	stored := &model.Task{
		ID:          newID(),
		Title:       title,
		Description: task.Description,
		Category:    category.Name,
		Priority:    priority.Name,
		Deadline:    model.DayPtr(task.Deadline),
		Status:      status,
	}
	markDelayed(stored, s.today())
	s.insertTask(stored)

	s.logger.Debug("task added", zap.String("id", stored.ID), zap.String("title", stored.Title), zap.String("status", string(stored.Status)))
	return stored.Clone(), nil
}

// RemoveTask deletes a task and every reminder that points at it.
func (s *Store) RemoveTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return notFoundf("task %q does not exist", id)
	}
	ids := map[string]bool{id: true}
	s.deleteTasks(ids)
	removed := s.removeReminders(ids)

	s.logger.Debug("task removed", zap.String("id", id), zap.String("title", t.Title), zap.Int("reminders", removed))
	return nil
}

// UpdateTask applies the non-blank fields of upd. Nothing changes unless every
// supplied field is valid.
func (s *Store) UpdateTask(id string, upd TaskUpdate) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFoundf("task %q does not exist", id)
	}
	today := s.today()
	next := t.Clone()

	if title := strings.TrimSpace(upd.Title); title != "" {
		if other := s.findTaskByTitle(title); other != nil && other.ID != id {
			return model.Task{}, validationf("task already exists: %q", title)
		}
		next.Title = title
	}
	if strings.TrimSpace(upd.Description) != "" {
		next.Description = upd.Description
	}
	if strings.TrimSpace(upd.Category) != "" {
		category := s.findCategory(upd.Category)
		if category == nil {
			return model.Task{}, validationf("category does not exist: %q", upd.Category)
		}
		next.Category = category.Name
	}
	if strings.TrimSpace(upd.Priority) != "" {
		priority := s.findPriority(upd.Priority)
		if priority == nil {
			return model.Task{}, validationf("priority does not exist: %q", upd.Priority)
		}
		next.Priority = priority.Name
	}
	if upd.Deadline != nil {
		deadline := model.Day(*upd.Deadline)
		if deadline.Before(today) {
			return model.Task{}, validationf("deadline %s is in the past", deadline.Format(model.DateLayout))
		}
		next.Deadline = &deadline
	}

	markDelayed(&next, today)
	*t = next

	s.logger.Debug("task updated", zap.String("id", id), zap.String("title", t.Title), zap.String("status", string(t.Status)))
	return t.Clone(), nil
}

// UpdateTaskStatus sets the status. Completing a task drops its reminders; an
// overdue task that is not completed stays DELAYED.
func (s *Store) UpdateTaskStatus(id string, status model.Status) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFoundf("task %q does not exist", id)
	}
	if status == "" {
		return model.Task{}, validationf("task status is required")
	}
	if !status.Valid() {
		return model.Task{}, validationf("unknown status %q", status)
	}

	t.Status = status
	removed := 0
	if status == model.StatusCompleted {
		removed = s.removeReminders(map[string]bool{id: true})
	}
	markDelayed(t, s.today())

	s.logger.Debug("task status changed", zap.String("id", id), zap.String("status", string(t.Status)), zap.Int("reminders_removed", removed))
	return t.Clone(), nil
}

// Tasks returns every task in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

func (s *Store) Task(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFoundf("task %q does not exist", id)
	}
	return t.Clone(), nil
}

// TaskByTitle looks a task up by case-insensitive title.
func (s *Store) TaskByTitle(title string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTaskByTitle(title)
	if t == nil {
		return model.Task{}, notFoundf("task does not exist: %q", title)
	}
	return t.Clone(), nil
}

package store

import (
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/model"
)

// DueReminder joins a reminder with its task and computed date.
type DueReminder struct {
	Reminder model.Reminder
	Task     model.Task
	Date     time.Time
}

// AddReminder attaches a reminder to the task with the given title.
func (s *Store) AddReminder(taskTitle string, kind model.ReminderKind, customDate *time.Time) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTaskByTitle(taskTitle)
	if t == nil {
		return model.Reminder{}, notFoundf("task does not exist: %q", taskTitle)
	}
	if t.Status == model.StatusCompleted {
		return model.Reminder{}, statef("cannot add a reminder for completed task %q", t.Title)
	}
	custom, err := s.checkReminder(t, kind, customDate)
	if err != nil {
		return model.Reminder{}, err
	}

	r := &model.Reminder{ID: newID(), TaskID: t.ID, Kind: kind, CustomDate: custom}
	s.reminders = append(s.reminders, r)

	s.logger.Debug("reminder added", zap.String("id", r.ID), zap.String("task", t.Title), zap.String("kind", string(kind)))
	return r.Clone(), nil
}

// UpdateReminder changes kind and custom date in place after the same checks
// as AddReminder.
func (s *Store) UpdateReminder(id string, kind model.ReminderKind, customDate *time.Time) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		return model.Reminder{}, notFoundf("reminder %q does not exist", id)
	}
	r := s.reminders[idx]
	t, ok := s.tasks[r.TaskID]
	if !ok {
		return model.Reminder{}, notFoundf("task %q of reminder %q does not exist", r.TaskID, id)
	}
	if t.Status == model.StatusCompleted {
		return model.Reminder{}, statef("cannot modify a reminder for completed task %q", t.Title)
	}
	custom, err := s.checkReminder(t, kind, customDate)
	if err != nil {
		return model.Reminder{}, err
	}

	r.Kind = kind
	r.CustomDate = custom

	s.logger.Debug("reminder updated", zap.String("id", r.ID), zap.String("task", t.Title), zap.String("kind", string(kind)))
	return r.Clone(), nil
}

func (s *Store) RemoveReminder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		return notFoundf("reminder %q does not exist", id)
	}
	s.reminders = append(s.reminders[:idx], s.reminders[idx+1:]...)

	s.logger.Debug("reminder removed", zap.String("id", id))
	return nil
}

func (s *Store) Reminders() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, r.Clone())
	}
	return out
}

func (s *Store) Reminder(id string) (model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		return model.Reminder{}, notFoundf("reminder %q does not exist", id)
	}
	return s.reminders[idx].Clone(), nil
}

func (s *Store) RemindersForTask(taskID string) []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Reminder, 0)
	for _, r := range s.reminders {
		if r.TaskID == taskID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// ReminderDate returns the day the reminder fires.
func (s *Store) ReminderDate(id string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.reminderIndex(id)
	if idx < 0 {
		return time.Time{}, notFoundf("reminder %q does not exist", id)
	}
	r := s.reminders[idx]
	t := s.tasks[r.TaskID]
	date, err := model.ReminderDate(r.Kind, t.Deadline, r.CustomDate)
	if err != nil {
		return time.Time{}, validationf("reminder %q: %v", id, err)
	}
	return date, nil
}

// DueRemindersOn lists reminders whose computed date is the calendar day of date.
func (s *Store) DueRemindersOn(date time.Time) []DueReminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := model.Day(date)
	out := make([]DueReminder, 0)
	for _, r := range s.reminders {
		t := s.tasks[r.TaskID]
		fires, err := model.ReminderDate(r.Kind, t.Deadline, r.CustomDate)
		if err != nil || !fires.Equal(day) {
			continue
		}
		out = append(out, DueReminder{Reminder: r.Clone(), Task: t.Clone(), Date: fires})
	}
	return out
}

// checkReminder validates kind and the computed date for t. It returns the
// custom date to store, which is nil unless kind is CUSTOM_DATE.
func (s *Store) checkReminder(t *model.Task, kind model.ReminderKind, customDate *time.Time) (*time.Time, error) {
	if !kind.Valid() {
		return nil, validationf("unknown reminder kind %q", kind)
	}
	var custom *time.Time
	if kind == model.ReminderCustomDate {
		custom = model.DayPtr(customDate)
	}
	date, err := model.ReminderDate(kind, t.Deadline, custom)
	if err != nil {
		return nil, validationf("reminder for %q: %v", t.Title, err)
	}
	if date.Before(s.today()) {
		return nil, validationf("reminder date %s is in the past", date.Format(model.DateLayout))
	}
	return custom, nil
}

func (s *Store) reminderIndex(id string) int {
	for i, r := range s.reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

package model

import "time"

// Task represents a single item in the tracker.
type Task struct {
	ID          string
	Title       string
	Description string
	Category    string // category name
	Priority    string // priority name
	Deadline    *time.Time
	Status      Status
}

// NewTask builds an OPEN task. Deadline is normalised to a calendar day.
func NewTask(title, description, category, priority string, deadline *time.Time) Task {
	return Task{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Deadline:    DayPtr(deadline),
		Status:      StatusOpen,
	}
}

// Overdue reports whether the deadline lies before today and the task is still open-ended.
func (t Task) Overdue(today time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(Day(today)) && t.Status != StatusCompleted
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	t.Deadline = DayPtr(t.Deadline)
	return t
}

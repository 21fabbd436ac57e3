package store

import (
	"strings"

	"task-tracker/internal/model"
)

// TaskFilter narrows SearchTasks. Empty fields match everything.
type TaskFilter struct {
	Title    string // case-insensitive substring
	Category string // case-insensitive exact name
	Priority string // case-insensitive exact name
}

// SearchTasks returns the tasks matching every supplied filter. The result is
// never nil.
func (s *Store) SearchTasks(filter TaskFilter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(filter.Title)
	results := make([]model.Task, 0)
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(t.Category, filter.Category) {
			continue
		}
		if filter.Priority != "" && !strings.EqualFold(t.Priority, filter.Priority) {
			continue
		}
		results = append(results, t.Clone())
	}
	return results
}

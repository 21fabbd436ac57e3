package store

import "task-tracker/internal/model"

// Stats summarises the task list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Delayed   int `json:"delayed"`
	DueSoon   int `json:"dueSoon"` // deadline within the next seven days, today included
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	horizon := today.AddDate(0, 0, 7)
	var st Stats
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		st.Total++
		switch t.Status {
		case model.StatusCompleted:
			st.Completed++
		case model.StatusDelayed:
			st.Delayed++
		}
		if t.Deadline != nil && !t.Deadline.Before(today) && t.Deadline.Before(horizon) {
			st.DueSoon++
		}
	}
	return st
}

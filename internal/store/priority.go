package store

import (
	"strings"

	"go.uber.org/zap"

	"task-tracker/internal/model"
)

func (s *Store) AddPriority(name string) (model.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Priority{}, validationf("priority name cannot be empty")
	}
	if s.findPriority(name) != nil {
		return model.Priority{}, validationf("priority already exists: %q", name)
	}
	p := &model.Priority{ID: newID(), Name: name}
	s.priorities = append(s.priorities, p)

	s.logger.Debug("priority added", zap.String("id", p.ID), zap.String("name", p.Name))
	return *p, nil
}

// RemovePriority deletes a priority and moves its tasks to Default. Default
// itself cannot be removed.
func (s *Store) RemovePriority(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.priorityIndex(id)
	if idx < 0 {
		return notFoundf("priority %q does not exist", id)
	}
	p := s.priorities[idx]
	if p.IsDefault() {
		return validationf("cannot delete the %s priority", model.DefaultPriorityName)
	}
	fallback := s.findPriority(model.DefaultPriorityName)
	s.priorities = append(s.priorities[:idx], s.priorities[idx+1:]...)

	moved := 0
	for _, taskID := range s.taskOrder {
		if t := s.tasks[taskID]; sameName(t.Priority, p.Name) {
			t.Priority = fallback.Name
			moved++
		}
	}

	s.logger.Debug("priority removed", zap.String("id", p.ID), zap.String("name", p.Name), zap.Int("tasks_reassigned", moved))
	return nil
}

// RenamePriority changes the label in place and relabels referencing tasks.
func (s *Store) RenamePriority(id, newName string) (model.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.priorityIndex(id)
	if idx < 0 {
		return model.Priority{}, notFoundf("priority %q does not exist", id)
	}
	p := s.priorities[idx]
	if p.IsDefault() {
		return model.Priority{}, validationf("cannot rename the %s priority", model.DefaultPriorityName)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return model.Priority{}, validationf("new priority name cannot be empty")
	}
	if other := s.findPriority(newName); other != nil && other.ID != p.ID {
		return model.Priority{}, validationf("priority with name %q already exists", newName)
	}

	old := p.Name
	p.Name = newName
	relabeled := 0
	for _, taskID := range s.taskOrder {
		if t := s.tasks[taskID]; sameName(t.Priority, old) {
			t.Priority = newName
			relabeled++
		}
	}

	s.logger.Debug("priority renamed", zap.String("from", old), zap.String("to", newName), zap.Int("tasks", relabeled))
	return *p, nil
}

func (s *Store) Priorities() []model.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Priority, 0, len(s.priorities))
	for _, p := range s.priorities {
		out = append(out, *p)
	}
	return out
}

func (s *Store) PriorityByName(name string) (model.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPriority(name)
	if p == nil {
		return model.Priority{}, notFoundf("priority does not exist: %q", name)
	}
	return *p, nil
}

func (s *Store) priorityIndex(id string) int {
	for i, p := range s.priorities {
		if p.ID == id {
			return i
		}
	}
	return -1
}

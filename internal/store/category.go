package store

import (
	"strings"

	"go.uber.org/zap"

	"task-tracker/internal/model"
)

func (s *Store) AddCategory(name string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, validationf("category name cannot be empty")
	}
	if s.findCategory(name) != nil {
		return model.Category{}, validationf("category already exists: %q", name)
	}
	c := &model.Category{ID: newID(), Name: name}
	s.categories = append(s.categories, c)

	s.logger.Debug("category added", zap.String("id", c.ID), zap.String("name", c.Name))
	return *c, nil
}

// RemoveCategory deletes the category, every task filed under it and those
// tasks' reminders.
func (s *Store) RemoveCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(id)
	if idx < 0 {
		return notFoundf("category %q does not exist", id)
	}
	c := s.categories[idx]
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	doomed := make(map[string]bool)
	for _, taskID := range s.taskOrder {
		if sameName(s.tasks[taskID].Category, c.Name) {
			doomed[taskID] = true
		}
	}
	s.deleteTasks(doomed)
	removed := s.removeReminders(doomed)

	s.logger.Debug("category removed",
		zap.String("id", c.ID),
		zap.String("name", c.Name),
		zap.Int("tasks", len(doomed)),
		zap.Int("reminders", removed))
	return nil
}

// RenameCategory changes the label in place and relabels every task filed
// under the old name, so task references stay valid.
func (s *Store) RenameCategory(id, newName string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(id)
	if idx < 0 {
		return model.Category{}, notFoundf("category %q does not exist", id)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return model.Category{}, validationf("new category name cannot be empty")
	}
	c := s.categories[idx]
	if other := s.findCategory(newName); other != nil && other.ID != c.ID {
		return model.Category{}, validationf("category with name %q already exists", newName)
	}

	old := c.Name
	c.Name = newName
	relabeled := 0
	for _, taskID := range s.taskOrder {
		if t := s.tasks[taskID]; sameName(t.Category, old) {
			t.Category = newName
			relabeled++
		}
	}

	s.logger.Debug("category renamed", zap.String("from", old), zap.String("to", newName), zap.Int("tasks", relabeled))
	return *c, nil
}

func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out
}

func (s *Store) CategoryByName(name string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCategory(name)
	if c == nil {
		return model.Category{}, notFoundf("category does not exist: %q", name)
	}
	return *c, nil
}

func (s *Store) categoryIndex(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

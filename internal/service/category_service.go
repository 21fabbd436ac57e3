package service

import (
	"context"

	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/store"
)

// CategoryService manages categories and priorities. Lookups accept either an
// ID or a name.
type CategoryService struct {
	store   *store.Store
	persist *Persister
	logger  *zap.Logger
}

func NewCategoryService(st *store.Store, persist *Persister, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{store: st, persist: persist, logger: logger}
}

func (s *CategoryService) ListCategories() []model.Category {
	return s.store.Categories()
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := s.store.AddCategory(name)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category created", zap.String("name", c.Name))
	return c, s.persist.Save(ctx)
}

func (s *CategoryService) RenameCategory(ctx context.Context, ref, newName string) (model.Category, error) {
	c, err := s.FindCategory(ref)
	if err != nil {
		return model.Category{}, err
	}
	renamed, err := s.store.RenameCategory(c.ID, newName)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category renamed", zap.String("from", c.Name), zap.String("to", renamed.Name))
	return renamed, s.persist.Save(ctx)
}

// DeleteCategory removes the category with all of its tasks.
func (s *CategoryService) DeleteCategory(ctx context.Context, ref string) error {
	c, err := s.FindCategory(ref)
	if err != nil {
		return err
	}
	if err := s.store.RemoveCategory(c.ID); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("name", c.Name))
	return s.persist.Save(ctx)
}

func (s *CategoryService) FindCategory(ref string) (model.Category, error) {
	for _, c := range s.store.Categories() {
		if c.ID == ref {
			return c, nil
		}
	}
	return s.store.CategoryByName(ref)
}

func (s *CategoryService) ListPriorities() []model.Priority {
	return s.store.Priorities()
}

func (s *CategoryService) CreatePriority(ctx context.Context, name string) (model.Priority, error) {
	p, err := s.store.AddPriority(name)
	if err != nil {
		return model.Priority{}, err
	}
	s.logger.Info("priority created", zap.String("name", p.Name))
	return p, s.persist.Save(ctx)
}

func (s *CategoryService) RenamePriority(ctx context.Context, ref, newName string) (model.Priority, error) {
	p, err := s.FindPriority(ref)
	if err != nil {
		return model.Priority{}, err
	}
	renamed, err := s.store.RenamePriority(p.ID, newName)
	if err != nil {
		return model.Priority{}, err
	}
	s.logger.Info("priority renamed", zap.String("from", p.Name), zap.String("to", renamed.Name))
	return renamed, s.persist.Save(ctx)
}

// DeletePriority removes a priority; its tasks fall back to Default.
func (s *CategoryService) DeletePriority(ctx context.Context, ref string) error {
	p, err := s.FindPriority(ref)
	if err != nil {
		return err
	}
	if err := s.store.RemovePriority(p.ID); err != nil {
		return err
	}
	s.logger.Info("priority deleted", zap.String("name", p.Name))
	return s.persist.Save(ctx)
}

func (s *CategoryService) FindPriority(ref string) (model.Priority, error) {
	for _, p := range s.store.Priorities() {
		if p.ID == ref {
			return p, nil
		}
	}
	return s.store.PriorityByName(ref)
}

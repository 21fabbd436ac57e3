package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/store"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Deadline    *time.Time
}

// TaskService wraps task-related business logic.
type TaskService struct {
	store   *store.Store
	persist *Persister
	logger  *zap.Logger
}

func NewTaskService(st *store.Store, persist *Persister, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{store: st, persist: persist, logger: logger}
}

// CreateTask adds a task. An empty priority means Default.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (model.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = model.DefaultPriorityName
	}
	task, err := s.store.AddTask(model.NewTask(input.Title, input.Description, input.Category, priority, input.Deadline))
	if err != nil {
		return model.Task{}, err
	}
	s.logger.Info("task created", zap.String("title", task.Title), zap.String("status", string(task.Status)))
	return task, s.persist.Save(ctx)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, upd store.TaskUpdate) (model.Task, error) {
	task, err := s.store.UpdateTask(id, upd)
	if err != nil {
		return model.Task{}, err
	}
	s.logger.Info("task updated", zap.String("title", task.Title))
	return task, s.persist.Save(ctx)
}

func (s *TaskService) SetStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	task, err := s.store.UpdateTaskStatus(id, status)
	if err != nil {
		return model.Task{}, err
	}
	s.logger.Info("task status changed", zap.String("title", task.Title), zap.String("status", string(task.Status)))
	return task, s.persist.Save(ctx)
}

// CompleteTask marks a task as done, which also drops its reminders.
func (s *TaskService) CompleteTask(ctx context.Context, id string) (model.Task, error) {
	return s.SetStatus(ctx, id, model.StatusCompleted)
}

// DeleteTask removes a task together with its reminders.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.RemoveTask(id); err != nil {
		return err
	}
	s.logger.Info("task deleted", zap.String("id", id))
	return s.persist.Save(ctx)
}

// GetTask resolves ref as a task ID first and as a title second.
func (s *TaskService) GetTask(ref string) (model.Task, error) {
	task, err := s.store.Task(ref)
	if errors.Is(err, store.ErrNotFound) {
		return s.store.TaskByTitle(ref)
	}
	return task, err
}

func (s *TaskService) ListTasks() []model.Task {
	return s.store.Tasks()
}

func (s *TaskService) Search(filter store.TaskFilter) []model.Task {
	return s.store.SearchTasks(filter)
}

// RefreshDelayed marks newly overdue tasks as DELAYED and persists if any changed.
func (s *TaskService) RefreshDelayed(ctx context.Context) (int, error) {
	changed := s.store.RefreshDelayed()
	if changed == 0 {
		return 0, nil
	}
	s.logger.Info("tasks became delayed", zap.Int("count", changed))
	return changed, s.persist.Save(ctx)
}

func (s *TaskService) Stats() store.Stats {
	return s.store.Stats()
}

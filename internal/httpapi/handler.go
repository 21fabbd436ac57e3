// Package httpapi exposes the task tracker as a local JSON API.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
)

type Handler struct {
	tasks      *service.TaskService
	categories *service.CategoryService
	reminders  *service.ReminderService
	logger     *zap.Logger
	now        func() time.Time
}

func NewHandler(tasks *service.TaskService, categories *service.CategoryService, reminders *service.ReminderService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{tasks: tasks, categories: categories, reminders: reminders, logger: logger, now: time.Now}
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline,omitempty"`
	Status      string `json:"status"`
}

func newTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		Deadline:    model.FormatDate(t.Deadline),
		Status:      string(t.Status),
	}
}

func newTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}

type reminderResponse struct {
	ID         string `json:"id"`
	TaskID     string `json:"taskId"`
	Task       string `json:"task,omitempty"`
	Kind       string `json:"kind"`
	CustomDate string `json:"customDate,omitempty"`
	Date       string `json:"date,omitempty"`
}

func (h *Handler) newReminderResponse(r model.Reminder) reminderResponse {
	resp := reminderResponse{
		ID:         r.ID,
		TaskID:     r.TaskID,
		Kind:       string(r.Kind),
		CustomDate: model.FormatDate(r.CustomDate),
	}
	if task, err := h.tasks.GetTask(r.TaskID); err == nil {
		resp.Task = task.Title
	}
	if date, err := h.reminders.ReminderDate(r.ID); err == nil {
		resp.Date = date.Format(model.DateLayout)
	}
	return resp
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// writeError maps store error kinds onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrState):
		status = http.StatusConflict
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /stats
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.Stats())
}

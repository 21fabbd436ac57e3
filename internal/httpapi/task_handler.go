package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /tasks?title=&category=&priority=
func (h *Handler) ListTasks(c *gin.Context) {
	filter := store.TaskFilter{
		Title:    c.Query("title"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
	}
	c.JSON(http.StatusOK, newTaskResponses(h.tasks.Search(filter)))
}

// POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	deadline, err := model.ParseOptionalDate(req.Deadline)
	if err != nil {
		badRequest(c, err)
		return
	}
	task, err := h.tasks.CreateTask(c.Request.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Deadline:    deadline,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// GET /tasks/:id accepts an ID or a title.
func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// PATCH /tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	deadline, err := model.ParseOptionalDate(req.Deadline)
	if err != nil {
		badRequest(c, err)
		return
	}
	task, err := h.tasks.GetTask(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	task, err = h.tasks.UpdateTask(c.Request.Context(), task.ID, store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Deadline:    deadline,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// PUT /tasks/:id/status
func (h *Handler) SetTaskStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		badRequest(c, err)
		return
	}
	task, err := h.tasks.GetTask(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	task, err = h.tasks.SetStatus(c.Request.Context(), task.ID, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.tasks.DeleteTask(c.Request.Context(), task.ID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /tasks/:id/reminders
func (h *Handler) TaskReminders(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	reminders := h.reminders.RemindersForTask(task.ID)
	out := make([]reminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, h.newReminderResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

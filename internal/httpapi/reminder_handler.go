package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/model"
)

type reminderRequest struct {
	Task       string `json:"task"`
	Kind       string `json:"kind" binding:"required"`
	CustomDate string `json:"customDate"`
}

type dueReminderResponse struct {
	Reminder reminderResponse `json:"reminder"`
	Task     taskResponse     `json:"task"`
	Date     string           `json:"date"`
}

// GET /reminders
func (h *Handler) ListReminders(c *gin.Context) {
	reminders := h.reminders.ListReminders()
	out := make([]reminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, h.newReminderResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// POST /reminders
func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	kind, err := model.ParseReminderKind(req.Kind)
	if err != nil {
		badRequest(c, err)
		return
	}
	custom, err := model.ParseOptionalDate(req.CustomDate)
	if err != nil {
		badRequest(c, err)
		return
	}
	reminder, err := h.reminders.CreateReminder(c.Request.Context(), req.Task, kind, custom)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.newReminderResponse(reminder))
}

// PATCH /reminders/:id
func (h *Handler) UpdateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	kind, err := model.ParseReminderKind(req.Kind)
	if err != nil {
		badRequest(c, err)
		return
	}
	custom, err := model.ParseOptionalDate(req.CustomDate)
	if err != nil {
		badRequest(c, err)
		return
	}
	reminder, err := h.reminders.UpdateReminder(c.Request.Context(), c.Param("id"), kind, custom)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.newReminderResponse(reminder))
}

// DELETE /reminders/:id
func (h *Handler) DeleteReminder(c *gin.Context) {
	if err := h.reminders.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /reminders/:id/snooze
func (h *Handler) SnoozeReminder(c *gin.Context) {
	until, err := h.reminders.Snooze(c.Param("id"), h.now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"until": until})
}

// GET /reminders/due?date=YYYY-MM-DD lists reminders firing on date (today by default).
func (h *Handler) DueReminders(c *gin.Context) {
	date := model.Day(h.now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		date = parsed
	}
	due := h.reminders.DueOn(date)
	out := make([]dueReminderResponse, 0, len(due))
	for _, d := range due {
		out = append(out, dueReminderResponse{
			Reminder: h.newReminderResponse(d.Reminder),
			Task:     newTaskResponse(d.Task),
			Date:     d.Date.Format(model.DateLayout),
		})
	}
	c.JSON(http.StatusOK, out)
}

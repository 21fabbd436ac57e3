package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with logging, recovery and all routes.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	return SetupRoutes(r, h)
}

func SetupRoutes(r *gin.Engine, h *Handler) *gin.Engine {
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PATCH("/:id", h.UpdateTask)
		tasks.PUT("/:id/status", h.SetTaskStatus)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.GET("/:id/reminders", h.TaskReminders)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PATCH("/:id", h.RenameCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	priorities := r.Group("/priorities")
	{
		priorities.GET("", h.ListPriorities)
		priorities.POST("", h.CreatePriority)
		priorities.PATCH("/:id", h.RenamePriority)
		priorities.DELETE("/:id", h.DeletePriority)
	}

	reminders := r.Group("/reminders")
	{
		reminders.GET("", h.ListReminders)
		reminders.POST("", h.CreateReminder)
		reminders.GET("/due", h.DueReminders)
		reminders.PATCH("/:id", h.UpdateReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
		reminders.POST("/:id/snooze", h.SnoozeReminder)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.categories.ListCategories())
}

// POST /categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.categories.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// PATCH /categories/:id accepts an ID or a name.
func (h *Handler) RenameCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category, err := h.categories.RenameCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /priorities
func (h *Handler) ListPriorities(c *gin.Context) {
	c.JSON(http.StatusOK, h.categories.ListPriorities())
}

// POST /priorities
func (h *Handler) CreatePriority(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	priority, err := h.categories.CreatePriority(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, priority)
}

// PATCH /priorities/:id
func (h *Handler) RenamePriority(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	priority, err := h.categories.RenamePriority(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, priority)
}

// DELETE /priorities/:id
func (h *Handler) DeletePriority(c *gin.Context) {
	if err := h.categories.DeletePriority(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

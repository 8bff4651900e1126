package handlers

import (
	"net/http"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the operator console. Staff gating happens inside the
// console capability, not here.
type AdminHandler struct {
	console *store.Console
}

func NewAdminHandler(console *store.Console) *AdminHandler {
	return &AdminHandler{console: console}
}

func (h *AdminHandler) Entities(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	entities, err := h.console.Entities(c.Request.Context(), principalID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, entities)
}

func submissionFilterFromQuery(c *gin.Context) store.SubmissionFilter {
	var f store.SubmissionFilter
	if raw, ok := c.GetQuery("is_read"); ok {
		isRead := raw == "true" || raw == "1"
		f.IsRead = &isRead
	}
	if raw, ok := c.GetQuery("created_after"); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			f.CreatedAfter = &t
		}
	}
	return f
}

// ListSubmissions supports the is_read / created_after filters plus a free
// text query over the searchable fields.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	filter := submissionFilterFromQuery(c)

	query := c.Query("q")
	submissions, err := h.console.SearchSubmissions(c.Request.Context(), principalID, query, filter)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	users, err := h.console.ListUsers(c.Request.Context(), principalID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type bulkActionRequest struct {
	IDs []uint `json:"ids"`
}

// RunBulkAction dispatches a named action, e.g.
// POST /admin/actions/submissions/mark_read with {"ids": [1,2,3]}.
func (h *AdminHandler) RunBulkAction(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	entity := c.Param("entity")
	action := c.Param("action")

	var req bulkActionRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.console.RunBulkAction(c.Request.Context(), principalID, entity, action, req.IDs)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

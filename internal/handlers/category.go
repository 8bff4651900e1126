package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	content *store.ContentStore
}

func NewCategoryHandler(content *store.ContentStore) *CategoryHandler {
	return &CategoryHandler{content: content}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.content.ListCategories(c.Request.Context())
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Articles lists a category's articles newest-first.
func (h *CategoryHandler) Articles(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	articles, err := h.content.ListArticlesByCategory(c.Request.Context(), id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.content.CreateCategory(c.Request.Context(), principalID, req.Name, req.Description)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.content.DeleteCategory(c.Request.Context(), principalID, id); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	content *store.ContentStore
}

func NewArticleHandler(content *store.ContentStore) *ArticleHandler {
	return &ArticleHandler{content: content}
}

const articleListCacheKey = "article:list"

// List returns all articles newest-first. The result is cached briefly since
// this is the front-page query.
func (h *ArticleHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(articleListCacheKey); cached != nil {
		if articles, ok := cached.([]models.Article); ok {
			c.JSON(http.StatusOK, articles)
			return
		}
	}

	articles, err := h.content.ListArticles(c.Request.Context())
	if err != nil {
		abortStoreError(c, err)
		return
	}

	utils.GetCache().Set(articleListCacheKey, articles, 1*time.Minute)
	c.JSON(http.StatusOK, articles)
}

// Detail returns one article with rendered body and its comments.
func (h *ArticleHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	article, err := h.content.GetArticle(c.Request.Context(), id)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	comments, err := h.content.ListComments(c.Request.Context(), id)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":  article,
		"comments": comments,
	})
}

type createArticleRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorID   uint   `json:"author_id"`
	CategoryID *uint  `json:"category_id"`
}

// Create makes a new article. The author is chosen explicitly in the request,
// matching the creation form.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.content.CreateArticle(c.Request.Context(), store.NewArticle{
		Title:      req.Title,
		Body:       req.Body,
		AuthorID:   req.AuthorID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}

	utils.GetCache().Delete(articleListCacheKey)
	c.JSON(http.StatusCreated, article)
}

type articlePatchRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func (h *ArticleHandler) Update(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	id := utils.StringToUint(c.Param("id"))

	var req articlePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.content.UpdateArticle(c.Request.Context(), principalID, id, store.ArticlePatch{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}

	utils.GetCache().Delete(articleListCacheKey)
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.content.DeleteArticle(c.Request.Context(), principalID, id); err != nil {
		abortStoreError(c, err)
		return
	}

	utils.GetCache().Delete(articleListCacheKey)
	c.Status(http.StatusNoContent)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

// CreateComment attaches a comment by the acting principal to an article.
func (h *ArticleHandler) CreateComment(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	articleID := utils.StringToUint(c.Param("id"))

	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.content.AddComment(c.Request.Context(), store.NewComment{
		ArticleID: articleID,
		AuthorID:  principalID,
		Text:      req.Text,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

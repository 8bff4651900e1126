package store

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

// ModifyPolicy decides whether a principal may update or delete an article.
// It is pluggable so deployments that gate modification upstream can install
// an allow-all policy instead.
type ModifyPolicy func(principal *models.User, article *models.Article) bool

// AuthorOrSuperuser is the default policy.
func AuthorOrSuperuser(principal *models.User, article *models.Article) bool {
	return principal.IsSuperuser || principal.ID == article.AuthorID
}

// ContentStore owns articles, categories and comments.
type ContentStore struct {
	db        *gorm.DB
	canModify ModifyPolicy
}

func NewContentStore(gdb *gorm.DB) *ContentStore {
	return &ContentStore{db: gdb, canModify: AuthorOrSuperuser}
}

// SetModifyPolicy replaces the article modification policy.
func (s *ContentStore) SetModifyPolicy(p ModifyPolicy) {
	if p != nil {
		s.canModify = p
	}
}

type NewArticle struct {
	Title      string `validate:"required,max=200"`
	Body       string `validate:"required"`
	AuthorID   uint   `validate:"required"`
	CategoryID *uint
}

// ArticlePatch only covers title and body; author and category are fixed
// after creation.
type ArticlePatch struct {
	Title *string `validate:"omitempty,min=1,max=200"`
	Body  *string `validate:"omitempty,min=1"`
}

// fillCommentCounts batch-fills the comment counter for a page of articles.
func (s *ContentStore) fillCommentCounts(ctx context.Context, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uint, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	type countRow struct {
		ArticleID uint
		Count     int
	}
	var rows []countRow
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("article_id, COUNT(*) as count").
		Where("article_id IN ?", ids).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.ArticleID] = r.Count
	}
	for i := range articles {
		articles[i].CommentCount = counts[articles[i].ID]
	}
	return nil
}

// ListArticles returns all articles newest-first.
func (s *ContentStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ContentStore) ListArticlesByAuthor(ctx context.Context, userID uint) ([]models.Article, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %d", userID)
		}
		return nil, err
	}

	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("author_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ContentStore) ListArticlesByCategory(ctx context.Context, categoryID uint) ([]models.Article, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("category %d", categoryID)
		}
		return nil, err
	}

	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("category_id = ?", categoryID).
		Order("created_at DESC, id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle loads one article with its author, category, comment count and
// the sanitized HTML rendering of its markdown body.
func (s *ContentStore) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Category").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article %d", id)
		}
		return nil, err
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.Comment{}).Where("article_id = ?", id).Count(&count)
	article.CommentCount = int(count)
	article.BodyHTML = utils.RenderMarkdown(article.Body)
	return &article, nil
}

func (s *ContentStore) CreateArticle(ctx context.Context, in NewArticle) (*models.Article, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	article := models.Article{
		Title:      in.Title,
		Body:       in.Body,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.First(&author, in.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("author %d", in.AuthorID)
			}
			return err
		}
		if in.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *in.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("category %d", *in.CategoryID)
				}
				return err
			}
		}
		return tx.Create(&article).Error
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ContentStore) UpdateArticle(ctx context.Context, principalID, id uint, patch ArticlePatch) (*models.Article, error) {
	if err := checkStruct(patch); err != nil {
		return nil, err
	}

	var article models.Article
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("article %d", id)
			}
			return err
		}

		principal, err := s.requirePrincipal(tx, principalID)
		if err != nil {
			return err
		}
		if !s.canModify(principal, &article) {
			return authorizationf("user %d may not modify article %d", principalID, id)
		}

		updates := make(map[string]interface{})
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Body != nil {
			updates["body"] = *patch.Body
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&article).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&article, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle removes the article and every comment attached to it.
func (s *ContentStore) DeleteArticle(ctx context.Context, principalID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("article %d", id)
			}
			return err
		}

		principal, err := s.requirePrincipal(tx, principalID)
		if err != nil {
			return err
		}
		if !s.canModify(principal, &article) {
			return authorizationf("user %d may not delete article %d", principalID, id)
		}

		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

type NewComment struct {
	ArticleID uint   `validate:"required"`
	AuthorID  uint   `validate:"required"`
	Text      string `validate:"required"`
}

func (s *ContentStore) AddComment(ctx context.Context, in NewComment) (*models.Comment, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ArticleID: in.ArticleID,
		AuthorID:  in.AuthorID,
		Text:      in.Text,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, in.ArticleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("article %d", in.ArticleID)
			}
			return err
		}
		var author models.User
		if err := tx.First(&author, in.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("author %d", in.AuthorID)
			}
			return err
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns an article's comments oldest-first.
func (s *ContentStore) ListComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("article %d", articleID)
		}
		return nil, err
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *ContentStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory is an administrator-only operation.
func (s *ContentStore) CreateCategory(ctx context.Context, principalID uint, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, validationf("category name is required")
	}

	category := models.Category{Name: name, Description: description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		principal, err := s.requirePrincipal(tx, principalID)
		if err != nil {
			return err
		}
		if !principal.IsSuperuser {
			return authorizationf("only superusers may create categories")
		}

		var count int64
		tx.Model(&models.Category{}).Where("name = ?", name).Count(&count)
		if count > 0 {
			return validationf("category %q already exists", name)
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory refuses while articles still reference the category.
func (s *ContentStore) DeleteCategory(ctx context.Context, principalID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		principal, err := s.requirePrincipal(tx, principalID)
		if err != nil {
			return err
		}
		if !principal.IsSuperuser {
			return authorizationf("only superusers may delete categories")
		}

		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("category %d", id)
			}
			return err
		}

		var count int64
		tx.Model(&models.Article{}).Where("category_id = ?", id).Count(&count)
		if count > 0 {
			return validationf("category %d is still referenced by %d article(s)", id, count)
		}
		return tx.Delete(&category).Error
	})
}

func (s *ContentStore) requirePrincipal(tx *gorm.DB, principalID uint) (*models.User, error) {
	var principal models.User
	if err := tx.First(&principal, principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authorizationf("unknown principal %d", principalID)
		}
		return nil, err
	}
	return &principal, nil
}

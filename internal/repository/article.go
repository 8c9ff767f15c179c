package repository

import (
	"context"
	"errors"

	"waypoint/internal/cache"
	"waypoint/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Article, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uuid.UUID) (*models.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	key := cache.ArticleKey(id)

	err := cache.Aside(ctx, key, &article, cache.ArticleTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Author").First(&article, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Article, error) {
	var articles []*models.Article

	query := r.db.WithContext(ctx).Preload("Author")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}

	switch sort {
	case "popular":
		query = query.Order("like_count DESC, created_at DESC")
	default: // "new" and anything unrecognized
		query = query.Order("created_at DESC")
	}

	if err := query.Limit(limit).Offset(offset).Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

// Update persists the client-mutable columns. like_count and save_count
// are owned by the toggle recompute and are never written from an
// in-memory copy.
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).
		Omit("like_count", "save_count").
		Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// Delete removes the article row for good, along with its comments and
// ledger rows. Articles are the one entity that is hard-deleted; the caller
// removes the stored image files after the transaction commits, using the
// returned row's image references.
func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&article, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return err
		}

		if err := tx.Unscoped().Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Action{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateArticle(ctx, id)
	return &article, nil
}

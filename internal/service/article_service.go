package service

import (
	"context"
	"log/slog"

	"waypoint/internal/middleware"
	"waypoint/internal/models"
	"waypoint/internal/repository"
	"waypoint/internal/storage"

	"github.com/google/uuid"
)

// ArticleService manages articles. Publishing requires the author role;
// deleting is the one hard-delete path in the system and also removes the
// article's stored image files once the database transaction has committed.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	assets      storage.AssetStore
}

type CreateArticleInput struct {
	AuthorID uuid.UUID
	Title    string
	Content  string
	Images   []string
}

type UpdateArticleInput struct {
	UserID    uuid.UUID
	ArticleID uuid.UUID
	Title     string
	Content   string
	Images    []string
}

type DeleteArticleInput struct {
	UserID    uuid.UUID
	ArticleID uuid.UUID
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	assets storage.AssetStore,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		assets:      assets,
	}
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !author.CanPublish() {
		return nil, models.NewUnauthorizedError("Author access required to publish articles")
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	article := &models.Article{
		Title:    in.Title,
		Content:  in.Content,
		Images:   in.Images,
		AuthorID: in.AuthorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, article.ID)
}

func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

func (s *ArticleService) ListArticles(ctx context.Context, limit, offset int, search, sort string) ([]*models.Article, error) {
	return s.articleRepo.List(ctx, limit, offset, search, sort)
}

func (s *ArticleService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*models.Article, error) {
	return s.articleRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != in.UserID {
		user, err := s.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !user.IsAdmin() {
			return nil, models.NewUnauthorizedError("You can only update your own articles")
		}
	}

	if in.Title != "" {
		article.Title = in.Title
	}
	if in.Content != "" {
		article.Content = in.Content
	}
	if in.Images != nil {
		article.Images = in.Images
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return s.articleRepo.GetByID(ctx, article.ID)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, in DeleteArticleInput) error {
	article, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return err
	}

	if article.AuthorID != in.UserID {
		user, err := s.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !user.IsAdmin() {
			return models.NewUnauthorizedError("You can only delete your own articles")
		}
	}

	deleted, err := s.articleRepo.Delete(ctx, in.ArticleID)
	if err != nil {
		return err
	}

	// File removal happens after the commit. A failed unlink leaves an
	// orphaned file, not a dangling database reference.
	if s.assets != nil {
		for _, ref := range deleted.Images {
			if err := s.assets.Remove(ref); err != nil {
				middleware.Logger.WarnContext(ctx, "failed to remove article image",
					slog.String("ref", ref),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return nil
}

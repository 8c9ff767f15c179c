package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/repository"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	isAdmin     func(ctx context.Context, userID uuid.UUID) (bool, error)
}

type CreateCommentInput struct {
	UserID    uuid.UUID
	ArticleID uuid.UUID
	Content   string
}

type UpdateCommentInput struct {
	UserID    uuid.UUID
	CommentID uuid.UUID
	Content   string
}

type DeleteCommentInput struct {
	UserID    uuid.UUID
	CommentID uuid.UUID
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	isAdmin func(ctx context.Context, userID uuid.UUID) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID); err != nil {
		return nil, err
	}
	const maxCommentLen = 10000

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content:   in.Content,
		UserID:    in.UserID,
		ArticleID: in.ArticleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, articleID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only update your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only update your own comments")
		}
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}

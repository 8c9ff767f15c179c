package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/repository"

	"github.com/google/uuid"
)

// RatingService validates and persists destination ratings. The recompute of
// the destination aggregates happens inside the repository transaction; this
// layer only guards the inputs and ownership.
type RatingService struct {
	ratingRepo      repository.RatingRepository
	destinationRepo repository.DestinationRepository
	isAdmin         func(ctx context.Context, userID uuid.UUID) (bool, error)
}

type CreateRatingInput struct {
	UserID        uuid.UUID
	DestinationID uuid.UUID
	Score         int
	Comment       string
}

type UpdateRatingInput struct {
	UserID   uuid.UUID
	RatingID uuid.UUID
	Score    int
	Comment  string
}

type DeleteRatingInput struct {
	UserID   uuid.UUID
	RatingID uuid.UUID
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	destinationRepo repository.DestinationRepository,
	isAdmin func(ctx context.Context, userID uuid.UUID) (bool, error),
) *RatingService {
	return &RatingService{
		ratingRepo:      ratingRepo,
		destinationRepo: destinationRepo,
		isAdmin:         isAdmin,
	}
}

func (s *RatingService) CreateRating(ctx context.Context, in CreateRatingInput) (*models.Rating, error) {
	if !models.ValidScore(in.Score) {
		return nil, models.NewValidationError("Score must be between 1 and 5")
	}

	// A soft-deleted destination cannot be rated
	if _, err := s.destinationRepo.GetByID(ctx, in.DestinationID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		DestinationID: in.DestinationID,
		UserID:        in.UserID,
		Score:         in.Score,
		Comment:       in.Comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return s.ratingRepo.GetByID(ctx, rating.ID)
}

func (s *RatingService) ListRatings(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error) {
	if _, err := s.destinationRepo.GetByID(ctx, destinationID); err != nil {
		return nil, err
	}
	return s.ratingRepo.ListByDestination(ctx, destinationID, limit, offset)
}

func (s *RatingService) UpdateRating(ctx context.Context, in UpdateRatingInput) (*models.Rating, error) {
	if !models.ValidScore(in.Score) {
		return nil, models.NewValidationError("Score must be between 1 and 5")
	}

	rating, err := s.ratingRepo.GetByID(ctx, in.RatingID)
	if err != nil {
		return nil, err
	}
	if rating.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewUnauthorizedError("You can only update your own ratings")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("You can only update your own ratings")
		}
	}

	rating.Score = in.Score
	rating.Comment = in.Comment
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}

	return s.ratingRepo.GetByID(ctx, rating.ID)
}

func (s *RatingService) DeleteRating(ctx context.Context, in DeleteRatingInput) error {
	rating, err := s.ratingRepo.GetByID(ctx, in.RatingID)
	if err != nil {
		return err
	}

	if rating.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own ratings")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own ratings")
		}
	}

	return s.ratingRepo.Delete(ctx, in.RatingID)
}

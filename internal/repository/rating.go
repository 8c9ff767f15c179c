package repository

import (
	"context"
	"errors"

	"waypoint/internal/cache"
	"waypoint/internal/models"
	"waypoint/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for destination ratings.
// Every write runs in a transaction together with the recompute of the
// owning destination's rating aggregates.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Rating, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error)
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		return recomputeDestinationRatings(tx, rating.DestinationID)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	observability.RatingsSubmitted.WithLabelValues("create").Inc()
	cache.InvalidateDestination(ctx, rating.DestinationID)
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).Preload("User").First(&rating, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error) {
	var ratings []*models.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rating).Error; err != nil {
			return err
		}
		return recomputeDestinationRatings(tx, rating.DestinationID)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	observability.RatingsSubmitted.WithLabelValues("update").Inc()
	cache.InvalidateDestination(ctx, rating.DestinationID)
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var destinationID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		if err := tx.First(&rating, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Rating", id)
			}
			return err
		}
		destinationID = rating.DestinationID

		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		return recomputeDestinationRatings(tx, destinationID)
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	observability.RatingsSubmitted.WithLabelValues("delete").Inc()
	cache.InvalidateDestination(ctx, destinationID)
	return nil
}

package repository

import (
	"context"
	"errors"

	"waypoint/internal/cache"
	"waypoint/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DestinationRepository defines persistence operations for destinations.
type DestinationRepository interface {
	Create(ctx context.Context, destination *models.Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Destination, error)
	Update(ctx context.Context, destination *models.Destination) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository returns a new DestinationRepository implementation.
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *destinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	var destination models.Destination
	key := cache.DestinationKey(id)

	err := cache.Aside(ctx, key, &destination, cache.DestinationTTL, func() error {
		if err := r.db.WithContext(ctx).First(&destination, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Destination", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Destination, error) {
	var destinations []*models.Destination

	query := r.db.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ?", like, like)
	}

	switch sort {
	case "top":
		query = query.Order("average_rating DESC, rating_count DESC")
	case "popular":
		query = query.Order("like_count DESC, created_at DESC")
	default: // "new" and anything unrecognized
		query = query.Order("created_at DESC")
	}

	if err := query.Limit(limit).Offset(offset).Find(&destinations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return destinations, nil
}

// Update persists the client-mutable columns. The derived counters are
// owned by the recompute paths; writing them here would let a stale copy
// overwrite aggregates committed by a concurrent rating or toggle.
func (r *destinationRepository) Update(ctx context.Context, destination *models.Destination) error {
	if err := r.db.WithContext(ctx).
		Omit("average_rating", "rating_count", "like_count", "save_count").
		Save(destination).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDestination(ctx, destination.ID)
	return nil
}

func (r *destinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Destination{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDestination(ctx, id)
	return nil
}

package repository

import (
	"context"
	"errors"

	"waypoint/internal/cache"
	"waypoint/internal/models"
	"waypoint/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActionRepository defines persistence operations for the like/save ledger.
type ActionRepository interface {
	ResolveTarget(ctx context.Context, id uuid.UUID) (models.Target, error)
	Toggle(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error)
	IsActive(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, actionType models.ActionType, limit, offset int) ([]*models.Action, error)
}

type actionRepository struct {
	db *gorm.DB
}

// NewActionRepository returns a new ActionRepository implementation.
func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

// ResolveTarget looks an id up against articles first, then non-deleted
// destinations. Primary keys are UUIDs, so an id can exist in at most one of
// the two tables.
func (r *actionRepository) ResolveTarget(ctx context.Context, id uuid.UUID) (models.Target, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return models.Target{}, models.NewInternalError(err)
	}
	if count > 0 {
		return models.Target{Kind: models.TargetArticle, ID: id}, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.Destination{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return models.Target{}, models.NewInternalError(err)
	}
	if count > 0 {
		return models.Target{Kind: models.TargetDestination, ID: id}, nil
	}

	return models.Target{}, models.NewNotFoundError("Target", id)
}

// Toggle flips the (user, target, type) ledger row: inserts it when absent,
// hard-deletes it when present, then recomputes the target's like/save
// counters, all in one transaction. Returns whether the action is active
// after the toggle.
//
// The existence check takes a row lock so two concurrent toggles of the same
// pair serialize; the unique ledger indexes backstop the insert race when
// no row existed to lock.
func (r *actionRepository) Toggle(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error) {
	var active bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Action{}).Where("user_id = ? AND type = ?", userID, actionType)
		switch target.Kind {
		case models.TargetArticle:
			query = query.Where("article_id = ?", target.ID)
		case models.TargetDestination:
			query = query.Where("destination_id = ?", target.ID)
		default:
			return models.NewValidationError("Unknown action target kind")
		}

		// sqlite is single-writer and does not support FOR UPDATE
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.Action
		err := query.First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&models.Action{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			active = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			action, buildErr := models.NewAction(userID, target, actionType)
			if buildErr != nil {
				return buildErr
			}
			if err := tx.Create(action).Error; err != nil {
				return err
			}
			active = true
		default:
			return err
		}

		if target.Kind == models.TargetArticle {
			return recomputeArticleActions(tx, target.ID)
		}
		return recomputeDestinationActions(tx, target.ID)
	})
	if err != nil {
		observability.ActionToggles.WithLabelValues(string(target.Kind), string(actionType), "error").Inc()
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, appErr
		}
		return false, models.NewInternalError(err)
	}

	outcome := "off"
	if active {
		outcome = "on"
	}
	observability.ActionToggles.WithLabelValues(string(target.Kind), string(actionType), outcome).Inc()

	if target.Kind == models.TargetArticle {
		cache.InvalidateArticle(ctx, target.ID)
	} else {
		cache.InvalidateDestination(ctx, target.ID)
	}
	return active, nil
}

func (r *actionRepository) IsActive(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Action{}).Where("user_id = ? AND type = ?", userID, actionType)
	switch target.Kind {
	case models.TargetArticle:
		query = query.Where("article_id = ?", target.ID)
	case models.TargetDestination:
		query = query.Where("destination_id = ?", target.ID)
	default:
		return false, models.NewValidationError("Unknown action target kind")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *actionRepository) ListByUser(ctx context.Context, userID uuid.UUID, actionType models.ActionType, limit, offset int) ([]*models.Action, error) {
	var actions []*models.Action
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, actionType).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&actions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return actions, nil
}

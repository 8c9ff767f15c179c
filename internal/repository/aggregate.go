package repository

import (
	"waypoint/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Derived counters on destinations and articles are never incremented or
// decremented. Every write to a child table recomputes the counter from the
// live child rows inside the same transaction, so a failed write can never
// leave a stale count behind.

// recomputeDestinationRatings rewrites rating_count and average_rating from
// the non-deleted rating rows of the destination. An empty set yields zero
// for both.
func recomputeDestinationRatings(tx *gorm.DB, destinationID uuid.UUID) error {
	defer observability.TrackRecompute("ratings")()

	return tx.Exec(`
		UPDATE destinations SET
			rating_count = (
				SELECT COUNT(*) FROM ratings
				WHERE ratings.destination_id = destinations.id AND ratings.deleted_at IS NULL
			),
			average_rating = (
				SELECT COALESCE(AVG(score), 0) FROM ratings
				WHERE ratings.destination_id = destinations.id AND ratings.deleted_at IS NULL
			)
		WHERE destinations.id = ?`, destinationID).Error
}

// recomputeDestinationActions rewrites like_count and save_count from the
// action ledger rows pointing at the destination.
func recomputeDestinationActions(tx *gorm.DB, destinationID uuid.UUID) error {
	defer observability.TrackRecompute("actions")()

	return tx.Exec(`
		UPDATE destinations SET
			like_count = (
				SELECT COUNT(*) FROM actions
				WHERE actions.destination_id = destinations.id AND actions.type = 'LIKE'
			),
			save_count = (
				SELECT COUNT(*) FROM actions
				WHERE actions.destination_id = destinations.id AND actions.type = 'SAVE'
			)
		WHERE destinations.id = ?`, destinationID).Error
}

// recomputeArticleActions rewrites like_count and save_count from the action
// ledger rows pointing at the article.
func recomputeArticleActions(tx *gorm.DB, articleID uuid.UUID) error {
	defer observability.TrackRecompute("actions")()

	return tx.Exec(`
		UPDATE articles SET
			like_count = (
				SELECT COUNT(*) FROM actions
				WHERE actions.article_id = articles.id AND actions.type = 'LIKE'
			),
			save_count = (
				SELECT COUNT(*) FROM actions
				WHERE actions.article_id = articles.id AND actions.type = 'SAVE'
			)
		WHERE articles.id = ?`, articleID).Error
}

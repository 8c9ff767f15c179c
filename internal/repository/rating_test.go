package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"waypoint/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRatingRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	t.Run("Success recomputes aggregates in same transaction", func(t *testing.T) {
		rating := &models.Rating{
			DestinationID: uuid.New(),
			UserID:        uuid.New(),
			Score:         4,
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ratings"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE destinations SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, rating)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Recompute failure rolls back the rating insert", func(t *testing.T) {
		rating := &models.Rating{
			DestinationID: uuid.New(),
			UserID:        uuid.New(),
			Score:         5,
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ratings"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE destinations SET`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Create(ctx, rating)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRatingRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	ratingID := uuid.New()
	destinationID := uuid.New()

	t.Run("Soft delete recomputes aggregates", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "destination_id", "user_id", "score"}).
			AddRow(ratingID.String(), destinationID.String(), uuid.New().String(), 4)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings"`)).
			WillReturnRows(rows)
		// Soft delete writes deleted_at instead of removing the row
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "ratings" SET "deleted_at"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE destinations SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, ratingID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing rating yields not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings"`)).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		err := repo.Delete(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

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

func TestActionRepository_ResolveTarget(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewActionRepository(db)
	ctx := context.Background()

	t.Run("Article id resolves to article kind", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "articles"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		target, err := repo.ResolveTarget(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.TargetArticle, target.Kind)
		assert.Equal(t, id, target.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Destination id resolves to destination kind", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "articles"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "destinations"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		target, err := repo.ResolveTarget(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.TargetDestination, target.Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown id yields not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "articles"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "destinations"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		_, err := repo.ResolveTarget(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActionRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Absent row is inserted and counters recomputed", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewActionRepository(db)
		target := models.Target{Kind: models.TargetArticle, ID: uuid.New()}

		mock.ExpectBegin()
		// Existence check locks the row on postgres
		mock.ExpectQuery(`SELECT \* FROM "actions" .* FOR UPDATE`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "actions"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		active, err := repo.Toggle(ctx, userID, target, models.ActionLike)
		require.NoError(t, err)
		assert.True(t, active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Present row is hard-deleted and counters recomputed", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewActionRepository(db)
		target := models.Target{Kind: models.TargetDestination, ID: uuid.New()}
		existingID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "destination_id", "type"}).
			AddRow(existingID.String(), userID.String(), target.ID.String(), "SAVE")

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "actions" .* FOR UPDATE`).
			WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "actions"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE destinations SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		active, err := repo.Toggle(ctx, userID, target, models.ActionSave)
		require.NoError(t, err)
		assert.False(t, active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Recompute failure rolls back the ledger write", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewActionRepository(db)
		target := models.Target{Kind: models.TargetArticle, ID: uuid.New()}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "actions" .* FOR UPDATE`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "actions"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Toggle(ctx, userID, target, models.ActionLike)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

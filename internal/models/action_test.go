package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAction(t *testing.T) {
	userID := uuid.New()

	t.Run("Article target", func(t *testing.T) {
		target := Target{Kind: TargetArticle, ID: uuid.New()}
		a, err := NewAction(userID, target, ActionLike)
		require.NoError(t, err)

		require.NotNil(t, a.ArticleID)
		assert.Nil(t, a.DestinationID)
		assert.Equal(t, target.ID, *a.ArticleID)
		assert.Equal(t, userID, a.UserID)
		assert.Equal(t, ActionLike, a.Type)
		assert.Equal(t, target, a.TargetOf())
	})

	t.Run("Destination target", func(t *testing.T) {
		target := Target{Kind: TargetDestination, ID: uuid.New()}
		a, err := NewAction(userID, target, ActionSave)
		require.NoError(t, err)

		require.NotNil(t, a.DestinationID)
		assert.Nil(t, a.ArticleID)
		assert.Equal(t, target.ID, *a.DestinationID)
		assert.Equal(t, target, a.TargetOf())
	})

	t.Run("Unknown action type", func(t *testing.T) {
		_, err := NewAction(userID, Target{Kind: TargetArticle, ID: uuid.New()}, ActionType("UPVOTE"))
		assert.Error(t, err)
	})

	t.Run("Unknown target kind", func(t *testing.T) {
		_, err := NewAction(userID, Target{Kind: TargetKind("comment"), ID: uuid.New()}, ActionLike)
		assert.Error(t, err)
	})
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(MinRatingScore))
	assert.True(t, ValidScore(3))
	assert.True(t, ValidScore(MaxRatingScore))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-1))
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix        = "user:%s"
	DestinationKeyPrefix = "destination:%s"
	ArticleKeyPrefix     = "article:%s"
	ResetTokenKeyPrefix  = "pwreset:%s"
)

const (
	UserTTL        = 5 * time.Minute
	DestinationTTL = 10 * time.Minute
	ArticleTTL     = 30 * time.Minute
	ResetTokenTTL  = 15 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DestinationKey(destinationID uuid.UUID) string {
	return fmt.Sprintf(DestinationKeyPrefix, destinationID)
}

func ArticleKey(articleID uuid.UUID) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func ResetTokenKey(token string) string {
	return fmt.Sprintf(ResetTokenKeyPrefix, token)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateDestination drops the cached destination. Called after any write
// that changes the row or its derived counters.
func InvalidateDestination(ctx context.Context, destinationID uuid.UUID) {
	Invalidate(ctx, DestinationKey(destinationID))
}

func InvalidateArticle(ctx context.Context, articleID uuid.UUID) {
	Invalidate(ctx, ArticleKey(articleID))
}

package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleApp(s *Server, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/articles", s.CreateArticle)
	app.Put("/articles/:id", s.UpdateArticle)
	return app
}

func TestCreateArticle_UploadRollback(t *testing.T) {
	// The default user role cannot publish, so the create is rejected
	// after the upload landed
	s := newTestServer(defaultTestRepos())
	app := newArticleApp(s, uuid.New())

	req := multipartRequest(t, http.MethodPost, "/articles", "market.jpg",
		map[string]string{"title": "Night markets", "content": "Go hungry."})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	store := s.assets.(*assetStoreStub)
	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved, store.removed, "a failed create must not orphan uploaded files")
}

package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"waypoint/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/items", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name     string
		query    string
		expected Pagination
	}{
		{"Defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"Explicit", "?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"Capped limit", "?limit=5000", Pagination{Limit: maxPaginationLimit, Offset: 0}},
		{"Negative values", "?limit=-1&offset=-3", Pagination{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseID(t *testing.T) {
	s := newTestServer(defaultTestRepos())
	want := uuid.New()

	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		assert.Equal(t, want, id)
		return c.SendStatus(http.StatusOK)
	})

	t.Run("Valid UUID", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/"+want.String(), nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Garbage", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/42", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "author ID", humanizeParam("authorId"))
	assert.Equal(t, "token", humanizeParam("token"))
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Not found", models.NewNotFoundError("Thing", uuid.Nil), fiber.StatusNotFound},
		{"Validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"Unauthorized", models.NewUnauthorizedError("no"), fiber.StatusForbidden},
		{"Internal", models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"Plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapServiceError(tt.err))
		})
	}
}

func TestRemoveImageRef(t *testing.T) {
	refs := []string{"a.jpg", "b.jpg", "a.jpg"}

	out, found := removeImageRef(refs, "a.jpg")
	assert.True(t, found)
	// Only the first occurrence goes away
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, out)

	out, found = removeImageRef(refs, "missing.jpg")
	assert.False(t, found)
	assert.Equal(t, refs, out)
}

package server

import (
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetRatings handles GET /api/destinations/:id/ratings
// @Summary List a destination's ratings
// @Tags ratings
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {array} models.Rating
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id}/ratings [get]
func (s *Server) GetRatings(c *fiber.Ctx) error {
	destinationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	ratings, err := s.ratingService.ListRatings(c.Context(), destinationID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(ratings)
}

// CreateRating handles POST /api/destinations/:id/ratings
// @Summary Rate a destination
// @Description Stores the rating and recomputes the destination's aggregates in the same transaction
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Param request body object{score=int,comment=string} true "Score (1-5) and optional comment"
// @Success 201 {object} models.Rating
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id}/ratings [post]
func (s *Server) CreateRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	destinationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.CreateRating(c.Context(), service.CreateRatingInput{
		UserID:        userID,
		DestinationID: destinationID,
		Score:         req.Score,
		Comment:       req.Comment,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// UpdateRating handles PUT /api/ratings/:id (owner or admin)
// @Summary Update a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rating ID"
// @Param request body object{score=int,comment=string} true "New score and comment"
// @Success 200 {object} models.Rating
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /ratings/{id} [put]
func (s *Server) UpdateRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	ratingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.UpdateRating(c.Context(), service.UpdateRatingInput{
		UserID:   userID,
		RatingID: ratingID,
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(rating)
}

// DeleteRating handles DELETE /api/ratings/:id (owner or admin)
// @Summary Soft-delete a rating
// @Description The destination's aggregates are recomputed in the same transaction
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rating ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /ratings/{id} [delete]
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	ratingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.ratingService.DeleteRating(c.Context(), service.DeleteRatingInput{
		UserID:   userID,
		RatingID: ratingID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Rating deleted"})
}

package server

import (
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetDestinations handles GET /api/destinations
// @Summary Browse destinations
// @Tags destinations
// @Produce json
// @Param q query string false "Search in name and location"
// @Param sort query string false "Sort order (top, popular or new)"
// @Success 200 {array} models.Destination
// @Router /destinations [get]
func (s *Server) GetDestinations(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	destinations, err := s.destService.ListDestinations(c.Context(),
		page.Limit, page.Offset, c.Query("q"), c.Query("sort"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(destinations)
}

// GetDestination handles GET /api/destinations/:id
// @Summary Get a destination with its derived rating and action counters
// @Tags destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} models.Destination
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id} [get]
func (s *Server) GetDestination(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	destination, err := s.destService.GetDestination(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(destination)
}

// CreateDestination handles POST /api/destinations (admin only)
// @Summary Create a destination
// @Description Accepts JSON or a multipart form with "images" file parts
// @Tags destinations
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Destination
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /destinations [post]
func (s *Server) CreateDestination(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	images, err := s.saveUploadedImages(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Location    string `json:"location" form:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	destination, err := s.destService.CreateDestination(c.Context(), service.CreateDestinationInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Images:      images,
	})
	if err != nil {
		// Uploaded files have no owning row yet, remove them
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(destination)
}

// UpdateDestination handles PUT /api/destinations/:id (admin only)
// @Summary Update a destination
// @Tags destinations
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Success 200 {object} models.Destination
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id} [put]
func (s *Server) UpdateDestination(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	images, err := s.saveUploadedImages(c)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Location    string `json:"location" form:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		for _, ref := range images {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// New uploads are appended, existing references stay in place
	uploaded := images
	if len(uploaded) > 0 {
		current, err := s.destService.GetDestination(c.Context(), id)
		if err != nil {
			for _, ref := range uploaded {
				_ = s.assets.Remove(ref)
			}
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		images = append(current.Images, uploaded...)
	}

	destination, err := s.destService.UpdateDestination(c.Context(), service.UpdateDestinationInput{
		UserID:        userID,
		DestinationID: id,
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		Images:        images,
	})
	if err != nil {
		for _, ref := range uploaded {
			_ = s.assets.Remove(ref)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(destination)
}

// DeleteDestination handles DELETE /api/destinations/:id (admin only)
// @Summary Soft-delete a destination
// @Tags destinations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id} [delete]
func (s *Server) DeleteDestination(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.destService.DeleteDestination(c.Context(), service.DeleteDestinationInput{
		UserID:        userID,
		DestinationID: id,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Destination deleted"})
}

// DeleteDestinationImage handles DELETE /api/destinations/:id/images (admin only)
// @Summary Remove one image from a destination
// @Tags destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Destination ID"
// @Param request body object{image=string} true "Asset reference to remove"
// @Success 200 {object} models.Destination
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /destinations/{id}/images [delete]
func (s *Server) DeleteDestinationImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil || req.Image == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image reference is required"))
	}

	destination, err := s.destService.GetDestination(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	remaining, found := removeImageRef(destination.Images, req.Image)
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image", req.Image))
	}

	updated, err := s.destService.UpdateDestination(c.Context(), service.UpdateDestinationInput{
		UserID:        userID,
		DestinationID: id,
		Images:        remaining,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// The row no longer references the file, a failed unlink only orphans it
	_ = s.assets.Remove(req.Image)

	return c.JSON(updated)
}

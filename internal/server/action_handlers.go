package server

import (
	"strings"

	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ToggleLike handles POST /api/actions/:id/like
// @Summary Toggle a like on an article or a destination
// @Description The id is resolved to its target kind server-side. A first call creates the like, a second removes it.
// @Tags actions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article or destination ID"
// @Success 200 {object} service.ToggleResult
// @Failure 404 {object} object{error=string}
// @Router /actions/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	return s.toggleAction(c, models.ActionLike)
}

// ToggleSave handles POST /api/actions/:id/save
// @Summary Toggle a save on an article or a destination
// @Tags actions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article or destination ID"
// @Success 200 {object} service.ToggleResult
// @Failure 404 {object} object{error=string}
// @Router /actions/{id}/save [post]
func (s *Server) ToggleSave(c *fiber.Ctx) error {
	return s.toggleAction(c, models.ActionSave)
}

func (s *Server) toggleAction(c *fiber.Ctx, actionType models.ActionType) error {
	userID := c.Locals("userID").(uuid.UUID)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.actionService.Toggle(c.Context(), service.ToggleActionInput{
		UserID:   userID,
		TargetID: targetID,
		Type:     actionType,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(result)
}

// GetActionStatus handles GET /api/actions/:id/status?type=LIKE|SAVE
// @Summary Check whether the caller has an active like or save on a target
// @Tags actions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article or destination ID"
// @Param type query string false "Action type (LIKE or SAVE, default LIKE)"
// @Success 200 {object} service.ToggleResult
// @Failure 404 {object} object{error=string}
// @Router /actions/{id}/status [get]
func (s *Server) GetActionStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actionType := models.ActionType(strings.ToUpper(c.Query("type", string(models.ActionLike))))

	result, err := s.actionService.Status(c.Context(), service.ToggleActionInput{
		UserID:   userID,
		TargetID: targetID,
		Type:     actionType,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(result)
}

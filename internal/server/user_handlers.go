package server

import (
	"strings"

	"waypoint/internal/models"
	"waypoint/internal/service"
	"waypoint/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 404 {object} object{error=string}
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyUsername handles PUT /api/users/me/username
// @Summary Change own username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string} true "New username"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Router /users/me/username [put]
func (s *Server) UpdateMyUsername(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// ChangeMyPassword handles PUT /api/users/me/password
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{current_password=string,new_password=string} true "Current and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /users/me/password [put]
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Current password is incorrect"))
	}

	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// GetMyActions handles GET /api/users/me/actions?type=LIKE|SAVE
// @Summary List own likes or saves
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param type query string false "Action type (LIKE or SAVE, default LIKE)"
// @Success 200 {array} models.Action
// @Failure 400 {object} object{error=string}
// @Router /users/me/actions [get]
func (s *Server) GetMyActions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	page := parsePagination(c, 20)

	actionType := models.ActionType(strings.ToUpper(c.Query("type", string(models.ActionLike))))

	actions, err := s.actionService.ListByUser(c.Context(), userID, actionType, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(actions)
}

// GetAllUsers handles GET /api/users (admin only)
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} object{error=string}
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)
	page := parsePagination(c, 100)

	users, err := s.userService.ListUsers(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}

// ChangeUserRole handles PUT /api/users/:id/role (admin only)
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body object{role=string} true "New role (user, author or admin)"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /users/{id}/role [put]
func (s *Server) ChangeUserRole(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uuid.UUID)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeRole(c.Context(), service.ChangeRoleInput{
		AdminID:  adminID,
		TargetID: targetID,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Role updated", "user": user})
}

// DeleteUser handles DELETE /api/users/:id (admin only)
// @Summary Delete a user account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uuid.UUID)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), service.DeleteUserInput{
		AdminID:  adminID,
		TargetID: targetID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

package server

import (
	"fmt"

	"waypoint/internal/cache"
	"waypoint/internal/featureflags"
	"waypoint/internal/middleware"
	"waypoint/internal/models"
	"waypoint/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword handles POST /api/auth/password/forgot
// @Summary Request a password reset
// @Description Email a single-use reset token to the account holder. Always responds 200 so account existence is not leaked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{message=string}
// @Router /auth/password/forgot [post]
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.PasswordReset, uuid.Nil) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	// The response is identical whether or not the account exists
	accepted := c.JSON(fiber.Map{"message": "If the account exists, a reset email has been sent"})

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil || user == nil {
		return accepted
	}

	if s.redis == nil {
		middleware.Logger.WarnContext(c.UserContext(),
			"password reset requested but redis is unavailable")
		return accepted
	}

	token := uuid.New().String()
	if err := s.redis.Set(c.Context(), cache.ResetTokenKey(token),
		user.ID.String(), cache.ResetTokenTTL).Err(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to store password reset token", "error", err)
		return accepted
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.config.ClientURL, token)
	body := fmt.Sprintf("A password reset was requested for your account.\r\n\r\n"+
		"Reset link (valid for %s): %s\r\n\r\n"+
		"If you did not request this, ignore this email.", cache.ResetTokenTTL, link)
	if err := s.mailer.Send(user.Email, "Reset your Waypoint password", body); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(),
			"failed to send password reset email", "error", err)
	}

	return accepted
}

// ResetPassword handles POST /api/auth/password/reset
// @Summary Complete a password reset
// @Description Consume a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{token=string,password=string} true "Reset token and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/password/reset [post]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.PasswordReset, uuid.Nil) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token and password are required"))
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Password reset is temporarily unavailable"))
	}

	key := cache.ResetTokenKey(req.Token)
	userIDStr, err := s.redis.Get(c.Context(), key).Result()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired reset token"))
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired reset token"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Single use: burn the token only after the password actually changed
	s.redis.Del(c.Context(), key)

	return c.JSON(fiber.Map{"message": "Password updated"})
}

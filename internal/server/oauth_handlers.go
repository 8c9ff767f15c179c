package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"waypoint/internal/featureflags"
	"waypoint/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleLogin handles GET /api/auth/google
// @Summary Start Google OAuth flow
// @Description Redirect the browser to Google's consent screen
// @Tags auth
// @Success 307
// @Failure 404 {object} object{error=string}
// @Router /auth/google [get]
func (s *Server) GoogleLogin(c *fiber.Ctx) error {
	if s.googleOAuth == nil || !s.featureFlags.Enabled(featureflags.GoogleOAuth, uuid.Nil) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	// Single-use state nonce, verified on callback
	state := uuid.New().String()
	if s.redis != nil {
		if err := s.redis.Set(c.Context(), "oauth_state:"+state, "1", 10*time.Minute).Err(); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	return c.Redirect(s.googleOAuth.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback
// @Summary Complete Google OAuth flow
// @Description Exchange the authorization code, provision the account and redirect back to the client with a JWT
// @Tags auth
// @Success 307
// @Failure 401 {object} object{error=string}
// @Router /auth/google/callback [get]
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	if s.googleOAuth == nil || !s.featureFlags.Enabled(featureflags.GoogleOAuth, uuid.Nil) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing state or code"))
	}

	if s.redis != nil {
		key := "oauth_state:" + state
		exists, err := s.redis.Exists(c.Context(), key).Result()
		if err != nil || exists == 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired OAuth state"))
		}
		s.redis.Del(c.Context(), key)
	}

	token, err := s.googleOAuth.Exchange(c.Context(), code)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("OAuth code exchange failed"))
	}

	info, err := s.fetchGoogleUserInfo(c, token.AccessToken)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Unable to fetch Google profile"))
	}
	if info.Email == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Google profile has no email"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), info.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		user, err = s.provisionOAuthUser(c, info)
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
	}

	jwtToken, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	clientURL := s.config.ClientURL
	if clientURL == "" {
		return c.JSON(fiber.Map{"token": jwtToken, "user": user})
	}
	return c.Redirect(fmt.Sprintf("%s/auth/callback?token=%s", clientURL, jwtToken),
		fiber.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) fetchGoogleUserInfo(c *fiber.Ctx, accessToken string) (*googleUserInfo, error) {
	client := s.googleOAuth.Client(c.Context(), nil)
	resp, err := client.Get(googleUserInfoURL + "?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != fiber.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// provisionOAuthUser creates a local account for a first-time Google login.
// The random password keeps the credential path unusable until a reset.
func (s *Server) provisionOAuthUser(c *fiber.Ctx, info *googleUserInfo) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: oauthUsername(info),
		Email:    info.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		// Username collision: retry once with a randomized suffix
		user.Username = fmt.Sprintf("%s-%s", user.Username, uuid.New().String()[:6])
		if err := s.userRepo.Create(c.Context(), user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func oauthUsername(info *googleUserInfo) string {
	base := strings.ToLower(strings.ReplaceAll(info.Name, " ", "-"))
	if base == "" {
		base = strings.SplitN(info.Email, "@", 2)[0]
	}
	if len(base) > 24 {
		base = base[:24]
	}
	return base
}

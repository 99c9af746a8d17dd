package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"

	"likedvault/internal/auth"
	"likedvault/internal/config"
	"likedvault/internal/dto"
	"likedvault/internal/middleware"
	"likedvault/internal/services"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authService *services.AuthService
	oauth       *oauth2.Config
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, oauthConf *oauth2.Config, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, oauth: oauthConf, cfg: cfg}
}

// GoogleLogin redirects the browser to the Google consent screen. The state
// token rides in a short-lived cookie for the callback to verify.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := auth.NewState()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline), fiber.StatusTemporaryRedirect)
}

// GoogleCallback finishes the sign-in: state check, code exchange, user
// upsert, session issue, then off to the dashboard with the access token in
// a cookie.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if c.Query("state") == "" || c.Query("state") != c.Cookies(stateCookie) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid OAuth state",
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing authorization code",
		})
	}

	user, pair, err := h.authService.CompleteGoogleLogin(c.Context(), code)
	if err != nil {
		slog.Error("google login failed", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Google sign-in failed",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	slog.Info("user signed in", "user_id", user.ID.String())
	return c.Redirect(h.cfg.DashboardURL, fiber.StatusTemporaryRedirect)
}

// Me reports the session user for the dashboard header and the extension
// popup. An unauthenticated call is not an error, just isLoggedIn=false.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.JSON(dto.SessionResponse{IsLoggedIn: false})
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return c.JSON(dto.SessionResponse{IsLoggedIn: false})
	}

	return c.JSON(dto.SessionResponse{
		IsLoggedIn: true,
		User: &dto.SessionUser{
			ID:          user.ID.String(),
			DisplayName: user.DisplayName,
			Email:       user.Email,
			Photo:       user.PhotoURL,
		},
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		if err := h.authService.Logout(req.RefreshToken); err != nil {
			slog.Error("logout failed", "error", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(dto.SuccessResponse{Success: true})
}

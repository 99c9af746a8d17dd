package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"likedvault/internal/config"
	"likedvault/internal/handlers"
	"likedvault/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	videoHandler *handlers.VideoHandler,
	playlistHandler *handlers.PlaylistHandler,
	settingsHandler *handlers.SettingsHandler,
	healthHandler *handlers.HealthHandler,
) {
	// OAuth browser flow lives outside /api so the consent redirect URL
	// stays short and cookie-friendly.
	oauth := app.Group("/auth")
	oauth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	oauth.Get("/google", authHandler.GoogleLogin)
	oauth.Get("/google/callback", authHandler.GoogleCallback)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Session endpoints. /api/user answers isLoggedIn=false rather than 401,
	// so it carries its own optional-auth middleware.
	api.Post("/auth/refresh", authHandler.Refresh)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/user", middleware.JWTOptional(cfg), authHandler.Me)

	// Liked-video collection (JWT required)
	api.Get("/liked-videos", middleware.JWTProtected(cfg), videoHandler.List)
	api.Get("/liked-videos/export", middleware.JWTProtected(cfg), videoHandler.Export)
	api.Get("/channels", middleware.JWTProtected(cfg), videoHandler.Channels)

	// Playlists (JWT required)
	playlists := api.Group("/playlists", middleware.JWTProtected(cfg))
	playlists.Get("/", playlistHandler.List)
	playlists.Post("/", playlistHandler.Create)
	playlists.Get("/:id", playlistHandler.Get)
	playlists.Put("/:id", playlistHandler.Update)
	playlists.Delete("/:id", playlistHandler.Delete)
	playlists.Post("/:id/videos", playlistHandler.AddVideo)
	playlists.Delete("/:id/videos/:videoId", playlistHandler.RemoveVideo)

	// Settings (JWT required)
	api.Get("/settings", middleware.JWTProtected(cfg), settingsHandler.Get)
	api.Put("/settings", middleware.JWTProtected(cfg), settingsHandler.Update)
}

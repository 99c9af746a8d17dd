package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"likedvault/internal/dto"
	"likedvault/internal/middleware"
	"likedvault/internal/services"
	"likedvault/internal/store"
	"likedvault/internal/sync"
)

type VideoHandler struct {
	videoService  *services.VideoService
	exportService *services.ExportService
	authService   *services.AuthService
}

func NewVideoHandler(videoService *services.VideoService, exportService *services.ExportService, authService *services.AuthService) *VideoHandler {
	return &VideoHandler{videoService: videoService, exportService: exportService, authService: authService}
}

var validDates = map[string]bool{"": true, "day": true, "week": true, "month": true, "year": true}

var validDurations = map[string]bool{"": true, "short": true, "medium": true, "long": true}

var validSorts = map[string]bool{
	"":                          true,
	store.SortPublishedAt:       true,
	store.SortPublishedAtOldest: true,
	store.SortViewCount:         true,
	store.SortLikeCount:         true,
}

func parseFilter(c *fiber.Ctx) (store.Filter, error) {
	f := store.Filter{
		ChannelID: c.Query("channelId"),
		Search:    c.Query("search"),
		Date:      c.Query("date"),
		Duration:  c.Query("duration"),
		Sort:      c.Query("sort"),
	}
	if !validDates[f.Date] {
		return f, errors.New("unknown date filter: " + f.Date)
	}
	if !validDurations[f.Duration] {
		return f, errors.New("unknown duration filter: " + f.Duration)
	}
	if !validSorts[f.Sort] {
		return f, errors.New("unknown sort order: " + f.Sort)
	}
	return f, nil
}

// List serves the dashboard's video grid. A cold cache or refresh=true pulls
// the newest page from YouTube before answering; the rest of the history
// fills in behind the response.
func (h *VideoHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", c.QueryInt("limit", services.DefaultPageSize))
	refresh := c.QueryBool("refresh", false)

	resp, err := h.videoService.List(c.Context(), user, f, page, pageSize, refresh)
	if err != nil {
		if errors.Is(err, sync.ErrAuthExpired) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Re-authentication with Google required",
			})
		}
		if errors.Is(err, sync.ErrOriginUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "YouTube is unavailable, try again later",
			})
		}
		slog.Error("list liked videos failed", "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

// Channels lists the distinct channels behind the user's cached videos, for
// the dashboard's channel filter dropdown.
func (h *VideoHandler) Channels(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	channels, err := h.videoService.Channels(userID)
	if err != nil {
		slog.Error("list channels failed", "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"channels": channels})
}

// Export streams the filtered collection as a CSV or JSON download.
func (h *VideoHandler) Export(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	format := c.Query("format", "csv")
	body, contentType, filename, err := h.exportService.Export(userID, f, format)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("export failed", "user_id", userID.String(), "format", format, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

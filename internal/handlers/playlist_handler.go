package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"likedvault/internal/dto"
	"likedvault/internal/middleware"
	"likedvault/internal/services"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
}

func NewPlaylistHandler(playlistService *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

func (h *PlaylistHandler) playlistError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPlaylistNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Playlist not found",
		})
	case errors.Is(err, services.ErrNotPlaylistOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Playlist belongs to another user",
		})
	case errors.Is(err, services.ErrVideoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Video not found",
		})
	default:
		slog.Error("playlist operation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	playlists, err := h.playlistService.List(userID)
	if err != nil {
		return h.playlistError(c, err)
	}
	return c.JSON(fiber.Map{"playlists": playlists})
}

func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid playlist ID",
		})
	}

	playlist, videos, err := h.playlistService.Get(userID, playlistID)
	if err != nil {
		return h.playlistError(c, err)
	}
	return c.JSON(fiber.Map{"playlist": playlist, "videos": videos})
}

func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Playlist name is required",
		})
	}

	playlist, err := h.playlistService.Create(userID, req.Name, req.Description)
	if err != nil {
		return h.playlistError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(playlist)
}

func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid playlist ID",
		})
	}

	var req dto.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	playlist, err := h.playlistService.Update(userID, playlistID, req.Name, req.Description)
	if err != nil {
		return h.playlistError(c, err)
	}
	return c.JSON(playlist)
}

func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid playlist ID",
		})
	}

	if err := h.playlistService.Delete(userID, playlistID); err != nil {
		return h.playlistError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *PlaylistHandler) AddVideo(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid playlist ID",
		})
	}

	var req dto.AddPlaylistVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	videoID, err := uuid.Parse(req.LikedVideoID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid video ID",
		})
	}

	entry, err := h.playlistService.AddVideo(userID, playlistID, videoID, req.Position)
	if err != nil {
		return h.playlistError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *PlaylistHandler) RemoveVideo(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	playlistID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid playlist ID",
		})
	}
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid video ID",
		})
	}

	if err := h.playlistService.RemoveVideo(userID, playlistID, videoID); err != nil {
		return h.playlistError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

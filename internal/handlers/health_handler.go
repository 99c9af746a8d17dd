package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"likedvault/internal/database"
	"likedvault/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:    "unhealthy",
			Timestamp: now,
			DB:        "down",
		})
	}
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: now,
		DB:        "up",
	})
}

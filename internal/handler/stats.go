package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/repository"
)

type StatsHandler struct {
	users *repository.UserRepo
}

func NewStatsHandler(users *repository.UserRepo) *StatsHandler {
	return &StatsHandler{users: users}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.users.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}

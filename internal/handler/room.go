package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/service"
)

type RoomHandler struct {
	svc *service.RoomService
}

func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Create handles POST /api/rooms (admin)
func (h *RoomHandler) Create(c fiber.Ctx) error {
	var req model.CreateRoomRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateRoomName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Name = name

	if req.ExpiresInHours < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "expiresInHours must not be negative")
	}

	createdBy := adminID(c)
	room, err := h.svc.Create(c.Context(), req, createdBy)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create room")
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

// List handles GET /api/rooms
func (h *RoomHandler) List(c fiber.Ctx) error {
	rooms, err := h.svc.ListActive(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch rooms")
	}

	return c.JSON(fiber.Map{"rooms": rooms})
}

// GetByShareLink handles GET /api/rooms/:shareLink
func (h *RoomHandler) GetByShareLink(c fiber.Ctx) error {
	shareLink := c.Params("shareLink")
	if _, err := uuid.Parse(shareLink); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "shareLink must be a valid UUID")
	}

	room, err := h.svc.FindByShareLink(c.Context(), shareLink)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found or no longer active")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch room")
	}

	return c.JSON(room)
}

// Pause handles POST /api/rooms/:roomId/pause (admin)
func (h *RoomHandler) Pause(c fiber.Ctx) error {
	return h.setPaused(c, true)
}

// Resume handles POST /api/rooms/:roomId/resume (admin)
func (h *RoomHandler) Resume(c fiber.Ctx) error {
	return h.setPaused(c, false)
}

func (h *RoomHandler) setPaused(c fiber.Ctx, paused bool) error {
	roomID, errMsg := middleware.ValidateUUID(c.Params("roomId"), "roomId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.SetPaused(c.Context(), roomID, paused); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found or not active")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update room")
	}

	return c.JSON(fiber.Map{"success": true, "isPaused": paused})
}

// Terminate handles DELETE /api/rooms/:roomId (admin)
func (h *RoomHandler) Terminate(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateUUID(c.Params("roomId"), "roomId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Terminate(c.Context(), roomID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found or already terminated")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to terminate room")
	}

	return c.JSON(fiber.Map{"success": true})
}

// adminID pulls the authenticated admin's id from the session local set by
// the admin guard. Empty when the route is somehow reached without it.
func adminID(c fiber.Ctx) string {
	if sess, ok := c.Locals("session").(model.Session); ok {
		return sess.UserID
	}
	return ""
}

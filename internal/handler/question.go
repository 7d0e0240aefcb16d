package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
	"github.com/amar19818/askroom/internal/service"
)

type QuestionHandler struct {
	submissions *service.SubmissionService
	upvotes     *service.UpvoteService
	questions   *repository.QuestionRepo
}

func NewQuestionHandler(submissions *service.SubmissionService, upvotes *service.UpvoteService,
	questions *repository.QuestionRepo) *QuestionHandler {
	return &QuestionHandler{
		submissions: submissions,
		upvotes:     upvotes,
		questions:   questions,
	}
}

// Submit handles POST /api/rooms/:roomId/questions
func (h *QuestionHandler) Submit(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateUUID(c.Params("roomId"), "roomId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	submitterID, errMsg := middleware.ValidateSubmitterID(c.Get("X-Submitter-ID"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.SubmitQuestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	text, errMsg := middleware.ValidateQuestionText(req.Text)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	start := time.Now()
	result, err := h.submissions.Submit(c.Context(), roomID, submitterID, text)
	Metrics.SubmissionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionInFlight):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "SUBMISSION_IN_FLIGHT",
				"A submission is already being checked. Wait for it to finish.")
		case errors.Is(err, service.ErrRoomClosed):
			return middleware.ErrorResponse(c, fiber.StatusGone, "ROOM_CLOSED", "This room is closed")
		case errors.Is(err, service.ErrRoomPaused):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ROOM_PAUSED",
				"This room is paused and not accepting questions")
		case errors.Is(err, service.ErrModerationUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "MODERATION_UNAVAILABLE",
				"Content analysis is temporarily unavailable. Try again.")
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit question")
	}

	Metrics.SubmissionsTotal.WithLabelValues(string(result.Outcome)).Inc()

	switch result.Outcome {
	case service.OutcomeBlocked:
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "BLOCKED",
			"You have been blocked from submitting questions")

	case service.OutcomeThrottled:
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": fiber.Map{
				"code":             "THROTTLED",
				"message":          "You are on cooldown. Wait before submitting again.",
				"remainingSeconds": result.RemainingSeconds,
			},
		})

	case service.OutcomeRejected:
		Metrics.ViolationsTotal.Inc()
		if result.Blocked {
			Metrics.BlocksTotal.Inc()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fiber.Map{
				"code":            "CONTENT_REJECTED",
				"message":         result.Reason,
				"severity":        string(result.Severity),
				"violations":      result.Violations,
				"blocked":         result.Blocked,
				"cooldownSeconds": result.CooldownSeconds,
			},
		})
	}

	return c.Status(fiber.StatusCreated).JSON(model.SubmitQuestionResponse{
		Question:        *result.Question,
		TextCorrected:   result.TextCorrected,
		CooldownSeconds: result.CooldownSeconds,
	})
}

// ListByRoom handles GET /api/rooms/:roomId/questions
func (h *QuestionHandler) ListByRoom(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateUUID(c.Params("roomId"), "roomId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	questions, err := h.questions.ListApproved(c.Context(), roomID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch questions")
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// Upvote handles POST /api/questions/:questionId/upvote
func (h *QuestionHandler) Upvote(c fiber.Ctx) error {
	questionID, errMsg := middleware.ValidateUUID(c.Params("questionId"), "questionId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	submitterID, errMsg := middleware.ValidateSubmitterID(c.Get("X-Submitter-ID"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.upvotes.Upvote(c.Context(), submitterID, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Question not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to upvote")
	}

	if !resp.AlreadyUpvoted {
		Metrics.UpvotesTotal.Inc()
	}

	return c.JSON(resp)
}

// CooldownStatus handles GET /api/submitters/:submitterId/cooldown
func (h *QuestionHandler) CooldownStatus(c fiber.Ctx) error {
	submitterID, errMsg := middleware.ValidateSubmitterID(c.Params("submitterId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.submissions.CooldownStatus(c.Context(), submitterID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch cooldown status")
	}

	return c.JSON(resp)
}

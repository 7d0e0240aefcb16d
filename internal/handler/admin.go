package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
	"github.com/amar19818/askroom/internal/service"
)

// AdminHandler covers the manual moderation surface: resolving pending
// questions and resetting punished submitters.
type AdminHandler struct {
	questions   *repository.QuestionRepo
	submissions *service.SubmissionService
}

func NewAdminHandler(questions *repository.QuestionRepo, submissions *service.SubmissionService) *AdminHandler {
	return &AdminHandler{questions: questions, submissions: submissions}
}

// ApproveQuestion handles POST /api/admin/questions/:questionId/approve
func (h *AdminHandler) ApproveQuestion(c fiber.Ctx) error {
	return h.resolve(c, model.StatusApproved)
}

// RejectQuestion handles POST /api/admin/questions/:questionId/reject
func (h *AdminHandler) RejectQuestion(c fiber.Ctx) error {
	return h.resolve(c, model.StatusRejected)
}

func (h *AdminHandler) resolve(c fiber.Ctx, status string) error {
	questionID, errMsg := middleware.ValidateUUID(c.Params("questionId"), "questionId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	q, err := h.questions.UpdateModerationStatus(c.Context(), questionID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_RESOLVED",
				"Question not found or already in that status")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update question")
	}

	return c.JSON(q)
}

// ResetSubmitter handles POST /api/admin/submitters/:submitterId/reset
func (h *AdminHandler) ResetSubmitter(c fiber.Ctx) error {
	submitterID, errMsg := middleware.ValidateSubmitterID(c.Params("submitterId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.submissions.ResetSubmitter(c.Context(), submitterID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset submitter")
	}

	return c.JSON(fiber.Map{"success": true})
}

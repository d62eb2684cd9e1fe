package handler

import (
	"errors"

	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/domain/assessment"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

type submitRequest struct {
	Answers map[string]string `json:"answers"`
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/results/me", h.MyResults)
	r.Get("/:id", h.Get)
	r.Post("/:id/submissions", h.Submit)
}

// RegisterAdminRoutes expects r to be behind the staff guard.
func (h *AssessmentHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/tests/:id/questions/import", h.Import)
}

func (h *AssessmentHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListTests(c.Context())
	if err != nil {
		return mapAssessmentError(err)
	}

	out := make([]dto.TestResponse, 0, len(items))
	for _, t := range items {
		out = append(out, dto.NewTestResponse(t))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	d, err := h.uc.GetTest(c.Context(), id)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTestDetailResponse(d))
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	testID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.Answers == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "answers is required", nil, nil)
	}

	res, err := h.uc.Submit(c.Context(), userID, testID, req.Answers)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusCreated, "submission graded", dto.GradedSubmissionResponse{
		SubmissionResponse: dto.NewSubmissionResponse(res.Submission),
		Correct:            res.Correct,
		Answered:           res.Answered,
		Total:              res.Total,
	})
}

func (h *AssessmentHandler) MyResults(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.MyResults(c.Context(), userID)
	if err != nil {
		return mapAssessmentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResultsResponse(res))
}

func (h *AssessmentHandler) Import(c fiber.Ctx) error {
	testID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	rep, err := h.uc.ImportQuestions(c.Context(), testID, c.Body())
	if err != nil {
		return mapAssessmentError(err)
	}

	issues := rep.Issues
	if issues == nil {
		issues = []assessment.ImportIssue{}
	}
	return response.Success(c, fiber.StatusOK, "questions imported", dto.ImportResponse{
		Imported: rep.Imported,
		Skipped:  rep.Skipped,
		Issues:   issues,
	})
}

func mapAssessmentError(err error) error {
	switch {
	case errors.Is(err, assessment.ErrTestInactive):
		// answered exactly like a missing test so drafts stay invisible
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, assessment.ErrNoQuestions):
		return middleware.NewAppError(fiber.StatusConflict, "Test has no questions", nil, err)
	case errors.Is(err, assessment.ErrInvalidOption):
		return middleware.NewAppError(fiber.StatusBadRequest, "Answers must be one of A, B, C, D", nil, err)
	case errors.Is(err, assessment.ErrMalformedPayload):
		return middleware.NewAppError(fiber.StatusBadRequest, "Payload must be a JSON array of questions", nil, err)
	default:
		return mapUsecaseError(err)
	}
}

package handler

import (
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScoringWeightsHandler struct {
	uc usecase.ScoringWeightsUsecase
}

func NewScoringWeightsHandler(uc usecase.ScoringWeightsUsecase) *ScoringWeightsHandler {
	return &ScoringWeightsHandler{uc: uc}
}

// RegisterAdminRoutes expects r to be behind the staff guard.
func (h *ScoringWeightsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/scoring-weights", h.Get)
	r.Put("/scoring-weights", h.Update)
}

func (h *ScoringWeightsHandler) Get(c fiber.Ctx) error {
	v, err := h.uc.GetWeights(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, v)
}

// Update merges the body into the current weights, so omitted fields keep
// their value.
func (h *ScoringWeightsHandler) Update(c fiber.Ctx) error {
	current, err := h.uc.GetWeights(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	w := current.Weights
	if err := c.Bind().Body(&w); err != nil {
		return badRequest(err)
	}

	v, err := h.uc.UpdateWeights(c.Context(), w)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "scoring weights updated", v)
}

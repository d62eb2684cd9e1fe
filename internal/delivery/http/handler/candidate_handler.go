package handler

import (
	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CandidateHandler struct {
	uc usecase.CandidateUsecase
}

type updateProfileRequest struct {
	Bio             *string `json:"bio"`
	Location        *string `json:"location"`
	ExperienceYears *int    `json:"experience_years"`
	CVPath          *string `json:"cv_path"`
	TelegramChatID  *int64  `json:"telegram_chat_id"`
}

type addSkillRequest struct {
	SkillID  *uuid.UUID `json:"skill_id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
}

func NewCandidateHandler(uc usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Post("/me/skills", h.AddSkill)
	r.Delete("/me/skills/:skill_id", h.RemoveSkill)
}

func (h *CandidateHandler) GetMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *CandidateHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		Bio:             req.Bio,
		Location:        req.Location,
		ExperienceYears: req.ExperienceYears,
		CVPath:          req.CVPath,
		TelegramChatID:  req.TelegramChatID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "profile updated", dto.NewProfileResponse(p))
}

func (h *CandidateHandler) AddSkill(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	p, err := h.uc.AddSkill(c.Context(), userID, usecase.AddSkillInput{
		SkillID:  req.SkillID,
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill added", dto.NewProfileResponse(p))
}

func (h *CandidateHandler) RemoveSkill(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveSkill(c.Context(), userID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "skill removed", nil)
}

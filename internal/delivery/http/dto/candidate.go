package dto

import (
	"time"

	"careerquest/internal/domain/candidate"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	UserID          uuid.UUID       `json:"user_id"`
	Email           string          `json:"email"`
	Bio             string          `json:"bio"`
	Location        string          `json:"location"`
	ExperienceYears int             `json:"experience_years"`
	CVPath          *string         `json:"cv_path"`
	TelegramChatID  *int64          `json:"telegram_chat_id"`
	Skills          []SkillResponse `json:"skills"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewProfileResponse(p candidate.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:          p.UserID,
		Email:           p.Email,
		Bio:             p.Bio,
		Location:        p.Location,
		ExperienceYears: p.ExperienceYears,
		CVPath:          p.CVPath,
		TelegramChatID:  p.TelegramChatID,
		Skills:          NewSkillList(p.Skills),
		UpdatedAt:       p.UpdatedAt,
	}
}

package candidate

import (
	"errors"
	"time"

	"careerquest/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("candidate profile not found")

// Profile is one-to-one with a user account. A user without a stored row
// still has an implicit empty profile.
type Profile struct {
	UserID          uuid.UUID
	Email           string
	Bio             string
	Location        string
	ExperienceYears int
	CVPath          *string
	TelegramChatID  *int64
	Skills          []skill.Skill
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Profile) SkillNames() []string {
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s.Name == "" {
			continue
		}
		out = append(out, s.Name)
	}
	return out
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/skill"
	"careerquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxExperienceYears = 60

// UpdateProfileInput is a partial update; nil fields are left unchanged.
type UpdateProfileInput struct {
	Bio             *string
	Location        *string
	ExperienceYears *int
	CVPath          *string
	TelegramChatID  *int64
}

// AddSkillInput references an existing skill by id, or names one that is
// created on demand.
type AddSkillInput struct {
	SkillID  *uuid.UUID
	Name     string
	Category string
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (candidate.Profile, error)
	AddSkill(ctx context.Context, userID uuid.UUID, in AddSkillInput) (candidate.Profile, error)
	RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type Candidates struct {
	candidates repository.CandidateRepository
	skills     repository.SkillRepository
	invalidate invalidator
	logger     *zap.Logger
}

func NewCandidateUsecase(candidates repository.CandidateRepository, skills repository.SkillRepository, cache Cache, events RecommendationEvents, logger *zap.Logger) *Candidates {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Candidates{
		candidates: candidates,
		skills:     skills,
		invalidate: invalidator{cache: cache, events: events, logger: logger},
		logger:     logger,
	}
}

func (u *Candidates) GetProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	p, err := u.candidates.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Profile{}, ErrNotFound
		}
		u.logger.Error("get candidate profile", zap.String("user_id", userID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Candidates) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (candidate.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return candidate.Profile{}, err
	}

	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 || *in.ExperienceYears > maxExperienceYears {
			return candidate.Profile{}, ErrInvalidInput
		}
		p.ExperienceYears = *in.ExperienceYears
	}
	if in.CVPath != nil {
		cv := strings.TrimSpace(*in.CVPath)
		if cv == "" {
			p.CVPath = nil
		} else {
			p.CVPath = &cv
		}
	}
	if in.TelegramChatID != nil {
		if *in.TelegramChatID == 0 {
			p.TelegramChatID = nil
		} else {
			id := *in.TelegramChatID
			p.TelegramChatID = &id
		}
	}

	if err := u.candidates.UpsertProfile(ctx, p); err != nil {
		u.logger.Error("upsert candidate profile", zap.String("user_id", userID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}
	u.invalidate.candidate(ctx, userID, "profile_updated")
	return u.GetProfile(ctx, userID)
}

func (u *Candidates) AddSkill(ctx context.Context, userID uuid.UUID, in AddSkillInput) (candidate.Profile, error) {
	if _, err := u.GetProfile(ctx, userID); err != nil {
		return candidate.Profile{}, err
	}

	var s skill.Skill
	switch {
	case in.SkillID != nil:
		found, err := u.skills.GetSkillByID(ctx, *in.SkillID)
		if err != nil {
			if errors.Is(err, skill.ErrNotFound) {
				return candidate.Profile{}, ErrNotFound
			}
			return candidate.Profile{}, ErrInternal
		}
		s = found
	case skill.NormalizeName(in.Name) != "":
		cat, err := skill.ParseCategory(in.Category)
		if err != nil {
			return candidate.Profile{}, ErrInvalidInput
		}
		created, _, err := u.skills.GetOrCreateSkill(ctx, skill.NormalizeName(in.Name), cat)
		if err != nil {
			u.logger.Error("get or create skill", zap.String("name", in.Name), zap.Error(err))
			return candidate.Profile{}, ErrInternal
		}
		s = created
	default:
		return candidate.Profile{}, ErrInvalidInput
	}

	added, err := u.candidates.AddSkill(ctx, userID, s.ID)
	if err != nil {
		u.logger.Error("add candidate skill", zap.String("user_id", userID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}
	if added {
		u.invalidate.candidate(ctx, userID, "skills_updated")
	}
	return u.GetProfile(ctx, userID)
}

func (u *Candidates) RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	removed, err := u.candidates.RemoveSkill(ctx, userID, skillID)
	if err != nil {
		u.logger.Error("remove candidate skill", zap.String("user_id", userID.String()), zap.Error(err))
		return ErrInternal
	}
	if !removed {
		return ErrNotFound
	}
	u.invalidate.candidate(ctx, userID, "skills_updated")
	return nil
}

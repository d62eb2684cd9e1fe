package usecase

import (
	"context"
	"errors"
	"strings"

	"careerquest/internal/domain/skill"
	"careerquest/internal/repository"

	"go.uber.org/zap"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name, category string) (skill.Skill, bool, error)
}

type Skills struct {
	skills     repository.SkillRepository
	invalidate invalidator
	logger     *zap.Logger
}

func NewSkillUsecase(skills repository.SkillRepository, cache Cache, events RecommendationEvents, logger *zap.Logger) *Skills {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Skills{
		skills:     skills,
		invalidate: invalidator{cache: cache, events: events, logger: logger},
		logger:     logger,
	}
}

func (u *Skills) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	var filter *skill.Category
	if strings.TrimSpace(category) != "" {
		c, err := skill.ParseCategory(category)
		if err != nil {
			return nil, ErrInvalidInput
		}
		filter = &c
	}

	out, err := u.skills.ListSkills(ctx, filter)
	if err != nil {
		u.logger.Error("list skills", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// CreateSkill is get-or-create on the name; the second return reports
// whether a new row was inserted.
func (u *Skills) CreateSkill(ctx context.Context, name, category string) (skill.Skill, bool, error) {
	name = skill.NormalizeName(name)
	if name == "" || len(name) > 100 {
		return skill.Skill{}, false, ErrInvalidInput
	}
	cat, err := skill.ParseCategory(category)
	if err != nil {
		return skill.Skill{}, false, ErrInvalidInput
	}

	s, created, err := u.skills.GetOrCreateSkill(ctx, name, cat)
	if err != nil {
		if errors.Is(err, skill.ErrInvalidCategory) {
			return skill.Skill{}, false, ErrInvalidInput
		}
		u.logger.Error("get or create skill", zap.String("name", name), zap.Error(err))
		return skill.Skill{}, false, ErrInternal
	}
	if created {
		u.logger.Info("skill created", zap.String("name", s.Name), zap.String("category", string(s.Category)))
		// a new catalogue entry can change how job requirements resolve
		u.invalidate.all(ctx, "skill_created")
	}
	return s, created, nil
}

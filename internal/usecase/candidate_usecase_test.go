package usecase

import (
	"context"
	"testing"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidateFixture() (*Candidates, *memSkills, *recordedEvents, uuid.UUID) {
	skills := &memSkills{items: []skill.Skill{{ID: uuid.New(), Name: "Go", Category: skill.CategoryProgramming}}}
	userID := uuid.New()
	repo := &memCandidates{skills: skills, profiles: map[uuid.UUID]candidate.Profile{
		userID: {UserID: userID, Email: "hiba@example.ma"},
	}}
	events := &recordedEvents{}
	return NewCandidateUsecase(repo, skills, newMemCache(), events, nil), skills, events, userID
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	uc, _, events, userID := newCandidateFixture()
	ctx := context.Background()

	loc := "  Rabat "
	years := 4
	p, err := uc.UpdateProfile(ctx, userID, UpdateProfileInput{Location: &loc, ExperienceYears: &years})
	require.NoError(t, err)
	assert.Equal(t, "Rabat", p.Location)
	assert.Equal(t, 4, p.ExperienceYears)

	bio := "Backend developer"
	p, err = uc.UpdateProfile(ctx, userID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Rabat", p.Location)
	assert.Equal(t, "Backend developer", p.Bio)
	assert.Len(t, events.events, 2)

	bad := -1
	_, err = uc.UpdateProfile(ctx, userID, UpdateProfileInput{ExperienceYears: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UpdateProfile(ctx, uuid.New(), UpdateProfileInput{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddAndRemoveSkill(t *testing.T) {
	uc, skills, events, userID := newCandidateFixture()
	ctx := context.Background()
	goID := skills.items[0].ID

	p, err := uc.AddSkill(ctx, userID, AddSkillInput{SkillID: &goID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.SkillNames())

	// Adding twice is a no-op and does not invalidate again.
	_, err = uc.AddSkill(ctx, userID, AddSkillInput{SkillID: &goID})
	require.NoError(t, err)
	assert.Len(t, events.events, 1)

	p, err = uc.AddSkill(ctx, userID, AddSkillInput{Name: "  PostgreSQL ", Category: "database"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, p.SkillNames())
	assert.Len(t, skills.items, 2)

	_, err = uc.AddSkill(ctx, userID, AddSkillInput{Name: "Kafka", Category: "queue"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.AddSkill(ctx, userID, AddSkillInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := uuid.New()
	_, err = uc.AddSkill(ctx, userID, AddSkillInput{SkillID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, uc.RemoveSkill(ctx, userID, goID))
	assert.ErrorIs(t, uc.RemoveSkill(ctx, userID, goID), ErrNotFound)
}

func TestSkillUsecase(t *testing.T) {
	skills := &memSkills{}
	cache := newMemCache()
	events := &recordedEvents{}
	uc := NewSkillUsecase(skills, cache, events, nil)
	ctx := context.Background()

	cached := RecommendationsCacheKey(uuid.New())
	require.NoError(t, cache.SetJSON(ctx, cached, []string{"stale"}, 0))

	s, created, err := uc.CreateSkill(ctx, " Power   BI ", "data")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Power BI", s.Name)
	found, err := cache.GetJSON(ctx, cached, &[]string{})
	require.NoError(t, err)
	assert.False(t, found, "creating a skill drops cached recommendations")
	require.Len(t, events.events, 1)
	assert.Equal(t, uuid.Nil, events.events[0].candidateID)
	assert.Equal(t, "skill_created", events.events[0].reason)

	require.NoError(t, cache.SetJSON(ctx, cached, []string{"fresh"}, 0))
	_, created, err = uc.CreateSkill(ctx, "Power BI", "data")
	require.NoError(t, err)
	assert.False(t, created)
	found, err = cache.GetJSON(ctx, cached, &[]string{})
	require.NoError(t, err)
	assert.True(t, found, "an existing skill leaves the cache alone")
	assert.Len(t, events.events, 1)

	_, _, err = uc.CreateSkill(ctx, "   ", "data")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := uc.ListSkills(ctx, "data")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.ListSkills(ctx, "programming")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.ListSkills(ctx, "astrology")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"careerquest/internal/domain/job"
	"careerquest/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobListUsecase_InvalidInput(t *testing.T) {
	uc := NewJobListUsecase(&memListing{results: func(repository.JobListFilter) []job.Offer { return nil }}, &memJobs{}, nil, nil)
	ctx := context.Background()

	for _, p := range []JobListParams{
		{Limit: 51},
		{Limit: -1},
		{Offset: -3},
		{Status: "archived"},
		{SourceType: "partner"},
		{MinSalary: -100},
	} {
		_, err := uc.ListJobs(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", p)
	}
}

func TestJobListUsecase_DefaultsAndFilters(t *testing.T) {
	listing := &memListing{results: func(repository.JobListFilter) []job.Offer { return []job.Offer{} }}
	uc := NewJobListUsecase(listing, &memJobs{}, nil, nil)
	remote := true

	page, err := uc.ListJobs(context.Background(), JobListParams{City: "Fès", Remote: &remote, Tags: []string{" go ", ""}})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Limit)

	require.Len(t, listing.calls, 1)
	f := listing.calls[0]
	assert.Equal(t, job.StatusActive, f.Status)
	assert.Equal(t, "Fès", f.City)
	assert.Equal(t, []string{"go"}, f.Tags)
	assert.Empty(t, f.TitleVariants)
}

func TestJobListUsecase_FallsBackToFirstWord(t *testing.T) {
	hit := job.Offer{ID: uuid.New(), Title: "Développeur Backend", Status: job.StatusActive, SourceType: job.SourceSeed}
	listing := &memListing{results: func(f repository.JobListFilter) []job.Offer {
		for _, v := range f.TitleVariants {
			if v == "developpeur" {
				return []job.Offer{hit}
			}
		}
		return nil
	}}
	uc := NewJobListUsecase(listing, &memJobs{}, nil, nil)

	page, err := uc.ListJobs(context.Background(), JobListParams{Query: "Développeur Cobol"})
	require.NoError(t, err)
	require.Len(t, listing.calls, 2)
	assert.Contains(t, listing.calls[0].TitleVariants, "developpeur cobol")
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, hit.ID, page.Items[0].ID)
}

func TestJobListUsecase_RanksByRelevanceAndCaches(t *testing.T) {
	now := time.Now()
	weak := job.Offer{ID: uuid.New(), Title: "Commercial terrain", Requirements: "python apprécié", SourceType: job.SourceSeed, CreatedAt: now}
	strong := job.Offer{ID: uuid.New(), Title: "Python Developer", Requirements: "python django", SourceType: job.SourceIngest, CreatedAt: now}
	listing := &memListing{results: func(repository.JobListFilter) []job.Offer {
		return []job.Offer{weak, strong, weak, strong, weak}
	}}
	cache := newMemCache()
	uc := NewJobListUsecase(listing, &memJobs{}, cache, nil)
	ctx := context.Background()

	page, err := uc.ListJobs(ctx, JobListParams{Query: "python"})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, strong.ID, page.Items[0].ID)

	_, err = uc.ListJobs(ctx, JobListParams{Query: "PYTHON"})
	require.NoError(t, err)
	assert.Len(t, listing.calls, 1)
}

func TestJobListUsecase_GetJob(t *testing.T) {
	o := job.Offer{ID: uuid.New(), Title: "QA Engineer"}
	uc := NewJobListUsecase(nil, &memJobs{offers: []job.Offer{o}}, nil, nil)

	got, err := uc.GetJob(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "QA Engineer", got.Title)

	_, err = uc.GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidateJobCaches(t *testing.T) {
	c := newMemCache()
	ctx := context.Background()
	searchKey := JobsSearchCacheKey(JobListParams{Query: "python"})
	recoKey := RecommendationsCacheKey(uuid.New())
	require.NoError(t, c.SetJSON(ctx, searchKey, []string{"x"}, 0))
	require.NoError(t, c.SetJSON(ctx, recoKey, []string{"y"}, 0))
	require.NoError(t, c.SetJSON(ctx, "skills:all", []string{"z"}, 0))

	require.NoError(t, InvalidateJobCaches(ctx, c))
	assert.False(t, c.has(searchKey))
	assert.False(t, c.has(recoKey))
	assert.True(t, c.has("skills:all"))

	assert.NoError(t, InvalidateJobCaches(ctx, nil))
}

package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	results := pool.Run(context.Background())

	var ran int64
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func(context.Context) error {
			atomic.AddInt64(&ran, 1)
			if i == 4 {
				return boom
			}
			return nil
		})
	}
	pool.Close()

	failed := 0
	for r := range results {
		if r.Err != nil {
			failed++
			assert.ErrorIs(t, r.Err, boom)
		}
	}
	assert.EqualValues(t, 10, atomic.LoadInt64(&ran))
	assert.Equal(t, 1, failed)
}

func TestWorkerPoolRateLimit(t *testing.T) {
	pool := NewWorkerPool(4, 5)
	pool.SetRateLimit(20)
	results := pool.Run(context.Background())

	start := time.Now()
	for i := 0; i < 5; i++ {
		pool.Submit(func(context.Context) error { return nil })
	}
	pool.Close()
	for range results {
	}

	// One token up front, then one every 50ms.
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestWorkerPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkerPool(1, 0)
	results := pool.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("pool did not stop")
	}
}

type fakeRecommender struct {
	in usecase.BatchInput
}

func (f fakeRecommender) Snapshot(context.Context) (usecase.BatchInput, error) {
	return f.in, nil
}

func (f fakeRecommender) RecommendFor(_ context.Context, _ usecase.BatchInput, p candidate.Profile) []usecase.Recommendation {
	out := make([]usecase.Recommendation, 0, p.ExperienceYears)
	for i := 0; i < p.ExperienceYears; i++ {
		out = append(out, usecase.Recommendation{
			Job:    job.Offer{ID: uuid.New()},
			Result: recommendation.Result{CandidateID: p.UserID, Score: 0.8, IsHighMatch: i == 0},
		})
	}
	return out
}

func TestRecommendBatchKeepsOrderAndCounts(t *testing.T) {
	profiles := []candidate.Profile{
		{UserID: uuid.New(), ExperienceYears: 2},
		{UserID: uuid.New(), ExperienceYears: 0},
		{UserID: uuid.New(), ExperienceYears: 3},
	}
	b := NewRecommendBatch(fakeRecommender{in: usecase.BatchInput{
		Candidates: profiles,
		Offers:     []job.Offer{{}, {}, {}},
	}}, nil)

	out, stats, err := b.Run(context.Background(), BatchParams{Workers: 2})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, p := range profiles {
		assert.Equal(t, p.UserID, out[i].Profile.UserID)
		assert.Len(t, out[i].Items, p.ExperienceYears)
	}
	assert.Equal(t, 3, stats.Candidates)
	assert.Equal(t, 3, stats.Offers)
	assert.Equal(t, 5, stats.Recommendations)
	assert.Equal(t, 2, stats.HighMatches)
}

package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/usecase"

	"go.uber.org/zap"
)

// Recommender is the slice of the recommendation use case a batch run needs.
type Recommender interface {
	Snapshot(ctx context.Context) (usecase.BatchInput, error)
	RecommendFor(ctx context.Context, in usecase.BatchInput, p candidate.Profile) []usecase.Recommendation
}

type CandidateRecommendations struct {
	Profile candidate.Profile
	Items   []usecase.Recommendation
}

type BatchParams struct {
	Workers    int
	RatePerSec int
}

type BatchStats struct {
	Candidates      int
	Offers          int
	Recommendations int
	HighMatches     int
	Duration        time.Duration
}

type RecommendBatch struct {
	reco   Recommender
	logger *zap.Logger
}

func NewRecommendBatch(reco Recommender, logger *zap.Logger) *RecommendBatch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendBatch{reco: reco, logger: logger}
}

// Run scores every candidate of one snapshot. Results keep the snapshot's
// candidate order.
func (b *RecommendBatch) Run(ctx context.Context, params BatchParams) ([]CandidateRecommendations, BatchStats, error) {
	start := time.Now()

	in, err := b.reco.Snapshot(ctx)
	if err != nil {
		return nil, BatchStats{}, err
	}

	out := make([]CandidateRecommendations, len(in.Candidates))
	var (
		total int64
		high  int64
		mu    sync.Mutex
	)

	pool := NewWorkerPool(params.Workers, len(in.Candidates))
	pool.SetRateLimit(params.RatePerSec)
	results := pool.Run(ctx)

	for i, p := range in.Candidates {
		i, p := i, p
		pool.Submit(func(ctx context.Context) error {
			items := b.reco.RecommendFor(ctx, in, p)

			var hm int64
			for _, r := range items {
				if r.IsHighMatch {
					hm++
				}
			}
			atomic.AddInt64(&total, int64(len(items)))
			atomic.AddInt64(&high, hm)

			mu.Lock()
			out[i] = CandidateRecommendations{Profile: p, Items: items}
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	for r := range results {
		if r.Err != nil {
			b.logger.Warn("candidate batch task failed", zap.Error(r.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, BatchStats{}, err
	}

	stats := BatchStats{
		Candidates:      len(in.Candidates),
		Offers:          len(in.Offers),
		Recommendations: int(total),
		HighMatches:     int(high),
		Duration:        time.Since(start),
	}
	b.logger.Info("recommendation batch finished",
		zap.Int("candidates", stats.Candidates),
		zap.Int("offers", stats.Offers),
		zap.Int("recommendations", stats.Recommendations),
		zap.Int("high_matches", stats.HighMatches),
		zap.Duration("duration", stats.Duration),
	)
	return out, stats, nil
}

package usecase

import (
	"context"
	"math"
	"time"

	"careerquest/internal/domain/recommendation"
	"careerquest/internal/repository"

	"go.uber.org/zap"
)

type WeightsView struct {
	Weights   recommendation.Weights `json:"weights"`
	Sum       float64                `json:"sum"`
	UpdatedAt *time.Time             `json:"updated_at"`
}

type ScoringWeightsUsecase interface {
	GetWeights(ctx context.Context) (WeightsView, error)
	UpdateWeights(ctx context.Context, w recommendation.Weights) (WeightsView, error)
}

type ScoringWeights struct {
	weights    repository.ScoringWeightsRepository
	invalidate invalidator
	logger     *zap.Logger
}

func NewScoringWeightsUsecase(weights repository.ScoringWeightsRepository, cache Cache, events RecommendationEvents, logger *zap.Logger) *ScoringWeights {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoringWeights{
		weights:    weights,
		invalidate: invalidator{cache: cache, events: events, logger: logger},
		logger:     logger,
	}
}

func (u *ScoringWeights) GetWeights(ctx context.Context) (WeightsView, error) {
	w, updatedAt, err := u.weights.GetWeights(ctx)
	if err != nil {
		u.logger.Error("load scoring weights", zap.Error(err))
		return WeightsView{}, ErrInternal
	}
	return newWeightsView(w, updatedAt), nil
}

// UpdateWeights replaces the whole row. Weights need not sum to one, but each
// value must lie in [0,1].
func (u *ScoringWeights) UpdateWeights(ctx context.Context, w recommendation.Weights) (WeightsView, error) {
	for _, v := range []float64{
		w.SkillMatch, w.TechnicalTest, w.Experience, w.Salary, w.Location,
		w.ClusterFit, w.Employability, w.MinRecommendationScore, w.HighMatchThreshold,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return WeightsView{}, ErrInvalidInput
		}
	}

	updatedAt, err := u.weights.SaveWeights(ctx, w)
	if err != nil {
		u.logger.Error("save scoring weights", zap.Error(err))
		return WeightsView{}, ErrInternal
	}
	if sum := w.Sum(); math.Abs(sum-1) > 0.001 {
		u.logger.Warn("scoring weights do not sum to 1", zap.Float64("sum", sum))
	}
	u.invalidate.all(ctx, "weights_updated")
	return newWeightsView(w, updatedAt), nil
}

func newWeightsView(w recommendation.Weights, updatedAt time.Time) WeightsView {
	v := WeightsView{Weights: w, Sum: math.Round(w.Sum()*10000) / 10000}
	if !updatedAt.IsZero() {
		v.UpdatedAt = &updatedAt
	}
	return v
}

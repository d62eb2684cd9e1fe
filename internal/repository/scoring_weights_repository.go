package repository

import (
	"context"
	"errors"
	"time"

	"careerquest/internal/database"
	"careerquest/internal/domain/recommendation"

	"github.com/jackc/pgx/v5"
)

type ScoringWeightsRepository interface {
	GetWeights(ctx context.Context) (recommendation.Weights, time.Time, error)
	SaveWeights(ctx context.Context, w recommendation.Weights) (time.Time, error)
}

type PostgresScoringWeightsRepository struct {
	db database.DB
}

func NewPostgresScoringWeightsRepository(db database.DB) *PostgresScoringWeightsRepository {
	return &PostgresScoringWeightsRepository{db: db}
}

// GetWeights reads the single configuration row, falling back to the
// defaults when it was never seeded.
func (r *PostgresScoringWeightsRepository) GetWeights(ctx context.Context) (recommendation.Weights, time.Time, error) {
	var w recommendation.Weights
	var updatedAt time.Time
	err := r.db.QueryRow(ctx,
		`SELECT skill_match_weight, technical_test_weight, experience_weight, salary_weight, location_weight,
			cluster_fit_weight, employability_weight, min_recommendation_score, high_match_threshold, updated_at
		 FROM scoring_weights WHERE id = 1`,
	).Scan(&w.SkillMatch, &w.TechnicalTest, &w.Experience, &w.Salary, &w.Location,
		&w.ClusterFit, &w.Employability, &w.MinRecommendationScore, &w.HighMatchThreshold, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recommendation.DefaultWeights(), time.Time{}, nil
		}
		return recommendation.Weights{}, time.Time{}, err
	}
	return w, updatedAt, nil
}

func (r *PostgresScoringWeightsRepository) SaveWeights(ctx context.Context, w recommendation.Weights) (time.Time, error) {
	return SaveWeights(ctx, r.db, w)
}

func SaveWeights(ctx context.Context, q database.Querier, w recommendation.Weights) (time.Time, error) {
	var updatedAt time.Time
	err := q.QueryRow(ctx,
		`INSERT INTO scoring_weights (id, skill_match_weight, technical_test_weight, experience_weight, salary_weight,
			location_weight, cluster_fit_weight, employability_weight, min_recommendation_score, high_match_threshold, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (id) DO UPDATE SET
			skill_match_weight = EXCLUDED.skill_match_weight,
			technical_test_weight = EXCLUDED.technical_test_weight,
			experience_weight = EXCLUDED.experience_weight,
			salary_weight = EXCLUDED.salary_weight,
			location_weight = EXCLUDED.location_weight,
			cluster_fit_weight = EXCLUDED.cluster_fit_weight,
			employability_weight = EXCLUDED.employability_weight,
			min_recommendation_score = EXCLUDED.min_recommendation_score,
			high_match_threshold = EXCLUDED.high_match_threshold,
			updated_at = now()
		 RETURNING updated_at`,
		w.SkillMatch, w.TechnicalTest, w.Experience, w.Salary, w.Location,
		w.ClusterFit, w.Employability, w.MinRecommendationScore, w.HighMatchThreshold,
	).Scan(&updatedAt)
	return updatedAt, err
}

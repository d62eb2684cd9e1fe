package seeder

import (
	"context"

	"careerquest/internal/database"
	"careerquest/internal/domain/recommendation"

	"go.uber.org/zap"
)

// WeightsSeeder installs the default weights once and never overwrites
// values tuned by staff.
type WeightsSeeder struct{}

func (WeightsSeeder) Name() string { return "weights" }

func (WeightsSeeder) Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error) {
	w := recommendation.DefaultWeights()
	n, err := q.Exec(ctx,
		`INSERT INTO scoring_weights (id, skill_match_weight, technical_test_weight, experience_weight, salary_weight,
			location_weight, cluster_fit_weight, employability_weight, min_recommendation_score, high_match_threshold)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		w.SkillMatch, w.TechnicalTest, w.Experience, w.Salary, w.Location,
		w.ClusterFit, w.Employability, w.MinRecommendationScore, w.HighMatchThreshold,
	)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		logger.Debug("scoring weights already present")
	}
	return int(n), nil
}

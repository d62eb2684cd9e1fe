package recommendation

// Weights is the linear blend applied to the component scores. The values
// are not required to sum to 1; the blended score is clamped instead.
type Weights struct {
	SkillMatch    float64 `json:"skill_match_weight"`
	TechnicalTest float64 `json:"technical_test_weight"`
	Experience    float64 `json:"experience_weight"`
	Salary        float64 `json:"salary_weight"`
	Location      float64 `json:"location_weight"`
	// ClusterFit is stored and editable but no component feeds it.
	ClusterFit    float64 `json:"cluster_fit_weight"`
	Employability float64 `json:"employability_weight"`

	MinRecommendationScore float64 `json:"min_recommendation_score"`
	HighMatchThreshold     float64 `json:"high_match_threshold"`
}

func DefaultWeights() Weights {
	return Weights{
		SkillMatch:             0.30,
		TechnicalTest:          0.20,
		Experience:             0.15,
		Salary:                 0.10,
		Location:               0.10,
		ClusterFit:             0.05,
		Employability:          0.10,
		MinRecommendationScore: 0.30,
		HighMatchThreshold:     0.75,
	}
}

// Sum is the total of the component weights, reported to staff when they
// edit the configuration.
func (w Weights) Sum() float64 {
	return w.SkillMatch + w.TechnicalTest + w.Experience + w.Salary + w.Location + w.ClusterFit + w.Employability
}

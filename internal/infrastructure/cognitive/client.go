package cognitive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careerquest/internal/domain/recommendation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("cognitive service not configured")

// Scorer returns the employability sub-scores of a candidate, each 0-100.
type Scorer interface {
	Score(ctx context.Context, candidateID uuid.UUID) (recommendation.CognitiveScores, error)
}

type httpScorer struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type scoresResponse struct {
	OverallScore        *float64 `json:"overall_score"`
	SituationalJudgment *float64 `json:"situational_judgment"`
	Personality         *float64 `json:"personality"`
	CognitiveAbility    *float64 `json:"cognitive_ability"`
}

// NewScorer returns an HTTP scorer for baseURL, or a scorer that always fails
// with ErrNotConfigured when baseURL is empty.
func NewScorer(baseURL string, timeout time.Duration, logger *zap.Logger) Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return noopScorer{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpScorer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (s *httpScorer) Score(ctx context.Context, candidateID uuid.UUID) (recommendation.CognitiveScores, error) {
	endpoint := s.baseURL + "/candidates/" + url.PathEscape(candidateID.String()) + "/scores"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return recommendation.CognitiveScores{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return recommendation.CognitiveScores{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		s.logger.Debug("cognitive scores request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", bodyStr),
		)
		return recommendation.CognitiveScores{}, fmt.Errorf("cognitive scores: status=%d", resp.StatusCode)
	}

	var out scoresResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return recommendation.CognitiveScores{}, fmt.Errorf("decode cognitive scores: %w", err)
	}
	if out.OverallScore == nil {
		return recommendation.CognitiveScores{}, errors.New("cognitive scores: missing overall_score")
	}

	neutral := recommendation.NeutralCognitive()
	return recommendation.CognitiveScores{
		Overall:             clampScore(*out.OverallScore),
		SituationalJudgment: clampScore(valueOr(out.SituationalJudgment, neutral.SituationalJudgment)),
		Personality:         clampScore(valueOr(out.Personality, neutral.Personality)),
		CognitiveAbility:    clampScore(valueOr(out.CognitiveAbility, neutral.CognitiveAbility)),
	}, nil
}

type noopScorer struct{}

func (noopScorer) Score(context.Context, uuid.UUID) (recommendation.CognitiveScores, error) {
	return recommendation.CognitiveScores{}, ErrNotConfigured
}

// ScoreOrNeutral never fails: any scorer error is logged and replaced with
// the neutral 50/50/50/50 scores.
func ScoreOrNeutral(ctx context.Context, s Scorer, candidateID uuid.UUID, logger *zap.Logger) recommendation.CognitiveScores {
	if s == nil {
		return recommendation.NeutralCognitive()
	}
	scores, err := s.Score(ctx, candidateID)
	if err != nil {
		if logger != nil && !errors.Is(err, ErrNotConfigured) {
			logger.Warn("cognitive scores unavailable, using neutral defaults",
				zap.String("candidate_id", candidateID.String()),
				zap.Error(err),
			)
		}
		return recommendation.NeutralCognitive()
	}
	return scores
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var _ Scorer = (*httpScorer)(nil)

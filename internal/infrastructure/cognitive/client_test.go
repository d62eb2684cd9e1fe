package cognitive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careerquest/internal/domain/recommendation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPScorer_Success(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/candidates/"+id.String()+"/scores", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"overall_score": 72.5, "situational_judgment": 80, "personality": 140}`))
	}))
	defer srv.Close()

	s := NewScorer(srv.URL+"/", time.Second, zap.NewNop())
	got, err := s.Score(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 72.5, got.Overall)
	assert.Equal(t, 80.0, got.SituationalJudgment)
	assert.Equal(t, 100.0, got.Personality)
	assert.Equal(t, 50.0, got.CognitiveAbility)
}

func TestScoreOrNeutral_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewScorer(srv.URL, time.Second, zap.NewNop())
	got := ScoreOrNeutral(context.Background(), s, uuid.New(), zap.NewNop())
	assert.Equal(t, recommendation.NeutralCognitive(), got)
}

func TestScoreOrNeutral_MissingOverall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"personality": 10}`))
	}))
	defer srv.Close()

	got := ScoreOrNeutral(context.Background(), NewScorer(srv.URL, time.Second, nil), uuid.New(), nil)
	assert.Equal(t, recommendation.NeutralCognitive(), got)
}

func TestNewScorer_Unconfigured(t *testing.T) {
	s := NewScorer("  ", 0, nil)
	_, err := s.Score(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, recommendation.NeutralCognitive(), ScoreOrNeutral(context.Background(), s, uuid.New(), nil))
}

package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/pipeline"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteExporterWritesRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "out", "snapshot.db"))
	require.NoError(t, err)
	defer db.Close()

	e := NewSQLiteExporter(db)
	e.now = func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }

	cand := candidate.Profile{UserID: uuid.New(), Email: "salma@example.ma"}
	batch := []pipeline.CandidateRecommendations{{
		Profile: cand,
		Items: []usecase.Recommendation{
			{
				Job:    job.Offer{ID: uuid.New(), Title: "Data Analyst", Company: "inwi"},
				Result: recommendation.Result{Score: 0.81, IsHighMatch: true, MatchedSkills: []string{"SQL", "Excel"}},
			},
			{
				Job:    job.Offer{ID: uuid.New(), Title: "DBA", Company: "CIH Bank"},
				Result: recommendation.Result{Score: 0.42, MissingSkills: []string{"Oracle"}},
			},
		},
	}}
	stats := pipeline.BatchStats{Candidates: 1, Offers: 2}

	first, err := e.Write(context.Background(), batch, stats)
	require.NoError(t, err)
	second, err := e.Write(context.Background(), batch, stats)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM recommendations WHERE run_id = ?`, first).Scan(&n))
	assert.Equal(t, 2, n)

	var title, matched string
	var high int
	require.NoError(t, db.QueryRow(
		`SELECT job_title, matched_skills, is_high_match FROM recommendations WHERE run_id = ? AND rank = 1`, second,
	).Scan(&title, &matched, &high))
	assert.Equal(t, "Data Analyst", title)
	assert.Equal(t, "SQL,Excel", matched)
	assert.Equal(t, 1, high)

	var generated string
	require.NoError(t, db.QueryRow(`SELECT generated_at FROM runs WHERE id = ?`, first).Scan(&generated))
	assert.Equal(t, "2026-06-01T08:00:00Z", generated)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

package v1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerquest/internal/delivery/http/handler"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/domain/assessment"
	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/domain/skill"
	"careerquest/internal/pkg/jwt"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkills struct {
	created []string
}

func (f *fakeSkills) ListSkills(_ context.Context, category string) ([]skill.Skill, error) {
	if category == "nope" {
		return nil, usecase.ErrInvalidInput
	}
	return []skill.Skill{{ID: uuid.New(), Name: "Python", Category: skill.CategoryProgramming}}, nil
}

func (f *fakeSkills) CreateSkill(_ context.Context, name, category string) (skill.Skill, bool, error) {
	f.created = append(f.created, name)
	return skill.Skill{ID: uuid.New(), Name: name, Category: skill.Category(category)}, true, nil
}

type fakeJobs struct {
	last usecase.JobListParams
}

func (f *fakeJobs) ListJobs(_ context.Context, p usecase.JobListParams) (usecase.JobListPage, error) {
	f.last = p
	return usecase.JobListPage{Items: []job.Offer{{ID: uuid.New(), Title: "Développeur Go"}}, Total: 1, Limit: p.Limit, Offset: p.Offset}, nil
}

func (f *fakeJobs) GetJob(_ context.Context, id uuid.UUID) (job.Offer, error) {
	return job.Offer{}, usecase.ErrNotFound
}

type fakeRecos struct {
	candidateID uuid.UUID
}

func (f *fakeRecos) Recommend(_ context.Context, candidateID uuid.UUID, limit, offset int) (usecase.RecommendationPage, error) {
	f.candidateID = candidateID
	return usecase.RecommendationPage{Items: []usecase.Recommendation{}, Limit: limit, Offset: offset}, nil
}

func (f *fakeRecos) MatchDetail(context.Context, uuid.UUID, uuid.UUID) (usecase.Recommendation, error) {
	return usecase.Recommendation{}, usecase.ErrNotFound
}

func (f *fakeRecos) RankCandidates(context.Context, uuid.UUID, int) ([]usecase.CandidateMatch, error) {
	return []usecase.CandidateMatch{}, nil
}

type fakeTests struct {
	answers map[string]string
}

func (f *fakeTests) ListTests(context.Context) ([]assessment.Test, error) {
	return []assessment.Test{}, nil
}

func (f *fakeTests) GetTest(context.Context, uuid.UUID) (usecase.TestDetail, error) {
	return usecase.TestDetail{}, assessment.ErrTestInactive
}

func (f *fakeTests) Submit(_ context.Context, userID, testID uuid.UUID, answers map[string]string) (usecase.SubmissionResult, error) {
	f.answers = answers
	for _, v := range answers {
		if v == "E" {
			return usecase.SubmissionResult{}, assessment.ErrInvalidOption
		}
	}
	return usecase.SubmissionResult{
		Submission: assessment.Submission{ID: uuid.New(), UserID: userID, TestID: testID, ScorePoints: 1, MaxPoints: 2, Percentage: 50},
		Correct:    1,
		Answered:   len(answers),
		Total:      2,
	}, nil
}

func (f *fakeTests) MyResults(context.Context, uuid.UUID) (usecase.CandidateResults, error) {
	return usecase.CandidateResults{}, nil
}

func (f *fakeTests) ImportQuestions(context.Context, uuid.UUID, []byte) (usecase.ImportReport, error) {
	return usecase.ImportReport{Imported: 2}, nil
}

type fakeCandidates struct{}

func (fakeCandidates) GetProfile(_ context.Context, userID uuid.UUID) (candidate.Profile, error) {
	return candidate.Profile{UserID: userID}, nil
}

func (fakeCandidates) UpdateProfile(_ context.Context, userID uuid.UUID, _ usecase.UpdateProfileInput) (candidate.Profile, error) {
	return candidate.Profile{UserID: userID}, nil
}

func (fakeCandidates) AddSkill(_ context.Context, userID uuid.UUID, _ usecase.AddSkillInput) (candidate.Profile, error) {
	return candidate.Profile{UserID: userID}, nil
}

func (fakeCandidates) RemoveSkill(context.Context, uuid.UUID, uuid.UUID) error {
	return usecase.ErrNotFound
}

type fakeWeights struct {
	saved recommendation.Weights
}

func (f *fakeWeights) GetWeights(context.Context) (usecase.WeightsView, error) {
	return usecase.WeightsView{Weights: recommendation.DefaultWeights()}, nil
}

func (f *fakeWeights) UpdateWeights(_ context.Context, w recommendation.Weights) (usecase.WeightsView, error) {
	f.saved = w
	return usecase.WeightsView{Weights: w}, nil
}

type testEnv struct {
	app     *fiber.App
	jwt     *jwt.HMACService
	skills  *fakeSkills
	jobs    *fakeJobs
	recos   *fakeRecos
	tests   *fakeTests
	weights *fakeWeights
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		jwt:     jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour),
		skills:  &fakeSkills{},
		jobs:    &fakeJobs{},
		recos:   &fakeRecos{},
		tests:   &fakeTests{},
		weights: &fakeWeights{},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	Register(app.Group("/api/v1"), Handlers{
		Skills:     handler.NewSkillHandler(env.skills),
		Candidates: handler.NewCandidateHandler(fakeCandidates{}),
		Tests:      handler.NewAssessmentHandler(env.tests),
		Jobs:       handler.NewJobsHandler(env.jobs, env.recos),
		Weights:    handler.NewScoringWeightsHandler(env.weights),
	}, middleware.NewAuthMiddleware(env.jwt).Middleware())
	env.app = app
	return env
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID, staff bool) string {
	t.Helper()
	tok, err := e.jwt.GenerateAccessToken(userID, "candidat@example.ma", staff)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/skills", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = env.do(t, http.MethodGet, "/api/v1/skills?category=nope", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/jobs?q=developpeur&city=Rabat&remote=true&tags=go,%20sql&min_salary=8000&limit=5&offset=10", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "developpeur", env.jobs.last.Query)
	assert.Equal(t, "Rabat", env.jobs.last.City)
	require.NotNil(t, env.jobs.last.Remote)
	assert.True(t, *env.jobs.last.Remote)
	assert.Equal(t, []string{"go", "sql"}, env.jobs.last.Tags)
	assert.Equal(t, 8000, env.jobs.last.MinSalary)
	assert.Equal(t, 5, env.jobs.last.Limit)
	assert.Equal(t, 10, env.jobs.last.Offset)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["total"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/jobs?limit=ten", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthGuard(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/candidates/me",
		"/api/v1/tests",
		"/api/v1/jobs/recommendations",
		"/api/v1/admin/scoring-weights",
	} {
		status, _ := env.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	refresh, err := env.jwt.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	status, _ := env.do(t, http.MethodGet, "/api/v1/candidates/me", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/candidates/me", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestStaffGuard(t *testing.T) {
	env := newTestEnv(t)
	candidateTok := env.token(t, uuid.New(), false)
	staffTok := env.token(t, uuid.New(), true)

	status, _ := env.do(t, http.MethodPost, "/api/v1/skills", candidateTok, `{"name":"Rust","category":"programming"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Empty(t, env.skills.created)

	status, _ = env.do(t, http.MethodPost, "/api/v1/skills", staffTok, `{"name":"Rust","category":"programming"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []string{"Rust"}, env.skills.created)

	status, _ = env.do(t, http.MethodGet, "/api/v1/admin/scoring-weights", candidateTok, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/admin/jobs/"+uuid.NewString()+"/candidates", staffTok, "")
	assert.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodPost, "/api/v1/admin/tests/"+uuid.NewString()+"/questions/import", staffTok, `[]`)
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 2, data["imported"])
	assert.Equal(t, []any{}, data["issues"])
}

func TestScoringWeightsPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	staffTok := env.token(t, uuid.New(), true)

	status, _ := env.do(t, http.MethodPut, "/api/v1/admin/scoring-weights", staffTok, `{"salary_weight":0.3}`)
	require.Equal(t, http.StatusOK, status)

	def := recommendation.DefaultWeights()
	assert.InDelta(t, 0.3, env.weights.saved.Salary, 1e-9)
	assert.InDelta(t, def.SkillMatch, env.weights.saved.SkillMatch, 1e-9)
	assert.InDelta(t, def.HighMatchThreshold, env.weights.saved.HighMatchThreshold, 1e-9)
}

func TestCandidateRoutes(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	tok := env.token(t, userID, false)

	status, _ := env.do(t, http.MethodGet, "/api/v1/jobs/recommendations?limit=3", tok, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID, env.recos.candidateID)

	status, _ = env.do(t, http.MethodGet, "/api/v1/jobs/"+uuid.NewString()+"/match", tok, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/candidates/me/skills/"+uuid.NewString(), tok, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmissionRoutes(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, uuid.New(), false)
	path := "/api/v1/tests/" + uuid.NewString() + "/submissions"

	status, _ := env.do(t, http.MethodPost, path, tok, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, path, tok, `{"answers":{"q1":"E"}}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := env.do(t, http.MethodPost, path, tok, `{"answers":{"q1":"A"}}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, map[string]string{"q1": "A"}, env.tests.answers)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["correct"])
	assert.EqualValues(t, 2, data["total_questions"])

	status, body = env.do(t, http.MethodGet, "/api/v1/tests/"+uuid.NewString(), tok, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["message"], "an inactive test reads like a missing one")

	status, _ = env.do(t, http.MethodGet, "/api/v1/tests/results/me", tok, "")
	assert.Equal(t, http.StatusOK, status)
}

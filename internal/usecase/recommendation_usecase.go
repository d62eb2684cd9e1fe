package usecase

import (
	"context"
	"errors"
	"sort"

	"careerquest/internal/domain/assessment"
	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/infrastructure/cognitive"
	"careerquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRecommendationPageSize = 10
	maxRecommendationPageSize     = 50
)

type Recommendation struct {
	Job                   job.Offer `json:"job"`
	recommendation.Result `json:"result"`
}

type RecommendationPage struct {
	Items  []Recommendation `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type CandidateMatch struct {
	CandidateID uuid.UUID             `json:"candidate_id"`
	Email       string                `json:"email"`
	Location    string                `json:"location"`
	Result      recommendation.Result `json:"result"`
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, candidateID uuid.UUID, limit, offset int) (RecommendationPage, error)
	MatchDetail(ctx context.Context, candidateID, jobID uuid.UUID) (Recommendation, error)
	RankCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateMatch, error)
}

type Recommendations struct {
	candidates  repository.CandidateRepository
	jobs        repository.JobRepository
	skills      repository.SkillRepository
	submissions repository.SubmissionRepository
	weights     repository.ScoringWeightsRepository
	scorer      cognitive.Scorer
	cache       Cache
	logger      *zap.Logger
}

func NewRecommendationUsecase(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	skills repository.SkillRepository,
	submissions repository.SubmissionRepository,
	weights repository.ScoringWeightsRepository,
	scorer cognitive.Scorer,
	cache Cache,
	logger *zap.Logger,
) *Recommendations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommendations{
		candidates:  candidates,
		jobs:        jobs,
		skills:      skills,
		submissions: submissions,
		weights:     weights,
		scorer:      scorer,
		cache:       cache,
		logger:      logger,
	}
}

// Recommend ranks every active job for the candidate. The full ranked list is
// cached per candidate and paginated on the way out.
func (u *Recommendations) Recommend(ctx context.Context, candidateID uuid.UUID, limit, offset int) (RecommendationPage, error) {
	if limit == 0 {
		limit = defaultRecommendationPageSize
	}
	if limit < 0 || limit > maxRecommendationPageSize || offset < 0 {
		return RecommendationPage{}, ErrInvalidInput
	}

	all, err := u.ranked(ctx, candidateID)
	if err != nil {
		return RecommendationPage{}, err
	}

	page := RecommendationPage{Items: []Recommendation{}, Total: len(all), Limit: limit, Offset: offset}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		page.Items = all[offset:end]
	}
	return page, nil
}

func (u *Recommendations) ranked(ctx context.Context, candidateID uuid.UUID) ([]Recommendation, error) {
	key := RecommendationsCacheKey(candidateID)
	if u.cache != nil {
		var cached []Recommendation
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logger.Debug("recommendations cache hit", zap.String("candidate_id", candidateID.String()))
			return cached, nil
		}
	}

	profile, err := u.profile(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	w, err := u.currentWeights(ctx)
	if err != nil {
		return nil, err
	}
	offers, known, err := u.activeJobs(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := u.submissions.ListByUser(ctx, candidateID)
	if err != nil {
		u.logger.Error("list submissions", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	cand := u.candidateModel(ctx, profile, subs)
	out := ScoreOffers(cand, offers, known, w)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Debug("cache recommendations", zap.Error(err))
		}
	}
	u.logger.Info("recommendations computed",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("jobs", len(offers)),
		zap.Int("kept", len(out)),
	)
	return out, nil
}

// MatchDetail scores one pair without the minimum score cut.
func (u *Recommendations) MatchDetail(ctx context.Context, candidateID, jobID uuid.UUID) (Recommendation, error) {
	profile, err := u.profile(ctx, candidateID)
	if err != nil {
		return Recommendation{}, err
	}
	offer, err := u.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return Recommendation{}, ErrNotFound
		}
		u.logger.Error("get job", zap.String("job_id", jobID.String()), zap.Error(err))
		return Recommendation{}, ErrInternal
	}
	w, err := u.currentWeights(ctx)
	if err != nil {
		return Recommendation{}, err
	}
	known, err := u.skills.ListSkillNames(ctx)
	if err != nil {
		u.logger.Error("list skill names", zap.Error(err))
		return Recommendation{}, ErrInternal
	}
	subs, err := u.submissions.ListByUser(ctx, candidateID)
	if err != nil {
		u.logger.Error("list submissions", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return Recommendation{}, ErrInternal
	}

	cand := u.candidateModel(ctx, profile, subs)
	res := recommendation.Score(cand, JobModel(offer, known), w)
	return Recommendation{Job: offer, Result: res}, nil
}

// RankCandidates scores every candidate against one job, best first.
// Candidates under the minimum score are kept; staff decide on the cut.
func (u *Recommendations) RankCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateMatch, error) {
	if limit == 0 {
		limit = defaultRecommendationPageSize
	}
	if limit < 0 || limit > maxRecommendationPageSize {
		return nil, ErrInvalidInput
	}

	offer, err := u.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrNotFound
		}
		u.logger.Error("get job", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	w, err := u.currentWeights(ctx)
	if err != nil {
		return nil, err
	}
	known, err := u.skills.ListSkillNames(ctx)
	if err != nil {
		u.logger.Error("list skill names", zap.Error(err))
		return nil, ErrInternal
	}
	profiles, err := u.candidates.ListCandidates(ctx)
	if err != nil {
		u.logger.Error("list candidates", zap.Error(err))
		return nil, ErrInternal
	}
	subsByUser, err := u.submissions.ListAll(ctx)
	if err != nil {
		u.logger.Error("list submissions", zap.Error(err))
		return nil, ErrInternal
	}

	jm := JobModel(offer, known)
	out := make([]CandidateMatch, 0, len(profiles))
	for _, p := range profiles {
		cand := u.candidateModel(ctx, p, subsByUser[p.UserID])
		out = append(out, CandidateMatch{
			CandidateID: p.UserID,
			Email:       p.Email,
			Location:    p.Location,
			Result:      recommendation.Score(cand, jm, w),
		})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Result.Score > out[k].Result.Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Snapshot loads everything a batch run needs in one go.
func (u *Recommendations) Snapshot(ctx context.Context) (BatchInput, error) {
	w, err := u.currentWeights(ctx)
	if err != nil {
		return BatchInput{}, err
	}
	offers, known, err := u.activeJobs(ctx)
	if err != nil {
		return BatchInput{}, err
	}
	profiles, err := u.candidates.ListCandidates(ctx)
	if err != nil {
		return BatchInput{}, err
	}
	subs, err := u.submissions.ListAll(ctx)
	if err != nil {
		return BatchInput{}, err
	}
	return BatchInput{Weights: w, Offers: offers, KnownSkills: known, Candidates: profiles, Submissions: subs}, nil
}

type BatchInput struct {
	Weights     recommendation.Weights
	Offers      []job.Offer
	KnownSkills []string
	Candidates  []candidate.Profile
	Submissions map[uuid.UUID][]assessment.Submission
}

// RecommendFor scores one candidate of a snapshot and refreshes its cache
// entry. Safe for concurrent use.
func (u *Recommendations) RecommendFor(ctx context.Context, in BatchInput, p candidate.Profile) []Recommendation {
	cand := u.candidateModel(ctx, p, in.Submissions[p.UserID])
	out := ScoreOffers(cand, in.Offers, in.KnownSkills, in.Weights)
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, RecommendationsCacheKey(p.UserID), out, 0); err != nil {
			u.logger.Debug("cache recommendations", zap.String("candidate_id", p.UserID.String()), zap.Error(err))
		}
	}
	return out
}

// ScoreOffers scores and ranks a candidate against a set of offers,
// dropping those under the configured minimum.
func ScoreOffers(cand recommendation.Candidate, offers []job.Offer, known []string, w recommendation.Weights) []Recommendation {
	byID := make(map[uuid.UUID]job.Offer, len(offers))
	results := make([]recommendation.Result, 0, len(offers))
	for _, o := range offers {
		byID[o.ID] = o
		results = append(results, recommendation.Score(cand, JobModel(o, known), w))
	}

	ranked := recommendation.Rank(results, w.MinRecommendationScore)
	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, Recommendation{Job: byID[r.JobID], Result: r})
	}
	return out
}

func JobModel(o job.Offer, known []string) recommendation.Job {
	return recommendation.Job{
		ID:             o.ID,
		Title:          o.Title,
		Company:        o.Company,
		Location:       o.Location,
		Remote:         o.Remote,
		SalaryMin:      o.SalaryMin,
		SalaryMax:      o.SalaryMax,
		Currency:       o.Currency,
		Seniority:      o.Seniority,
		RequiredSkills: recommendation.ExtractRequiredSkills(o.Requirements, known),
	}
}

func (u *Recommendations) candidateModel(ctx context.Context, p candidate.Profile, subs []assessment.Submission) recommendation.Candidate {
	return recommendation.Candidate{
		ID:              p.UserID,
		Skills:          p.SkillNames(),
		ExperienceYears: p.ExperienceYears,
		Location:        p.Location,
		TestScores:      assessment.CategoryScores(subs),
		Cognitive:       cognitive.ScoreOrNeutral(ctx, u.scorer, p.UserID, u.logger),
	}
}

func (u *Recommendations) profile(ctx context.Context, candidateID uuid.UUID) (candidate.Profile, error) {
	p, err := u.candidates.GetProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Profile{}, ErrNotFound
		}
		u.logger.Error("get candidate profile", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Recommendations) currentWeights(ctx context.Context) (recommendation.Weights, error) {
	w, _, err := u.weights.GetWeights(ctx)
	if err != nil {
		u.logger.Error("load scoring weights", zap.Error(err))
		return recommendation.Weights{}, ErrInternal
	}
	return w, nil
}

func (u *Recommendations) activeJobs(ctx context.Context) ([]job.Offer, []string, error) {
	offers, err := u.jobs.ListActiveJobs(ctx)
	if err != nil {
		u.logger.Error("list active jobs", zap.Error(err))
		return nil, nil, ErrInternal
	}
	known, err := u.skills.ListSkillNames(ctx)
	if err != nil {
		u.logger.Error("list skill names", zap.Error(err))
		return nil, nil, ErrInternal
	}
	return offers, known, nil
}

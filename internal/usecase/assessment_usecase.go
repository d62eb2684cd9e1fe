package usecase

import (
	"context"
	"errors"

	"careerquest/internal/domain/assessment"
	"careerquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TestDetail struct {
	Test      assessment.Test
	Questions []assessment.Question
}

type SubmissionResult struct {
	Submission assessment.Submission
	Correct    int
	Answered   int
	Total      int
}

type CandidateResults struct {
	Submissions    []assessment.Submission
	CategoryScores map[assessment.Category]float64
}

type ImportReport struct {
	Imported int
	Skipped  int
	Issues   []assessment.ImportIssue
}

type AssessmentUsecase interface {
	ListTests(ctx context.Context) ([]assessment.Test, error)
	GetTest(ctx context.Context, testID uuid.UUID) (TestDetail, error)
	Submit(ctx context.Context, userID, testID uuid.UUID, answers map[string]string) (SubmissionResult, error)
	MyResults(ctx context.Context, userID uuid.UUID) (CandidateResults, error)
	ImportQuestions(ctx context.Context, testID uuid.UUID, payload []byte) (ImportReport, error)
}

type Assessments struct {
	tests       repository.TestRepository
	submissions repository.SubmissionRepository
	invalidate  invalidator
	logger      *zap.Logger
}

func NewAssessmentUsecase(tests repository.TestRepository, submissions repository.SubmissionRepository, cache Cache, events RecommendationEvents, logger *zap.Logger) *Assessments {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessments{
		tests:       tests,
		submissions: submissions,
		invalidate:  invalidator{cache: cache, events: events, logger: logger},
		logger:      logger,
	}
}

func (u *Assessments) ListTests(ctx context.Context) ([]assessment.Test, error) {
	out, err := u.tests.ListTests(ctx, true)
	if err != nil {
		u.logger.Error("list tests", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// GetTest returns an active test with its questions. Callers must not expose
// the correct options.
func (u *Assessments) GetTest(ctx context.Context, testID uuid.UUID) (TestDetail, error) {
	t, err := u.activeTest(ctx, testID)
	if err != nil {
		return TestDetail{}, err
	}
	qs, err := u.tests.ListQuestions(ctx, testID)
	if err != nil {
		u.logger.Error("list questions", zap.String("test_id", testID.String()), zap.Error(err))
		return TestDetail{}, ErrInternal
	}
	return TestDetail{Test: t, Questions: qs}, nil
}

func (u *Assessments) Submit(ctx context.Context, userID, testID uuid.UUID, raw map[string]string) (SubmissionResult, error) {
	t, err := u.activeTest(ctx, testID)
	if err != nil {
		return SubmissionResult{}, err
	}
	qs, err := u.tests.ListQuestions(ctx, testID)
	if err != nil {
		u.logger.Error("list questions", zap.String("test_id", testID.String()), zap.Error(err))
		return SubmissionResult{}, ErrInternal
	}
	if len(qs) == 0 {
		return SubmissionResult{}, assessment.ErrNoQuestions
	}

	answers := make(assessment.Answers, len(raw))
	for k, v := range raw {
		qid, err := uuid.Parse(k)
		if err != nil {
			continue
		}
		letter, ok := assessment.NormalizeLetter(v)
		if !ok {
			return SubmissionResult{}, assessment.ErrInvalidOption
		}
		answers[qid] = letter
	}

	res := assessment.Grade(qs, answers)
	sub, err := u.submissions.UpsertSubmission(ctx, assessment.Submission{
		UserID:      userID,
		TestID:      testID,
		TestTitle:   t.Title,
		Category:    t.Category,
		Answers:     answers,
		ScorePoints: res.ScorePoints,
		MaxPoints:   res.MaxPoints,
		Percentage:  res.Percentage,
	})
	if err != nil {
		u.logger.Error("save submission", zap.String("user_id", userID.String()), zap.String("test_id", testID.String()), zap.Error(err))
		return SubmissionResult{}, ErrInternal
	}
	sub.TestTitle = t.Title
	sub.Category = t.Category

	u.logger.Info("test submitted",
		zap.String("user_id", userID.String()),
		zap.String("test_id", testID.String()),
		zap.Float64("percentage", res.Percentage),
	)
	u.invalidate.candidate(ctx, userID, "test_submitted")

	return SubmissionResult{Submission: sub, Correct: res.Correct, Answered: res.Answered, Total: len(qs)}, nil
}

func (u *Assessments) MyResults(ctx context.Context, userID uuid.UUID) (CandidateResults, error) {
	subs, err := u.submissions.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("list submissions", zap.String("user_id", userID.String()), zap.Error(err))
		return CandidateResults{}, ErrInternal
	}
	return CandidateResults{Submissions: subs, CategoryScores: assessment.CategoryScores(subs)}, nil
}

// ImportQuestions appends the valid entries of a staff upload; inactive tests
// accept imports too.
func (u *Assessments) ImportQuestions(ctx context.Context, testID uuid.UUID, payload []byte) (ImportReport, error) {
	if _, err := u.tests.GetTest(ctx, testID); err != nil {
		if errors.Is(err, assessment.ErrTestNotFound) {
			return ImportReport{}, ErrNotFound
		}
		return ImportReport{}, ErrInternal
	}

	qs, issues, err := assessment.ParseImport(payload)
	if err != nil {
		return ImportReport{}, err
	}
	for _, is := range issues {
		u.logger.Warn("skipping malformed question",
			zap.String("test_id", testID.String()),
			zap.Int("index", is.Index),
			zap.String("reason", is.Reason),
		)
	}

	n, err := u.tests.AppendQuestions(ctx, testID, qs)
	if err != nil {
		u.logger.Error("append questions", zap.String("test_id", testID.String()), zap.Error(err))
		return ImportReport{}, ErrInternal
	}
	return ImportReport{Imported: n, Skipped: len(issues), Issues: issues}, nil
}

func (u *Assessments) activeTest(ctx context.Context, testID uuid.UUID) (assessment.Test, error) {
	t, err := u.tests.GetTest(ctx, testID)
	if err != nil {
		if errors.Is(err, assessment.ErrTestNotFound) {
			return assessment.Test{}, ErrNotFound
		}
		u.logger.Error("get test", zap.String("test_id", testID.String()), zap.Error(err))
		return assessment.Test{}, ErrInternal
	}
	if !t.IsActive {
		return assessment.Test{}, assessment.ErrTestInactive
	}
	return t, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"careerquest/internal/database"
	"careerquest/internal/domain/assessment"

	"github.com/google/uuid"
)

type SubmissionRepository interface {
	UpsertSubmission(ctx context.Context, s assessment.Submission) (assessment.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]assessment.Submission, error)
	ListAll(ctx context.Context) (map[uuid.UUID][]assessment.Submission, error)
}

type PostgresSubmissionRepository struct {
	db database.DB
}

func NewPostgresSubmissionRepository(db database.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

// UpsertSubmission keeps one row per (user, test); a resubmission replaces
// the answers and score.
func (r *PostgresSubmissionRepository) UpsertSubmission(ctx context.Context, s assessment.Submission) (assessment.Submission, error) {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return assessment.Submission{}, fmt.Errorf("encode answers: %w", err)
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO test_submissions (id, user_id, test_id, answers, score_points, max_points, percentage, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (user_id, test_id) DO UPDATE SET
			answers = EXCLUDED.answers,
			score_points = EXCLUDED.score_points,
			max_points = EXCLUDED.max_points,
			percentage = EXCLUDED.percentage,
			submitted_at = now()
		 RETURNING id, submitted_at`,
		s.ID, s.UserID, s.TestID, answers, s.ScorePoints, s.MaxPoints, s.Percentage,
	).Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		return assessment.Submission{}, err
	}
	return s, nil
}

const submissionSelect = `
SELECT s.id, s.user_id, s.test_id, t.title, t.category, s.answers, s.score_points, s.max_points, s.percentage, s.submitted_at
FROM test_submissions s
JOIN technical_tests t ON t.id = s.test_id`

func (r *PostgresSubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]assessment.Submission, error) {
	out := make([]assessment.Submission, 0)
	err := r.list(ctx, submissionSelect+` WHERE s.user_id = $1 ORDER BY s.submitted_at DESC`, []any{userID}, func(s assessment.Submission) {
		out = append(out, s)
	})
	return out, err
}

func (r *PostgresSubmissionRepository) ListAll(ctx context.Context) (map[uuid.UUID][]assessment.Submission, error) {
	out := make(map[uuid.UUID][]assessment.Submission)
	err := r.list(ctx, submissionSelect, nil, func(s assessment.Submission) {
		out[s.UserID] = append(out[s.UserID], s)
	})
	return out, err
}

func (r *PostgresSubmissionRepository) list(ctx context.Context, query string, args []any, fn func(assessment.Submission)) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s assessment.Submission
		var cat string
		var raw []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.TestID, &s.TestTitle, &cat, &raw, &s.ScorePoints, &s.MaxPoints, &s.Percentage, &s.SubmittedAt); err != nil {
			return err
		}
		s.Category = assessment.Category(cat)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &s.Answers); err != nil {
				return fmt.Errorf("decode answers of submission %s: %w", s.ID, err)
			}
		}
		fn(s)
	}
	return rows.Err()
}

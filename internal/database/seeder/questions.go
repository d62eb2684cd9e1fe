package seeder

import (
	"context"
	"errors"
	"fmt"

	"careerquest/internal/database"
	"careerquest/internal/domain/assessment"
	"careerquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionBankSeeder upserts every technical test by title and replaces its
// questions with the reference bank. A non-nil TestID restricts the refresh
// to that test.
type QuestionBankSeeder struct {
	TestID uuid.UUID
}

func (QuestionBankSeeder) Name() string { return "questions" }

func (s QuestionBankSeeder) Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error) {
	if err := EnsureTableColumns(ctx, q, "technical_tests", "id", "title", "category", "duration_minutes", "is_active"); err != nil {
		return 0, err
	}

	banks := questionBanks
	if s.TestID != uuid.Nil {
		b, err := bankForTest(ctx, q, s.TestID)
		if err != nil {
			return 0, err
		}
		banks = []questionBank{b}
	}

	changed := 0
	for _, b := range banks {
		testID, err := upsertTest(ctx, q, b)
		if err != nil {
			return changed, fmt.Errorf("upsert test %q: %w", b.Title, err)
		}

		removed, err := q.Exec(ctx, `DELETE FROM questions WHERE test_id = $1`, testID)
		if err != nil {
			return changed, err
		}
		for i, bq := range b.Questions {
			qu := assessment.Question{
				TestID:        testID,
				Text:          bq.Text,
				OptionA:       bq.Options[0],
				OptionB:       bq.Options[1],
				OptionC:       bq.Options[2],
				OptionD:       bq.Options[3],
				CorrectOption: bq.Correct,
				Points:        bq.Points,
				Order:         i + 1,
			}
			if err := repository.InsertQuestion(ctx, q, qu); err != nil {
				return changed, fmt.Errorf("insert question %d of %q: %w", i+1, b.Title, err)
			}
		}
		changed += len(b.Questions)

		logger.Info("question bank refreshed",
			zap.String("test", b.Title),
			zap.String("test_id", testID.String()),
			zap.Int64("removed", removed),
			zap.Int("inserted", len(b.Questions)),
		)
	}
	return changed, nil
}

func upsertTest(ctx context.Context, q database.Querier, b questionBank) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx,
		`INSERT INTO technical_tests (id, title, description, category, duration_minutes, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 ON CONFLICT (title) DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			duration_minutes = EXCLUDED.duration_minutes
		 RETURNING id`,
		uuid.New(), b.Title, b.Description, string(assessment.ClassifyTitle(b.Title)), b.DurationMinutes,
	).Scan(&id)
	return id, err
}

var errNoBank = errors.New("no reference question bank for test")

func bankForTest(ctx context.Context, q database.Querier, testID uuid.UUID) (questionBank, error) {
	var title string
	if err := q.QueryRow(ctx, `SELECT title FROM technical_tests WHERE id = $1`, testID).Scan(&title); err != nil {
		return questionBank{}, fmt.Errorf("lookup test %s: %w", testID, err)
	}
	for _, b := range questionBanks {
		if b.Title == title {
			return b, nil
		}
	}
	return questionBank{}, fmt.Errorf("%w %q", errNoBank, title)
}

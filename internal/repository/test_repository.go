package repository

import (
	"context"
	"errors"
	"fmt"

	"careerquest/internal/database"
	"careerquest/internal/domain/assessment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TestRepository interface {
	ListTests(ctx context.Context, activeOnly bool) ([]assessment.Test, error)
	GetTest(ctx context.Context, id uuid.UUID) (assessment.Test, error)
	ListQuestions(ctx context.Context, testID uuid.UUID) ([]assessment.Question, error)
	AppendQuestions(ctx context.Context, testID uuid.UUID, qs []assessment.Question) (int, error)
}

type PostgresTestRepository struct {
	db database.DB
}

func NewPostgresTestRepository(db database.DB) *PostgresTestRepository {
	return &PostgresTestRepository{db: db}
}

const testSelect = `
SELECT t.id, t.title, t.description, t.category, t.duration_minutes, t.is_active, t.created_at,
       (SELECT count(*) FROM questions q WHERE q.test_id = t.id)
FROM technical_tests t`

func scanTest(row database.Row) (assessment.Test, error) {
	var t assessment.Test
	var cat string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &cat, &t.DurationMinutes, &t.IsActive, &t.CreatedAt, &t.QuestionCount); err != nil {
		return assessment.Test{}, err
	}
	t.Category = assessment.Category(cat)
	return t, nil
}

func (r *PostgresTestRepository) ListTests(ctx context.Context, activeOnly bool) ([]assessment.Test, error) {
	query := testSelect
	if activeOnly {
		query += ` WHERE t.is_active = true`
	}
	query += ` ORDER BY t.title ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Test, 0)
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresTestRepository) GetTest(ctx context.Context, id uuid.UUID) (assessment.Test, error) {
	t, err := scanTest(r.db.QueryRow(ctx, testSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.Test{}, assessment.ErrTestNotFound
		}
		return assessment.Test{}, err
	}
	return t, nil
}

func (r *PostgresTestRepository) ListQuestions(ctx context.Context, testID uuid.UUID) ([]assessment.Question, error) {
	return ListQuestions(ctx, r.db, testID)
}

// ListQuestions is shared with the seeders, which read inside their own
// transaction.
func ListQuestions(ctx context.Context, q database.Querier, testID uuid.UUID) ([]assessment.Question, error) {
	rows, err := q.Query(ctx,
		`SELECT id, test_id, text, option_a, option_b, option_c, option_d, correct_option, points, sort_order
		 FROM questions WHERE test_id = $1 ORDER BY sort_order ASC, created_at ASC`,
		testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Question, 0)
	for rows.Next() {
		var qu assessment.Question
		if err := rows.Scan(&qu.ID, &qu.TestID, &qu.Text, &qu.OptionA, &qu.OptionB, &qu.OptionC, &qu.OptionD,
			&qu.CorrectOption, &qu.Points, &qu.Order); err != nil {
			return nil, err
		}
		out = append(out, qu)
	}
	return out, rows.Err()
}

// AppendQuestions adds questions after the current last one, in a single
// transaction.
func (r *PostgresTestRepository) AppendQuestions(ctx context.Context, testID uuid.UUID, qs []assessment.Question) (int, error) {
	if len(qs) == 0 {
		return 0, nil
	}

	inserted := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var last int
		if err := tx.QueryRow(ctx, `SELECT COALESCE(max(sort_order), 0) FROM questions WHERE test_id = $1`, testID).Scan(&last); err != nil {
			return err
		}
		for i, q := range qs {
			q.TestID = testID
			q.Order = last + i + 1
			if err := InsertQuestion(ctx, tx, q); err != nil {
				return fmt.Errorf("insert question %d: %w", i, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func InsertQuestion(ctx context.Context, q database.Querier, qu assessment.Question) error {
	if qu.ID == uuid.Nil {
		qu.ID = uuid.New()
	}
	_, err := q.Exec(ctx,
		`INSERT INTO questions (id, test_id, text, option_a, option_b, option_c, option_d, correct_option, points, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		qu.ID, qu.TestID, qu.Text, qu.OptionA, qu.OptionB, qu.OptionC, qu.OptionD, qu.CorrectOption, qu.Points, qu.Order,
	)
	return err
}

package repository

import (
	"context"
	"errors"

	"careerquest/internal/database"
	"careerquest/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SkillRepository interface {
	ListSkills(ctx context.Context, category *skill.Category) ([]skill.Skill, error)
	ListSkillNames(ctx context.Context) ([]string, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	GetOrCreateSkill(ctx context.Context, name string, category skill.Category) (skill.Skill, bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, category *skill.Category) ([]skill.Skill, error) {
	query := `SELECT id, name, category, created_at FROM skills`
	args := []any{}
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, string(*category))
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var cat string
		if err := rows.Scan(&s.ID, &s.Name, &cat, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Category = skill.Category(cat)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ListSkillNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresSkillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	var s skill.Skill
	var cat string
	err := r.db.QueryRow(ctx, `SELECT id, name, category, created_at FROM skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &cat, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	s.Category = skill.Category(cat)
	return s, nil
}

// GetOrCreateSkill inserts the skill unless the name exists and returns the
// stored row either way. The bool reports whether a row was created.
func (r *PostgresSkillRepository) GetOrCreateSkill(ctx context.Context, name string, category skill.Category) (skill.Skill, bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name, string(category),
	)
	if err != nil {
		return skill.Skill{}, false, err
	}

	var s skill.Skill
	var cat string
	err = r.db.QueryRow(ctx, `SELECT id, name, category, created_at FROM skills WHERE name = $1`, name).
		Scan(&s.ID, &s.Name, &cat, &s.CreatedAt)
	if err != nil {
		return skill.Skill{}, false, err
	}
	s.Category = skill.Category(cat)
	return s, affected > 0, nil
}

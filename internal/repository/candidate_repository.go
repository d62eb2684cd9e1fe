package repository

import (
	"context"
	"errors"

	"careerquest/internal/database"
	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CandidateRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	UpsertProfile(ctx context.Context, p candidate.Profile) error
	AddSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
	RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
	ListCandidates(ctx context.Context) ([]candidate.Profile, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const profileSelect = `
SELECT u.id, u.email,
       COALESCE(p.bio, ''), COALESCE(p.location, ''), COALESCE(p.experience_years, 0),
       p.cv_path, p.telegram_chat_id,
       COALESCE(p.created_at, u.created_at), COALESCE(p.updated_at, u.updated_at)
FROM users u
LEFT JOIN candidate_profiles p ON p.user_id = u.id`

func scanProfile(row database.Row) (candidate.Profile, error) {
	var p candidate.Profile
	err := row.Scan(
		&p.UserID, &p.Email,
		&p.Bio, &p.Location, &p.ExperienceYears,
		&p.CVPath, &p.TelegramChatID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *PostgresCandidateRepository) GetProfile(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, profileSelect+` WHERE u.id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, candidate.ErrNotFound
		}
		return candidate.Profile{}, err
	}

	skillsByUser, err := r.skillsFor(ctx, []uuid.UUID{userID})
	if err != nil {
		return candidate.Profile{}, err
	}
	p.Skills = skillsByUser[userID]
	return p, nil
}

func (r *PostgresCandidateRepository) UpsertProfile(ctx context.Context, p candidate.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_profiles (user_id, bio, location, experience_years, cv_path, telegram_chat_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			experience_years = EXCLUDED.experience_years,
			cv_path = EXCLUDED.cv_path,
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			updated_at = now()`,
		p.UserID, p.Bio, p.Location, p.ExperienceYears, p.CVPath, p.TelegramChatID,
	)
	return err
}

func (r *PostgresCandidateRepository) AddSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO candidate_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, skillID,
	)
	return affected > 0, err
}

func (r *PostgresCandidateRepository) RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM candidate_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	return affected > 0, err
}

// ListCandidates returns every non-staff user with their profile and skills.
func (r *PostgresCandidateRepository) ListCandidates(ctx context.Context) ([]candidate.Profile, error) {
	rows, err := r.db.Query(ctx, profileSelect+` WHERE u.is_staff = false ORDER BY u.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Profile, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
		ids = append(ids, p.UserID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skillsByUser, err := r.skillsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skillsByUser[out[i].UserID]
	}
	return out, nil
}

func (r *PostgresCandidateRepository) skillsFor(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.Skill, error) {
	out := make(map[uuid.UUID][]skill.Skill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.db.Query(ctx,
		`SELECT cs.user_id, s.id, s.name, s.category, s.created_at
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.user_id = ANY($1::uuid[])
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid uuid.UUID
		var s skill.Skill
		var cat string
		if err := rows.Scan(&uid, &s.ID, &s.Name, &cat, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Category = skill.Category(cat)
		out[uid] = append(out[uid], s)
	}
	return out, rows.Err()
}

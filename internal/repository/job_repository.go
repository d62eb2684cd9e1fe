package repository

import (
	"context"
	"errors"
	"fmt"

	"careerquest/internal/database"
	"careerquest/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpsertStats struct {
	Inserted int
	Updated  int
}

type JobRepository interface {
	GetJobByID(ctx context.Context, id uuid.UUID) (job.Offer, error)
	ListActiveJobs(ctx context.Context) ([]job.Offer, error)
	UpsertJobs(ctx context.Context, offers []job.Offer) (UpsertStats, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, company, location, salary_min, salary_max, currency, remote, seniority,
	requirements, tags, status, source_type, source_id, url, posted_at, created_at`

func scanJob(row database.Row) (job.Offer, error) {
	var o job.Offer
	var status, sourceType string
	err := row.Scan(
		&o.ID, &o.Title, &o.Company, &o.Location, &o.SalaryMin, &o.SalaryMax, &o.Currency, &o.Remote, &o.Seniority,
		&o.Requirements, &o.Tags, &status, &sourceType, &o.SourceID, &o.URL, &o.PostedAt, &o.CreatedAt,
	)
	if err != nil {
		return job.Offer{}, err
	}
	o.Status = job.Status(status)
	o.SourceType = job.SourceType(sourceType)
	return o, nil
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Offer, error) {
	o, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Offer{}, job.ErrNotFound
		}
		return job.Offer{}, err
	}
	return o, nil
}

func (r *PostgresJobRepository) ListActiveJobs(ctx context.Context) ([]job.Offer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM job_offers WHERE status = 'active' ORDER BY posted_at DESC NULLS LAST, created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Offer, 0)
	for rows.Next() {
		o, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertJobs inserts offers keyed by (source_type, source_id) and refreshes
// the mutable fields of rows already known.
func (r *PostgresJobRepository) UpsertJobs(ctx context.Context, offers []job.Offer) (UpsertStats, error) {
	var stats UpsertStats
	if len(offers) == 0 {
		return stats, nil
	}

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, o := range offers {
			inserted, err := UpsertJob(ctx, tx, o)
			if err != nil {
				return fmt.Errorf("upsert %s/%s: %w", o.SourceType, o.SourceID, err)
			}
			if inserted {
				stats.Inserted++
			} else {
				stats.Updated++
			}
		}
		return nil
	})
	return stats, err
}

// UpsertJob reports whether the offer was inserted rather than updated.
func UpsertJob(ctx context.Context, q database.Querier, o job.Offer) (bool, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Currency == "" {
		o.Currency = job.DefaultCurrency
	}
	if o.Status == "" {
		o.Status = job.StatusActive
	}
	if o.SourceType == "" {
		o.SourceType = job.SourceManual
	}
	if o.Tags == nil {
		o.Tags = []string{}
	}

	var inserted bool
	err := q.QueryRow(ctx,
		`INSERT INTO job_offers (id, title, company, location, salary_min, salary_max, currency, remote, seniority,
			requirements, tags, status, source_type, source_id, url, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (source_type, source_id) WHERE source_id <> '' DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			remote = EXCLUDED.remote,
			seniority = EXCLUDED.seniority,
			requirements = EXCLUDED.requirements,
			tags = EXCLUDED.tags,
			url = EXCLUDED.url,
			posted_at = COALESCE(EXCLUDED.posted_at, job_offers.posted_at)
		 RETURNING (xmax = 0)`,
		o.ID, o.Title, o.Company, o.Location, o.SalaryMin, o.SalaryMax, o.Currency, o.Remote, o.Seniority,
		o.Requirements, o.Tags, string(o.Status), string(o.SourceType), o.SourceID, o.URL, o.PostedAt,
	).Scan(&inserted)
	return inserted, err
}

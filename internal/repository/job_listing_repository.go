package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"careerquest/internal/domain/job"

	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type JobListFilter struct {
	City          string
	Remote        *bool
	Status        job.Status
	Tags          []string
	MinSalary     int
	SourceType    job.SourceType
	TitleVariants []string
	Limit         int
	Offset        int
}

type JobListingRepository interface {
	ListJobs(ctx context.Context, f JobListFilter) ([]job.Offer, int, error)
}

// DBRJobListingRepository builds the filtered listing query with dbr on the
// database/sql handle shared with the pgx pool.
type DBRJobListingRepository struct {
	sess *dbr.Session
}

func NewDBRJobListingRepository(db *sql.DB) *DBRJobListingRepository {
	conn := &dbr.Connection{
		DB:            db,
		Dialect:       dialect.PostgreSQL,
		EventReceiver: &dbr.NullEventReceiver{},
	}
	return &DBRJobListingRepository{sess: conn.NewSession(nil)}
}

type jobListingRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Company      string         `db:"company"`
	Location     string         `db:"location"`
	SalaryMin    dbr.NullInt64  `db:"salary_min"`
	SalaryMax    dbr.NullInt64  `db:"salary_max"`
	Currency     string         `db:"currency"`
	Remote       bool           `db:"remote"`
	Seniority    string         `db:"seniority"`
	Requirements string         `db:"requirements"`
	Tags         pq.StringArray `db:"tags"`
	Status       string         `db:"status"`
	SourceType   string         `db:"source_type"`
	SourceID     string         `db:"source_id"`
	URL          string         `db:"url"`
	PostedAt     dbr.NullTime   `db:"posted_at"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r *DBRJobListingRepository) applyFilter(stmt *dbr.SelectStmt, f JobListFilter) *dbr.SelectStmt {
	status := f.Status
	if status == "" {
		status = job.StatusActive
	}
	stmt = stmt.Where("status = ?", string(status))

	if city := strings.TrimSpace(f.City); city != "" {
		stmt = stmt.Where("unaccent(lower(location)) = unaccent(lower(?))", city)
	}
	if f.Remote != nil {
		stmt = stmt.Where("remote = ?", *f.Remote)
	}
	if len(f.Tags) > 0 {
		stmt = stmt.Where("tags && ?::text[]", pq.StringArray(f.Tags))
	}
	if f.MinSalary > 0 {
		stmt = stmt.Where("COALESCE(salary_max, salary_min) >= ?", f.MinSalary)
	}
	if f.SourceType != "" {
		stmt = stmt.Where("source_type = ?", string(f.SourceType))
	}
	if len(f.TitleVariants) > 0 {
		conds := make([]dbr.Builder, 0, len(f.TitleVariants))
		for _, v := range f.TitleVariants {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			conds = append(conds, dbr.Expr("unaccent(lower(title)) LIKE ?", "%"+escapeLike(v)+"%"))
		}
		if len(conds) > 0 {
			stmt = stmt.Where(dbr.Or(conds...))
		}
	}
	return stmt
}

func (r *DBRJobListingRepository) ListJobs(ctx context.Context, f JobListFilter) ([]job.Offer, int, error) {
	var total int
	countStmt := r.applyFilter(r.sess.Select("count(*)").From("job_offers"), f)
	if _, err := countStmt.LoadContext(ctx, &total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	stmt := r.applyFilter(r.sess.Select(
		"id", "title", "company", "location", "salary_min", "salary_max", "currency", "remote", "seniority",
		"requirements", "tags", "status", "source_type", "source_id", "url", "posted_at", "created_at",
	).From("job_offers"), f).
		OrderBy("posted_at DESC NULLS LAST").
		OrderDesc("created_at").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	var rows []jobListingRow
	if _, err := stmt.LoadContext(ctx, &rows); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	out := make([]job.Offer, 0, len(rows))
	for _, row := range rows {
		o, err := row.toOffer()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, nil
}

func (row jobListingRow) toOffer() (job.Offer, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return job.Offer{}, fmt.Errorf("job id %q: %w", row.ID, err)
	}
	o := job.Offer{
		ID:           id,
		Title:        row.Title,
		Company:      row.Company,
		Location:     row.Location,
		Currency:     row.Currency,
		Remote:       row.Remote,
		Seniority:    row.Seniority,
		Requirements: row.Requirements,
		Tags:         []string(row.Tags),
		Status:       job.Status(row.Status),
		SourceType:   job.SourceType(row.SourceType),
		SourceID:     row.SourceID,
		URL:          row.URL,
		CreatedAt:    row.CreatedAt,
	}
	if row.SalaryMin.Valid {
		v := int(row.SalaryMin.Int64)
		o.SalaryMin = &v
	}
	if row.SalaryMax.Valid {
		v := int(row.SalaryMax.Int64)
		o.SalaryMax = &v
	}
	if row.PostedAt.Valid {
		t := row.PostedAt.Time
		o.PostedAt = &t
	}
	return o, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

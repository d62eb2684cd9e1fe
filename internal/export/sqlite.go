package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"careerquest/internal/pipeline"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	candidates INTEGER NOT NULL,
	offers INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS recommendations (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	candidate_id TEXT NOT NULL,
	candidate_email TEXT NOT NULL,
	rank INTEGER NOT NULL,
	job_id TEXT NOT NULL,
	job_title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	salary TEXT NOT NULL,
	score REAL NOT NULL,
	is_high_match INTEGER NOT NULL,
	matched_skills TEXT NOT NULL,
	missing_skills TEXT NOT NULL,
	PRIMARY KEY (run_id, candidate_id, rank)
);
CREATE INDEX IF NOT EXISTS recommendations_candidate_idx ON recommendations (candidate_id);
`

func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty export path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return db, nil
}

type SQLiteExporter struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteExporter(db *sql.DB) *SQLiteExporter {
	return &SQLiteExporter{db: db, now: time.Now}
}

// Write appends one run to the snapshot file and returns its id. Earlier runs
// are kept so successive batches can be compared.
func (e *SQLiteExporter) Write(ctx context.Context, batch []pipeline.CandidateRecommendations, stats pipeline.BatchStats) (int64, error) {
	if _, err := e.db.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (generated_at, candidates, offers) VALUES (?, ?, ?)`,
		e.now().UTC().Format(time.RFC3339), stats.Candidates, stats.Offers,
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO recommendations (run_id, candidate_id, candidate_email, rank, job_id, job_title, company,
			location, salary, score, is_high_match, matched_skills, missing_skills)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, cr := range batch {
		for i, r := range cr.Items {
			high := 0
			if r.IsHighMatch {
				high = 1
			}
			_, err := stmt.ExecContext(ctx,
				runID, cr.Profile.UserID.String(), cr.Profile.Email, i+1,
				r.Job.ID.String(), r.Job.Title, r.Job.Company,
				r.Location, r.JobSalary, r.Score, high,
				strings.Join(r.MatchedSkills, ","), strings.Join(r.MissingSkills, ","),
			)
			if err != nil {
				return 0, fmt.Errorf("insert recommendation for %s: %w", cr.Profile.UserID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

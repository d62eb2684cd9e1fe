package seeder

import (
	"context"
	"fmt"
	"strings"

	"careerquest/internal/database"

	"go.uber.org/zap"
)

// Runner applies seeders inside a single transaction. With DryRun set the
// transaction is rolled back after every seeder has reported its counts.
type Runner struct {
	Seeders []Seeder
	DryRun  bool
	Logger  *zap.Logger
}

type Report struct {
	Name    string
	Changed int
}

func (r Runner) Run(ctx context.Context, db database.DB) ([]Report, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var reports []Report
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		reports = reports[:0]
		for _, s := range r.Seeders {
			if s == nil {
				continue
			}
			n, err := s.Run(ctx, tx, logger.Named(s.Name()))
			if err != nil {
				return fmt.Errorf("seed %s: %w", s.Name(), err)
			}
			reports = append(reports, Report{Name: s.Name(), Changed: n})
			logger.Info("seeder finished",
				zap.String("seeder", s.Name()),
				zap.Int("changed", n),
				zap.Bool("dry_run", r.DryRun),
			)
		}
		if r.DryRun {
			return database.ErrRollback
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Select keeps the seeders named in only, in their original order. An empty
// list keeps everything.
func Select(all []Seeder, only []string) ([]Seeder, error) {
	if len(only) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(only))
	for _, n := range only {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			wanted[n] = true
		}
	}

	out := make([]Seeder, 0, len(wanted))
	for _, s := range all {
		if wanted[s.Name()] {
			out = append(out, s)
			delete(wanted, s.Name())
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for n := range wanted {
			unknown = append(unknown, n)
		}
		return nil, fmt.Errorf("unknown seeders: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

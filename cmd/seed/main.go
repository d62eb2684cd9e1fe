package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"careerquest/internal/config"
	"careerquest/internal/database/migration"
	dbpostgres "careerquest/internal/database/postgres"
	"careerquest/internal/database/seeder"
	"careerquest/internal/infrastructure/cache"
	"careerquest/internal/logger"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	only := flag.String("only", "", "comma separated seeders to run (skills,weights,questions,jobs,staff)")
	dryRun := flag.Bool("dry-run", false, "run every seeder then roll back")
	testID := flag.String("test-id", "", "reseed the questions of a single test")
	jobCount := flag.Int("jobs", 40, "number of mock job offers")
	randomSeed := flag.Int64("seed", 42, "random seed for mock job offers")
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	opts := seeder.Options{
		JobCount:      *jobCount,
		RandomSeed:    *randomSeed,
		StaffEmail:    cfg.Seed.StaffEmail,
		StaffPassword: cfg.Seed.StaffPassword,
	}
	if raw := strings.TrimSpace(*testID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			lg.Fatal("invalid -test-id", zap.String("value", raw), zap.Error(err))
		}
		opts.TestID = id
	}

	var names []string
	for _, n := range strings.Split(*only, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	seeders, err := seeder.Select(seeder.Defaults(opts), names)
	if err != nil {
		lg.Fatal("invalid -only", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg)
	if err != nil {
		lg.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	steps := planFor(*dryRun)
	if steps.migrate {
		mig := migration.Runner{Dir: *migrationsDir, Logger: lg.Named("migration")}
		if err := mig.Run(ctx, db.SQLDB()); err != nil {
			lg.Fatal("migration failed", zap.Error(err))
		}
	} else {
		lg.Info("dry run: migrations skipped, schema must already be current")
	}

	runner := seeder.Runner{Seeders: seeders, DryRun: *dryRun, Logger: lg.Named("seeder")}
	reports, err := runner.Run(ctx, db)
	if err != nil {
		lg.Fatal("seeding failed", zap.Error(err))
	}

	total := 0
	for _, r := range reports {
		total += r.Changed
	}
	if steps.invalidate {
		rc := cache.NewRedis(cfg.Redis, lg.Named("cache"))
		defer func() { _ = rc.Close() }()
		dropCaches(ctx, rc, lg)
	}
	lg.Info("seeding complete",
		zap.Int("seeders", len(reports)),
		zap.Int("changed", total),
		zap.Bool("dry_run", *dryRun),
	)
}

// plan lists the side effects of a seed run beyond the seeders themselves.
// A dry run rolls back every seeder, so it must not leave schema changes or
// an emptied cache behind.
type plan struct {
	migrate    bool
	invalidate bool
}

func planFor(dryRun bool) plan {
	return plan{migrate: !dryRun, invalidate: !dryRun}
}

func dropCaches(ctx context.Context, c usecase.Cache, lg *zap.Logger) {
	if err := usecase.InvalidateJobCaches(ctx, c); err != nil {
		lg.Warn("cache invalidation failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"careerquest/internal/app"
	"careerquest/internal/config"
	"careerquest/internal/export"
	"careerquest/internal/logger"
	"careerquest/internal/notify"
	"careerquest/internal/pipeline"

	"go.uber.org/zap"
)

func main() {
	exportPath := flag.String("export", "", "sqlite file receiving this run's recommendations")
	sendDigest := flag.Bool("notify", false, "send each candidate a telegram digest")
	digestSize := flag.Int("digest-size", 5, "offers per telegram digest")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply pending migrations")
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(cfg, lg, app.ContainerOptions{
		MigrationsDir:  *migrationsDir,
		SkipMigrations: *skipMigrations,
	})
	if err != nil {
		lg.Fatal("failed to init container", zap.Error(err))
	}
	defer func() { _ = c.Close() }()

	batch := pipeline.NewRecommendBatch(c.Usecases.Recommendations, lg.Named("pipeline"))
	results, stats, err := batch.Run(ctx, pipeline.BatchParams{
		Workers: cfg.Ingest.Workers,
	})
	if err != nil {
		lg.Fatal("recommendation batch failed", zap.Error(err))
	}
	lg.Info("recommendation batch complete",
		zap.Int("candidates", stats.Candidates),
		zap.Int("offers", stats.Offers),
		zap.Int("recommendations", stats.Recommendations),
		zap.Int("high_matches", stats.HighMatches),
		zap.Duration("duration", stats.Duration),
	)

	if path := strings.TrimSpace(*exportPath); path != "" {
		db, err := export.Open(path)
		if err != nil {
			lg.Fatal("failed to open export file", zap.Error(err))
		}
		runID, err := export.NewSQLiteExporter(db).Write(ctx, results, stats)
		_ = db.Close()
		if err != nil {
			lg.Fatal("export failed", zap.Error(err))
		}
		lg.Info("recommendations exported", zap.String("path", path), zap.Int64("run_id", runID))
	}

	if *sendDigest {
		bot, err := notify.NewBot(cfg.Telegram.Token)
		if err != nil {
			lg.Fatal("failed to create telegram bot", zap.Error(err))
		}
		ds, err := notify.NewTelegramDigest(bot, *digestSize, lg.Named("telegram")).Send(ctx, results)
		if err != nil {
			lg.Error("telegram digest interrupted", zap.Error(err))
		}
		lg.Info("telegram digest sent",
			zap.Int("sent", ds.Sent),
			zap.Int("skipped", ds.Skipped),
			zap.Int("failed", ds.Failed),
		)
	}
}

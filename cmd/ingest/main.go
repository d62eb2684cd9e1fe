package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"careerquest/internal/config"
	"careerquest/internal/database/migration"
	dbpostgres "careerquest/internal/database/postgres"
	"careerquest/internal/infrastructure/cache"
	"careerquest/internal/ingest"
	"careerquest/internal/logger"
	"careerquest/internal/repository"
	"careerquest/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	listURL := flag.String("url", cfg.Ingest.ListingURL, "listing url, %d is replaced by the page number")
	source := flag.String("source", "", "source name stored on each offer (defaults to the listing host)")
	pages := flag.Int("pages", 1, "listing pages to crawl")
	headless := flag.Bool("headless", cfg.Ingest.Headless, "render listing pages with Chrome")
	linkSel := flag.String("link", "", "css selector of offer links on the listing page")
	titleSel := flag.String("title", "", "css selector of the offer title")
	companySel := flag.String("company", "", "css selector of the company name")
	locationSel := flag.String("location", "", "css selector of the offer city")
	salarySel := flag.String("salary", "", "css selector of the salary text")
	bodySel := flag.String("body", "", "css selector of the offer description")
	delay := flag.Duration("delay", 0, "delay between requests to the same host")
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	flag.Parse()

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if strings.TrimSpace(*listURL) == "" {
		lg.Fatal("provide -url or INGEST_LISTING_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg)
	if err != nil {
		lg.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer migCancel()
	mig := migration.Runner{Dir: *migrationsDir, Logger: lg.Named("migration")}
	if err := mig.Run(migCtx, db.SQLDB()); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	target := ingest.Target{
		SourceName:       *source,
		ListURL:          *listURL,
		LinkSelector:     *linkSel,
		TitleSelector:    *titleSel,
		CompanySelector:  *companySel,
		LocationSelector: *locationSel,
		SalarySelector:   *salarySel,
		BodySelector:     *bodySel,
	}
	opts := ingest.Options{
		Pages:      *pages,
		Workers:    cfg.Ingest.Workers,
		RatePerSec: cfg.Ingest.RatePerSec,
		Delay:      *delay,
	}
	if *headless {
		opts.Headless = ingest.ChromeFetcher{Timeout: 45 * time.Second, Settle: 2 * time.Second}
	}

	crawler := ingest.NewCrawler(repository.NewPostgresJobRepository(db), lg.Named("ingest"))
	stats, err := crawler.Crawl(ctx, target, opts)
	if err != nil {
		lg.Fatal("ingest failed", zap.Error(err))
	}

	if stats.Inserted+stats.Updated > 0 {
		rc := cache.NewRedis(cfg.Redis, lg.Named("cache"))
		defer func() { _ = rc.Close() }()
		if err := usecase.InvalidateJobCaches(ctx, rc); err != nil {
			lg.Warn("cache invalidation failed", zap.Error(err))
		}
	}

	lg.Info("ingest complete",
		zap.Int("links", stats.Links),
		zap.Int("parsed", stats.Parsed),
		zap.Int("failed", stats.Failed),
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
	)
}

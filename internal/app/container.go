package app

import (
	"context"
	"fmt"
	"time"

	"careerquest/internal/config"
	"careerquest/internal/database"
	"careerquest/internal/database/migration"
	dbpostgres "careerquest/internal/database/postgres"
	"careerquest/internal/infrastructure/cache"
	"careerquest/internal/infrastructure/cognitive"
	"careerquest/internal/pkg/jwt"
	"careerquest/internal/repository"
	"careerquest/internal/usecase"
	ucauth "careerquest/internal/usecase/auth"
	"careerquest/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the server and the batch
// commands.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    *jwt.HMACService
	Hub    *ws.Hub

	Repos    Repositories
	Usecases Usecases
}

type Repositories struct {
	Users       *repository.PostgresUserRepository
	Skills      *repository.PostgresSkillRepository
	Candidates  *repository.PostgresCandidateRepository
	Jobs        *repository.PostgresJobRepository
	Listing     *repository.DBRJobListingRepository
	Tests       *repository.PostgresTestRepository
	Submissions *repository.PostgresSubmissionRepository
	Weights     *repository.PostgresScoringWeightsRepository
}

type Usecases struct {
	Auth            *usecase.Auth
	Skills          *usecase.Skills
	Candidates      *usecase.Candidates
	Assessments     *usecase.Assessments
	JobList         *usecase.JobList
	Recommendations *usecase.Recommendations
	Weights         *usecase.ScoringWeights
}

type ContainerOptions struct {
	MigrationsDir  string
	SkipMigrations bool
}

func NewContainer(cfg config.Config, logger *zap.Logger, opts ContainerOptions) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if !opts.SkipMigrations {
		runner := migration.Runner{Dir: opts.MigrationsDir, Logger: logger.Named("migration")}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger.Named("cache")),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Hub: ws.NewHub(logger.Named("ws")),
	}

	c.Repos = Repositories{
		Users:       repository.NewPostgresUserRepository(db),
		Skills:      repository.NewPostgresSkillRepository(db),
		Candidates:  repository.NewPostgresCandidateRepository(db),
		Jobs:        repository.NewPostgresJobRepository(db),
		Listing:     repository.NewDBRJobListingRepository(db.SQLDB()),
		Tests:       repository.NewPostgresTestRepository(db),
		Submissions: repository.NewPostgresSubmissionRepository(db),
		Weights:     repository.NewPostgresScoringWeightsRepository(db),
	}

	events := ws.NewNotifier(c.Hub, logger.Named("ws"))
	scorer := cognitive.NewScorer(cfg.Cognitive.BaseURL, cfg.Cognitive.Timeout, logger.Named("cognitive"))
	ucLogger := logger.Named("usecase")

	c.Usecases = Usecases{
		Auth:        usecase.NewAuthUsecase(ucauth.NewService(c.Repos.Users), c.Repos.Users, c.JWT),
		Skills:      usecase.NewSkillUsecase(c.Repos.Skills, c.Cache, events, ucLogger),
		Candidates:  usecase.NewCandidateUsecase(c.Repos.Candidates, c.Repos.Skills, c.Cache, events, ucLogger),
		Assessments: usecase.NewAssessmentUsecase(c.Repos.Tests, c.Repos.Submissions, c.Cache, events, ucLogger),
		JobList:     usecase.NewJobListUsecase(c.Repos.Listing, c.Repos.Jobs, c.Cache, ucLogger),
		Recommendations: usecase.NewRecommendationUsecase(
			c.Repos.Candidates,
			c.Repos.Jobs,
			c.Repos.Skills,
			c.Repos.Submissions,
			c.Repos.Weights,
			scorer,
			c.Cache,
			ucLogger,
		),
		Weights: usecase.NewScoringWeightsUsecase(c.Repos.Weights, c.Cache, events, ucLogger),
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Hub.Stop()
	_ = c.Cache.Close()
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

package app

import (
	"fmt"
	"strings"

	"careerquest/internal/config"
	"careerquest/internal/delivery/http/handler"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/delivery/http/routes"
	v1 "careerquest/internal/delivery/http/routes/v1"
	"careerquest/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)

	authMw := middleware.NewAuthMiddleware(c.JWT)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		v1.Handlers{
			Auth:       handler.NewAuthHandler(c.Usecases.Auth),
			Skills:     handler.NewSkillHandler(c.Usecases.Skills),
			Candidates: handler.NewCandidateHandler(c.Usecases.Candidates),
			Tests:      handler.NewAssessmentHandler(c.Usecases.Assessments),
			Jobs:       handler.NewJobsHandler(c.Usecases.JobList, c.Usecases.Recommendations),
			Weights:    handler.NewScoringWeightsHandler(c.Usecases.Weights),
			WS:         ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws")),
		},
		authMw.Middleware(),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// app with its cleanup function.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger, ContainerOptions{})
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

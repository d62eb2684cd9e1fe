package v1

import (
	"careerquest/internal/delivery/http/handler"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Skills     *handler.SkillHandler
	Candidates *handler.CandidateHandler
	Tests      *handler.AssessmentHandler
	Jobs       *handler.JobsHandler
	Weights    *handler.ScoringWeightsHandler
	WS         *ws.Handler
}

// Register mounts the /api/v1 surface. auth must reject requests without a
// valid access token.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	staff := middleware.RequireStaff()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r, auth, staff)
	}
	if h.Candidates != nil {
		h.Candidates.RegisterRoutes(r.Group("/candidates", auth))
	}
	if h.Tests != nil {
		h.Tests.RegisterRoutes(r.Group("/tests", auth))
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r.Group("/jobs"), auth)
	}
	if h.WS != nil {
		h.WS.RegisterRoutes(r)
	}

	admin := r.Group("/admin", auth, staff)
	if h.Tests != nil {
		h.Tests.RegisterAdminRoutes(admin)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterAdminRoutes(admin)
	}
	if h.Weights != nil {
		h.Weights.RegisterAdminRoutes(admin)
	}
}

package handler

import (
	"careerquest/internal/delivery/http/dto"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/pkg/response"
	"careerquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs  usecase.JobListUsecase
	recos usecase.RecommendationUsecase
}

func NewJobsHandler(jobs usecase.JobListUsecase, recos usecase.RecommendationUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, recos: recos}
}

// RegisterRoutes mounts the public catalogue and the candidate views guarded
// by auth. Static segments are registered before /:id.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/recommendations", auth, h.Recommendations)
	r.Get("/", h.List)
	r.Get("/:id/match", auth, h.Match)
	r.Get("/:id", h.Get)
}

// RegisterAdminRoutes expects r to be behind the staff guard.
func (h *JobsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/:id/candidates", h.RankCandidates)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	minSalary, err := parseQueryIntStrict(c, "min_salary", 0)
	if err != nil {
		return err
	}
	remote, err := parseQueryBool(c, "remote")
	if err != nil {
		return err
	}

	page, err := h.jobs.ListJobs(c.Context(), usecase.JobListParams{
		Query:      c.Query("q"),
		City:       c.Query("city"),
		Remote:     remote,
		Status:     c.Query("status"),
		Tags:       parseListQuery(c.Query("tags")),
		MinSalary:  minSalary,
		SourceType: c.Query("source_type"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.JobResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, dto.NewJobResponse(o))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Page[dto.JobResponse]{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	o, err := h.jobs.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(o))
}

func (h *JobsHandler) Recommendations(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	page, err := h.recos.Recommend(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.RecommendationResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, dto.NewRecommendationResponse(r))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Page[dto.RecommendationResponse]{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (h *JobsHandler) Match(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	m, err := h.recos.MatchDetail(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationResponse(m))
}

func (h *JobsHandler) RankCandidates(c fiber.Ctx) error {
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return err
	}

	items, err := h.recos.RankCandidates(c.Context(), jobID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.CandidateMatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, dto.NewCandidateMatchResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"careerquest/internal/domain/job"
	"careerquest/internal/repository"
	"careerquest/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultJobPageSize = 20
	maxJobPageSize     = 50
	fallbackThreshold  = 5
	jobSearchCacheTTL  = 2 * time.Minute
)

type JobListParams struct {
	Query      string
	City       string
	Remote     *bool
	Status     string
	Tags       []string
	MinSalary  int
	SourceType string
	Limit      int
	Offset     int
}

type JobListPage struct {
	Items  []job.Offer `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) (JobListPage, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Offer, error)
}

type JobList struct {
	listing repository.JobListingRepository
	jobs    repository.JobRepository
	cache   Cache
	logger  *zap.Logger
	now     func() time.Time
}

func NewJobListUsecase(listing repository.JobListingRepository, jobs repository.JobRepository, cache Cache, logger *zap.Logger) *JobList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobList{listing: listing, jobs: jobs, cache: cache, logger: logger, now: time.Now}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) (JobListPage, error) {
	f, err := u.filter(&params)
	if err != nil {
		return JobListPage{}, err
	}

	cacheKey := JobsSearchCacheKey(params)
	if page, ok := u.cached(ctx, cacheKey); ok {
		return page, nil
	}

	lockKey := JobsSearchLockKey(cacheKey)
	locked := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err == nil && ok:
			locked = true
		case err == nil:
			// Another request is filling the entry; give it a moment.
			select {
			case <-ctx.Done():
				return JobListPage{}, ctx.Err()
			case <-time.After(300 * time.Millisecond):
			}
			if page, ok := u.cached(ctx, cacheKey); ok {
				return page, nil
			}
		}
	}
	if locked {
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
	}

	qctx := search.ProcessQuery(params.Query)
	f.TitleVariants = qctx.Variants

	rows, total, err := u.listing.ListJobs(ctx, f)
	if err != nil {
		u.logger.Error("list jobs", zap.Error(err))
		return JobListPage{}, ErrInternal
	}

	if qctx.Normalized != "" && total < fallbackThreshold {
		fb := search.FallbackFirstWord(qctx.Normalized)
		if fb != "" && fb != qctx.Normalized {
			fbCtx := search.ProcessQuery(fb)
			f.TitleVariants = fbCtx.Variants
			rows2, total2, err := u.listing.ListJobs(ctx, f)
			if err == nil && total2 > total {
				u.logger.Debug("job search fell back to first word", zap.String("query", qctx.Normalized), zap.String("fallback", fb))
				rows, total = rows2, total2
				qctx = fbCtx
			}
		}
	}

	if len(qctx.Variants) > 0 && len(rows) > 1 {
		rows = rankOffers(rows, qctx.Variants, u.now())
	}

	page := JobListPage{Items: rows, Total: total, Limit: f.Limit, Offset: f.Offset}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, page, jobSearchCacheTTL); err == nil {
			u.logger.Debug("job search cached", zap.String("key", cacheKey))
		}
	}
	return page, nil
}

func (u *JobList) GetJob(ctx context.Context, id uuid.UUID) (job.Offer, error) {
	o, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Offer{}, ErrNotFound
		}
		u.logger.Error("get job", zap.String("job_id", id.String()), zap.Error(err))
		return job.Offer{}, ErrInternal
	}
	return o, nil
}

func (u *JobList) filter(params *JobListParams) (repository.JobListFilter, error) {
	if params.Limit == 0 {
		params.Limit = defaultJobPageSize
	}
	if params.Limit < 0 || params.Limit > maxJobPageSize || params.Offset < 0 || params.MinSalary < 0 {
		return repository.JobListFilter{}, ErrInvalidInput
	}

	status := job.StatusActive
	if s := strings.ToLower(strings.TrimSpace(params.Status)); s != "" {
		status = job.Status(s)
		if !status.Valid() {
			return repository.JobListFilter{}, ErrInvalidInput
		}
	}

	var source job.SourceType
	if s := strings.ToLower(strings.TrimSpace(params.SourceType)); s != "" {
		source = job.SourceType(s)
		switch source {
		case job.SourceSeed, job.SourceIngest, job.SourceManual:
		default:
			return repository.JobListFilter{}, ErrInvalidInput
		}
	}

	tags := make([]string, 0, len(params.Tags))
	for _, t := range params.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	params.Tags = tags

	return repository.JobListFilter{
		City:       params.City,
		Remote:     params.Remote,
		Status:     status,
		Tags:       tags,
		MinSalary:  params.MinSalary,
		SourceType: source,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}, nil
}

func (u *JobList) cached(ctx context.Context, key string) (JobListPage, bool) {
	if u.cache == nil {
		return JobListPage{}, false
	}
	var page JobListPage
	hit, err := u.cache.GetJSON(ctx, key, &page)
	if err != nil || !hit {
		return JobListPage{}, false
	}
	u.logger.Debug("job search cache hit", zap.String("key", key))
	return page, true
}

func rankOffers(rows []job.Offer, variants []string, now time.Time) []job.Offer {
	in := make([]search.Listing, 0, len(rows))
	for i, r := range rows {
		_, hasSalary := r.AverageSalary()
		in = append(in, search.Listing{
			OriginalIndex: i,
			ID:            r.ID,
			Title:         r.Title,
			Company:       r.Company,
			Location:      r.Location,
			Requirements:  r.Requirements,
			Tags:          r.Tags,
			SourceType:    string(r.SourceType),
			URL:           r.URL,
			HasSalary:     hasSalary,
			CreatedAt:     r.CreatedAt,
			PostedAt:      r.PostedAt,
		})
	}

	ranked := search.RankListings(in, variants, now)
	if len(ranked) != len(rows) {
		return rows
	}
	out := make([]job.Offer, 0, len(rows))
	for _, l := range ranked {
		out = append(out, rows[l.OriginalIndex])
	}
	return out
}

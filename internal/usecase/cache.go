package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// RecommendationEvents is told whenever cached recommendations go stale. A
// nil candidate id means every candidate is affected.
type RecommendationEvents interface {
	RecommendationsUpdated(candidateID uuid.UUID, reason string)
}

const recommendationsKeyPrefix = "recommendations:"

func RecommendationsCacheKey(candidateID uuid.UUID) string {
	return recommendationsKeyPrefix + candidateID.String()
}

// invalidator drops cached recommendations and tells connected clients.
type invalidator struct {
	cache  Cache
	events RecommendationEvents
	logger *zap.Logger
}

func (i invalidator) candidate(ctx context.Context, candidateID uuid.UUID, reason string) {
	if i.cache != nil {
		if err := i.cache.Delete(ctx, RecommendationsCacheKey(candidateID)); err != nil && i.logger != nil {
			i.logger.Warn("drop cached recommendations", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		}
	}
	if i.events != nil {
		i.events.RecommendationsUpdated(candidateID, reason)
	}
}

func (i invalidator) all(ctx context.Context, reason string) {
	if i.cache != nil {
		if err := i.cache.DeleteByPattern(ctx, recommendationsKeyPrefix+"*"); err != nil && i.logger != nil {
			i.logger.Warn("drop cached recommendations", zap.Error(err))
		}
	}
	if i.events != nil {
		i.events.RecommendationsUpdated(uuid.Nil, reason)
	}
}

// InvalidateJobCaches drops cached searches and recommendations after the
// offer table changed outside the API, as the ingest command does.
func InvalidateJobCaches(ctx context.Context, c Cache) error {
	if c == nil {
		return nil
	}
	if err := c.DeleteByPattern(ctx, jobsSearchPrefix+"*"); err != nil {
		return err
	}
	return c.DeleteByPattern(ctx, recommendationsKeyPrefix+"*")
}

package seeder

import (
	"context"

	"careerquest/internal/database"

	"go.uber.org/zap"
)

// Seeder writes one family of reference data. Run reports how many rows it
// inserted or changed.
type Seeder interface {
	Name() string
	Run(ctx context.Context, q database.Querier, logger *zap.Logger) (int, error)
}

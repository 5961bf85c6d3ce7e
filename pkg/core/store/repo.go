// Package store persists completed deals. The pipeline only depends on the
// DealRepository interface; an in-memory implementation backs tests and
// single-run CLI usage, a Postgres implementation backs anything longer lived.
package store

import (
	"context"

	"dealscope/pkg/models"
)

// DealRepository stores and retrieves analyzed deals.
type DealRepository interface {
	Save(ctx context.Context, deal *models.Deal) error
	Get(ctx context.Context, id string) (*models.Deal, error)
	List(ctx context.Context) ([]*models.Deal, error)
}

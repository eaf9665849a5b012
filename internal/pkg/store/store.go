package store

import (
	"context"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is the persistence contract: full-record upserts keyed by id,
// no delete, no partial patch.
type Store interface {
	ListIndicators(ctx context.Context) ([]*domain.Indicator, error)
	GetIndicatorByID(ctx context.Context, id string) (*domain.Indicator, error)
	UpsertIndicators(ctx context.Context, indicators []*domain.Indicator) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

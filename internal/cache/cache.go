package cache

import (
	"context"

	"github.com/Egor213/tidelogs/internal/domain"
)

//go:generate mockgen -source=./cache.go -destination=../mocks/cache/mock.go -package=cachemocks

type Metrics interface {
	// Get reports false when nothing is cached.
	Get(ctx context.Context) (domain.Metrics, bool, error)
	Set(ctx context.Context, m domain.Metrics) error
}

type NoopMetrics struct{}

func (NoopMetrics) Get(context.Context) (domain.Metrics, bool, error) {
	return domain.Metrics{}, false, nil
}

func (NoopMetrics) Set(context.Context, domain.Metrics) error {
	return nil
}

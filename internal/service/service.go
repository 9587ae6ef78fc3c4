package service

import (
	"context"

	"github.com/Egor213/tidelogs/internal/broker"
	"github.com/Egor213/tidelogs/internal/cache"
	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/Egor213/tidelogs/internal/metrics"
	"github.com/Egor213/tidelogs/internal/repo"
)

//go:generate mockgen -source=./service.go -destination=../mocks/service/mock.go -package=servicemocks

type Log interface {
	SubmitLog(ctx context.Context, candidate domain.LogEntry) (domain.LogEntry, error)
	QueryLogs(ctx context.Context, filter domain.LogFilter) (domain.LogPage, error)
	GetMetrics(ctx context.Context) (domain.Metrics, error)
}

type Services struct {
	Log
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	MetricsCache   cache.Metrics
}

func NewServices(deps ServicesDependencies) *Services {
	producer := deps.BrokerProducer
	if producer == nil {
		producer = broker.NoopProducer{}
	}

	metricsCache := deps.MetricsCache
	if metricsCache == nil {
		metricsCache = cache.NoopMetrics{}
	}

	return &Services{
		Log: NewLogService(deps.Repos.Log, deps.Counters, producer, metricsCache),
	}
}

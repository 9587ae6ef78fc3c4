package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Egor213/tidelogs/internal/domain"
	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const metricsKey = "tidelogs:metrics"

type MetricsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewMetricsCache(client redis.Cmdable, ttl time.Duration) *MetricsCache {
	return &MetricsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *MetricsCache) Get(ctx context.Context) (domain.Metrics, bool, error) {
	data, err := c.client.Get(ctx, metricsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Metrics{}, false, nil
	}
	if err != nil {
		return domain.Metrics{}, false, errorsUtils.WrapPathErr(err)
	}

	var m domain.Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Metrics{}, false, errorsUtils.WrapPathErr(err)
	}

	return m, true, nil
}

func (c *MetricsCache) Set(ctx context.Context, m domain.Metrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if err := c.client.Set(ctx, metricsKey, data, c.ttl).Err(); err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	return nil
}

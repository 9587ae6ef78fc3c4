package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Egor213/tidelogs/internal/broker"
	"github.com/Egor213/tidelogs/internal/cache"
	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/Egor213/tidelogs/internal/metrics"
	"github.com/Egor213/tidelogs/internal/repo"
	"github.com/Egor213/tidelogs/internal/repo/repoerrs"
	"github.com/Egor213/tidelogs/internal/validators"
	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type LogService struct {
	logRepo        repo.Log
	counters       *metrics.Counters
	brokerProducer broker.Producer
	metricsCache   cache.Metrics
}

func NewLogService(lr repo.Log, cnt *metrics.Counters, p broker.Producer, mc cache.Metrics) *LogService {
	return &LogService{
		logRepo:        lr,
		counters:       cnt,
		brokerProducer: p,
		metricsCache:   mc,
	}
}

// SubmitLog validates the candidate and persists it. Invalid entries never reach the store.
func (s *LogService) SubmitLog(ctx context.Context, candidate domain.LogEntry) (domain.LogEntry, error) {
	entry, err := validators.ValidateLogEntry(candidate)
	if err != nil {
		return domain.LogEntry{}, err
	}

	created, err := s.logRepo.CreateLog(ctx, entry)
	if err != nil {
		logStoreErr("CreateLog", err)
		if errors.Is(err, repoerrs.ErrAlreadyExists) {
			return domain.LogEntry{}, ErrLogAlreadyExists
		}
		return domain.LogEntry{}, errorsUtils.WrapPathErr(ErrCannotCreateLog)
	}

	s.counters.LogsReceived.Inc(created.Service, created.Level)
	s.publish(ctx, created)

	return created, nil
}

func (s *LogService) QueryLogs(ctx context.Context, filter domain.LogFilter) (domain.LogPage, error) {
	logs, total, err := s.logRepo.GetLogs(ctx, filter)
	if err != nil {
		logStoreErr("GetLogs", err)
		if errors.Is(err, repoerrs.ErrInvalidPagination) {
			return domain.LogPage{}, ErrInvalidPagination
		}
		return domain.LogPage{}, errorsUtils.WrapPathErr(ErrCannotGetLogs)
	}

	if logs == nil {
		logs = []domain.LogEntry{}
	}

	limit, offset := filter.Page()

	return domain.LogPage{
		Logs:   logs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// GetMetrics runs three independent reads; under concurrent writes they may
// observe slightly different states of the table.
func (s *LogService) GetMetrics(ctx context.Context) (domain.Metrics, error) {
	cached, ok, err := s.metricsCache.Get(ctx)
	if err != nil {
		log.WithField("error", err).Warn("Metrics cache read failed")
	} else if ok {
		return cached, nil
	}

	total, err := s.logRepo.CountLogs(ctx)
	if err != nil {
		logStoreErr("CountLogs", err)
		return domain.Metrics{}, errorsUtils.WrapPathErr(ErrCannotGetMetrics)
	}

	byService, err := s.logRepo.CountByService(ctx)
	if err != nil {
		logStoreErr("CountByService", err)
		return domain.Metrics{}, errorsUtils.WrapPathErr(ErrCannotGetMetrics)
	}

	byLevel, err := s.logRepo.CountByLevel(ctx)
	if err != nil {
		logStoreErr("CountByLevel", err)
		return domain.Metrics{}, errorsUtils.WrapPathErr(ErrCannotGetMetrics)
	}

	m := domain.Metrics{
		TotalLogs: total,
		Services:  byService,
		Levels:    byLevel,
	}

	if err := s.metricsCache.Set(ctx, m); err != nil {
		log.WithField("error", err).Warn("Metrics cache write failed")
	}

	return m, nil
}

// publish is best effort: the row is already committed.
func (s *LogService) publish(ctx context.Context, entry domain.LogEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		log.WithField("error", err).Error("Failed to encode log event")
		return
	}

	if err := s.brokerProducer.SendMessage(ctx, payload); err != nil {
		log.WithFields(log.Fields{
			"id":    entry.Id,
			"error": err,
		}).Warn("Failed to publish log event")
	}
}

func logStoreErr(op string, err error) {
	log.WithFields(log.Fields{
		"op":    op,
		"error": err,
	}).Error("Store operation failed")
}

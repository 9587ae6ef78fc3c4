package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Egor213/tidelogs/internal/broker"
	"github.com/Egor213/tidelogs/internal/cache"
	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/Egor213/tidelogs/internal/metrics"
	brokermocks "github.com/Egor213/tidelogs/internal/mocks/broker"
	cachemocks "github.com/Egor213/tidelogs/internal/mocks/cache"
	countermocks "github.com/Egor213/tidelogs/internal/mocks/counters"
	repomocks "github.com/Egor213/tidelogs/internal/mocks/repository"
	"github.com/Egor213/tidelogs/internal/repo/repoerrs"
	"github.com/Egor213/tidelogs/internal/service"
	"github.com/Egor213/tidelogs/internal/validators"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

type deps struct {
	repo     *repomocks.MockLog
	producer *brokermocks.MockProducer
	cache    *cachemocks.MockMetrics
}

func newService(t *testing.T) (*service.LogService, deps) {
	ctrl := gomock.NewController(t)

	d := deps{
		repo:     repomocks.NewMockLog(ctrl),
		producer: brokermocks.NewMockProducer(ctrl),
		cache:    cachemocks.NewMockMetrics(ctrl),
	}

	return service.NewLogService(d.repo, metrics.NewTestCounters(), d.producer, d.cache), d
}

func TestLogService_SubmitLog(t *testing.T) {
	type mockBehavior func(d deps, normalized domain.LogEntry)

	now := time.Now()
	id := uuid.New()

	testCases := []struct {
		name         string
		candidate    domain.LogEntry
		normalized   domain.LogEntry
		mockBehavior mockBehavior
		want         domain.LogEntry
		wantErr      error
		wantInvalid  bool
	}{
		{
			name:      "success",
			candidate: domain.LogEntry{Service: " api ", Level: "INFO", Message: " started "},
			normalized: domain.LogEntry{
				Service:  "api",
				Level:    "INFO",
				Message:  "started",
				Metadata: map[string]any{},
			},
			mockBehavior: func(d deps, normalized domain.LogEntry) {
				d.repo.EXPECT().
					CreateLog(gomock.Any(), normalized).
					Return(domain.LogEntry{
						Id:        id,
						Timestamp: now,
						Service:   "api",
						Level:     "INFO",
						Message:   "started",
						Metadata:  map[string]any{},
						CreatedAt: now,
					}, nil)
				d.producer.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: domain.LogEntry{
				Id:        id,
				Timestamp: now,
				Service:   "api",
				Level:     "INFO",
				Message:   "started",
				Metadata:  map[string]any{},
				CreatedAt: now,
			},
		},
		{
			name:      "publish failure does not fail the write",
			candidate: domain.LogEntry{Service: "api", Level: "ERROR", Message: "boom"},
			normalized: domain.LogEntry{
				Service:  "api",
				Level:    "ERROR",
				Message:  "boom",
				Metadata: map[string]any{},
			},
			mockBehavior: func(d deps, normalized domain.LogEntry) {
				d.repo.EXPECT().
					CreateLog(gomock.Any(), normalized).
					Return(domain.LogEntry{Id: id, Service: "api", Level: "ERROR", Message: "boom"}, nil)
				d.producer.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))
			},
			want: domain.LogEntry{Id: id, Service: "api", Level: "ERROR", Message: "boom"},
		},
		{
			name:         "empty service never reaches the store",
			candidate:    domain.LogEntry{Service: "  ", Level: "INFO", Message: "m"},
			mockBehavior: func(d deps, _ domain.LogEntry) {},
			wantInvalid:  true,
		},
		{
			name:         "empty message never reaches the store",
			candidate:    domain.LogEntry{Service: "api", Level: "INFO", Message: ""},
			mockBehavior: func(d deps, _ domain.LogEntry) {},
			wantInvalid:  true,
		},
		{
			name:         "unknown level never reaches the store",
			candidate:    domain.LogEntry{Service: "api", Level: "TRACE", Message: "m"},
			mockBehavior: func(d deps, _ domain.LogEntry) {},
			wantInvalid:  true,
		},
		{
			name:      "repository error",
			candidate: domain.LogEntry{Service: "api", Level: "WARN", Message: "m"},
			normalized: domain.LogEntry{
				Service:  "api",
				Level:    "WARN",
				Message:  "m",
				Metadata: map[string]any{},
			},
			mockBehavior: func(d deps, normalized domain.LogEntry) {
				d.repo.EXPECT().
					CreateLog(gomock.Any(), normalized).
					Return(domain.LogEntry{}, errors.New("db error"))
			},
			wantErr: service.ErrCannotCreateLog,
		},
		{
			name:      "duplicate id",
			candidate: domain.LogEntry{Service: "api", Level: "WARN", Message: "m"},
			normalized: domain.LogEntry{
				Service:  "api",
				Level:    "WARN",
				Message:  "m",
				Metadata: map[string]any{},
			},
			mockBehavior: func(d deps, normalized domain.LogEntry) {
				d.repo.EXPECT().
					CreateLog(gomock.Any(), normalized).
					Return(domain.LogEntry{}, repoerrs.ErrAlreadyExists)
			},
			wantErr: service.ErrLogAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newService(t)
			tc.mockBehavior(d, tc.normalized)

			got, err := svc.SubmitLog(context.Background(), tc.candidate)

			if tc.wantInvalid {
				var verr *validators.ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.False(t, errors.Is(err, service.ErrStore))
				return
			}

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, service.ErrStore)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLogService_SubmitLog_CountsReceived(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := repomocks.NewMockLog(ctrl)
	counter := countermocks.NewMockCounter(ctrl)
	cnt := &metrics.Counters{LogsReceived: counter, HttpRequests: counter}

	repo.EXPECT().
		CreateLog(gomock.Any(), gomock.Any()).
		Return(domain.LogEntry{Service: "auth", Level: "DEBUG", Message: "m"}, nil)
	counter.EXPECT().Inc("auth", "DEBUG")

	svc := service.NewLogService(repo, cnt, broker.NoopProducer{}, cache.NoopMetrics{})

	_, err := svc.SubmitLog(context.Background(), domain.LogEntry{Service: "auth", Level: "DEBUG", Message: "m"})
	require.NoError(t, err)
}

func TestLogService_QueryLogs(t *testing.T) {
	type mockBehavior func(r *repomocks.MockLog, filter domain.LogFilter)

	entry := domain.LogEntry{Id: uuid.New(), Service: "api", Level: "INFO", Message: "started"}

	testCases := []struct {
		name         string
		filter       domain.LogFilter
		mockBehavior mockBehavior
		want         domain.LogPage
		wantErr      error
	}{
		{
			name:   "default paging",
			filter: domain.LogFilter{Service: ptr("api")},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return([]domain.LogEntry{entry}, int64(1), nil)
			},
			want: domain.LogPage{Logs: []domain.LogEntry{entry}, Total: 1, Limit: 100, Offset: 0},
		},
		{
			name:   "total is independent of limit",
			filter: domain.LogFilter{Limit: ptr(int64(1))},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return([]domain.LogEntry{entry}, int64(57), nil)
			},
			want: domain.LogPage{Logs: []domain.LogEntry{entry}, Total: 57, Limit: 1, Offset: 0},
		},
		{
			name:   "limit clamped in response",
			filter: domain.LogFilter{Limit: ptr(int64(50000)), Offset: ptr(int64(10))},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return(nil, int64(3), nil)
			},
			want: domain.LogPage{Logs: []domain.LogEntry{}, Total: 3, Limit: 1000, Offset: 10},
		},
		{
			name:   "no matches",
			filter: domain.LogFilter{Service: ptr("api"), Level: ptr("ERROR")},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return([]domain.LogEntry{}, int64(0), nil)
			},
			want: domain.LogPage{Logs: []domain.LogEntry{}, Total: 0, Limit: 100, Offset: 0},
		},
		{
			name:   "negative offset rejected by store",
			filter: domain.LogFilter{Offset: ptr(int64(-1))},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return(nil, int64(0), repoerrs.ErrInvalidPagination)
			},
			wantErr: service.ErrInvalidPagination,
		},
		{
			name:   "repository error",
			filter: domain.LogFilter{},
			mockBehavior: func(r *repomocks.MockLog, filter domain.LogFilter) {
				r.EXPECT().GetLogs(gomock.Any(), filter).Return(nil, int64(0), errors.New("db error"))
			},
			wantErr: service.ErrCannotGetLogs,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newService(t)
			tc.mockBehavior(d.repo, tc.filter)

			got, err := svc.QueryLogs(context.Background(), tc.filter)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, service.ErrStore)
				assert.Equal(t, domain.LogPage{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLogService_GetMetrics(t *testing.T) {
	type mockBehavior func(d deps)

	want := domain.Metrics{
		TotalLogs: 3,
		Services:  map[string]int64{"api": 2, "auth": 1},
		Levels:    map[string]int64{"INFO": 2, "ERROR": 1},
	}

	testCases := []struct {
		name         string
		mockBehavior mockBehavior
		want         domain.Metrics
		wantErr      bool
	}{
		{
			name: "computed from store and cached",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(domain.Metrics{}, false, nil)
				d.repo.EXPECT().CountLogs(gomock.Any()).Return(int64(3), nil)
				d.repo.EXPECT().CountByService(gomock.Any()).Return(want.Services, nil)
				d.repo.EXPECT().CountByLevel(gomock.Any()).Return(want.Levels, nil)
				d.cache.EXPECT().Set(gomock.Any(), want).Return(nil)
			},
			want: want,
		},
		{
			name: "served from cache",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(want, true, nil)
			},
			want: want,
		},
		{
			name: "cache failures fall back to store",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(domain.Metrics{}, false, errors.New("redis down"))
				d.repo.EXPECT().CountLogs(gomock.Any()).Return(int64(3), nil)
				d.repo.EXPECT().CountByService(gomock.Any()).Return(want.Services, nil)
				d.repo.EXPECT().CountByLevel(gomock.Any()).Return(want.Levels, nil)
				d.cache.EXPECT().Set(gomock.Any(), want).Return(errors.New("redis down"))
			},
			want: want,
		},
		{
			name: "total count error",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(domain.Metrics{}, false, nil)
				d.repo.EXPECT().CountLogs(gomock.Any()).Return(int64(0), errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "service grouping error",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(domain.Metrics{}, false, nil)
				d.repo.EXPECT().CountLogs(gomock.Any()).Return(int64(3), nil)
				d.repo.EXPECT().CountByService(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "level grouping error",
			mockBehavior: func(d deps) {
				d.cache.EXPECT().Get(gomock.Any()).Return(domain.Metrics{}, false, nil)
				d.repo.EXPECT().CountLogs(gomock.Any()).Return(int64(3), nil)
				d.repo.EXPECT().CountByService(gomock.Any()).Return(want.Services, nil)
				d.repo.EXPECT().CountByLevel(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newService(t)
			tc.mockBehavior(d)

			got, err := svc.GetMetrics(context.Background())

			if tc.wantErr {
				assert.ErrorIs(t, err, service.ErrCannotGetMetrics)
				assert.Equal(t, domain.Metrics{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLogService_GetMetrics_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockLog(ctrl)

	repo.EXPECT().CountLogs(gomock.Any()).Return(int64(2), nil).Times(2)
	repo.EXPECT().CountByService(gomock.Any()).Return(map[string]int64{"api": 2}, nil).Times(2)
	repo.EXPECT().CountByLevel(gomock.Any()).Return(map[string]int64{"INFO": 2}, nil).Times(2)

	svc := service.NewLogService(repo, metrics.NewTestCounters(), broker.NoopProducer{}, cache.NoopMetrics{})

	first, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)
	second, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

package repo

import (
	"context"

	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/Egor213/tidelogs/internal/repo/pgdb"
	"github.com/Egor213/tidelogs/pkg/postgres"
)

//go:generate mockgen -source=./repo.go -destination=../mocks/repository/mock.go -package=repomocks

type Log interface {
	CreateLog(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)
	GetLogs(ctx context.Context, filter domain.LogFilter) ([]domain.LogEntry, int64, error)
	CountLogs(ctx context.Context) (int64, error)
	CountByService(ctx context.Context) (map[string]int64, error)
	CountByLevel(ctx context.Context) (map[string]int64, error)
}

type Repositories struct {
	Log
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log: pgdb.NewLogRepo(pg),
	}
}

package pgdb

import (
	"context"
	"errors"
	"strings"

	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/Egor213/tidelogs/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	"github.com/Egor213/tidelogs/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

func (r *LogRepo) CreateLog(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	values := map[string]any{
		"service":  entry.Service,
		"level":    entry.Level,
		"message":  entry.Message,
		"metadata": entry.Metadata,
	}
	if !entry.Timestamp.IsZero() {
		values["timestamp"] = entry.Timestamp
	}

	sql, args, err := r.Builder.
		Insert(logsTable).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(logColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.LogEntry{}, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.LogEntry{}, errorsUtils.WrapPathErr(err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.LogEntry])
	if err != nil {
		if errorsUtils.IsUniqueViolation(err) {
			return domain.LogEntry{}, repoerrs.ErrAlreadyExists
		}
		return domain.LogEntry{}, errorsUtils.WrapPathErr(err)
	}

	return created, nil
}

// GetLogs returns one page of matching entries together with the total number
// of matches. Both statements come from a single BuildLogQuery call.
func (r *LogRepo) GetLogs(ctx context.Context, filter domain.LogFilter) ([]domain.LogEntry, int64, error) {
	q := BuildLogQuery(filter)

	sql, args, err := q.Select(r.Builder).ToSql()
	if err != nil {
		return nil, 0, errorsUtils.WrapPathErr(err)
	}

	db := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool)

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, wrapReadErr(err)
	}

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogEntry])
	if err != nil {
		return nil, 0, wrapReadErr(err)
	}

	total, err := r.count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *LogRepo) CountLogs(ctx context.Context) (int64, error) {
	return r.count(ctx, BuildLogQuery(domain.LogFilter{}))
}

func (r *LogRepo) CountByService(ctx context.Context) (map[string]int64, error) {
	return r.countGroupedBy(ctx, "service")
}

func (r *LogRepo) CountByLevel(ctx context.Context) (map[string]int64, error) {
	return r.countGroupedBy(ctx, "level")
}

func (r *LogRepo) count(ctx context.Context, q LogQuery) (int64, error) {
	sql, args, err := q.Count(r.Builder).ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var total int64
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	return total, nil
}

func (r *LogRepo) countGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	sql, args, err := countGroupedBy(r.Builder, column).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		counts[key] = count
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return counts, nil
}

func wrapReadErr(err error) error {
	if errorsUtils.IsInvalidPagination(err) {
		return errorsUtils.WrapPathErr(errors.Join(repoerrs.ErrInvalidPagination, err))
	}
	return errorsUtils.WrapPathErr(err)
}

package pgdb

import (
	"github.com/Egor213/tidelogs/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

const logsTable = "logs"

var logColumns = []string{"id", "timestamp", "service", "level", "message", "metadata", "created_at"}

// LogQuery holds the filter predicates of one request. Select and Count render
// from the same predicate list so page contents and totals always agree.
type LogQuery struct {
	conds  sq.And
	limit  int64
	offset int64
}

func BuildLogQuery(filter domain.LogFilter) LogQuery {
	conds := sq.And{}

	if filter.Service != nil {
		conds = append(conds, sq.Eq{"service": *filter.Service})
	}

	if filter.Level != nil {
		conds = append(conds, sq.Eq{"level": *filter.Level})
	}

	limit, offset := filter.Page()

	return LogQuery{
		conds:  conds,
		limit:  limit,
		offset: offset,
	}
}

func (q LogQuery) Limit() int64 {
	return q.limit
}

func (q LogQuery) Offset() int64 {
	return q.offset
}

func (q LogQuery) restrict(query sq.SelectBuilder) sq.SelectBuilder {
	if len(q.conds) > 0 {
		query = query.Where(q.conds)
	}
	return query
}

// Select fetches one page, newest first. LIMIT and OFFSET are bound after
// every filter parameter.
func (q LogQuery) Select(builder sq.StatementBuilderType) sq.SelectBuilder {
	query := builder.
		Select(logColumns...).
		From(logsTable)

	return q.restrict(query).
		OrderBy("timestamp DESC").
		Suffix("LIMIT ? OFFSET ?", q.limit, q.offset)
}

func (q LogQuery) Count(builder sq.StatementBuilderType) sq.SelectBuilder {
	query := builder.
		Select("COUNT(*)").
		From(logsTable)

	return q.restrict(query)
}

func countGroupedBy(builder sq.StatementBuilderType, column string) sq.SelectBuilder {
	return builder.
		Select(column, "COUNT(*) AS count").
		From(logsTable).
		GroupBy(column)
}

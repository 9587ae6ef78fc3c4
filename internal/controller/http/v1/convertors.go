package httpv1

import (
	"time"

	"github.com/Egor213/tidelogs/internal/domain"
	"github.com/labstack/echo/v4"
)

type SubmitLogRequest struct {
	Timestamp *time.Time     `json:"timestamp"`
	Service   string         `json:"service"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata"`
}

type GetLogsResponse struct {
	Logs   []domain.LogEntry `json:"logs"`
	Total  int64             `json:"total"`
	Limit  int64             `json:"limit"`
	Offset int64             `json:"offset"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLogEntryFromRequest(req *SubmitLogRequest) *domain.LogEntry {
	entry := &domain.LogEntry{
		Service:  req.Service,
		Level:    req.Level,
		Message:  req.Message,
		Metadata: req.Metadata,
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}
	return entry
}

// NewLogFilterFromRequest reads service, level, limit and offset from the query
// string. Parameters that are absent stay nil.
func NewLogFilterFromRequest(c echo.Context) (domain.LogFilter, error) {
	var (
		filter        domain.LogFilter
		limit, offset int64
	)

	params := c.QueryParams()

	if params.Has("service") {
		service := params.Get("service")
		filter.Service = &service
	}

	if params.Has("level") {
		level := params.Get("level")
		filter.Level = &level
	}

	err := echo.QueryParamsBinder(c).
		FailFast(false).
		Int64("limit", &limit).
		Int64("offset", &offset).
		BindError()
	if err != nil {
		return domain.LogFilter{}, err
	}

	if params.Get("limit") != "" {
		filter.Limit = &limit
	}

	if params.Get("offset") != "" {
		filter.Offset = &offset
	}

	return filter, nil
}

func ToGetLogsResponse(page domain.LogPage) GetLogsResponse {
	return GetLogsResponse{
		Logs:   page.Logs,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

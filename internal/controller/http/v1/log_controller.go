package httpv1

import (
	"errors"
	"net/http"
	"time"

	logginghelper "github.com/Egor213/tidelogs/internal/controller/common/logging"
	"github.com/Egor213/tidelogs/internal/metrics"
	"github.com/Egor213/tidelogs/internal/service"
	"github.com/Egor213/tidelogs/internal/validators"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

type LogController struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewLogController(ls service.Log, cnt *metrics.Counters) *LogController {
	return &LogController{
		logService: ls,
		counters:   cnt,
	}
}

func (lc *LogController) SubmitLog(c echo.Context) error {
	lc.counters.HttpRequests.Inc("SubmitLog", "received")

	var req SubmitLogRequest
	if err := c.Bind(&req); err != nil {
		lc.counters.HttpRequests.Inc("SubmitLog", "invalid")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	logEntry := NewLogEntryFromRequest(&req)
	logginghelper.LogReceived(logEntry)

	created, err := lc.logService.SubmitLog(c.Request().Context(), *logEntry)
	if err != nil {
		var verr *validators.ValidationError
		if errors.As(err, &verr) {
			lc.counters.HttpRequests.Inc("SubmitLog", "invalid")
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}

		lc.counters.HttpRequests.Inc("SubmitLog", "failed")
		logginghelper.LogError("SubmitLog", err)
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage)
	}

	logginghelper.LogSaved(&created)
	lc.counters.HttpRequests.Inc("SubmitLog", "ok")

	return c.JSON(http.StatusOK, created)
}

func (lc *LogController) GetLogs(c echo.Context) error {
	lc.counters.HttpRequests.Inc("GetLogs", "received")

	filter, err := NewLogFilterFromRequest(c)
	if err != nil {
		lc.counters.HttpRequests.Inc("GetLogs", "invalid")
		return echo.NewHTTPError(http.StatusBadRequest, "limit and offset must be integers")
	}

	page, err := lc.logService.QueryLogs(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			lc.counters.HttpRequests.Inc("GetLogs", "invalid")
			return echo.NewHTTPError(http.StatusBadRequest, service.ErrInvalidPagination.Error())
		}

		lc.counters.HttpRequests.Inc("GetLogs", "failed")
		logginghelper.LogError("GetLogs", err)
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage)
	}

	lc.counters.HttpRequests.Inc("GetLogs", "ok")

	return c.JSON(http.StatusOK, ToGetLogsResponse(page))
}

func (lc *LogController) GetMetrics(c echo.Context) error {
	lc.counters.HttpRequests.Inc("GetMetrics", "received")

	m, err := lc.logService.GetMetrics(c.Request().Context())
	if err != nil {
		lc.counters.HttpRequests.Inc("GetMetrics", "failed")
		logginghelper.LogError("GetMetrics", err)
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage)
	}

	lc.counters.HttpRequests.Inc("GetMetrics", "ok")

	return c.JSON(http.StatusOK, m)
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

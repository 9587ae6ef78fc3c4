package httpv1

import (
	"net/http"

	"github.com/Egor213/tidelogs/internal/metrics"
	"github.com/Egor213/tidelogs/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var defaultAllowOrigins = []string{"http://localhost:3000"}

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters, allowOrigins []string) {
	if len(allowOrigins) == 0 {
		allowOrigins = defaultAllowOrigins
	}

	handler.Use(middleware.Recover())
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))

	lc := NewLogController(services.Log, counters)

	handler.GET("/health", HealthCheck)
	handler.POST("/logs", lc.SubmitLog)
	handler.GET("/logs", lc.GetLogs)
	handler.GET("/metrics", lc.GetMetrics)
}

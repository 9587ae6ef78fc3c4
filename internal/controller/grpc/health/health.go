package grpchealth

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ServiceName     = "tidelogs.v1.LogService"
	defaultInterval = 10 * time.Second
	pingTimeout     = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func RegisterServices(hs *health.Server) func(s *grpc.Server) {
	return func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, hs)
	}
}

// Watch pings the store every interval and publishes the result for both the
// overall server and ServiceName until ctx is done.
func Watch(ctx context.Context, hs *health.Server, db Pinger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		Check(ctx, hs, db)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func Check(ctx context.Context, hs *health.Server, db Pinger) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := db.Ping(pingCtx); err != nil {
		log.WithField("error", err).Warn("Store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	hs.SetServingStatus("", status)
	hs.SetServingStatus(ServiceName, status)

	return status
}

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/tidelogs/internal/broker"
	kafkabroker "github.com/Egor213/tidelogs/internal/broker/kafka"
	"github.com/Egor213/tidelogs/internal/cache"
	"github.com/Egor213/tidelogs/internal/cache/rediscache"
	"github.com/Egor213/tidelogs/internal/config"
	grpchealth "github.com/Egor213/tidelogs/internal/controller/grpc/health"
	httpv1 "github.com/Egor213/tidelogs/internal/controller/http/v1"
	"github.com/Egor213/tidelogs/internal/metrics"
	"github.com/Egor213/tidelogs/internal/repo"
	"github.com/Egor213/tidelogs/internal/service"
	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	"github.com/Egor213/tidelogs/pkg/grpcserver"
	"github.com/Egor213/tidelogs/pkg/httpserver"
	"github.com/Egor213/tidelogs/pkg/logger"
	"github.com/Egor213/tidelogs/pkg/postgres"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/health"

	log "github.com/sirupsen/logrus"
)

func setup() *config.Config {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Info("Logger has been set up")

	return cfg
}

func RunMigrations() {
	cfg := setup()

	if err := Migrate(cfg.PG.URL, cfg.PG.MigrationsPath, cfg.PG.ConnAttempts, cfg.PG.ConnTimeout); err != nil {
		log.Fatal(err)
	}
}

func Run() {
	cfg := setup()

	// Migrations
	if err := Migrate(cfg.PG.URL, cfg.PG.MigrationsPath, cfg.PG.ConnAttempts, cfg.PG.ConnTimeout); err != nil {
		log.Fatal(err)
	}

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(
		cfg.PG.URL,
		postgres.MaxPoolSize(cfg.PG.MaxPoolSize),
		postgres.ConnAttempts(cfg.PG.ConnAttempts),
		postgres.ConnTimeout(cfg.PG.ConnTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Broker
	var producer broker.Producer = broker.NoopProducer{}
	if cfg.Kafka.Enabled {
		log.WithField("topic", cfg.Kafka.Topic).Info("Kafka publishing enabled")
		kafkaProducer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		producer = kafkaProducer
	}

	// Cache
	var metricsCache cache.Metrics = cache.NoopMetrics{}
	if cfg.Redis.Enabled {
		log.WithField("addr", cfg.Redis.Addr).Info("Redis metrics cache enabled")
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		metricsCache = rediscache.NewMetricsCache(rdb, cfg.Redis.TTL)
	}

	// Services
	counters := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       counters,
		BrokerProducer: producer,
		MetricsCache:   metricsCache,
	}
	services := service.NewServices(deps)

	// HTTP server
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	handler := echo.New()
	handler.HideBanner = true
	handler.Use(echoprometheus.NewMiddleware("tidelogs"))
	httpv1.ConfigureRouter(handler, services, counters, cfg.HTTP.AllowOrigins)
	httpServer := httpserver.New(
		handler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
	)

	// gRPC health server
	log.Infof("Starting gRPC health server...")
	log.Debugf("Server port: %s", cfg.GRPC.Port)
	healthServer := health.NewServer()
	grpcServer, err := grpcserver.New(grpchealth.RegisterServices(healthServer), grpcserver.WithPort(cfg.GRPC.Port))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go grpchealth.Watch(watchCtx, healthServer, pg, cfg.GRPC.HealthInterval)

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-httpServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-grpcServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	stopWatch()
	healthServer.Shutdown()

	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	grpcServer.Shutdown()
}

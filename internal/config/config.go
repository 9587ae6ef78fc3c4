package config

import (
	"os"
	"time"

	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		PG         `yaml:"postgres"`
		HTTP       `yaml:"http"`
		GRPC       `yaml:"grpc"`
		Prometheus `yaml:"prometheus"`
		Kafka      `yaml:"kafka"`
		Redis      `yaml:"redis"`
	}

	App struct {
		Name    string `yaml:"name" env-required:"true"`
		Version string `yaml:"version" env-required:"true"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	PG struct {
		URL            string        `env-required:"true" env:"PG_URL" yaml:"url"`
		MaxPoolSize    int           `env-required:"true" env:"MAX_POOL_SIZE" yaml:"max_pool_size"`
		ConnAttempts   int           `env:"PG_CONN_ATTEMPTS" yaml:"conn_attempts" env-default:"5"`
		ConnTimeout    time.Duration `env:"PG_CONN_TIMEOUT" yaml:"conn_timeout" env-default:"5s"`
		MigrationsPath string        `env:"MIGRATIONS_PATH" yaml:"migrations_path" env-default:"migrations"`
	}

	HTTP struct {
		Port         string        `env-required:"true" yaml:"port" env:"HTTP_PORT"`
		AllowOrigins []string      `yaml:"allow_origins" env:"HTTP_ALLOW_ORIGINS" env-default:"http://localhost:3000"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"5s"`
	}

	GRPC struct {
		Port           string        `env-required:"true" yaml:"port" env:"GRPC_PORT"`
		HealthInterval time.Duration `yaml:"health_interval" env:"GRPC_HEALTH_INTERVAL" env-default:"10s"`
	}

	Prometheus struct {
		Port string `env-required:"true" yaml:"port" env:"PROMETHEUS_PORT"`
	}

	Kafka struct {
		Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"logs"`
	}

	Redis struct {
		Enabled  bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
		Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
		TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"5s"`
	}
)

const (
	EnvPath           = "infra/.env.dev"
	DefaultConfigPath = "infra/config.yaml"
)

func New() (*Config, error) {
	if err := godotenv.Load(EnvPath); err != nil {
		log.WithField("path", EnvPath).Debug("Env file not loaded")
	}

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = DefaultConfigPath
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

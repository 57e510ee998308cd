package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary    Primary          `koanf:"primary"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Authorizer AuthorizerConfig `koanf:"authorizer"`
	Notifier   NotifierConfig   `koanf:"notifier"`
	Worker     WorkerConfig     `koanf:"worker"`
	Logger     LoggerConfig     `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type AuthorizerConfig struct {
	URL     string        `koanf:"url" validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

type NotifierConfig struct {
	URL         string        `koanf:"url" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"required"`
	QueueSize   int           `koanf:"queue_size" validate:"required"`
	MaxAttempts int           `koanf:"max_attempts" validate:"required"`
	Backoff     time.Duration `koanf:"backoff" validate:"required"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required"`
	MaxAge    time.Duration `koanf:"max_age" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("WALLETGATE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "WALLETGATE_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// NewLogger builds the process-wide slog logger from the configured level.
func (c *LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

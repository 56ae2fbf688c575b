package logger

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-driven logger settings.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format Format `env:"LOG_FORMAT" envDefault:"json"`
}

// NewFromEnv builds a logger from LOG_LEVEL and LOG_FORMAT environment
// variables, falling back to production defaults on parse failure.
func NewFromEnv(opts ...Option) *slog.Logger {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return New(opts...)
	}

	envOpts := []Option{
		WithLevel(parseLevel(cfg.Level)),
		WithFormat(cfg.Format),
	}

	return New(append(envOpts, opts...)...)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

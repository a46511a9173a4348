// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the referee server settings.
type Config struct {
	Addr        string        `env:"ACHESS_ADDR"         envDefault:":8080"`
	LogLevel    string        `env:"ACHESS_LOG_LEVEL"    envDefault:"info"`
	LogJSON     bool          `env:"ACHESS_LOG_JSON"     envDefault:"false"`
	JWTSecret   string        `env:"ACHESS_JWT_SECRET,required"`
	TokenTTL    time.Duration `env:"ACHESS_TOKEN_TTL"    envDefault:"12h"`
	RedisAddr   string        `env:"ACHESS_REDIS_ADDR"`
	RedisStream string        `env:"ACHESS_REDIS_STREAM" envDefault:"achess:verdicts"`
	// MatchRetention is how long a finished match stays reachable for sync.
	MatchRetention time.Duration `env:"ACHESS_MATCH_RETENTION" envDefault:"5m"`
	// Origins lists host patterns allowed to open websockets besides the
	// server's own host.
	Origins []string `env:"ACHESS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads an optional .env file from the working directory, then parses
// the environment into a Config.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetLevel(lvl)
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:3000/api"`
	APITimeout     time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	APIBearerToken string        `envconfig:"API_BEARER_TOKEN"`

	StorageDir string `envconfig:"STORAGE_DIR" default:".fashionshop"`
	StorageDSN string `envconfig:"STORAGE_DSN"`

	AdminAPIKey  string        `envconfig:"ADMIN_API_KEY"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
	PollTick     time.Duration `envconfig:"POLL_TICK" default:"1s"`

	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return Config{}, errors.New("config: API_BASE_URL vacío")
	}
	if c.PollTick <= 0 {
		c.PollTick = time.Second
	}
	if c.PollInterval < c.PollTick {
		c.PollInterval = c.PollTick
	}
	return c, nil
}

// Countdown is the number of ticks between two refreshes.
func (c Config) Countdown() int {
	return int(c.PollInterval / c.PollTick)
}

// SetupLogging configures the global zerolog logger.
func SetupLogging(level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if strings.EqualFold(format, "json") {
		zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
}

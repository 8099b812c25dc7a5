package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/services/match"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the process configuration shared by the server and the CLI
type Config struct {
	LogLevel  string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log-format" env:"TTT_LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
	Tracing   bool   `yaml:"tracing" env:"TTT_TRACING" env-default:"false"`
	Server    Server `yaml:"server"`
	Game      Game   `yaml:"game"`
}

// Server holds the HTTP listener settings
type Server struct {
	Host            string        `yaml:"host" env:"TTT_HOST" env-default:""`
	Port            int           `yaml:"port" env:"TTT_PORT" env-default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env-default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env-default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env-default:"30s" validate:"gt=0"`
}

// Game holds match pacing and the computer opponent's strategy
type Game struct {
	TurnDelay         time.Duration `yaml:"turn-delay" env:"TTT_TURN_DELAY" env-default:"1500ms" validate:"gte=0"`
	RoundRestartDelay time.Duration `yaml:"round-restart-delay" env:"TTT_ROUND_DELAY" env-default:"3s" validate:"gte=0"`
	BotStrategy       string        `yaml:"bot-strategy" env:"TTT_BOT_STRATEGY" env-default:"line" validate:"oneof=line random"`
}

// Load reads the yaml file at path with environment overrides.
// With an empty path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level returns the slog level for LogLevel
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds a logger writing to w in the configured format
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ServerConfig converts the server section for api.NewServer
func (c *Config) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// MatchConfig converts the game section for match controllers
func (c *Config) MatchConfig() match.Config {
	return match.Config{
		TurnDelay:         c.Game.TurnDelay,
		RoundRestartDelay: c.Game.RoundRestartDelay,
		BotStrategy:       c.Game.BotStrategy,
	}
}

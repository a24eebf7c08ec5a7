package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
)

const (
	DefaultAlgorithm  = "merge_sort"
	DefaultSpeed      = 1
	DefaultIntervalMS = 16
	DefaultMaxSteps   = engine.DefaultMaxSteps
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

type Config struct {
	Algorithm  string     `yaml:"algorithm"`
	Speed      int        `yaml:"speed"`
	IntervalMS int        `yaml:"interval_ms"`
	Rewind     string     `yaml:"rewind"`
	MaxSteps   int        `yaml:"max_steps"`
	Seed       int64      `yaml:"seed"`
	Input      algo.Input `yaml:"input"`
	Log        LogConfig  `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  DefaultAlgorithm,
		Speed:      DefaultSpeed,
		IntervalMS: DefaultIntervalMS,
		Rewind:     string(engine.RewindHistory),
		MaxSteps:   DefaultMaxSteps,
		Log: LogConfig{
			Level:  "info",
			Format: string(LogFormatText),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Input = c.Input.Clone()
	return &cp
}

func (c *Config) Validate() error {
	if c.Algorithm == "" {
		return fmt.Errorf("validate config: algorithm is required")
	}
	if c.Speed < engine.MinSpeed || c.Speed > engine.MaxSpeed {
		return fmt.Errorf("validate config: speed %d outside [%d,%d]", c.Speed, engine.MinSpeed, engine.MaxSpeed)
	}
	if c.IntervalMS <= 0 {
		return fmt.Errorf("validate config: interval_ms must be positive, got %d", c.IntervalMS)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("validate config: max_steps must be positive, got %d", c.MaxSteps)
	}
	if _, err := engine.ParseRewind(c.Rewind); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if _, err := ParseLogFormat(c.Log.Format); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func (c *Config) Playback() engine.Playback {
	return engine.Playback{
		Mode:     engine.ModePaused,
		Speed:    c.Speed,
		Interval: time.Duration(c.IntervalMS) * time.Millisecond,
	}
}

// EngineOptions turns the playback settings into engine options.
func (c *Config) EngineOptions(logger *slog.Logger) ([]engine.Option, error) {
	rewind, err := engine.ParseRewind(c.Rewind)
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithPlayback(c.Playback()),
		engine.WithRewind(rewind),
		engine.WithMaxSteps(c.MaxSteps),
		engine.WithLogger(logger),
	}, nil
}

func ParseLogLevel(input string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf(
			"parse log level: unsupported value %q (allowed: %q, %q, %q, %q)",
			input,
			slog.LevelDebug.String(),
			slog.LevelInfo.String(),
			slog.LevelWarn.String(),
			slog.LevelError.String(),
		)
	}
}

func ParseLogFormat(input string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", string(LogFormatText):
		return LogFormatText, nil
	case string(LogFormatJSON):
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf(
			"parse log format: unsupported value %q (allowed: %q, %q)",
			input,
			LogFormatText,
			LogFormatJSON,
		)
	}
}

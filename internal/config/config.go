// Package config loads the lattice.yaml configuration file for the
// lattice command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the lattice command looks for configuration when
// no --config flag is given.
const DefaultPath = "lattice.yaml"

// Duration unmarshals from strings like "5m" or "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("lattice: config: bad duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the top-level configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Publish PublishConfig `yaml:"publish"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	Title  string `yaml:"title"`
	Pretty bool   `yaml:"pretty"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	// Store selects the state store backend: "memory" or "bolt".
	Store string `yaml:"store"`

	// Path is the bbolt file path, used when Store is "bolt".
	Path string `yaml:"path"`

	// ResumeWindow is how long detached sessions stay resumable.
	ResumeWindow Duration `yaml:"resume_window"`
}

// PublishConfig configures static export to S3.
type PublishConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:  ":8080",
			Title: "lattice",
		},
		Session: SessionConfig{
			Store:        "memory",
			Path:         "lattice-sessions.db",
			ResumeWindow: Duration(5 * time.Minute),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path, applying defaults for anything the
// file leaves unset. A missing file at the default path is not an error;
// a missing file at an explicit path is.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("lattice: read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("lattice: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Session.Store {
	case "memory", "bolt":
	default:
		return fmt.Errorf("lattice: config: unknown session store %q", c.Session.Store)
	}
	if c.Session.Store == "bolt" && c.Session.Path == "" {
		return fmt.Errorf("lattice: config: bolt session store needs a path")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("lattice: config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("lattice: config: unknown log format %q", c.Log.Format)
	}
	if c.Session.ResumeWindow < 0 {
		return fmt.Errorf("lattice: config: negative resume window")
	}
	return nil
}

// Logger builds a slog.Logger from the log configuration.
func (c LogConfig) Logger() *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

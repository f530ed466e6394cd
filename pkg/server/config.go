package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address passed through to net/http.
	Addr string

	// Title is the document title emitted in the page shell.
	Title string

	// ResumeWindow is how long a detached session stays resumable.
	ResumeWindow time.Duration

	// StateStore persists detached sessions. Defaults to an in-process
	// MemoryStore.
	StateStore StateStore

	// Registry receives the server's Prometheus instruments.
	// Defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Pretty enables indented HTML in server-rendered responses.
	Pretty bool
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Title == "" {
		c.Title = "lattice"
	}
	if c.ResumeWindow <= 0 {
		c.ResumeWindow = 5 * time.Minute
	}
	if c.StateStore == nil {
		c.StateStore = NewMemoryStore()
	}
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lattice-ui/lattice/internal/config"
	"github.com/lattice-ui/lattice/internal/demo"
	"github.com/lattice-ui/lattice/pkg/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo pages",
		Long: `Start the HTTP server with the demo pages registered.

Sessions persist across reconnects for the configured resume window;
with the bolt session store they also survive server restarts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := cfg.Log.Logger()
			slog.SetDefault(logger)

			store, closeStore, err := openStateStore(cfg.Session)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := server.New(server.Config{
				Addr:         cfg.Server.Addr,
				Title:        cfg.Server.Title,
				Pretty:       cfg.Server.Pretty,
				ResumeWindow: cfg.Session.ResumeWindow.Std(),
				StateStore:   store,
				Logger:       logger,
			})
			demo.Register(srv)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}
	return config.Load(path, explicit)
}

func openStateStore(cfg config.SessionConfig) (server.StateStore, func(), error) {
	switch cfg.Store {
	case "bolt":
		store, err := server.OpenBoltStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "memory", "":
		return server.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("lattice: unknown session store %q", cfg.Store)
	}
}

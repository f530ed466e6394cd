package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lattice",
		Short: "Server-driven declarative UI for Go",
		Long: `Lattice renders declarative component trees on the server and keeps
browsers in sync by streaming patches over a WebSocket.

  - Views with reducer-driven state
  - Keyed reconciliation against a live output tree
  - SSR with hydration and resumable sessions
  - Static export to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to lattice.yaml")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		exportCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

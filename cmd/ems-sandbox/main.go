// ems-sandbox serves an in-memory employee management API for local use
// and end-to-end tests.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ems/internal/app/server"
	"ems/internal/platform/config"
	"ems/internal/platform/logging"
)

var rootFlags struct {
	configPath string
	addr       string
	noSeed     bool
}

var rootCmd = &cobra.Command{
	Use:          "ems-sandbox",
	Short:        "Serve the employee management API from memory",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&rootFlags.configPath, "config", "", "Path to a YAML config file")
	f.StringVar(&rootFlags.addr, "addr", "", "Listen address (overrides sandbox.addr)")
	f.BoolVar(&rootFlags.noSeed, "no-seed", false, "Start with no users or data")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return err
	}
	if rootFlags.addr != "" {
		cfg.Sandbox.Addr = rootFlags.addr
	}
	if rootFlags.noSeed {
		cfg.Sandbox.Seed = false
	}

	logger := logging.New(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()
	return server.Run(cmd.Context(), cfg, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

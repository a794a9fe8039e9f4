package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-accidents/internal/adapter/farscsv"
	"github.com/couchcryptid/fars-accidents/internal/config"
	"github.com/couchcryptid/fars-accidents/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the per-invocation dependencies shared by subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	loader   *farscsv.CachedLoader
	stdout   io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	root := &cobra.Command{
		Use:           "fars",
		Short:         "Summarize and map FARS fatal accident records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := a.init(stderr); err != nil {
				fmt.Fprintf(stderr, "fars: %v\n", err)
				return err
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newSummarizeCmd(a),
		newMapCmd(a),
		newFilenameCmd(a),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg, stderr).With("run_id", uuid.NewString())
	a.registry = prometheus.NewRegistry()
	a.metrics = observability.NewMetrics(a.registry)
	a.loader = farscsv.NewCachedLoader(farscsv.NewReader(a.logger, a.metrics), cfg.CacheSize)
	return nil
}

// finish logs a command failure and writes the metrics textfile either way.
func (a *app) finish(cmd *cobra.Command, err error) error {
	if err != nil {
		a.logger.Error("command failed", "command", cmd.Name(), "error", err)
	}
	if werr := observability.WriteTextfile(a.cfg.MetricsFile, a.registry); werr != nil {
		a.logger.Error("metrics textfile not written", "error", werr)
		if err == nil {
			err = werr
		}
	}
	return err
}

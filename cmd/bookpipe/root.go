package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/pipeline"
)

var (
	cfgFile     string
	verbose     bool
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "bookpipe",
	Short: "ETL pipeline for scraped book data",
	Long: `bookpipe turns the raw scraped book table into an enriched,
analysis-ready table in two stages:

  cleaning  null gate, unique ids, category normalization, yes/no -> 1/0
  features  price/rating/stock buckets, title flags, popularity score,
            one-hot category encoding

Outputs are written atomically; a failed stage never leaves a partial
file behind.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON, YAML, or TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus metrics listen address during a run (e.g. :9090)")

	rootCmd.AddCommand(runCmd, cleanCmd, featuresCmd, configCmd, infoCmd, versionCmd)
}

// loadConfig builds the effective configuration: defaults, optional
// config file, environment overrides, then flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// executeRun wires config, logging and metrics together and runs one
// pipeline mode.
func executeRun(mode pipeline.Mode) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	slog.SetDefault(logger)

	metrics := pipeline.NewMetrics()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		logger.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	runner, err := pipeline.NewRunner(cfg, pipeline.WithMetrics(metrics), pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	summary, runErr := runner.Run(mode)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	if runErr != nil {
		return runErr
	}
	printSummary(summary, cfg)
	return nil
}

func printSummary(summary *pipeline.RunSummary, cfg *config.Config) {
	separator := "--------------------------------------------------"
	fmt.Println(separator)
	fmt.Println("Pipeline run complete")
	fmt.Printf("  Mode:                  %s\n", summary.Mode)
	fmt.Printf("  Rows processed:        %d\n", summary.RowsProcessed)
	fmt.Printf("  Rows rejected:         %d\n", summary.RowsRejected)
	fmt.Printf("  Categories normalized: %d\n", summary.CategoriesNormalized)
	if summary.Mode != pipeline.ModeCleaningOnly {
		fmt.Printf("  Features created:      %d (%d category columns)\n", summary.FeaturesCreated, summary.CategoryColumns)
		fmt.Printf("  Features output:       %s\n", cfg.FeaturesOutput)
	}
	if summary.Mode != pipeline.ModeFeaturesOnly {
		fmt.Printf("  Processed output:      %s\n", cfg.ProcessedOutput)
	}
	fmt.Printf("  Duration:              %v\n", summary.Elapsed)
	fmt.Println(separator)
}

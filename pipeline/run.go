// Package pipeline sequences the cleaning and feature stages over the
// book table and persists their outputs.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aluiziolira/go-book-pipeline/cleaning"
	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/features"
	"github.com/aluiziolira/go-book-pipeline/models"
)

// Mode selects which stages a run executes.
type Mode string

const (
	// ModeFull runs cleaning then features, feeding the in-memory
	// cleaned table straight into the feature stage.
	ModeFull Mode = "full"
	// ModeCleaningOnly runs the cleaning stage alone.
	ModeCleaningOnly Mode = "cleaning-only"
	// ModeFeaturesOnly reads a previously processed table from storage
	// instead of running the cleaning stage.
	ModeFeaturesOnly Mode = "features-only"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeCleaningOnly, ModeFeaturesOnly:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want full, cleaning-only, or features-only)", s)
}

// RunSummary reports what a run did. RowsRejected is always 0 under the
// fail-fast policy and exists for a future partial-acceptance mode.
type RunSummary struct {
	Mode                 Mode
	RowsProcessed        int
	RowsRejected         int
	CategoriesNormalized int
	FeaturesCreated      int
	CategoryColumns      int
	CleaningDuration     time.Duration
	FeaturesDuration     time.Duration
	Elapsed              time.Duration
}

// Runner executes pipeline runs against one configuration. Each run is a
// pure function of the input table and the configuration; the runner
// holds no table state between runs.
type Runner struct {
	cfg     *config.Config
	metrics *Metrics
	logger  *slog.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithMetrics attaches a metrics bundle.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner validates the configuration and builds a runner.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r := &Runner{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the requested mode and reports a summary. On failure the
// originating typed error is returned and no output file for the failing
// stage is written.
func (r *Runner) Run(mode Mode) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{Mode: mode}

	err := r.run(mode, summary)
	summary.Elapsed = time.Since(start)

	if err != nil {
		r.metrics.IncError(ErrorKind(err))
		r.metrics.IncRun(string(mode), "error")
		r.logger.Error("pipeline run failed",
			slog.String("mode", string(mode)),
			slog.String("error_type", ErrorKind(err)),
			slog.Any("error", err),
		)
		return nil, err
	}

	r.metrics.IncRun(string(mode), "success")
	r.logger.Info("pipeline run finished",
		slog.String("mode", string(mode)),
		slog.Int("rows", summary.RowsProcessed),
		slog.Int("categories_normalized", summary.CategoriesNormalized),
		slog.Int("features_created", summary.FeaturesCreated),
		slog.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (r *Runner) run(mode Mode, summary *RunSummary) error {
	switch mode {
	case ModeFull:
		cleaned, err := r.runCleaning(summary)
		if err != nil {
			return err
		}
		return r.runFeatures(cleaned, summary)

	case ModeCleaningOnly:
		_, err := r.runCleaning(summary)
		return err

	case ModeFeaturesOnly:
		if _, err := os.Stat(r.cfg.ProcessedOutput); err != nil {
			return MissingInputError{Path: r.cfg.ProcessedOutput, Err: err}
		}
		cleaned, err := ReadProcessed(r.cfg.ProcessedOutput)
		if err != nil {
			return err
		}
		// The stored table is outside our control between runs, so it
		// passes the same gate the cleaning stage applies before
		// handing rows downstream.
		if err := models.ValidateCleaned(cleaned, r.cfg.ProblematicCategories); err != nil {
			return err
		}
		summary.RowsProcessed = len(cleaned)
		return r.runFeatures(cleaned, summary)

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func (r *Runner) runCleaning(summary *RunSummary) ([]*models.CleanedBook, error) {
	stageStart := time.Now()
	r.logger.Info("cleaning stage starting", slog.String("input", r.cfg.InputFile))

	raw, err := cleaning.ReadRaw(r.cfg.InputFile)
	if err != nil {
		return nil, err
	}

	cleaned, report, err := cleaning.Clean(raw, r.cfg)
	if err != nil {
		return nil, err
	}

	if err := r.processedWriter().Write(CleanedTable(cleaned)); err != nil {
		return nil, err
	}

	summary.RowsProcessed = report.Rows
	summary.CategoriesNormalized = report.CategoriesNormalized
	summary.CleaningDuration = time.Since(stageStart)

	r.metrics.AddRows("cleaning", report.Rows)
	r.metrics.AddCategoriesNormalized(report.CategoriesNormalized)
	r.metrics.ObserveStage("cleaning", summary.CleaningDuration)

	r.logger.Info("cleaning stage finished",
		slog.Int("rows", report.Rows),
		slog.Int("categories_normalized", report.CategoriesNormalized),
		slog.String("output", r.cfg.ProcessedOutput),
	)
	return cleaned, nil
}

func (r *Runner) runFeatures(cleaned []*models.CleanedBook, summary *RunSummary) error {
	stageStart := time.Now()
	r.logger.Info("feature stage starting", slog.Int("rows", len(cleaned)))

	table, report, err := features.Engineer(cleaned, r.cfg)
	if err != nil {
		return err
	}

	if err := r.writerFor(r.cfg.FeaturesOutput).Write(FeaturedTable(table)); err != nil {
		return err
	}

	summary.FeaturesCreated = report.FeaturesCreated
	summary.CategoryColumns = report.CategoryColumns
	summary.FeaturesDuration = time.Since(stageStart)

	r.metrics.AddRows("features", report.Rows)
	r.metrics.SetFeaturesCreated(report.FeaturesCreated)
	r.metrics.ObserveStage("features", summary.FeaturesDuration)

	r.logger.Info("feature stage finished",
		slog.Int("rows", report.Rows),
		slog.Int("features_created", report.FeaturesCreated),
		slog.Int("category_columns", report.CategoryColumns),
		slog.String("output", r.cfg.FeaturesOutput),
	)
	return nil
}

// writerFor selects the output writer for the configured format. JSON
// output lands next to the configured path with a .jsonl extension.
func (r *Runner) writerFor(path string) TableWriter {
	switch r.cfg.OutputFormat {
	case "json":
		return NewJSONWriter(jsonlPath(path))
	case "dual":
		return NewDualWriter(path, jsonlPath(path))
	default:
		return NewCSVWriter(path)
	}
}

// processedWriter always includes the CSV form: the processed file at
// its configured path is the input contract of features-only mode, so
// json and dual modes add a .jsonl copy rather than replace it.
func (r *Runner) processedWriter() TableWriter {
	if r.cfg.OutputFormat == "csv" {
		return NewCSVWriter(r.cfg.ProcessedOutput)
	}
	return NewDualWriter(r.cfg.ProcessedOutput, jsonlPath(r.cfg.ProcessedOutput))
}

func jsonlPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
}

// Package config holds pipeline configuration and its file handling.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every knob the pipeline recognizes. A run is a pure
// function of (input table, Config); there is no module-level state.
type Config struct {
	InputFile       string `mapstructure:"input_file" json:"input_file"`
	ProcessedOutput string `mapstructure:"processed_output" json:"processed_output"`
	FeaturesOutput  string `mapstructure:"features_output" json:"features_output"`

	DefaultCategory       string   `mapstructure:"default_category" json:"default_category"`
	ProblematicCategories []string `mapstructure:"problematic_categories" json:"problematic_categories"`

	// OutputFormat is csv, json, or dual. The processed CSV is written
	// in every format; json and dual add .jsonl copies alongside.
	OutputFormat string `mapstructure:"output_format" json:"output_format"`
	MetricsAddr  string `mapstructure:"metrics_addr" json:"metrics_addr"`
	Verbose      bool   `mapstructure:"verbose" json:"verbose"`
}

// DefaultConfig returns the defaults for the scraped books dataset.
// The problematic category list is the placeholder strings the scraper is
// known to emit when a book page carries no real category.
func DefaultConfig() *Config {
	return &Config{
		InputFile:             "data/raw/all_books_with_images.csv",
		ProcessedOutput:       "data/processed/books_processed.csv",
		FeaturesOutput:        "data/features/books_features.csv",
		DefaultCategory:       "Other",
		ProblematicCategories: []string{"Add a comment", "Default"},
		OutputFormat:          "csv",
		MetricsAddr:           "",
		Verbose:               false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if c.ProcessedOutput == "" {
		return fmt.Errorf("processed output cannot be empty")
	}
	if c.FeaturesOutput == "" {
		return fmt.Errorf("features output cannot be empty")
	}
	if c.ProcessedOutput == c.InputFile || c.FeaturesOutput == c.InputFile {
		return fmt.Errorf("output paths cannot overwrite the input file")
	}
	if c.FeaturesOutput == c.ProcessedOutput {
		return fmt.Errorf("features output cannot equal processed output")
	}
	if c.DefaultCategory == "" {
		return fmt.Errorf("default category cannot be empty")
	}
	for _, p := range c.ProblematicCategories {
		if p == c.DefaultCategory {
			return fmt.Errorf("default category %q is listed as problematic", p)
		}
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	return nil
}

// EnvString reads an optional string override from the environment.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvBool reads an optional boolean override from the environment.
func EnvBool(key string) (bool, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, true, nil
}

// ApplyEnv overlays recognized BOOKPIPE_* environment variables.
func (c *Config) ApplyEnv() error {
	if value, ok := EnvString("BOOKPIPE_INPUT"); ok {
		c.InputFile = value
	}
	if value, ok := EnvString("BOOKPIPE_PROCESSED"); ok {
		c.ProcessedOutput = value
	}
	if value, ok := EnvString("BOOKPIPE_FEATURES"); ok {
		c.FeaturesOutput = value
	}
	if value, ok := EnvString("BOOKPIPE_METRICS_ADDR"); ok {
		c.MetricsAddr = value
	}
	if value, ok, err := EnvBool("BOOKPIPE_VERBOSE"); err != nil {
		return err
	} else if ok {
		c.Verbose = value
	}
	return nil
}

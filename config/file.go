package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load reads a configuration file (JSON, YAML, or TOML by extension) on
// top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := DefaultConfig()
	v.SetDefault("input_file", defaults.InputFile)
	v.SetDefault("processed_output", defaults.ProcessedOutput)
	v.SetDefault("features_output", defaults.FeaturesOutput)
	v.SetDefault("default_category", defaults.DefaultCategory)
	v.SetDefault("problematic_categories", defaults.ProblematicCategories)
	v.SetDefault("output_format", defaults.OutputFormat)
	v.SetDefault("metrics_addr", defaults.MetricsAddr)
	v.SetDefault("verbose", defaults.Verbose)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration as an editable JSON
// template, independent of running any stage.
func WriteDefault(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/aluiziolira/go-book-pipeline/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: cleaning then feature engineering",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(pipeline.ModeFull)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run only the cleaning stage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(pipeline.ModeCleaningOnly)
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Run only the feature stage (requires a processed table)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(pipeline.ModeFeaturesOnly)
	},
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/models"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print pipeline metadata",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaults := config.DefaultConfig()

		fmt.Println("bookpipe: scraped book ETL pipeline")
		fmt.Println()
		fmt.Println("Cleaning stage:")
		fmt.Println("  - null / missing value gate (fail-fast)")
		fmt.Println("  - unique id per row")
		fmt.Printf("  - placeholder categories %v -> %q\n", defaults.ProblematicCategories, defaults.DefaultCategory)
		fmt.Println("  - availability yes/no -> 1/0")
		fmt.Printf("  - output: %s\n", defaults.ProcessedOutput)
		fmt.Println()
		fmt.Println("Feature stage:")
		fmt.Printf("  - derived columns: %s\n", strings.Join(models.FeatureColumns(), ", "))
		fmt.Println("  - one one-hot column per distinct category")
		fmt.Printf("  - output: %s\n", defaults.FeaturesOutput)
		fmt.Println()
		fmt.Printf("Raw input: %s (columns: %s)\n", defaults.InputFile, strings.Join(models.RawColumns(), ", "))
	},
}

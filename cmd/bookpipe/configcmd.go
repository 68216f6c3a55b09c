package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aluiziolira/go-book-pipeline/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "bookpipe.json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Default configuration written to %s\n", path)
		fmt.Println("Edit this file and pass it with --config.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

package main

import (
	"errors"
	"os"

	"github.com/aluiziolira/go-book-pipeline/pipeline"
)

// Exit statuses distinguish input defects from missing prerequisites so
// callers can tell a broken dataset from a skipped cleaning run.
const (
	exitOK                  = 0
	exitBadInput            = 1
	exitMissingPrerequisite = 2
	exitFailure             = 3
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var missing pipeline.MissingInputError
	if errors.As(err, &missing) {
		return exitMissingPrerequisite
	}
	if pipeline.BadInput(err) {
		return exitBadInput
	}
	return exitFailure
}

package pipeline

import (
	"errors"
	"fmt"

	"github.com/aluiziolira/go-book-pipeline/cleaning"
	"github.com/aluiziolira/go-book-pipeline/features"
	"github.com/aluiziolira/go-book-pipeline/models"
)

// MissingInputError indicates features-only mode was invoked without a
// previously processed table at the configured location.
type MissingInputError struct {
	Path string
	Err  error
}

func (e MissingInputError) Error() string {
	return fmt.Sprintf("missing processed input %s: run the cleaning stage first", e.Path)
}

func (e MissingInputError) Unwrap() error {
	return e.Err
}

// ErrorKind maps a stage failure onto its taxonomy label, used for the
// errors metric and for the CLI exit status.
func ErrorKind(err error) string {
	if err == nil {
		return "none"
	}
	var integrity cleaning.IntegrityError
	if errors.As(err, &integrity) {
		return "integrity"
	}
	var unrecognized cleaning.UnrecognizedValueError
	if errors.As(err, &unrecognized) {
		return "unrecognized_value"
	}
	var identity cleaning.IdentityConflictError
	if errors.As(err, &identity) {
		return "identity_conflict"
	}
	var domain features.DomainError
	if errors.As(err, &domain) {
		return "domain"
	}
	var schema models.SchemaViolation
	if errors.As(err, &schema) {
		return "schema_violation"
	}
	var missing MissingInputError
	if errors.As(err, &missing) {
		return "missing_input"
	}
	return "other"
}

// BadInput reports whether the failure is a defect in the input data as
// opposed to a missing prerequisite or an environment problem.
func BadInput(err error) bool {
	switch ErrorKind(err) {
	case "integrity", "unrecognized_value", "domain", "schema_violation":
		return true
	}
	return false
}

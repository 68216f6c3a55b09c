package features

import "fmt"

// DomainError indicates a derived computation received an input outside
// its expected domain. Buckets never clamp; out-of-range values are
// surfaced to the caller. Row is -1 until the stage attaches position.
type DomainError struct {
	Row   int
	Field string
	Value float64
}

func (e DomainError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("domain: %s value %v out of range at row %d", e.Field, e.Value, e.Row)
	}
	return fmt.Sprintf("domain: %s value %v out of range", e.Field, e.Value)
}

func withRow(err error, row int) error {
	if de, ok := err.(DomainError); ok {
		de.Row = row
		return de
	}
	return err
}

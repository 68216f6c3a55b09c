package cleaning

import "fmt"

// IntegrityError indicates null cells or unparseable rows in the raw
// input. Row is -1 when the defect spans a whole column.
type IntegrityError struct {
	Column string
	Row    int
	Rows   int
	Err    error
}

func (e IntegrityError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("integrity: column %q, row %d: %v", e.Column, e.Row, e.Err)
	}
	return fmt.Sprintf("integrity: column %q has %d missing value(s)", e.Column, e.Rows)
}

func (e IntegrityError) Unwrap() error {
	return e.Err
}

// UnrecognizedValueError indicates an availability token outside the
// yes/no vocabulary.
type UnrecognizedValueError struct {
	Row   int
	Value string
}

func (e UnrecognizedValueError) Error() string {
	return fmt.Sprintf("unrecognized availability %q at row %d", e.Value, e.Row)
}

// IdentityConflictError indicates a duplicate generated identifier. This
// is an unrecoverable defect in the id generator and is never retried.
type IdentityConflictError struct {
	Row int
	ID  string
}

func (e IdentityConflictError) Error() string {
	return fmt.Sprintf("duplicate identifier %q generated at row %d", e.ID, e.Row)
}

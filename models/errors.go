package models

import "fmt"

// SchemaViolation reports a row that failed a post-stage validation gate.
type SchemaViolation struct {
	Row    int
	Field  string
	Reason string
}

func (e SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at row %d, field %q: %s", e.Row, e.Field, e.Reason)
}

package pipeline

import "fmt"

// DualWriter persists a table to both CSV and JSONL targets.
type DualWriter struct {
	csvWriter  *CSVWriter
	jsonWriter *JSONWriter
}

// NewDualWriter creates a writer pair for csvPath and jsonPath.
func NewDualWriter(csvPath, jsonPath string) *DualWriter {
	return &DualWriter{
		csvWriter:  NewCSVWriter(csvPath),
		jsonWriter: NewJSONWriter(jsonPath),
	}
}

// Write commits the CSV output first, then the JSONL output.
func (dw *DualWriter) Write(table *Table) error {
	if err := dw.csvWriter.Write(table); err != nil {
		return fmt.Errorf("csv write failed: %w", err)
	}
	if err := dw.jsonWriter.Write(table); err != nil {
		return fmt.Errorf("json write failed: %w", err)
	}
	return nil
}

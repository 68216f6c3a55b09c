package pipeline

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a fully materialized stage output ready for persistence.
// Records carries the CSV cells; Objects carries the same rows as typed
// values for JSONL output.
type Table struct {
	Header  []string
	Records [][]string
	Objects []map[string]any
}

// TableWriter persists a stage output in a single atomic operation.
type TableWriter interface {
	Write(table *Table) error
}

// CSVWriter writes a table to CSV. Output is staged in a temporary
// sibling file and committed with a rename, so an aborted run never
// leaves a partial file behind.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a writer targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write persists the table, replacing any prior file at the target path.
func (cw *CSVWriter) Write(table *Table) error {
	if err := ensureDir(cw.path); err != nil {
		return err
	}

	tmp := cw.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(table.Header); err != nil {
		return discard(f, tmp, fmt.Errorf("write csv header: %w", err))
	}
	for _, record := range table.Records {
		if err := writer.Write(record); err != nil {
			return discard(f, tmp, fmt.Errorf("write csv record: %w", err))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return discard(f, tmp, fmt.Errorf("flush csv records: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close csv file: %w", err)
	}

	if err := os.Rename(tmp, cw.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit csv file: %w", err)
	}
	return nil
}

// JSONWriter writes a table as newline-delimited JSON with the same
// staging-and-rename commit as the CSV writer.
type JSONWriter struct {
	path string
}

// NewJSONWriter returns a writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write persists the table, replacing any prior file at the target path.
func (jw *JSONWriter) Write(table *Table) error {
	if err := ensureDir(jw.path); err != nil {
		return err
	}

	tmp := jw.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for _, object := range table.Objects {
		if err := encoder.Encode(object); err != nil {
			return discard(f, tmp, fmt.Errorf("encode json record: %w", err))
		}
	}
	if err := buffer.Flush(); err != nil {
		return discard(f, tmp, fmt.Errorf("flush json writer: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close json file: %w", err)
	}

	if err := os.Rename(tmp, jw.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit json file: %w", err)
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

func discard(f *os.File, tmp string, err error) error {
	f.Close()
	os.Remove(tmp)
	return err
}

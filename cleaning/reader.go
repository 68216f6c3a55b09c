package cleaning

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aluiziolira/go-book-pipeline/models"
)

// ReadRaw loads the raw book table from a CSV file. The header must match
// the expected columns exactly, every row must have the full field count,
// and numeric columns must parse; any defect is an IntegrityError.
func ReadRaw(path string) ([]*models.RawBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, IntegrityError{Column: "header", Row: 0, Err: fmt.Errorf("input file is empty")}
	}
	if err != nil {
		return nil, IntegrityError{Column: "header", Row: 0, Err: err}
	}
	columns := models.RawColumns()
	if len(header) != len(columns) {
		return nil, IntegrityError{Column: "header", Row: 0, Err: fmt.Errorf("expected %d columns, found %d", len(columns), len(header))}
	}
	for i, want := range columns {
		if header[i] != want {
			return nil, IntegrityError{Column: want, Row: 0, Err: fmt.Errorf("header column %d is %q", i, header[i])}
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, IntegrityError{Column: "row", Row: -1, Err: err}
	}

	if err := scanMissing(records, columns); err != nil {
		return nil, err
	}

	books := make([]*models.RawBook, 0, len(records))
	for i, record := range records {
		book, err := parseRow(i, record)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// scanMissing checks every column for empty cells before any parsing, so
// the error names the column and the number of rows affected. The image
// column is optional and exempt.
func scanMissing(records [][]string, columns []string) error {
	for col, name := range columns {
		if name == "image" {
			continue
		}
		missing := 0
		for _, record := range records {
			if record[col] == "" {
				missing++
			}
		}
		if missing > 0 {
			return IntegrityError{Column: name, Row: -1, Rows: missing}
		}
	}
	return nil
}

func parseRow(row int, record []string) (*models.RawBook, error) {
	price, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return nil, IntegrityError{Column: "price", Row: row, Err: err}
	}
	rating, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, IntegrityError{Column: "rating", Row: row, Err: err}
	}
	stock, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, IntegrityError{Column: "stock", Row: row, Err: err}
	}

	return &models.RawBook{
		Title:        record[0],
		Price:        price,
		Availability: record[2],
		Rating:       rating,
		Stock:        stock,
		Category:     record[5],
		Image:        record[6],
	}, nil
}

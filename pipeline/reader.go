package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aluiziolira/go-book-pipeline/cleaning"
	"github.com/aluiziolira/go-book-pipeline/models"
)

// ReadProcessed loads a previously persisted cleaned table, used by
// features-only mode instead of re-running the cleaning stage.
func ReadProcessed(path string) ([]*models.CleanedBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open processed input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, cleaning.IntegrityError{Column: "header", Row: 0, Err: fmt.Errorf("processed file is empty")}
	}
	if err != nil {
		return nil, cleaning.IntegrityError{Column: "header", Row: 0, Err: err}
	}
	columns := models.CleanedColumns()
	if len(header) != len(columns) {
		return nil, cleaning.IntegrityError{Column: "header", Row: 0, Err: fmt.Errorf("expected %d columns, found %d", len(columns), len(header))}
	}
	for i, want := range columns {
		if header[i] != want {
			return nil, cleaning.IntegrityError{Column: want, Row: 0, Err: fmt.Errorf("header column %d is %q", i, header[i])}
		}
	}

	var books []*models.CleanedBook
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cleaning.IntegrityError{Column: "row", Row: row, Err: err}
		}

		price, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, cleaning.IntegrityError{Column: "price", Row: row, Err: err}
		}
		availability, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, cleaning.IntegrityError{Column: "availability", Row: row, Err: err}
		}
		rating, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, cleaning.IntegrityError{Column: "rating", Row: row, Err: err}
		}
		stock, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, cleaning.IntegrityError{Column: "stock", Row: row, Err: err}
		}

		books = append(books, &models.CleanedBook{
			ID:           record[0],
			Title:        record[1],
			Price:        price,
			Availability: availability,
			Rating:       rating,
			Stock:        stock,
			Category:     record[6],
			Image:        record[7],
		})
	}
	return books, nil
}

// Package cleaning implements the first pipeline stage: integrity repair
// and normalization of the raw book table.
package cleaning

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/models"
)

// Report summarizes a cleaning run for the orchestrator.
type Report struct {
	Rows                 int
	CategoriesNormalized int
}

// Clean produces the cleaned table from raw rows: a whole-table null
// gate, unique id assignment in row order, category normalization,
// availability mapping, then the schema gate. All-or-nothing: the first
// defect aborts the stage and no partial table is returned.
func Clean(raw []*models.RawBook, cfg *config.Config) ([]*models.CleanedBook, *Report, error) {
	if err := scanRaw(raw); err != nil {
		return nil, nil, err
	}

	cleaned := make([]*models.CleanedBook, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	report := &Report{Rows: len(raw)}

	for i, b := range raw {
		id := uuid.NewString()
		if _, ok := seen[id]; ok {
			return nil, nil, IdentityConflictError{Row: i, ID: id}
		}
		seen[id] = struct{}{}

		category, replaced := NormalizeCategory(b.Category, cfg.DefaultCategory, cfg.ProblematicCategories)
		if replaced {
			report.CategoriesNormalized++
		}

		indicator, ok := MapAvailability(b.Availability)
		if !ok {
			return nil, nil, UnrecognizedValueError{Row: i, Value: b.Availability}
		}

		cleaned = append(cleaned, &models.CleanedBook{
			ID:           id,
			Title:        b.Title,
			Price:        b.Price,
			Availability: indicator,
			Rating:       b.Rating,
			Stock:        b.Stock,
			Category:     category,
			Image:        b.Image,
		})
	}

	if err := models.ValidateCleaned(cleaned, cfg.ProblematicCategories); err != nil {
		return nil, nil, err
	}
	return cleaned, report, nil
}

// scanRaw re-checks in-memory tables for missing values so callers that
// bypass ReadRaw get the same column-counted integrity failure.
func scanRaw(raw []*models.RawBook) error {
	missingByColumn := make(map[string]int)
	for i, b := range raw {
		if b == nil {
			return IntegrityError{Column: "record", Row: i, Err: fmt.Errorf("record is nil")}
		}
		if column, ok := ValidateRaw(b); !ok {
			missingByColumn[column]++
		}
	}
	for _, column := range models.RawColumns() {
		if count := missingByColumn[column]; count > 0 {
			return IntegrityError{Column: column, Row: -1, Rows: count}
		}
	}
	return nil
}

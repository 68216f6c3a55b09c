// Package features implements the second pipeline stage: deriving
// analysis-ready columns from the cleaned book table.
package features

import (
	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/models"
)

// Report summarizes a feature run for the orchestrator.
type Report struct {
	Rows            int
	CategoryColumns int
	FeaturesCreated int
}

// Engineer derives the featured table from cleaned rows. Two full-table
// passes: the first fixes the one-hot column set and the observed stock
// range, the second projects each row. The input is never mutated.
func Engineer(cleaned []*models.CleanedBook, cfg *config.Config) (*models.FeaturedTable, *Report, error) {
	categories := collectCategories(cleaned)
	namer := newColumnNamer()
	columns := make([]string, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		columns[i] = namer.column(c)
		index[c] = i
	}

	minStock, maxStock := stockRange(cleaned)

	table := &models.FeaturedTable{
		Categories:      categories,
		CategoryColumns: columns,
		Books:           make([]*models.FeaturedBook, 0, len(cleaned)),
	}

	for i, b := range cleaned {
		featured, err := engineerRow(b, index, minStock, maxStock)
		if err != nil {
			return nil, nil, withRow(err, i)
		}
		table.Books = append(table.Books, featured)
	}

	if err := models.ValidateFeatured(table); err != nil {
		return nil, nil, err
	}

	report := &Report{
		Rows:            len(table.Books),
		CategoryColumns: len(columns),
		FeaturesCreated: len(models.FeatureColumns()) + len(columns),
	}
	return table, report, nil
}

func engineerRow(b *models.CleanedBook, index map[string]int, minStock, maxStock int) (*models.FeaturedBook, error) {
	priceRange, err := PriceRange(b.Price)
	if err != nil {
		return nil, err
	}
	ratingCategory, err := RatingCategory(b.Rating)
	if err != nil {
		return nil, err
	}
	stockLevel, err := StockLevel(b.Stock)
	if err != nil {
		return nil, err
	}
	popularity, err := PopularityScore(b.Rating, b.Stock, minStock, maxStock)
	if err != nil {
		return nil, err
	}

	shape := InspectTitle(b.Title)

	return &models.FeaturedBook{
		CleanedBook:     *b,
		PriceRange:      priceRange,
		HasSubtitle:     shape.HasSubtitle,
		HasSeries:       shape.HasSeries,
		StartsWithThe:   shape.StartsWithThe,
		TitleLength:     shape.Length,
		TitleWordCount:  shape.WordCount,
		HasNumbers:      shape.HasNumbers,
		RatingCategory:  ratingCategory,
		StockLevel:      stockLevel,
		PopularityScore: popularity,
		CategoryFlags:   oneHot(b.Category, index),
	}, nil
}

func stockRange(books []*models.CleanedBook) (int, int) {
	if len(books) == 0 {
		return 0, 0
	}
	min, max := books[0].Stock, books[0].Stock
	for _, b := range books[1:] {
		if b.Stock < min {
			min = b.Stock
		}
		if b.Stock > max {
			max = b.Stock
		}
	}
	return min, max
}

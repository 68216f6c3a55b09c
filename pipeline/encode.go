package pipeline

import (
	"strconv"

	"github.com/aluiziolira/go-book-pipeline/models"
)

// CleanedTable renders the cleaned rows into a writable table.
func CleanedTable(books []*models.CleanedBook) *Table {
	table := &Table{
		Header:  models.CleanedColumns(),
		Records: make([][]string, 0, len(books)),
		Objects: make([]map[string]any, 0, len(books)),
	}
	for _, b := range books {
		table.Records = append(table.Records, []string{
			b.ID,
			b.Title,
			formatFloat(b.Price),
			strconv.Itoa(b.Availability),
			strconv.Itoa(b.Rating),
			strconv.Itoa(b.Stock),
			b.Category,
			b.Image,
		})
		table.Objects = append(table.Objects, map[string]any{
			"id":           b.ID,
			"title":        b.Title,
			"price":        b.Price,
			"availability": b.Availability,
			"rating":       b.Rating,
			"stock":        b.Stock,
			"category":     b.Category,
			"image":        b.Image,
		})
	}
	return table
}

// FeaturedTable renders the featured table, appending one one-hot column
// per distinct category after the scalar feature columns.
func FeaturedTable(t *models.FeaturedTable) *Table {
	header := append(append(models.CleanedColumns(), models.FeatureColumns()...), t.CategoryColumns...)

	table := &Table{
		Header:  header,
		Records: make([][]string, 0, len(t.Books)),
		Objects: make([]map[string]any, 0, len(t.Books)),
	}
	for _, b := range t.Books {
		record := []string{
			b.ID,
			b.Title,
			formatFloat(b.Price),
			strconv.Itoa(b.Availability),
			strconv.Itoa(b.Rating),
			strconv.Itoa(b.Stock),
			b.Category,
			b.Image,
			b.PriceRange,
			strconv.FormatBool(b.HasSubtitle),
			strconv.FormatBool(b.HasSeries),
			strconv.FormatBool(b.StartsWithThe),
			strconv.Itoa(b.TitleLength),
			strconv.Itoa(b.TitleWordCount),
			strconv.FormatBool(b.HasNumbers),
			b.RatingCategory,
			b.StockLevel,
			formatFloat(b.PopularityScore),
		}
		object := map[string]any{
			"id":               b.ID,
			"title":            b.Title,
			"price":            b.Price,
			"availability":     b.Availability,
			"rating":           b.Rating,
			"stock":            b.Stock,
			"category":         b.Category,
			"image":            b.Image,
			"price_range":      b.PriceRange,
			"has_subtitle":     b.HasSubtitle,
			"has_series":       b.HasSeries,
			"starts_with_the":  b.StartsWithThe,
			"title_length":     b.TitleLength,
			"title_word_count": b.TitleWordCount,
			"has_numbers":      b.HasNumbers,
			"rating_category":  b.RatingCategory,
			"stock_level":      b.StockLevel,
			"popularity_score": b.PopularityScore,
		}
		for i, column := range t.CategoryColumns {
			record = append(record, strconv.Itoa(b.CategoryFlags[i]))
			object[column] = b.CategoryFlags[i]
		}
		table.Records = append(table.Records, record)
		table.Objects = append(table.Objects, object)
	}
	return table
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package models defines the record shapes moved through the pipeline.
package models

// RawBook represents one scraped book row before any cleaning.
// Rows carry no identifier; they are positionally ordered as scraped.
type RawBook struct {
	Title        string  `csv:"title" json:"title"`
	Price        float64 `csv:"price" json:"price"`
	Availability string  `csv:"availability" json:"availability"`
	Rating       int     `csv:"rating" json:"rating"`
	Stock        int     `csv:"stock" json:"stock"`
	Category     string  `csv:"category" json:"category"`
	Image        string  `csv:"image" json:"image"`
}

// CleanedBook is a RawBook after integrity repair: a generated unique id,
// availability mapped to a binary indicator, and category normalized.
type CleanedBook struct {
	ID           string  `csv:"id" json:"id"`
	Title        string  `csv:"title" json:"title"`
	Price        float64 `csv:"price" json:"price"`
	Availability int     `csv:"availability" json:"availability"`
	Rating       int     `csv:"rating" json:"rating"`
	Stock        int     `csv:"stock" json:"stock"`
	Category     string  `csv:"category" json:"category"`
	Image        string  `csv:"image" json:"image"`
}

// Price range labels with breakpoints at 20, 40 and 50.
const (
	PriceLow     = "Low"
	PriceMedium  = "Medium"
	PriceHigh    = "High"
	PricePremium = "Premium"
)

// Rating category labels for the 0-5 scale.
const (
	RatingVeryLow  = "Very Low"
	RatingLow      = "Low"
	RatingMedium   = "Medium"
	RatingHigh     = "High"
	RatingVeryHigh = "Very High"
)

// Stock level labels: Low 0-5, Medium 6-15, High 16+.
const (
	StockLow    = "Low"
	StockMedium = "Medium"
	StockHigh   = "High"
)

// FeaturedBook is a CleanedBook plus derived columns. Every derived field
// is a pure function of the cleaned fields; CategoryFlags is aligned with
// the owning table's category column order.
type FeaturedBook struct {
	CleanedBook

	PriceRange      string  `csv:"price_range" json:"price_range"`
	HasSubtitle     bool    `csv:"has_subtitle" json:"has_subtitle"`
	HasSeries       bool    `csv:"has_series" json:"has_series"`
	StartsWithThe   bool    `csv:"starts_with_the" json:"starts_with_the"`
	TitleLength     int     `csv:"title_length" json:"title_length"`
	TitleWordCount  int     `csv:"title_word_count" json:"title_word_count"`
	HasNumbers      bool    `csv:"has_numbers" json:"has_numbers"`
	RatingCategory  string  `csv:"rating_category" json:"rating_category"`
	StockLevel      string  `csv:"stock_level" json:"stock_level"`
	PopularityScore float64 `csv:"popularity_score" json:"popularity_score"`
	CategoryFlags   []int   `csv:"-" json:"-"`
}

// FeaturedTable owns the featured rows together with the one-hot column
// set discovered from the table. Categories holds the distinct normalized
// labels in sorted order; CategoryColumns holds the matching sanitized
// column names in the same order.
type FeaturedTable struct {
	Categories      []string
	CategoryColumns []string
	Books           []*FeaturedBook
}

// RawColumns returns the expected raw input header, in order.
func RawColumns() []string {
	return []string{"title", "price", "availability", "rating", "stock", "category", "image"}
}

// CleanedColumns returns the processed output header, in order.
func CleanedColumns() []string {
	return []string{"id", "title", "price", "availability", "rating", "stock", "category", "image"}
}

// FeatureColumns returns the scalar derived column names, in order. The
// one-hot category columns are appended per table after these.
func FeatureColumns() []string {
	return []string{
		"price_range", "has_subtitle", "has_series", "starts_with_the",
		"title_length", "title_word_count", "has_numbers",
		"rating_category", "stock_level", "popularity_score",
	}
}

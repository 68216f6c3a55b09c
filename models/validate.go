package models

import (
	"fmt"
	"strings"
)

// ValidateCleaned gates a cleaned table before it is handed downstream or
// persisted. The whole table passes or the stage fails; problematic lists
// category values that must no longer be present after cleaning.
func ValidateCleaned(books []*CleanedBook, problematic []string) error {
	banned := make(map[string]struct{}, len(problematic))
	for _, c := range problematic {
		banned[c] = struct{}{}
	}

	for i, b := range books {
		if b == nil {
			return SchemaViolation{Row: i, Field: "record", Reason: "record is nil"}
		}
		if err := validateCleanedRecord(i, b); err != nil {
			return err
		}
		if _, ok := banned[b.Category]; ok {
			return SchemaViolation{Row: i, Field: "category", Reason: fmt.Sprintf("placeholder category %q survived cleaning", b.Category)}
		}
	}
	return nil
}

// validateCleanedRecord checks the per-record constraints shared by both
// gates: every featured record carries the cleaned fields, so the same
// null and range rules hold after feature derivation.
func validateCleanedRecord(i int, b *CleanedBook) error {
	if strings.TrimSpace(b.ID) == "" {
		return SchemaViolation{Row: i, Field: "id", Reason: "missing identifier"}
	}
	if strings.TrimSpace(b.Title) == "" {
		return SchemaViolation{Row: i, Field: "title", Reason: "missing title"}
	}
	if b.Price <= 0 {
		return SchemaViolation{Row: i, Field: "price", Reason: fmt.Sprintf("price %v is not positive", b.Price)}
	}
	if b.Availability != 0 && b.Availability != 1 {
		return SchemaViolation{Row: i, Field: "availability", Reason: fmt.Sprintf("indicator %d is not binary", b.Availability)}
	}
	if b.Rating < 0 || b.Rating > 5 {
		return SchemaViolation{Row: i, Field: "rating", Reason: fmt.Sprintf("rating %d outside [0,5]", b.Rating)}
	}
	if b.Stock < 0 {
		return SchemaViolation{Row: i, Field: "stock", Reason: fmt.Sprintf("stock %d is negative", b.Stock)}
	}
	if strings.TrimSpace(b.Category) == "" {
		return SchemaViolation{Row: i, Field: "category", Reason: "missing category"}
	}
	return nil
}

// ValidateFeatured gates a featured table. Beyond the cleaned-record
// constraints it checks every derived column, including that the one-hot
// flags partition exactly and agree with the row's category.
func ValidateFeatured(t *FeaturedTable) error {
	if t == nil {
		return SchemaViolation{Row: -1, Field: "table", Reason: "table is nil"}
	}
	if len(t.Categories) != len(t.CategoryColumns) {
		return SchemaViolation{Row: -1, Field: "category_columns", Reason: "category labels and columns disagree"}
	}

	index := make(map[string]int, len(t.Categories))
	for i, c := range t.Categories {
		index[c] = i
	}

	for i, b := range t.Books {
		if b == nil {
			return SchemaViolation{Row: i, Field: "record", Reason: "record is nil"}
		}
		if err := validateCleanedRecord(i, &b.CleanedBook); err != nil {
			return err
		}
		if !validPriceRange(b.PriceRange) {
			return SchemaViolation{Row: i, Field: "price_range", Reason: fmt.Sprintf("unknown label %q", b.PriceRange)}
		}
		if !validRatingCategory(b.RatingCategory) {
			return SchemaViolation{Row: i, Field: "rating_category", Reason: fmt.Sprintf("unknown label %q", b.RatingCategory)}
		}
		if !validStockLevel(b.StockLevel) {
			return SchemaViolation{Row: i, Field: "stock_level", Reason: fmt.Sprintf("unknown label %q", b.StockLevel)}
		}
		if b.TitleLength < 0 || b.TitleWordCount < 0 {
			return SchemaViolation{Row: i, Field: "title_length", Reason: "negative title measure"}
		}
		if b.PopularityScore < 0 || b.PopularityScore > 1 {
			return SchemaViolation{Row: i, Field: "popularity_score", Reason: fmt.Sprintf("score %v outside [0,1]", b.PopularityScore)}
		}
		if len(b.CategoryFlags) != len(t.CategoryColumns) {
			return SchemaViolation{Row: i, Field: "category_columns", Reason: "one-hot width does not match table"}
		}
		set := -1
		for j, flag := range b.CategoryFlags {
			if flag != 0 && flag != 1 {
				return SchemaViolation{Row: i, Field: t.CategoryColumns[j], Reason: fmt.Sprintf("one-hot value %d is not binary", flag)}
			}
			if flag == 1 {
				if set >= 0 {
					return SchemaViolation{Row: i, Field: t.CategoryColumns[j], Reason: "more than one category column set"}
				}
				set = j
			}
		}
		if set < 0 {
			return SchemaViolation{Row: i, Field: "category", Reason: "no category column set"}
		}
		if want, ok := index[b.Category]; !ok || want != set {
			return SchemaViolation{Row: i, Field: t.CategoryColumns[set], Reason: fmt.Sprintf("set column does not match category %q", b.Category)}
		}
	}
	return nil
}

func validPriceRange(label string) bool {
	switch label {
	case PriceLow, PriceMedium, PriceHigh, PricePremium:
		return true
	}
	return false
}

func validRatingCategory(label string) bool {
	switch label {
	case RatingVeryLow, RatingLow, RatingMedium, RatingHigh, RatingVeryHigh:
		return true
	}
	return false
}

func validStockLevel(label string) bool {
	switch label {
	case StockLow, StockMedium, StockHigh:
		return true
	}
	return false
}

package features

import "github.com/aluiziolira/go-book-pipeline/models"

// PriceRange buckets a price into Low/Medium/High/Premium with
// breakpoints at 20, 40 and 50. Its domain is the positive prices the
// cleaned-record gate guarantees; the bands partition that axis with no
// gaps or overlaps, and anything at or below zero is a DomainError.
func PriceRange(price float64) (string, error) {
	if price <= 0 {
		return "", DomainError{Row: -1, Field: "price", Value: price}
	}
	switch {
	case price <= 20:
		return models.PriceLow, nil
	case price <= 40:
		return models.PriceMedium, nil
	case price <= 50:
		return models.PriceHigh, nil
	default:
		return models.PricePremium, nil
	}
}

// RatingCategory buckets the 0-5 rating into five descriptive bands.
// A zero rating means the scraper found no stars and joins Very Low.
func RatingCategory(rating int) (string, error) {
	switch rating {
	case 0, 1:
		return models.RatingVeryLow, nil
	case 2:
		return models.RatingLow, nil
	case 3:
		return models.RatingMedium, nil
	case 4:
		return models.RatingHigh, nil
	case 5:
		return models.RatingVeryHigh, nil
	default:
		return "", DomainError{Row: -1, Field: "rating", Value: float64(rating)}
	}
}

// StockLevel buckets the stock count: Low 0-5, Medium 6-15, High 16+.
func StockLevel(stock int) (string, error) {
	if stock < 0 {
		return "", DomainError{Row: -1, Field: "stock", Value: float64(stock)}
	}
	switch {
	case stock <= 5:
		return models.StockLow, nil
	case stock <= 15:
		return models.StockMedium, nil
	default:
		return models.StockHigh, nil
	}
}

// PopularityScore blends rating and stock into [0,1]:
// (rating/5)*0.7 + normalizedStock*0.3, where stock is scaled against the
// observed table range. A degenerate range normalizes to 0 for every row.
func PopularityScore(rating, stock, minStock, maxStock int) (float64, error) {
	if rating < 0 || rating > 5 {
		return 0, DomainError{Row: -1, Field: "rating", Value: float64(rating)}
	}
	if stock < minStock || stock > maxStock {
		return 0, DomainError{Row: -1, Field: "stock", Value: float64(stock)}
	}

	normalized := 0.0
	if maxStock > minStock {
		normalized = float64(stock-minStock) / float64(maxStock-minStock)
	}
	return (float64(rating)/5.0)*0.7 + normalized*0.3, nil
}

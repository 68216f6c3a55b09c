package cleaning

import "github.com/aluiziolira/go-book-pipeline/models"

// availability tokens form a closed vocabulary; anything else is a
// scraper defect surfaced to the caller, never coerced.
const (
	tokenAvailable   = "yes"
	tokenUnavailable = "no"
)

// MapAvailability maps the scraped yes/no token to the binary indicator.
func MapAvailability(token string) (int, bool) {
	switch token {
	case tokenAvailable:
		return 1, true
	case tokenUnavailable:
		return 0, true
	default:
		return 0, false
	}
}

// NormalizeCategory replaces a problematic placeholder category with the
// configured default. Matching is exact; case or whitespace variants pass
// through untouched.
func NormalizeCategory(category, defaultCategory string, problematic []string) (string, bool) {
	for _, p := range problematic {
		if category == p {
			return defaultCategory, true
		}
	}
	return category, false
}

// ValidateRaw ensures a raw record carries the fields cleaning depends
// on. The image reference is the only optional column.
func ValidateRaw(b *models.RawBook) (string, bool) {
	if b.Title == "" {
		return "title", false
	}
	if b.Availability == "" {
		return "availability", false
	}
	if b.Category == "" {
		return "category", false
	}
	return "", true
}

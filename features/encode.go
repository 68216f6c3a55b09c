package features

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aluiziolira/go-book-pipeline/models"
)

// CategoryColumn derives the deterministic one-hot column name for a
// category label: spaces become underscores, '&' becomes "and", and the
// result is lowercased, matching the downstream column contract.
func CategoryColumn(category string) string {
	return "category_" + strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(category, " ", "_"), "&", "and"))
}

// columnNamer memoizes sanitized column names for one table build. It
// is scoped to a single Engineer call so table derivation stays a pure
// function of its input.
type columnNamer struct {
	cache *lru.Cache[string, string]
}

func newColumnNamer() *columnNamer {
	cache, _ := lru.New[string, string](512)
	return &columnNamer{cache: cache}
}

func (n *columnNamer) column(category string) string {
	if name, ok := n.cache.Get(category); ok {
		return name
	}
	name := CategoryColumn(category)
	n.cache.Add(category, name)
	return name
}

// collectCategories returns the distinct category labels in sorted order,
// fixing the one-hot column set before any row is projected.
func collectCategories(books []*models.CleanedBook) []string {
	set := make(map[string]struct{})
	for _, b := range books {
		set[b.Category] = struct{}{}
	}
	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// oneHot projects a category onto the fixed column set.
func oneHot(category string, index map[string]int) []int {
	flags := make([]int, len(index))
	if i, ok := index[category]; ok {
		flags[i] = 1
	}
	return flags
}

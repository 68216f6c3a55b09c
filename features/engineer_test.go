package features

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/models"
)

func cleanedFixture(id, title, category string, price float64, rating, stock int) *models.CleanedBook {
	return &models.CleanedBook{
		ID:           id,
		Title:        title,
		Price:        price,
		Availability: 1,
		Rating:       rating,
		Stock:        stock,
		Category:     category,
		Image:        "http://example.test/img.png",
	}
}

func TestEngineerScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	cleaned := []*models.CleanedBook{
		cleanedFixture("b-1", "Plain Book", "Other", 25.0, 4, 10),
	}

	table, report, err := Engineer(cleaned, cfg)
	if err != nil {
		t.Fatalf("engineer: %v", err)
	}

	book := table.Books[0]
	if book.PriceRange != models.PriceMedium {
		t.Fatalf("price range = %q, want Medium", book.PriceRange)
	}
	if book.RatingCategory != models.RatingHigh {
		t.Fatalf("rating category = %q, want High", book.RatingCategory)
	}
	if book.StockLevel != models.StockMedium {
		t.Fatalf("stock level = %q, want Medium", book.StockLevel)
	}
	if book.HasSubtitle || book.StartsWithThe {
		t.Fatalf("title flags = %+v, want all false", book)
	}
	if report.FeaturesCreated != len(models.FeatureColumns())+1 {
		t.Fatalf("features created = %d, want %d", report.FeaturesCreated, len(models.FeatureColumns())+1)
	}
}

func TestEngineerOneHotColumns(t *testing.T) {
	cfg := config.DefaultConfig()
	cleaned := []*models.CleanedBook{
		cleanedFixture("b-1", "A", "Travel", 10, 3, 5),
		cleanedFixture("b-2", "B", "Science Fiction", 10, 3, 10),
		cleanedFixture("b-3", "C", "Food & Drink", 10, 3, 15),
		cleanedFixture("b-4", "D", "Travel", 10, 3, 20),
	}

	table, report, err := Engineer(cleaned, cfg)
	if err != nil {
		t.Fatalf("engineer: %v", err)
	}

	wantColumns := []string{"category_food_and_drink", "category_science_fiction", "category_travel"}
	if !reflect.DeepEqual(table.CategoryColumns, wantColumns) {
		t.Fatalf("columns = %v, want %v", table.CategoryColumns, wantColumns)
	}
	if report.CategoryColumns != 3 {
		t.Fatalf("category columns = %d, want 3", report.CategoryColumns)
	}

	for i, b := range table.Books {
		sum := 0
		for _, flag := range b.CategoryFlags {
			sum += flag
		}
		if sum != 1 {
			t.Fatalf("row %d one-hot sum = %d, want 1", i, sum)
		}
	}
	// Row order does not change the column set.
	reversed := []*models.CleanedBook{cleaned[3], cleaned[2], cleaned[1], cleaned[0]}
	table2, _, err := Engineer(reversed, cfg)
	if err != nil {
		t.Fatalf("engineer reversed: %v", err)
	}
	if !reflect.DeepEqual(table2.CategoryColumns, wantColumns) {
		t.Fatalf("reversed columns = %v, want %v", table2.CategoryColumns, wantColumns)
	}
}

func TestEngineerUniformStockNormalizesToZero(t *testing.T) {
	cfg := config.DefaultConfig()
	cleaned := []*models.CleanedBook{
		cleanedFixture("b-1", "A", "Travel", 10, 5, 7),
		cleanedFixture("b-2", "B", "Travel", 10, 5, 7),
	}

	table, _, err := Engineer(cleaned, cfg)
	if err != nil {
		t.Fatalf("engineer: %v", err)
	}
	for i, b := range table.Books {
		if b.PopularityScore != 0.7 {
			t.Fatalf("row %d score = %v, want 0.7", i, b.PopularityScore)
		}
	}
}

func TestEngineerDomainErrorCarriesRow(t *testing.T) {
	cfg := config.DefaultConfig()
	cleaned := []*models.CleanedBook{
		cleanedFixture("b-1", "A", "Travel", 10, 3, 5),
		cleanedFixture("b-2", "B", "Travel", 10, 9, 5),
	}

	_, _, err := Engineer(cleaned, cfg)
	var domain DomainError
	if !errors.As(err, &domain) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domain.Row != 1 {
		t.Fatalf("row = %d, want 1", domain.Row)
	}
	if domain.Field != "rating" {
		t.Fatalf("field = %q, want rating", domain.Field)
	}
}

func TestEngineerDoesNotMutateInput(t *testing.T) {
	cfg := config.DefaultConfig()
	original := cleanedFixture("b-1", "A", "Travel", 10, 3, 5)
	snapshot := *original

	if _, _, err := Engineer([]*models.CleanedBook{original}, cfg); err != nil {
		t.Fatalf("engineer: %v", err)
	}
	if *original != snapshot {
		t.Fatalf("input mutated: %+v != %+v", *original, snapshot)
	}
}

func TestCategoryColumnSanitization(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{category: "Travel", want: "category_travel"},
		{category: "Science Fiction", want: "category_science_fiction"},
		{category: "Food & Drink", want: "category_food_and_drink"},
	}
	for _, tt := range tests {
		if got := CategoryColumn(tt.category); got != tt.want {
			t.Fatalf("column(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestColumnNamerMemoizes(t *testing.T) {
	namer := newColumnNamer()
	first := namer.column("Food & Drink")
	if first != "category_food_and_drink" {
		t.Fatalf("column = %q, want category_food_and_drink", first)
	}
	if _, ok := namer.cache.Get("Food & Drink"); !ok {
		t.Fatal("cache miss after first lookup")
	}
	if got := namer.column("Food & Drink"); got != first {
		t.Fatalf("memoized column = %q, want %q", got, first)
	}
}

package pipeline

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aluiziolira/go-book-pipeline/cleaning"
	"github.com/aluiziolira/go-book-pipeline/config"
	"github.com/aluiziolira/go-book-pipeline/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.InputFile = filepath.Join(dir, "raw", "books.csv")
	cfg.ProcessedOutput = filepath.Join(dir, "processed", "books_processed.csv")
	cfg.FeaturesOutput = filepath.Join(dir, "features", "books_features.csv")
	return cfg
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create raw dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write raw input: %v", err)
	}
}

const rawHeader = "title,price,availability,rating,stock,category,image\n"

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg.InputFile, rawHeader+
		"Plain Book,25.0,yes,4,10,Add a comment,img\n"+
		"The Requiem Red,14.5,no,1,2,Poetry,img\n"+
		"Soumission: A Novel,50.1,yes,5,20,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	summary, err := runner.Run(ModeFull)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.RowsProcessed != 3 {
		t.Fatalf("rows processed = %d, want 3", summary.RowsProcessed)
	}
	if summary.RowsRejected != 0 {
		t.Fatalf("rows rejected = %d, want 0", summary.RowsRejected)
	}
	if summary.CategoriesNormalized != 1 {
		t.Fatalf("categories normalized = %d, want 1", summary.CategoriesNormalized)
	}
	// 10 scalar features + 3 one-hot columns.
	if summary.FeaturesCreated != 13 {
		t.Fatalf("features created = %d, want 13", summary.FeaturesCreated)
	}

	processed := readCSV(t, cfg.ProcessedOutput)
	if len(processed) != 4 {
		t.Fatalf("processed rows = %d, want header+3", len(processed))
	}
	if processed[0][0] != "id" {
		t.Fatalf("processed header = %v", processed[0])
	}
	// availability mapped, category normalized.
	if processed[1][3] != "1" {
		t.Fatalf("availability = %q, want 1", processed[1][3])
	}
	if processed[1][6] != "Other" {
		t.Fatalf("category = %q, want Other", processed[1][6])
	}

	featured := readCSV(t, cfg.FeaturesOutput)
	if len(featured) != 4 {
		t.Fatalf("featured rows = %d, want header+3", len(featured))
	}
	header := featured[0]
	if got := len(header); got != 8+10+3 {
		t.Fatalf("featured columns = %d, want 21", got)
	}
	// price_range sits right after the cleaned columns.
	if header[8] != "price_range" {
		t.Fatalf("header[8] = %q, want price_range", header[8])
	}
	if featured[1][8] != "Medium" {
		t.Fatalf("price range = %q, want Medium", featured[1][8])
	}
	// One-hot cells sum to one per row.
	for row := 1; row < len(featured); row++ {
		sum := 0
		for col := 18; col < len(header); col++ {
			if featured[row][col] == "1" {
				sum++
			}
		}
		if sum != 1 {
			t.Fatalf("row %d one-hot sum = %d, want 1", row, sum)
		}
	}
}

func TestRunCleaningOnlySkipsFeatures(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	summary, err := runner.Run(ModeCleaningOnly)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RowsProcessed != 1 {
		t.Fatalf("rows processed = %d, want 1", summary.RowsProcessed)
	}

	if _, err := os.Stat(cfg.ProcessedOutput); err != nil {
		t.Fatalf("processed output missing: %v", err)
	}
	if _, err := os.Stat(cfg.FeaturesOutput); !os.IsNotExist(err) {
		t.Fatalf("features output should not exist: %v", err)
	}
}

func TestRunFeaturesOnlyRequiresProcessedFile(t *testing.T) {
	cfg := testConfig(t)

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	_, err = runner.Run(ModeFeaturesOnly)
	var missing MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingInputError", err)
	}
	if missing.Path != cfg.ProcessedOutput {
		t.Fatalf("path = %q, want %q", missing.Path, cfg.ProcessedOutput)
	}
	if _, err := os.Stat(cfg.FeaturesOutput); !os.IsNotExist(err) {
		t.Fatalf("features output should not exist: %v", err)
	}
}

func TestRunFeaturesOnlyFromStoredTable(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(ModeCleaningOnly); err != nil {
		t.Fatalf("cleaning run: %v", err)
	}

	summary, err := runner.Run(ModeFeaturesOnly)
	if err != nil {
		t.Fatalf("features run: %v", err)
	}
	if summary.RowsProcessed != 1 {
		t.Fatalf("rows processed = %d, want 1", summary.RowsProcessed)
	}
	if _, err := os.Stat(cfg.FeaturesOutput); err != nil {
		t.Fatalf("features output missing: %v", err)
	}
}

func TestRunFeaturesOnlyRevalidatesStoredTable(t *testing.T) {
	cfg := testConfig(t)
	// A processed file edited behind the pipeline's back: title nulled out.
	writeRaw(t, cfg.ProcessedOutput, "id,title,price,availability,rating,stock,category,image\n"+
		"b-1,,25.0,1,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	_, err = runner.Run(ModeFeaturesOnly)
	var violation models.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("error = %v, want SchemaViolation", err)
	}
	if violation.Field != "title" {
		t.Fatalf("field = %q, want title", violation.Field)
	}
	if _, err := os.Stat(cfg.FeaturesOutput); !os.IsNotExist(err) {
		t.Fatalf("features output should not exist: %v", err)
	}
}

func TestRunFeaturesOnlyRejectsPlaceholderCategory(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg.ProcessedOutput, "id,title,price,availability,rating,stock,category,image\n"+
		"b-1,Plain Book,25.0,1,4,10,Add a comment,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	_, err = runner.Run(ModeFeaturesOnly)
	var violation models.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("error = %v, want SchemaViolation", err)
	}
	if violation.Field != "category" {
		t.Fatalf("field = %q, want category", violation.Field)
	}
}

func TestRunFailureWritesNoOutput(t *testing.T) {
	cfg := testConfig(t)
	// Null price on the only row.
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	_, err = runner.Run(ModeFull)
	var integrity cleaning.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error = %v, want IntegrityError", err)
	}
	if _, err := os.Stat(cfg.ProcessedOutput); !os.IsNotExist(err) {
		t.Fatalf("processed output should not exist: %v", err)
	}
}

func TestRunFailureLeavesPriorOutputUntouched(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(ModeCleaningOnly); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before, err := os.ReadFile(cfg.ProcessedOutput)
	if err != nil {
		t.Fatalf("read processed: %v", err)
	}

	// Corrupt the raw input and fail a second run.
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,maybe,4,10,Fiction,img\n")
	if _, err := runner.Run(ModeCleaningOnly); err == nil {
		t.Fatal("expected failure on bad availability token")
	}

	after, err := os.ReadFile(cfg.ProcessedOutput)
	if err != nil {
		t.Fatalf("re-read processed: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("failed run modified the prior output")
	}
}

func TestRunDualFormatWritesJSONL(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "dual"
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(ModeFull); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, path := range []string{
		cfg.ProcessedOutput,
		jsonlPath(cfg.ProcessedOutput),
		cfg.FeaturesOutput,
		jsonlPath(cfg.FeaturesOutput),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing output %s: %v", path, err)
		}
	}
}

func TestRunJSONFormatKeepsProcessedCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "json"
	writeRaw(t, cfg.InputFile, rawHeader+"Plain Book,25.0,yes,4,10,Fiction,img\n")

	runner, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(ModeFull); err != nil {
		t.Fatalf("run: %v", err)
	}

	// The processed CSV is written even in json mode so a later
	// features-only run has its input.
	for _, path := range []string{
		cfg.ProcessedOutput,
		jsonlPath(cfg.ProcessedOutput),
		jsonlPath(cfg.FeaturesOutput),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing output %s: %v", path, err)
		}
	}
	if _, err := os.Stat(cfg.FeaturesOutput); !os.IsNotExist(err) {
		t.Fatalf("features csv should not exist in json mode: %v", err)
	}

	if _, err := runner.Run(ModeFeaturesOnly); err != nil {
		t.Fatalf("features-only after json run: %v", err)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "integrity", err: cleaning.IntegrityError{Column: "price", Row: -1, Rows: 1}, want: "integrity"},
		{name: "unrecognized", err: cleaning.UnrecognizedValueError{Row: 0, Value: "maybe"}, want: "unrecognized_value"},
		{name: "missing input", err: MissingInputError{Path: "x.csv"}, want: "missing_input"},
		{name: "other", err: errors.New("boom"), want: "other"},
		{name: "nil", err: nil, want: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Fatalf("kind = %q, want %q", got, tt.want)
			}
		})
	}
}

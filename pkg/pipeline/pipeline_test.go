package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/sbomdiff/pkg/cache"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
	"github.com/matzehuels/sbomdiff/pkg/sink"
	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

var fixtures = []string{
	filepath.Join("..", "spdx", "testdata", "app-1.0.spdx.json"),
	filepath.Join("..", "spdx", "testdata", "app-1.1.spdx.yaml"),
}

func TestDefaultNames(t *testing.T) {
	tests := []struct {
		paths []string
		want  []string
	}{
		{[]string{"a/app.spdx.json", "b/lib.yaml"}, []string{"app", "lib"}},
		{[]string{"a/app.json", "b/app.json"}, []string{"app", "app-2"}},
		{[]string{"app.json", "app-2.json", "app.yml"}, []string{"app", "app-2", "app-3"}},
		{[]string{".json", "x.json"}, []string{"doc1", "x"}},
	}
	for _, tt := range tests {
		if got := DefaultNames(tt.paths); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DefaultNames(%v) = %v, want %v", tt.paths, got, tt.want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Documents: fixtures}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !reflect.DeepEqual(opts.Names, []string{"app-1.0", "app-1.1"}) {
		t.Errorf("Names = %v", opts.Names)
	}
	if !reflect.DeepEqual(opts.Formats, []string{DefaultFormat}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code apperr.Code
	}{
		{"one document", Options{Documents: fixtures[:1]}, apperr.ErrCodeInvalidDocumentCount},
		{"name count", Options{Documents: fixtures, Names: []string{"a"}}, apperr.ErrCodeInvalidDocumentCount},
		{"duplicate names", Options{Documents: fixtures, Names: []string{"a", "a"}}, apperr.ErrCodeInvalidInput},
		{"format", Options{Documents: fixtures, Formats: []string{"pdf"}}, apperr.ErrCodeInvalidFormat},
		{"category", Options{Documents: fixtures, Categories: []string{"packages"}}, apperr.ErrCodeInvalidInput},
		{"cell length", Options{Documents: fixtures, MaxCellLength: -1}, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Documents: fixtures,
		Formats:   []string{sink.FormatJSON, sink.FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheHit {
		t.Error("null cache should never hit")
	}
	if result.Stats.Documents != 2 {
		t.Errorf("Stats.Documents = %d, want 2", result.Stats.Documents)
	}
	if result.Stats.Different == 0 || result.Stats.Rows <= result.Stats.Different {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if !reflect.DeepEqual(result.Report.Documents, []string{"app-1.0", "app-1.1"}) {
		t.Errorf("Documents = %v", result.Report.Documents)
	}
	if len(result.Artifacts) != 2 || len(result.Artifacts[sink.FormatJSON]) == 0 || len(result.Artifacts[sink.FormatText]) == 0 {
		t.Errorf("Artifacts = %v", keys(result.Artifacts))
	}
}

func TestExecuteCachesReport(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{Documents: fixtures, Formats: []string{sink.FormatJSON}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run should miss")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second run should hit")
	}
	if second.Report.ID != first.Report.ID {
		t.Errorf("cached report ID = %q, want %q", second.Report.ID, first.Report.ID)
	}
	if !reflect.DeepEqual(second.Report.Sections, first.Report.Sections) {
		t.Error("cached sections differ from computed sections")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Names = []string{"old", "new"}
	renamed, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("renamed Execute: %v", err)
	}
	if renamed.CacheHit {
		t.Error("different names should use a different cache entry")
	}
}

func TestExecuteCategories(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Documents:  fixtures,
		Categories: []string{"creators", "files"},
		Formats:    []string{sink.FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Report.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(result.Report.Sections))
	}
	if result.Report.Sections[0].Category != "files" {
		t.Errorf("sections should keep category order, got %q first", result.Report.Sections[0].Category)
	}
}

func TestExecuteMissingDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Documents: []string{fixtures[0], filepath.Join(t.TempDir(), "missing.json")},
	})
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(ctx, Options{Documents: fixtures}); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestDecode(t *testing.T) {
	data, err := os.ReadFile(fixtures[0])
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := Decode("left", data, spdx.FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if loaded.Name != "left" || loaded.Hash != cache.Hash(data) || loaded.Document == nil {
		t.Errorf("unexpected Loaded %+v", loaded)
	}

	if _, err := Decode("bad", []byte("{"), spdx.FormatJSON); !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("expected INVALID_DOCUMENT, got %v", err)
	}
}

func TestExportOnlyDifferences(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()
	opts := Options{Documents: fixtures}

	docs, err := runner.Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	report, err := runner.Compare(ctx, docs, opts)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	opts.Formats = []string{sink.FormatJSON}
	opts.OnlyDifferences = true
	artifacts, err := runner.Export(ctx, report, opts)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	filtered, err := sink.ReadJSON(bytes.NewReader(artifacts[sink.FormatJSON]))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	for _, s := range filtered.Sections {
		for _, row := range s.Rows {
			if row.Equal {
				t.Errorf("%s: equal row %q exported with only-differences", s.Category, row.Key)
			}
		}
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

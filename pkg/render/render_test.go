package render

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/sbomdiff/pkg/spdx"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", strings.Repeat("a", 30), 20, "aaaaaa" + TruncatedMarker},
		{"tiny cap", "hello world", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if len(got) > tt.max {
				t.Errorf("len = %d exceeds cap %d", len(got), tt.max)
			}
		})
	}
}

func TestTruncateDefaultCap(t *testing.T) {
	long := strings.Repeat("x", DefaultMaxCellLength+100)
	got := Truncate(long, 0)
	if len(got) != DefaultMaxCellLength {
		t.Errorf("len = %d, want %d", len(got), DefaultMaxCellLength)
	}
	if !strings.HasSuffix(got, TruncatedMarker) {
		t.Error("missing truncation marker")
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	got := Truncate(strings.Repeat("é", 20), 20)
	if !utf8.ValidString(got) {
		t.Errorf("Truncate() produced invalid UTF-8: %q", got)
	}
}

func TestCapped(t *testing.T) {
	c := NewCapped(100, "\n")
	for i := 0; i < 3; i++ {
		c.Add(fmt.Sprintf("item %d", i))
	}
	if got, want := c.String(), "item 0\nitem 1\nitem 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if c.Skipped() != 0 {
		t.Errorf("Skipped() = %d", c.Skipped())
	}
}

func TestCappedOverflow(t *testing.T) {
	c := NewCapped(60, "\n")
	for i := 0; i < 10; i++ {
		c.Add(fmt.Sprintf("item-%d-%s", i, strings.Repeat("x", 10)))
	}
	got := c.String()
	if len(got) > 60 {
		t.Errorf("len = %d exceeds cap", len(got))
	}
	want := fmt.Sprintf("[%d more...]", c.Skipped())
	if !strings.HasSuffix(got, want) {
		t.Errorf("String() = %q, want suffix %q", got, want)
	}
	// Whole items only.
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "item-") && len(line) != len("item-0-")+10 {
			t.Errorf("item cut mid-way: %q", line)
		}
	}
}

func TestCappedFirstItemTooLong(t *testing.T) {
	c := NewCapped(30, "\n")
	c.Add(strings.Repeat("y", 100))
	c.Add("short")
	if got := c.String(); got != "[2 more...]" {
		t.Errorf("String() = %q", got)
	}
}

func TestCells(t *testing.T) {
	name := "src/a.c"
	text := "Some license text"
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"checksums", Checksums([]spdx.Checksum{{Algorithm: "SHA1", Value: "ab"}, {Algorithm: "MD5", Value: "cd"}}), "SHA1: ab, MD5: cd"},
		{"file", File(spdx.File{ID: "SPDXRef-a", Name: &name, LicenseConcluded: "MIT"}, 0), "id: SPDXRef-a\nlicense: MIT"},
		{"file with annotations", File(spdx.File{ID: "SPDXRef-a", Name: &name, Annotations: []spdx.Annotation{
			{Annotator: "Tool: x", Type: "REVIEW", Date: "2024", Comment: "ok"},
			{Annotator: "Person: y", Type: "OTHER", Date: "2025", Comment: "fine"},
		}}, 0), "id: SPDXRef-a\nannotations:\nREVIEW by Tool: x (2024): ok\nOTHER by Person: y (2025): fine"},
		{"annotation", Annotation(spdx.Annotation{Annotator: "Tool: x", Type: "REVIEW", Date: "2024", Comment: "ok"}, 0), "REVIEW by Tool: x (2024): ok"},
		{"relationship resolved", Relationship(spdx.DocumentRelationship{Type: "DESCRIBES", Related: &spdx.Element{Name: "zlib", Version: "1.3"}}, 0), "DESCRIBES zlib 1.3"},
		{"relationship unresolved", Relationship(spdx.DocumentRelationship{Type: "DESCRIBES", RelatedID: "NOASSERTION", Comment: "c"}, 0), "DESCRIBES NOASSERTION (c)"},
		{"external ref", ExternalRef(spdx.ExternalDocumentRef{ID: "DocumentRef-a", Namespace: "https://x", Checksum: &spdx.Checksum{Algorithm: "SHA1", Value: "ff"}}, 0), "DocumentRef-a -> https://x (SHA1: ff)"},
		{"extracted license", ExtractedLicense(spdx.ExtractedLicense{ID: "LicenseRef-1", Name: "Custom", Text: &text}, 0), "LicenseRef-1 (Custom)\nSome license text"},
		{"creator", Creator("Tool: syft", 0), "Tool: syft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAnnotationsCapped(t *testing.T) {
	as := make([]spdx.Annotation, 50)
	for i := range as {
		as[i] = spdx.Annotation{Annotator: "Tool: x", Type: "OTHER", Comment: strings.Repeat("c", 40)}
	}
	got := Annotations(as, 300)
	if len(got) > 300 {
		t.Errorf("len = %d exceeds cap", len(got))
	}
	if !strings.Contains(got, "more...]") {
		t.Errorf("missing overflow marker: %q", got)
	}
}

func TestAnnotationsTinyCap(t *testing.T) {
	as := make([]spdx.Annotation, 3)
	for i := range as {
		as[i] = spdx.Annotation{Annotator: "Tool: x", Type: "OTHER", Comment: "long enough comment"}
	}
	got := Annotations(as, 10)
	if len(got) > 10 {
		t.Errorf("Annotations() = %q, %d bytes exceeds cap 10", got, len(got))
	}
}

func TestFileAnnotationsOverflow(t *testing.T) {
	as := make([]spdx.Annotation, 40)
	for i := range as {
		as[i] = spdx.Annotation{Annotator: "Tool: x", Type: "OTHER", Comment: fmt.Sprintf("note %02d %s", i, strings.Repeat("c", 30))}
	}
	f := spdx.File{ID: "SPDXRef-a", LicenseConcluded: "MIT", Annotations: as}

	got := File(f, 500)
	if len(got) > 500 {
		t.Errorf("len = %d exceeds cap", len(got))
	}
	if !strings.HasPrefix(got, "id: SPDXRef-a\nlicense: MIT\nannotations:\n") {
		t.Errorf("file fields should precede annotations: %q", got)
	}
	if !strings.Contains(got, "note 00") {
		t.Errorf("first annotation missing: %q", got)
	}
	if !strings.HasSuffix(got, "more...]") {
		t.Errorf("missing overflow marker: %q", got)
	}
	if strings.Contains(got, TruncatedMarker) {
		t.Errorf("annotations should be counted, not cut: %q", got)
	}
}

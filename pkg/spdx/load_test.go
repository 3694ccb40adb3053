package spdx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

func TestLoadJSON(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "app-1.0.spdx.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if doc.Name != "app-1.0" {
		t.Errorf("Name = %q, want app-1.0", doc.Name)
	}
	if len(doc.Files) != 3 {
		t.Fatalf("len(Files) = %d, want 3", len(doc.Files))
	}
	if got := doc.Files[1].FileName(); got != `src\util.c` {
		t.Errorf("Files[1].FileName() = %q", got)
	}
	if len(doc.Files[2].Annotations) != 1 {
		t.Errorf("README annotations = %d, want 1", len(doc.Files[2].Annotations))
	}
	if ref := doc.ExternalDocumentRefs[0]; ref.Checksum == nil || ref.Checksum.Algorithm != "SHA1" {
		t.Errorf("external ref checksum = %+v", ref.Checksum)
	}
	if got := doc.CreationInfo.Creators; len(got) != 2 {
		t.Errorf("Creators = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "app-1.1.spdx.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if doc.ID != "SPDXRef-DOCUMENT" {
		t.Errorf("ID = %q", doc.ID)
	}
	if got := doc.Packages[0].Version; got != "1.3.1" {
		t.Errorf("package version = %q, want 1.3.1", got)
	}
	if got := doc.ExtractedLicenses[0].ExtractedText(); !strings.HasPrefix(got, "Permission") {
		t.Errorf("ExtractedText() = %q", got)
	}
	if got := doc.Files[0].FileTypes; len(got) != 1 || got[0] != "SOURCE" {
		t.Errorf("FileTypes = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"spdxVersion": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	noVersion := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(noVersion, []byte(`{"SPDXID": "SPDXRef-DOCUMENT"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code apperr.Code
	}{
		{"missing file", filepath.Join(dir, "missing.json"), apperr.ErrCodeFileNotFound},
		{"unknown extension", filepath.Join(dir, "doc.txt"), apperr.ErrCodeInvalidFormat},
		{"tag-value", filepath.Join(dir, "doc.spdx"), apperr.ErrCodeUnsupported},
		{"malformed json", bad, apperr.ErrCodeInvalidDocument},
		{"missing version", noVersion, apperr.ErrCodeInvalidDocument},
		{"empty path", "", apperr.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("Load() code = %v, want %v (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"a.spdx.json", FormatJSON, false},
		{"A.JSON", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"a.spdx.yml", FormatYAML, false},
		{"a.rdf", "", true},
		{"a", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("{}"), Format("xml"))
	if !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("Read() error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadBytes(t *testing.T) {
	path := filepath.Join("testdata", "app-1.0.spdx.json")
	doc, data, err := LoadBytes(path)
	if err != nil {
		t.Fatalf("LoadBytes() error: %v", err)
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, want) {
		t.Error("LoadBytes() content differs from file")
	}
	if doc.Name != "app-1.0" {
		t.Errorf("Name = %q, want app-1.0", doc.Name)
	}
}

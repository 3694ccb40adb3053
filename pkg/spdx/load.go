package spdx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// Format is a supported document serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the serialization from a file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".spdx", ".rdf", ".xml":
		return "", apperr.New(apperr.ErrCodeUnsupported, "%s: tag-value and RDF documents are not supported", name)
	default:
		return "", apperr.New(apperr.ErrCodeInvalidFormat, "%s: unknown document format (want .json, .yaml or .yml)", name)
	}
}

// ReadJSON decodes an SPDX JSON document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode json")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadYAML decodes an SPDX YAML document from r. ReadYAML does not close r.
func ReadYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode yaml")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Read decodes a document from r in the given format.
func Read(r io.Reader, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
}

// Load reads the document at path, choosing the decoder by extension.
// Errors are wrapped with the path for context.
func Load(path string) (*Document, error) {
	doc, _, err := LoadBytes(path)
	return doc, err
}

// LoadBytes is Load that also returns the raw file content, for hashing.
func LoadBytes(path string) (*Document, []byte, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, data, nil
}

// Validate checks the fields every comparable document must carry.
func (d *Document) Validate() error {
	if !strings.HasPrefix(d.SPDXVersion, "SPDX-") {
		return apperr.New(apperr.ErrCodeInvalidDocument, "missing or invalid spdxVersion %q", d.SPDXVersion)
	}
	if d.ID == "" {
		return apperr.New(apperr.ErrCodeInvalidDocument, "document has no SPDXID")
	}
	return nil
}

package sink

import (
	"github.com/matzehuels/sbomdiff/pkg/compare"
	apperr "github.com/matzehuels/sbomdiff/pkg/errors"
)

// Format constants for output formats.
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXLSX: true,
	FormatJSON: true,
	FormatText: true,
}

var extensions = map[string]string{
	FormatXLSX: ".xlsx",
	FormatJSON: ".json",
	FormatText: ".txt",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %s (must be xlsx, json, or text)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	return extensions[format]
}

// Render dispatches to the renderer for format.
func Render(report *compare.Report, format string, opts ...Option) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return RenderXLSX(report, opts...)
	case FormatJSON:
		return RenderJSON(report, opts...)
	default:
		return []byte(RenderTable(report, opts...)), nil
	}
}

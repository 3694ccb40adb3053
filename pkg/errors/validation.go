package errors

import (
	"strings"
	"unicode"
)

// maxDocumentNameLength bounds document names, which become column headers.
const maxDocumentNameLength = 256

// maxSheetNameLength is the longest worksheet name spreadsheet readers accept.
const maxSheetNameLength = 31

// ValidateDocumentName validates a display name for one compared document.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "document name cannot be empty")
	}

	if len(name) > maxDocumentNameLength {
		return New(ErrCodeInvalidInput, "document name too long (max %d characters)", maxDocumentNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document name contains invalid control characters")
		}
	}

	return nil
}

// ValidateDocumentNames checks the name list supplied for a comparison of
// count documents. A nil list, a length mismatch or fewer than two documents
// is an INVALID_DOCUMENT_COUNT error; invalid or duplicate names are
// INVALID_INPUT errors.
func ValidateDocumentNames(names []string, count int) error {
	if names == nil {
		return New(ErrCodeInvalidDocumentCount, "document names are required")
	}
	if len(names) != count {
		return New(ErrCodeInvalidDocumentCount, "got %d document names for %d documents", len(names), count)
	}
	if count < 2 {
		return New(ErrCodeInvalidDocumentCount, "at least two documents are required, got %d", count)
	}

	seen := make(map[string]int, len(names))
	for i, name := range names {
		if err := ValidateDocumentName(name); err != nil {
			return Wrap(ErrCodeInvalidInput, err, "document %d", i)
		}
		if j, dup := seen[name]; dup {
			return New(ErrCodeInvalidInput, "documents %d and %d share the name %q", j, i, name)
		}
		seen[name] = i
	}
	return nil
}

// ValidatePath validates a local file path supplied for loading or writing.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateSheetName validates a worksheet name for the xlsx report.
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sheet name cannot be empty")
	}
	if len([]rune(name)) > maxSheetNameLength {
		return New(ErrCodeInvalidInput, "sheet name %q too long (max %d characters)", name, maxSheetNameLength)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return New(ErrCodeInvalidInput, "sheet name %q contains invalid characters", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidInput, "sheet name %q cannot start or end with an apostrophe", name)
	}
	return nil
}

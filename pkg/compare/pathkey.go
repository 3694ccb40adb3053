package compare

import "strings"

// NoName stands in for a file without a name.
const NoName = "[NO_NAME]"

// NormalizePath maps a file name to its comparison key: a missing name
// becomes NoName, backslashes become slashes, and a "./" prefix is added
// when missing. NormalizePath is idempotent.
func NormalizePath(name *string) string {
	if name == nil {
		return NormalizeFileName(NoName)
	}
	return NormalizeFileName(*name)
}

// NormalizeFileName normalizes a present file name. See NormalizePath.
func NormalizeFileName(name string) string {
	s := strings.ReplaceAll(name, `\`, "/")
	if !strings.HasPrefix(s, "./") {
		s = "./" + s
	}
	return s
}

// HasLeadingDir reports whether a is b with extra leading directories,
// e.g. "./pkg/src/a.c" and "./src/a.c". A leading "./" is ignored on both.
// Nothing matches files this way yet.
func HasLeadingDir(a, b string) bool {
	a = strings.TrimPrefix(a, "./")
	b = strings.TrimPrefix(b, "./")
	if len(a) <= len(b) || !strings.HasSuffix(a, b) {
		return false
	}
	return a[len(a)-len(b)-1] == '/'
}

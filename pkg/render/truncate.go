package render

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultMaxCellLength is the largest cell the xlsx format accepts.
const DefaultMaxCellLength = 32000

// TruncatedMarker ends a value that was cut by Truncate.
const TruncatedMarker = "...[truncated]"

// Truncate limits s to max bytes. An overlong value is cut on a rune
// boundary and ends with TruncatedMarker; the result never exceeds max.
// A non-positive max selects DefaultMaxCellLength.
func Truncate(s string, max int) string {
	if max <= 0 {
		max = DefaultMaxCellLength
	}
	if len(s) <= max {
		return s
	}
	if max <= len(TruncatedMarker) {
		return TruncatedMarker[:max]
	}
	cut := max - len(TruncatedMarker)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncatedMarker
}

// Capped joins items into one cell without exceeding a length cap. Once an
// item does not fit, it and every later item are counted instead of
// written, and String appends "[<n> more...]".
type Capped struct {
	max     int
	sep     string
	b       strings.Builder
	items   int
	skipped int
}

// NewCapped returns a builder joining items with sep. A non-positive max
// selects DefaultMaxCellLength.
func NewCapped(max int, sep string) *Capped {
	if max <= 0 {
		max = DefaultMaxCellLength
	}
	return &Capped{max: max, sep: sep}
}

// Add appends an item if it fits together with room for the overflow
// marker.
func (c *Capped) Add(item string) {
	if c.skipped > 0 {
		c.skipped++
		return
	}
	need := len(item)
	if c.items > 0 {
		need += len(c.sep)
	}
	if c.b.Len()+need > c.max-c.reserve() {
		c.skipped++
		return
	}
	if c.items > 0 {
		c.b.WriteString(c.sep)
	}
	c.b.WriteString(item)
	c.items++
}

// reserve is the space kept free for a separator and the widest marker.
func (c *Capped) reserve() int {
	return len(c.sep) + len(c.marker(math.MaxInt32))
}

// Skipped returns the number of items left out so far.
func (c *Capped) Skipped() int {
	return c.skipped
}

// String returns the joined items plus the overflow marker, if any.
func (c *Capped) String() string {
	if c.skipped == 0 {
		return c.b.String()
	}
	if c.items == 0 {
		return c.marker(c.skipped)
	}
	return c.b.String() + c.sep + c.marker(c.skipped)
}

func (c *Capped) marker(n int) string {
	return fmt.Sprintf("[%d more...]", n)
}

// Package dateutil parses and formats calendar dates against an ordered list
// of accepted layouts. It is pure and stateless: a failed parse is a normal
// return value, never an error or a panic.
package dateutil

import "time"

// AcceptedInput lists the layouts accepted for user-entered planning dates,
// tried in order. ISO comes first because it is the canonical form; the
// slash layout exists for users who type US-style dates.
var AcceptedInput = []string{
	isoLayout,    // YYYY-MM-DD
	"01/02/2006", // MM/DD/YYYY
}

// Canonical is the only layout ever persisted or exchanged at a boundary.
const Canonical = isoLayout

const isoLayout = "2006-01-02"

// Parse tries each layout in order and returns the first successful parse.
// The boolean is false when no layout matches.
//
// Go's time.Parse is lenient about things like one-digit months, so a
// round-trip check rejects inputs that parse but are not written in the
// layout's own form ("2025-6-1" must not count as ISO).
func Parse(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t.Format(layout) != raw {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// ParseCanonical parses raw against the canonical ISO layout only.
func ParseCanonical(raw string) (time.Time, bool) {
	return Parse(raw, []string{Canonical})
}

// Format renders t with the given layout. It is a plain pretty-printer with
// no failure path.
func Format(t time.Time, layout string) string {
	return t.Format(layout)
}

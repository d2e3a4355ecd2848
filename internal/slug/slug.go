// Package slug derives the URL-safe secondary key for a hotel record.
package slug

import (
	"strconv"

	gslug "github.com/gosimple/slug"
)

// fallback is used when a title normalizes to nothing (e.g. all punctuation).
// A slug must never be empty.
const fallback = "hotel"

// Make normalizes a title to a lowercase hyphen-separated slug.
func Make(title string) string {
	s := gslug.Make(title)
	if s == "" {
		return fallback
	}
	return s
}

// Unique returns the first collision-free variant of the title's slug:
// the base slug itself, then base-2, base-3, and so on. taken reports
// whether a candidate already belongs to a persisted record.
//
// Unique only reads the existing slug set; the caller owns the write and
// must hold the store-wide create lock between check and write, otherwise
// two concurrent creations can compute the same slug.
func Unique(title string, taken func(string) bool) string {
	base := Make(title)
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

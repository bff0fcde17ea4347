// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import "regexp"

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s]`)
	slugCollapseRe = regexp.MustCompile(`\s+`)
)

// Slug maps a title to a filesystem-safe filename stem. Characters outside
// ASCII letters, digits, underscore, and whitespace are removed, then each
// whitespace run becomes a single underscore. Two distinct titles can slug
// to the same stem; the later note's output files win.
func Slug(title string) string {
	s := slugStripRe.ReplaceAllString(title, "")
	return slugCollapseRe.ReplaceAllString(s, "_")
}

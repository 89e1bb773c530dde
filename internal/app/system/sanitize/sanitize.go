// Package sanitize strips markup from actor-supplied free text before
// it is persisted. Titles, descriptions, locations, and pickup notes
// are stored as plain text; nothing in this service renders actor
// input as HTML.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

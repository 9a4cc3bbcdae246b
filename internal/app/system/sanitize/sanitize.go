// Package sanitize strips markup from user-supplied content before it is
// persisted. Titles, descriptions, and comment bodies are plain text; any
// HTML a client smuggles in is removed, not escaped.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text returns s with all HTML elements removed and surrounding whitespace
// trimmed.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

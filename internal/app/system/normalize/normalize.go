// Package normalize holds the canonical forms for identity fields.
// Emails compare case-insensitively across all account collections, so they
// are stored lowercased.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

package tui

import "strings"

// containsFold reports whether s contains needle, case-insensitively.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

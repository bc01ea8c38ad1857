package domain

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a subject id from a display name: lowercase, runs of
// characters outside [a-z0-9] collapsed to "-", leading and trailing "-"
// removed.
func Slugify(name string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

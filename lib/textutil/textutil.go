package textutil

import (
	"regexp"
	"strings"
)

var slugRejectRegex = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)

// Slugify turns a free-text monster name into the path segment the bestiary
// uses for its pages. Empty input (or input made only of rejected characters)
// yields an empty slug.
func Slugify(name string) string {
	name = slugRejectRegex.ReplaceAllString(name, "")
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

var fieldNameReplacer = strings.NewReplacer(
	" ", "_",
	".", "",
	":", "",
)

// NormalizeFieldName converts a stats table label like "No. of Attacks:" into
// its lookup key "no_of_attacks".
func NormalizeFieldName(label string) string {
	return fieldNameReplacer.Replace(strings.ToLower(label))
}

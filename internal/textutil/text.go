// Package textutil holds small text helpers shared by the vocabulary,
// journey and review queue packages.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(value string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(value, " "))
}

// NormalizeHeadword returns the catalogue lookup key for a German headword.
func NormalizeHeadword(german string) string {
	return cases.Lower(language.German).String(CollapseWhitespace(german))
}

// UpperGerman upper-cases with German rules, so ß becomes SS.
func UpperGerman(value string) string {
	return cases.Upper(language.German).String(value)
}

// EqualFold compares two strings case-insensitively after Unicode folding.
func EqualFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Lower lower-cases with German rules.
func Lower(value string) string {
	return cases.Lower(language.German).String(value)
}

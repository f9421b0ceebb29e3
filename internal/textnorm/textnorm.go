// Package textnorm prepares user-typed text for the weather API and the page.
package textnorm

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s (NFD) and drops every nonspacing mark, so
// "São Paulo" becomes "Sao Paulo". Characters without a decomposition are
// kept as they are.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Title(language.Und).String(s)
}

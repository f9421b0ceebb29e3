// Package country holds the ISO 3166-1 reference table used by the form.
package country

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/gometeo/weatherform/internal/model"
)

// Table maps alpha-2 codes to display names. It is never modified after
// construction and is safe for concurrent use.
type Table struct {
	names  map[string]string
	sorted []model.Country
}

var builtin = NewTable(iso3166)

// Default returns the built-in ISO 3166-1 table.
func Default() *Table {
	return builtin
}

// NewTable builds a table from entries. Codes are upper-cased; entries with
// an empty code or name are skipped and later duplicates win.
func NewTable(entries []model.Country) *Table {
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		code := normalizeCode(e.Code)
		name := strings.TrimSpace(e.Name)
		if code == "" || name == "" {
			continue
		}
		names[code] = name
	}

	sorted := make([]model.Country, 0, len(names))
	for code, name := range names {
		sorted = append(sorted, model.Country{Code: code, Name: name})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name == sorted[j].Name {
			return sorted[i].Code < sorted[j].Code
		}
		return sorted[i].Name < sorted[j].Name
	})

	return &Table{names: names, sorted: sorted}
}

// With returns a new table holding t's entries overridden and extended by
// extra.
func (t *Table) With(extra []model.Country) *Table {
	merged := make([]model.Country, 0, len(t.sorted)+len(extra))
	merged = append(merged, t.sorted...)
	merged = append(merged, extra...)
	return NewTable(merged)
}

// DisplayName returns the name registered for code. Two-letter codes the
// table lacks but CLDR knows as a country (XK, AC...) get the CLDR English
// name; anything else is returned as is.
func (t *Table) DisplayName(code string) string {
	normalized := normalizeCode(code)
	if name, ok := t.names[normalized]; ok {
		return name
	}
	if name, ok := cldrName(normalized); ok {
		return name
	}
	return code
}

// Sorted returns the entries ordered by display name.
func (t *Table) Sorted() []model.Country {
	out := make([]model.Country, len(t.sorted))
	copy(out, t.sorted)
	return out
}

func (t *Table) Len() int {
	return len(t.sorted)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var regionNames = display.English.Regions()

func cldrName(code string) (string, bool) {
	if len(code) != 2 {
		return "", false
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	name := regionNames.Name(region)
	if name == "" {
		return "", false
	}
	return name, true
}

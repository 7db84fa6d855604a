package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/licensetool/pkg/resolve"
)

// Row is one line of the report.
type Row struct {
	Component string
	Origin    string
	License   string
	Copyright string
}

// Compare orders rows canonically.
func Compare(a, b Row) int {
	return cmp.Or(
		cmp.Compare(a.Component, b.Component),
		cmp.Compare(a.Origin, b.Origin),
		cmp.Compare(a.License, b.License),
		cmp.Compare(a.Copyright, b.Copyright),
	)
}

// Sort sorts rows canonically in place.
func Sort(rows []Row) {
	slices.SortFunc(rows, Compare)
}

// details is a row without its component name.
type details struct {
	origin, license, copyright string
}

// Collapse converts records into canonically ordered, duplicate-free rows.
func Collapse(records []resolve.Record) []Row {
	groups := make(map[details]map[string]bool)
	for _, r := range records {
		d := details{origin: r.Origin, license: r.License, copyright: r.Copyright}
		if groups[d] == nil {
			groups[d] = make(map[string]bool)
		}
		groups[d][r.Name] = true
	}

	var rows []Row
	for d, names := range groups {
		for _, name := range reduceNames(d.origin, names) {
			rows = append(rows, Row{Component: name, Origin: d.origin, License: d.license, Copyright: d.copyright})
		}
	}
	Sort(rows)
	return rows
}

// reduceNames picks the single primary name for a group of components that
// share every detail, when the origin's last path segment names one of them.
// Otherwise all names are kept.
func reduceNames(origin string, names map[string]bool) []string {
	if len(names) > 1 {
		if i := strings.LastIndex(origin, "/"); i >= 0 {
			suffix := origin[i+1:]
			candidates := []string{suffix}
			if name, ok := strings.CutPrefix(suffix, "rust-"); ok {
				candidates = append(candidates, name)
			}
			if name, ok := strings.CutSuffix(suffix, "-rs"); ok {
				candidates = append(candidates, name)
			}
			for _, c := range candidates {
				if names[c] {
					return []string{c}
				}
			}
		}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

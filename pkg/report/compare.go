package report

import (
	"bytes"
	"slices"
)

// Field names a report column that can differ between two rows.
type Field string

// Comparable fields.
const (
	FieldOrigin    Field = "Origin"
	FieldLicense   Field = "License"
	FieldCopyright Field = "Copyright"
)

// Difference is a single field mismatch for a component.
type Difference struct {
	Component string
	Field     Field
	Expected  string
	Actual    string
}

// Comparison is the outcome of comparing two row sets.
type Comparison struct {
	Identical   bool
	Differences []Difference // Field mismatches for components present on both sides
	Missing     []Row        // Expected rows with no counterpart in actual
	Extraneous  []Row        // Actual rows with no counterpart in expected
	LayoutDrift bool         // Contents match but the persisted text is not canonical (Check only)
}

// Diff compares expected and actual rows, ignoring order. Rows are matched
// by component: identical rows pair up first, then the remaining rows of a
// component pair in canonical order and their differing fields are reported.
func Diff(expected, actual []Row) Comparison {
	exp := byComponent(expected)
	act := byComponent(actual)

	components := make([]string, 0, len(exp)+len(act))
	for c := range exp {
		components = append(components, c)
	}
	for c := range act {
		if _, ok := exp[c]; !ok {
			components = append(components, c)
		}
	}
	slices.Sort(components)

	var result Comparison
	for _, c := range components {
		e, a := removeCommon(exp[c], act[c])
		n := min(len(e), len(a))
		for i := range n {
			result.Differences = append(result.Differences, fieldDiffs(e[i], a[i])...)
		}
		result.Missing = append(result.Missing, e[n:]...)
		result.Extraneous = append(result.Extraneous, a[n:]...)
	}
	result.Identical = len(result.Differences) == 0 && len(result.Missing) == 0 && len(result.Extraneous) == 0
	return result
}

// Check compares a persisted report against freshly computed rows. The
// persisted text must decode cleanly; layout drift is reported when the
// contents match but the text differs from the canonical encoding of fresh.
func Check(persisted []byte, fresh []Row) (Comparison, error) {
	current, err := Decode(bytes.NewReader(persisted))
	if err != nil {
		return Comparison{}, err
	}
	c := Diff(fresh, current)
	if c.Identical {
		canonical, err := EncodeBytes(fresh)
		if err != nil {
			return Comparison{}, err
		}
		if !bytes.Equal(canonical, persisted) {
			c.LayoutDrift = true
			c.Identical = false
		}
	}
	return c, nil
}

func byComponent(rows []Row) map[string][]Row {
	m := make(map[string][]Row)
	for _, r := range rows {
		m[r.Component] = append(m[r.Component], r)
	}
	for _, rs := range m {
		Sort(rs)
	}
	return m
}

// removeCommon drops rows present on both sides (as a multiset) and returns
// the remainders in canonical order.
func removeCommon(expected, actual []Row) ([]Row, []Row) {
	var e []Row
	rest := slices.Clone(actual)
	for _, r := range expected {
		if i := slices.Index(rest, r); i >= 0 {
			rest = slices.Delete(rest, i, i+1)
			continue
		}
		e = append(e, r)
	}
	return e, rest
}

func fieldDiffs(e, a Row) []Difference {
	var out []Difference
	add := func(f Field, ev, av string) {
		if ev != av {
			out = append(out, Difference{Component: e.Component, Field: f, Expected: ev, Actual: av})
		}
	}
	add(FieldOrigin, e.Origin, a.Origin)
	add(FieldLicense, e.License, a.License)
	add(FieldCopyright, e.Copyright, a.Copyright)
	return out
}

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/licensetool/pkg/errors"
	"github.com/matzehuels/licensetool/pkg/resolve"
)

func sampleRows() []Row {
	return []Row{
		{Component: "anyhow", Origin: "https://github.com/dtolnay/anyhow", License: "MIT OR Apache-2.0", Copyright: "Copyright (c) 2019 David Tolnay"},
		{Component: "quirky", Origin: "https://example.com/quirky", License: "MIT", Copyright: `Copyright 2020 "Q", Inc.`},
		{Component: "multiline", Origin: "https://example.com/m", License: "BSD-3-Clause", Copyright: "Copyright 2021\nSecond line"},
		{Component: "empty", Origin: "https://example.com/e", License: "ISC", Copyright: ""},
	}
}

func TestEncode(t *testing.T) {
	rows := []Row{
		{Component: "anyhow", Origin: "https://github.com/dtolnay/anyhow", License: "MIT OR Apache-2.0", Copyright: "Copyright (c) 2019 David Tolnay"},
		{Component: "quirky", Origin: "https://example.com/quirky", License: "MIT", Copyright: `Copyright 2020 "Q", Inc.`},
		{Component: "zero", Origin: "https://example.com/zero", License: "ISC", Copyright: ""},
	}
	got, err := EncodeBytes(rows)
	require.NoError(t, err)

	want := "Component,Origin,License,Copyright\n" +
		"anyhow,https://github.com/dtolnay/anyhow,MIT OR Apache-2.0,Copyright (c) 2019 David Tolnay\n" +
		`quirky,https://example.com/quirky,MIT,"Copyright 2020 ""Q"", Inc."` + "\n" +
		"zero,https://example.com/zero,ISC,\n"
	assert.Equal(t, want, string(got))
}

func TestRoundTrip(t *testing.T) {
	rows := sampleRows()
	data, err := EncodeBytes(rows)
	require.NoError(t, err)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rows, decoded)
}

func TestDecodeHeaderOnly(t *testing.T) {
	rows, err := Decode(strings.NewReader("Component,Origin,License,Copyright\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "Name,Origin,License,Copyright\n"},
		{"short header", "Component,Origin,License\n"},
		{"short row", "Component,Origin,License,Copyright\nfoo,https://x,MIT\n"},
		{"long row", "Component,Origin,License,Copyright\nfoo,https://x,MIT,c,extra\n"},
		{"bad quoting", "Component,Origin,License,Copyright\nfoo,https://x,MIT,\"unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeParse), "want PARSE_ERROR, got %v", err)
		})
	}
}

func TestCollapse(t *testing.T) {
	records := []resolve.Record{
		{Name: "serde", Version: "1.0.193", License: "MIT OR Apache-2.0", Origin: "https://github.com/serde-rs/serde", Copyright: "Copyright Serde"},
		{Name: "serde_derive", Version: "1.0.193", License: "MIT OR Apache-2.0", Origin: "https://github.com/serde-rs/serde", Copyright: "Copyright Serde"},
		{Name: "syn", Version: "1.0.109", License: "MIT OR Apache-2.0", Origin: "https://github.com/dtolnay/syn", Copyright: "Copyright Syn"},
		{Name: "syn", Version: "2.0.39", License: "MIT OR Apache-2.0", Origin: "https://github.com/dtolnay/syn", Copyright: "Copyright Syn"},
		{Name: "openssl", Version: "0.10.57", License: "Apache-2.0", Origin: "https://github.com/sfackler/rust-openssl", Copyright: "Copyright OpenSSL"},
		{Name: "openssl-sys", Version: "0.9.93", License: "Apache-2.0", Origin: "https://github.com/sfackler/rust-openssl", Copyright: "Copyright OpenSSL"},
		{Name: "ring", Version: "0.17.5", License: "ISC", Origin: "https://github.com/briansmith/ring-rs", Copyright: ""},
		{Name: "ring-extra", Version: "0.1.0", License: "ISC", Origin: "https://github.com/briansmith/ring-rs", Copyright: ""},
		{Name: "alpha", Version: "1.0.0", License: "MIT", Origin: "https://example.com/mono", Copyright: ""},
		{Name: "beta", Version: "1.0.0", License: "MIT", Origin: "https://example.com/mono", Copyright: ""},
	}

	got := Collapse(records)
	want := []Row{
		{Component: "alpha", Origin: "https://example.com/mono", License: "MIT"},
		{Component: "beta", Origin: "https://example.com/mono", License: "MIT"},
		{Component: "openssl", Origin: "https://github.com/sfackler/rust-openssl", License: "Apache-2.0", Copyright: "Copyright OpenSSL"},
		{Component: "ring", Origin: "https://github.com/briansmith/ring-rs", License: "ISC"},
		{Component: "serde", Origin: "https://github.com/serde-rs/serde", License: "MIT OR Apache-2.0", Copyright: "Copyright Serde"},
		{Component: "syn", Origin: "https://github.com/dtolnay/syn", License: "MIT OR Apache-2.0", Copyright: "Copyright Syn"},
	}
	assert.Equal(t, want, got)
}

func TestCollapseKeepsDistinctDetails(t *testing.T) {
	records := []resolve.Record{
		{Name: "syn", Version: "2.0.39", License: "MIT OR Apache-2.0", Origin: "https://github.com/dtolnay/syn", Copyright: "Copyright B"},
		{Name: "syn", Version: "1.0.109", License: "MIT OR Apache-2.0", Origin: "https://github.com/dtolnay/syn", Copyright: "Copyright A"},
	}
	got := Collapse(records)
	require.Len(t, got, 2)
	assert.Equal(t, "Copyright A", got[0].Copyright)
	assert.Equal(t, "Copyright B", got[1].Copyright)
}

func TestCollapseIdempotentEncoding(t *testing.T) {
	records := []resolve.Record{
		{Name: "b", Version: "1.0.0", License: "MIT", Origin: "https://example.com/b"},
		{Name: "a", Version: "1.0.0", License: "MIT", Origin: "https://example.com/a"},
	}
	first, err := EncodeBytes(Collapse(records))
	require.NoError(t, err)
	second, err := EncodeBytes(Collapse([]resolve.Record{records[1], records[0]}))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiff(t *testing.T) {
	t.Run("identical regardless of order", func(t *testing.T) {
		rows := sampleRows()
		reversed := []Row{rows[3], rows[2], rows[1], rows[0]}
		got := Diff(rows, reversed)
		assert.True(t, got.Identical)
		assert.Empty(t, got.Differences)
	})

	t.Run("single field", func(t *testing.T) {
		expected := sampleRows()
		actual := sampleRows()
		actual[0].License = "MIT"

		got := Diff(expected, actual)
		assert.False(t, got.Identical)
		assert.Equal(t, []Difference{{
			Component: "anyhow",
			Field:     FieldLicense,
			Expected:  "MIT OR Apache-2.0",
			Actual:    "MIT",
		}}, got.Differences)
		assert.Empty(t, got.Missing)
		assert.Empty(t, got.Extraneous)
	})

	t.Run("missing and extraneous", func(t *testing.T) {
		expected := sampleRows()[:2]
		actual := []Row{sampleRows()[0], sampleRows()[2]}

		got := Diff(expected, actual)
		assert.False(t, got.Identical)
		assert.Empty(t, got.Differences)
		assert.Equal(t, []Row{sampleRows()[1]}, got.Missing)
		assert.Equal(t, []Row{sampleRows()[2]}, got.Extraneous)
	})

	t.Run("multiple rows per component", func(t *testing.T) {
		expected := []Row{
			{Component: "syn", Origin: "o", License: "MIT", Copyright: "A"},
			{Component: "syn", Origin: "o", License: "MIT", Copyright: "B"},
		}
		actual := []Row{
			{Component: "syn", Origin: "o", License: "MIT", Copyright: "B"},
			{Component: "syn", Origin: "o", License: "MIT", Copyright: "C"},
		}
		got := Diff(expected, actual)
		assert.Equal(t, []Difference{{Component: "syn", Field: FieldCopyright, Expected: "A", Actual: "C"}}, got.Differences)
	})
}

func TestCheck(t *testing.T) {
	rows := sampleRows()
	Sort(rows)
	persisted, err := EncodeBytes(rows)
	require.NoError(t, err)

	t.Run("up to date", func(t *testing.T) {
		got, err := Check(persisted, rows)
		require.NoError(t, err)
		assert.True(t, got.Identical)
		assert.False(t, got.LayoutDrift)
	})

	t.Run("one changed license", func(t *testing.T) {
		fresh := sampleRows()
		Sort(fresh)
		fresh[0].License = "Apache-2.0"

		got, err := Check(persisted, fresh)
		require.NoError(t, err)
		assert.False(t, got.Identical)
		require.Len(t, got.Differences, 1)
		assert.Equal(t, FieldLicense, got.Differences[0].Field)
		assert.Equal(t, "Apache-2.0", got.Differences[0].Expected)
	})

	t.Run("order drift", func(t *testing.T) {
		shuffled := []Row{rows[3], rows[2], rows[1], rows[0]}
		text, err := EncodeBytes(shuffled)
		require.NoError(t, err)

		got, err := Check(text, rows)
		require.NoError(t, err)
		assert.False(t, got.Identical)
		assert.True(t, got.LayoutDrift)
		assert.Empty(t, got.Differences)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Check([]byte("garbage\n"), rows)
		assert.True(t, errors.Is(err, errors.ErrCodeParse))
	})
}

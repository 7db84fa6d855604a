package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"slices"

	"github.com/matzehuels/licensetool/pkg/errors"
)

// Header is the fixed first line of the report.
var Header = []string{"Component", "Origin", "License", "Copyright"}

// Encode writes the header and rows as CSV. Rows are written in the order
// given; callers pass canonically ordered rows (see Collapse and Sort).
func Encode(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Component, r.Origin, r.License, r.Copyright}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeBytes returns the CSV encoding of rows.
func EncodeBytes(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses CSV produced by Encode. A missing or unexpected header, or a
// line with the wrong number of fields, is a PARSE_ERROR.
func Decode(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeParse, "report is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "unparseable header")
	}
	if !slices.Equal(header, Header) {
		return nil, errors.New(errors.ErrCodeParse, "unexpected header %q", header)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed report")
		}
		rows = append(rows, Row{Component: rec[0], Origin: rec[1], License: rec[2], Copyright: rec[3]})
	}
	return rows, nil
}

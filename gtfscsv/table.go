// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package gtfscsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table reads a single GTFS CSV table. Columns are resolved by header
// name, never by position. A UTF-8 byte order mark at the start of the
// stream is stripped before the header is read.
type Table struct {
	name   string
	header []string
	index  map[string]int
	r      *csv.Reader
}

// NewTable wraps r as the table called name and reads its header row.
func NewTable(name string, r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header of table '%s': %s", name, err.Error())
	}

	t := &Table{
		name:   name,
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
		r:      cr,
	}

	for i, h := range header {
		h = strings.TrimSpace(h)
		t.header[i] = h
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}

	return t, nil
}

func (t *Table) Name() string {
	return t.name
}

// Header returns the trimmed column names in file order.
func (t *Table) Header() []string {
	return t.header
}

// Index resolves a required column, failing with the table and column
// named if it is not present.
func (t *Table) Index(col string) (int, error) {
	i, ok := t.index[col]
	if !ok {
		return 0, fmt.Errorf("table '%s' has no column '%s'", t.name, col)
	}
	return i, nil
}

// OptIndex resolves a column that is allowed to be absent.
func (t *Table) OptIndex(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Next returns the next row, or io.EOF after the last one. Rows may be
// shorter than the header, use Get for cell access.
func (t *Table) Next() ([]string, error) {
	row, err := t.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("could not read table '%s': %s", t.name, err.Error())
	}
	return row, nil
}

// Get returns the cell at index i, or the empty string if the row is
// too short.
func Get(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ShapeSet holds the assembled polyline and the declared traveled
// distance of every shape in the feed.
type ShapeSet struct {
	lines   map[string][]Coordinate
	lengths map[string]json.Number
}

// Geometry returns the shape's polyline, sorted by point sequence.
func (s *ShapeSet) Geometry(id string) ([]Coordinate, bool) {
	line, ok := s.lines[id]
	return line, ok
}

// Length returns the maximum declared shape_dist_traveled of the
// shape, absent if the column is missing or was always empty.
func (s *ShapeSet) Length(id string) (json.Number, bool) {
	l, ok := s.lengths[id]
	return l, ok
}

// ReadShapes consumes the shapes table. Points are collected per shape
// and sorted by shape_pt_sequence once all rows are read; the source
// is not assumed to be pre-sorted or to use contiguous sequence
// numbers. Two points sharing a sequence number resolve to the later
// row.
func (c *Converter) ReadShapes(tbl *gtfscsv.Table) (*ShapeSet, error) {
	shapeID, err := tbl.Index("shape_id")
	if err != nil {
		return nil, err
	}
	latCol, err := tbl.Index("shape_pt_lat")
	if err != nil {
		return nil, err
	}
	lonCol, err := tbl.Index("shape_pt_lon")
	if err != nil {
		return nil, err
	}
	seqCol, err := tbl.Index("shape_pt_sequence")
	if err != nil {
		return nil, err
	}
	distCol, hasDist := tbl.OptIndex("shape_dist_traveled")

	points := make(map[string]map[int]Coordinate)
	lengths := make(map[string]json.Number)
	lengthVals := make(map[string]float64)

	for {
		row, err := tbl.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := gtfscsv.Get(row, shapeID)

		coord, err := ParseCoordinate(gtfscsv.Get(row, lonCol), gtfscsv.Get(row, latCol))
		if err != nil {
			return nil, fmt.Errorf("shape '%s': %s", id, err.Error())
		}

		seqCell := strings.TrimSpace(gtfscsv.Get(row, seqCol))
		seq, err := strconv.Atoi(seqCell)
		if err != nil {
			return nil, fmt.Errorf("shape '%s' has an invalid shape_pt_sequence '%s'", id, seqCell)
		}

		m, ok := points[id]
		if !ok {
			m = make(map[int]Coordinate)
			points[id] = m
		}
		if _, dup := m[seq]; dup {
			c.warn("shape '%s' has duplicate point sequence %d, keeping the later row", id, seq)
		}
		m[seq] = coord

		if !hasDist {
			continue
		}

		distCell := strings.TrimSpace(gtfscsv.Get(row, distCol))
		if distCell == "" {
			continue
		}

		v, err := strconv.ParseFloat(distCell, 64)
		if err != nil {
			c.warn("shape '%s' has a malformed shape_dist_traveled '%s', ignoring", id, distCell)
			continue
		}

		if cur, ok := lengthVals[id]; !ok || v > cur {
			lengthVals[id] = v
			if n, err := ParseDecimal(distCell); err == nil {
				lengths[id] = n
			}
		}
	}

	set := &ShapeSet{lines: make(map[string][]Coordinate, len(points)), lengths: lengths}

	for id, m := range points {
		seqs := maps.Keys(m)
		slices.Sort(seqs)

		line := make([]Coordinate, 0, len(seqs))
		for _, seq := range seqs {
			line = append(line, m[seq])
		}
		set.lines[id] = line
	}

	return set, nil
}

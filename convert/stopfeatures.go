// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"fmt"
	"io"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
)

// StopFeatures consumes the stops table and emits one Point feature
// per stop, in row order. Every non-empty column except the two
// coordinate columns becomes a property.
func (c *Converter) StopFeatures(tbl *gtfscsv.Table) ([]*Feature, error) {
	idCol, err := tbl.Index("stop_id")
	if err != nil {
		return nil, err
	}
	latCol, err := tbl.Index("stop_lat")
	if err != nil {
		return nil, err
	}
	lonCol, err := tbl.Index("stop_lon")
	if err != nil {
		return nil, err
	}

	header := tbl.Header()
	feats := make([]*Feature, 0)

	for {
		row, err := tbl.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := gtfscsv.Get(row, idCol)

		coord, err := ParseCoordinate(gtfscsv.Get(row, lonCol), gtfscsv.Get(row, latCol))
		if err != nil {
			return nil, fmt.Errorf("stop '%s': %s", id, err.Error())
		}

		props := make(map[string]interface{})
		for i, h := range header {
			if i == latCol || i == lonCol {
				continue
			}
			if v := gtfscsv.Get(row, i); v != "" {
				props[h] = v
			}
		}

		feats = append(feats, NewFeature(id, NewPoint(coord), props))
	}

	return feats, nil
}

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

// RouteFeatures consumes the routes table and emits one LineString
// feature per route, geometry taken from the route's representative
// shape. Every non-empty row cell becomes a property; the derived
// shape_id, shape_refs, shape_length and duration_sec properties
// overwrite same-named columns.
func (c *Converter) RouteFeatures(tbl *gtfscsv.Table, shapes *ShapeSet, usage *RouteShapes) ([]*Feature, error) {
	routeCol, err := tbl.Index("route_id")
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

		id := gtfscsv.Get(row, routeCol)

		shapeID, refs, ok := usage.Resolve(id)
		if !ok {
			if c.opts.DropMissingShapes {
				c.warn("could not find a shape for route '%s', skipping", id)
				continue
			}
			return nil, fmt.Errorf("could not find a shape for route '%s'", id)
		}

		line, ok := shapes.Geometry(shapeID)
		if !ok {
			if c.opts.DropMissingShapes {
				c.warn("shape '%s' of route '%s' is not in the shapes table, skipping", shapeID, id)
				continue
			}
			return nil, fmt.Errorf("shape '%s' of route '%s' is not in the shapes table", shapeID, id)
		}

		props := make(map[string]interface{})
		for i, h := range header {
			if v := gtfscsv.Get(row, i); v != "" {
				props[h] = v
			}
		}

		props["shape_id"] = shapeID
		props["shape_refs"] = refs

		if l, ok := shapes.Length(shapeID); ok {
			props["shape_length"] = l
		}

		if w, ok := usage.Window(id); ok {
			props["duration_sec"] = w.DurationSec()
		} else {
			c.warn("route '%s' has no usable stop times on trip '%s', omitting duration_sec", id, usage.FirstTrip(id))
		}

		feats = append(feats, NewFeature(id, NewLineString(line), props))
	}

	return feats, nil
}

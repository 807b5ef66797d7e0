// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"fmt"
	"os"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
)

// Options controls conversion behavior.
type Options struct {
	// DropMissingShapes skips routes without a resolvable shape with a
	// warning instead of failing the whole run.
	DropMissingShapes bool

	// ShowWarnings enables per-row diagnostics on stderr.
	ShowWarnings bool

	// PolygonFilter restricts output to features lying inside at least
	// one of the polygons. Empty means no filtering.
	PolygonFilter []Polygon
}

// Converter builds GeoJSON feature collections from GTFS tables. All
// aggregates live for a single conversion call and are not shared
// between runs.
type Converter struct {
	opts Options
}

func NewConverter(opts Options) *Converter {
	return &Converter{opts: opts}
}

// Routes runs the route conversion pipeline: stop_times, shapes and
// trips are each consumed completely before the routes table is
// translated, since shape selection needs the full per-route
// reference counts.
func (c *Converter) Routes(routes, trips, stopTimes, shapes *gtfscsv.Table) (*FeatureCollection, error) {
	times, err := c.ReadTripTimes(stopTimes)
	if err != nil {
		return nil, err
	}

	shapeSet, err := c.ReadShapes(shapes)
	if err != nil {
		return nil, err
	}

	usage, err := c.ReadRouteShapes(trips, times)
	if err != nil {
		return nil, err
	}

	feats, err := c.RouteFeatures(routes, shapeSet, usage)
	if err != nil {
		return nil, err
	}

	return NewFeatureCollection(c.filter(feats)), nil
}

// Stops runs the stop conversion, independent of all route tables.
func (c *Converter) Stops(stops *gtfscsv.Table) (*FeatureCollection, error) {
	feats, err := c.StopFeatures(stops)
	if err != nil {
		return nil, err
	}

	return NewFeatureCollection(c.filter(feats)), nil
}

func (c *Converter) warn(format string, args ...interface{}) {
	if c.opts.ShowWarnings {
		fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
	}
}

func (c *Converter) filter(feats []*Feature) []*Feature {
	if len(c.opts.PolygonFilter) == 0 {
		return feats
	}

	kept := make([]*Feature, 0, len(feats))
	for _, f := range feats {
		if c.inFilter(f) {
			kept = append(kept, f)
		} else {
			c.warn("feature '%s' is outside the filter area, skipping", f.ID)
		}
	}
	return kept
}

// inFilter keeps point features inside any filter polygon and line
// features with at least one vertex inside.
func (c *Converter) inFilter(f *Feature) bool {
	switch coords := f.Geometry.Coordinates.(type) {
	case Coordinate:
		return c.insideAny(coords)
	case []Coordinate:
		for _, p := range coords {
			if c.insideAny(p) {
				return true
			}
		}
		return false
	}
	return true
}

func (c *Converter) insideAny(p Coordinate) bool {
	x, errX := p[0].Float64()
	y, errY := p[1].Float64()
	if errX != nil || errY != nil {
		return false
	}

	for _, poly := range c.opts.PolygonFilter {
		if poly.Contains(x, y) {
			return true
		}
	}
	return false
}

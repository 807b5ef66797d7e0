// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"encoding/json"
)

// WGS84CRS is the named coordinate reference system tagged onto every
// feature collection.
const WGS84CRS = "urn:ogc:def:crs:OGC:1.3:CRS84"

// Coordinate is a (longitude, latitude) pair. Both values keep the
// exact decimal text of the source feed; json.Number serializes as a
// plain numeric literal, so no precision is lost on output.
type Coordinate [2]json.Number

// Geometry is a GeoJSON geometry. Coordinates is a Coordinate for
// points and a []Coordinate for line strings.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func NewPoint(c Coordinate) *Geometry {
	return &Geometry{Type: "Point", Coordinates: c}
}

func NewLineString(line []Coordinate) *Geometry {
	return &Geometry{Type: "LineString", Coordinates: line}
}

type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

func NewFeature(id string, geom *Geometry, props map[string]interface{}) *Feature {
	return &Feature{Type: "Feature", ID: id, Geometry: geom, Properties: props}
}

type CRS struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

type FeatureCollection struct {
	Type     string     `json:"type"`
	CRS      *CRS       `json:"crs,omitempty"`
	Features []*Feature `json:"features"`
}

// NewFeatureCollection wraps features, in the given order, into a
// collection tagged with the WGS84 CRS. Geometries and properties are
// passed through untouched.
func NewFeatureCollection(features []*Feature) *FeatureCollection {
	if features == nil {
		features = make([]*Feature, 0)
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		CRS:      &CRS{Type: "name", Properties: map[string]string{"name": WGS84CRS}},
		Features: features,
	}
}

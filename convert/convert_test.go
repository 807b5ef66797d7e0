// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"strings"
	"testing"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
)

func testTable(t *testing.T, name string, content string) *gtfscsv.Table {
	tbl, err := gtfscsv.NewTable(name, strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestRoutesPipeline(t *testing.T) {
	conv := NewConverter(Options{})

	fc, err := conv.Routes(
		testTable(t, "routes.txt", "route_id,route_short_name,route_color\nR1,10,\n"),
		testTable(t, "trips.txt", "route_id,service_id,trip_id,shape_id\nR1,WK,T1,A\nR1,WK,T2,A\nR1,WK,T3,A\nR1,WK,T4,B\n"),
		testTable(t, "stop_times.txt", "trip_id,arrival_time,departure_time,stop_id,stop_sequence\nT1,08:20:00,08:21:00,S2,2\nT1,08:00:00,08:05:00,S1,1\nT1,09:10:00,09:10:00,S3,3\n"),
		testTable(t, "shapes.txt", "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\nA,0.0,0.0,1\nA,1.0,1.0,2\nB,5.0,5.0,1\nB,6.0,6.0,2\n"),
	)

	if err != nil {
		t.Fatal(err)
	}

	if len(fc.Features) != 1 {
		t.Fatal(fc.Features)
	}

	f := fc.Features[0]

	if f.ID != "R1" {
		t.Error(f.ID)
	}
	if f.Geometry.Type != "LineString" {
		t.Error(f.Geometry.Type)
	}
	if f.Properties["shape_id"] != "A" {
		t.Error(f.Properties["shape_id"])
	}
	if f.Properties["shape_refs"] != 3 {
		t.Error(f.Properties["shape_refs"])
	}
	if f.Properties["duration_sec"] != 65*60 {
		t.Error(f.Properties["duration_sec"])
	}
	if _, ok := f.Properties["shape_length"]; ok {
		t.Error("no shape_dist_traveled column, shape_length must be absent")
	}
	if f.Properties["route_short_name"] != "10" {
		t.Error(f.Properties["route_short_name"])
	}
	if _, ok := f.Properties["route_color"]; ok {
		t.Error("empty cells must not become properties")
	}
}

func TestStopsPipeline(t *testing.T) {
	conv := NewConverter(Options{})

	fc, err := conv.Stops(testTable(t, "stops.txt", "stop_id,stop_name,stop_lat,stop_lon,stop_desc\nS1,Alpha,10.0,20.0,\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(fc.Features) != 1 {
		t.Fatal(fc.Features)
	}

	f := fc.Features[0]

	if f.ID != "S1" {
		t.Error(f.ID)
	}

	coord, ok := f.Geometry.Coordinates.(Coordinate)
	if !ok {
		t.Fatal(f.Geometry.Coordinates)
	}
	if coord[0] != "20.0" || coord[1] != "10.0" {
		t.Error(coord)
	}

	if f.Properties["stop_name"] != "Alpha" {
		t.Error(f.Properties)
	}
	if _, ok := f.Properties["stop_lat"]; ok {
		t.Error("stop_lat must not be a property")
	}
	if _, ok := f.Properties["stop_lon"]; ok {
		t.Error("stop_lon must not be a property")
	}
	if _, ok := f.Properties["stop_desc"]; ok {
		t.Error("empty cells must not become properties")
	}
}

func TestPolygonFilterStops(t *testing.T) {
	// unit square around the origin
	ring := [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

	conv := NewConverter(Options{PolygonFilter: []Polygon{NewPolygon(ring, nil)}})

	fc, err := conv.Stops(testTable(t, "stops.txt", "stop_id,stop_lat,stop_lon\nIN,0.5,0.5\nOUT,10.0,10.0\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(fc.Features) != 1 {
		t.Fatal(fc.Features)
	}
	if fc.Features[0].ID != "IN" {
		t.Error(fc.Features[0].ID)
	}
}

func TestPolygonFilterRoutes(t *testing.T) {
	ring := [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

	conv := NewConverter(Options{PolygonFilter: []Polygon{NewPolygon(ring, nil)}})

	// shape A has one vertex inside the filter area, shape B none
	fc, err := conv.Routes(
		testTable(t, "routes.txt", "route_id\nR1\nR2\n"),
		testTable(t, "trips.txt", "route_id,trip_id,shape_id\nR1,T1,A\nR2,T2,B\n"),
		testTable(t, "stop_times.txt", "trip_id,arrival_time,departure_time,stop_sequence\nT1,08:00:00,08:00:00,1\nT2,09:00:00,09:00:00,1\n"),
		testTable(t, "shapes.txt", "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\nA,0.5,0.5,1\nA,7.0,7.0,2\nB,5.0,5.0,1\nB,6.0,6.0,2\n"),
	)

	if err != nil {
		t.Fatal(err)
	}

	if len(fc.Features) != 1 {
		t.Fatal(fc.Features)
	}
	if fc.Features[0].ID != "R1" {
		t.Error(fc.Features[0].ID)
	}
}

// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"io"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
)

// RouteShapes records, per route, how many trips reference each
// candidate shape, plus the time window of the first trip seen for the
// route.
type RouteShapes struct {
	usage map[string]*routeUsage
}

type routeUsage struct {
	counts map[string]int

	// shapes in first-encountered order, so tie-breaks on equal
	// counts are reproducible
	order []string

	firstTrip string
	window    TripWindow
	hasWindow bool
}

// Resolve selects the route's representative shape: the one referenced
// by the most trips. On equal counts the shape first encountered in
// trips.txt row order wins.
func (r *RouteShapes) Resolve(routeID string) (string, int, bool) {
	u, ok := r.usage[routeID]
	if !ok || len(u.order) == 0 {
		return "", 0, false
	}

	best := ""
	bestRefs := 0
	for _, shapeID := range u.order {
		if u.counts[shapeID] > bestRefs {
			best = shapeID
			bestRefs = u.counts[shapeID]
		}
	}

	return best, bestRefs, true
}

// Window returns the representative time window of the route, fixed to
// its first trip during aggregation. It is absent if the route was
// never seen or its first trip had no usable stop times.
func (r *RouteShapes) Window(routeID string) (TripWindow, bool) {
	u, ok := r.usage[routeID]
	if !ok || !u.hasWindow {
		return TripWindow{}, false
	}
	return u.window, true
}

// FirstTrip returns the trip the route's time window was taken from.
func (r *RouteShapes) FirstTrip(routeID string) string {
	u, ok := r.usage[routeID]
	if !ok {
		return ""
	}
	return u.firstTrip
}

// ReadRouteShapes consumes the trips table, counting one reference per
// trip row keyed by (route, shape). The first trip row of a route also
// fixes the route's representative time window; later trips never
// change it.
func (c *Converter) ReadRouteShapes(tbl *gtfscsv.Table, times map[string]TripWindow) (*RouteShapes, error) {
	routeCol, err := tbl.Index("route_id")
	if err != nil {
		return nil, err
	}
	shapeCol, err := tbl.Index("shape_id")
	if err != nil {
		return nil, err
	}
	tripCol, err := tbl.Index("trip_id")
	if err != nil {
		return nil, err
	}

	res := &RouteShapes{usage: make(map[string]*routeUsage)}

	for {
		row, err := tbl.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		routeID := gtfscsv.Get(row, routeCol)
		shapeID := gtfscsv.Get(row, shapeCol)
		tripID := gtfscsv.Get(row, tripCol)

		u, ok := res.usage[routeID]
		if !ok {
			u = &routeUsage{counts: make(map[string]int), firstTrip: tripID}
			if w, wOk := times[tripID]; wOk {
				u.window = w
				u.hasWindow = true
			}
			res.usage[routeID] = u
		}

		if _, ok := u.counts[shapeID]; !ok {
			u.order = append(u.order, shapeID)
		}
		u.counts[shapeID]++
	}

	return res, nil
}

// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

// Polygon is a closed outer ring with optional holes, vertices in
// (longitude, latitude) order.
type Polygon struct {
	outer  [][2]float64
	inners [][][2]float64
}

func NewPolygon(outer [][2]float64, inners [][][2]float64) Polygon {
	return Polygon{outer: outer, inners: inners}
}

// Contains reports whether the point lies inside the outer ring and
// outside every hole.
func (p Polygon) Contains(x float64, y float64) bool {
	if !ringContains(p.outer, x, y) {
		return false
	}

	for _, inner := range p.inners {
		if ringContains(inner, x, y) {
			return false
		}
	}

	return true
}

// ringContains uses ray casting towards negative x.
func ringContains(ring [][2]float64, x float64, y float64) bool {
	in := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		if (ring[i][1] > y) != (ring[j][1] > y) &&
			x < (ring[j][0]-ring[i][0])*(y-ring[i][1])/(ring[j][1]-ring[i][1])+ring[i][0] {
			in = !in
		}
		j = i
	}

	return in
}

// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDecimal validates s as a decimal value and returns it with its
// original text preserved. Values that parse as floats but are not
// legal JSON number literals (like '.5' or '+1') are reformatted, all
// others keep their full source precision.
func ParseDecimal(s string) (json.Number, error) {
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("'%s' is not a decimal value", s)
	}

	if !json.Valid([]byte(s)) {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}

	return json.Number(s), nil
}

// ParseCoordinate builds a (longitude, latitude) coordinate from the
// two cell texts.
func ParseCoordinate(lon string, lat string) (Coordinate, error) {
	x, err := ParseDecimal(lon)
	if err != nil {
		return Coordinate{}, err
	}

	y, err := ParseDecimal(lat)
	if err != nil {
		return Coordinate{}, err
	}

	return Coordinate{x, y}, nil
}

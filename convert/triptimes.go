// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package convert

import (
	"io"
	"strconv"
	"strings"

	"github.com/patrickbr/gtfs2geojson/gtfscsv"
)

// TripWindow tracks the outermost stops of a single trip: the lowest
// and highest stop_sequence seen and the departure resp. arrival time
// there.
type TripWindow struct {
	EarliestSeq int
	LatestSeq   int
	Departure   int // seconds since midnight at EarliestSeq
	Arrival     int // seconds since midnight at LatestSeq
}

// DurationSec is the arrival at the latest stop minus the departure at
// the earliest one. Reversed source times yield a negative value, the
// sign is not corrected.
func (w TripWindow) DurationSec() int {
	return w.Arrival - w.Departure
}

// parseTime parses a GTFS h:mm:ss time into seconds. Hours beyond 23
// are valid and mean "after midnight".
func parseTime(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, false
		}
		vals[i] = v
	}

	return vals[0]*3600 + vals[1]*60 + vals[2], true
}

// ReadTripTimes consumes the stop_times table and aggregates one
// TripWindow per trip. Rows with a malformed time or sequence number
// are skipped and leave the trip's window untouched; a trip whose rows
// were all skipped has no entry in the result.
func (c *Converter) ReadTripTimes(tbl *gtfscsv.Table) (map[string]TripWindow, error) {
	tripID, err := tbl.Index("trip_id")
	if err != nil {
		return nil, err
	}
	arrTime, err := tbl.Index("arrival_time")
	if err != nil {
		return nil, err
	}
	depTime, err := tbl.Index("departure_time")
	if err != nil {
		return nil, err
	}
	stopSeq, err := tbl.Index("stop_sequence")
	if err != nil {
		return nil, err
	}

	windows := make(map[string]TripWindow)

	for {
		row, err := tbl.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := gtfscsv.Get(row, tripID)

		arr, arrOk := parseTime(gtfscsv.Get(row, arrTime))
		dep, depOk := parseTime(gtfscsv.Get(row, depTime))
		if !arrOk || !depOk {
			c.warn("stop time for trip '%s' has a malformed time, skipping row", id)
			continue
		}

		seqCell := strings.TrimSpace(gtfscsv.Get(row, stopSeq))
		seq, err := strconv.Atoi(seqCell)
		if err != nil {
			c.warn("stop time for trip '%s' has a malformed stop_sequence '%s', skipping row", id, seqCell)
			continue
		}

		w, ok := windows[id]
		if !ok {
			windows[id] = TripWindow{EarliestSeq: seq, LatestSeq: seq, Departure: dep, Arrival: arr}
			continue
		}

		if seq < w.EarliestSeq {
			w.EarliestSeq = seq
			w.Departure = dep
		}
		if seq > w.LatestSeq {
			w.LatestSeq = seq
			w.Arrival = arr
		}
		windows[id] = w
	}

	return windows, nil
}

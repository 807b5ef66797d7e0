// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/patrickbr/gtfs2geojson/convert"
	"github.com/patrickbr/gtfs2geojson/gtfscsv"
	"github.com/paulmach/go.geojson"
	flag "github.com/spf13/pflag"
)

func getPoly(poly [][][]float64) convert.Polygon {
	outer := make([][2]float64, len(poly[0]))
	inners := make([][][2]float64, 0)
	for i, c := range poly[0] {
		outer[i] = [2]float64{c[0], c[1]}
	}
	for i := 1; i < len(poly); i++ {
		inners = append(inners, make([][2]float64, len(poly[i])))
		for j, c := range poly[i] {
			inners[i-1][j] = [2]float64{c[0], c[1]}
		}
	}

	return convert.NewPolygon(outer, inners)
}

func parseCoords(s string) ([][2]float64, error) {
	coords := strings.Split(s, ",")

	if len(coords)%2 != 0 {
		return nil, errors.New("Uneven number of coordinates")
	}

	ret := make([][2]float64, 0)
	for i := 0; i < len(coords)/2; i++ {
		var x, y float64
		var err error
		y, err = strconv.ParseFloat(strings.Trim(coords[i*2], "\n "), 64)
		if err == nil {
			x, err = strconv.ParseFloat(strings.Trim(coords[i*2+1], "\n "), 64)
		}

		if err != nil {
			return nil, err
		}

		coord := [2]float64{x, y}
		ret = append(ret, coord)
	}
	return ret, nil
}

func openTable(src gtfscsv.Source, name string) (*gtfscsv.Table, io.Closer, error) {
	rc, err := src.Open(name)
	if err != nil {
		return nil, nil, err
	}

	tbl, err := gtfscsv.NewTable(name, rc)
	if err != nil {
		rc.Close()
		return nil, nil, err
	}

	return tbl, rc, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gtfs2geojson - (C) 2016-2023 by Patrick Brosi <info@patrickbrosi.de>\n\nUsage:\n\n  %s [<options>] -o <outputfile> (-r | -p) <input GTFS>\n\nAllowed options:\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	polys := make([]convert.Polygon, 0)

	var bboxStrings []string
	var polygonFiles []string

	outputPath := flag.StringP("output", "o", "", "GeoJSON output file")

	routesMode := flag.BoolP("routes", "r", false, "convert routes into LineString features, using the shape most of their trips use")
	stopsMode := flag.BoolP("stops", "p", false, "convert stops into Point features")

	dropMissingShapes := flag.BoolP("drop-missing-shapes", "D", false, "skip routes without a resolvable shape instead of failing")
	showWarnings := flag.BoolP("show-warnings", "W", false, "show warnings")
	pretty := flag.BoolP("pretty", "", false, "indent the GeoJSON output")

	flag.StringArrayVar(&bboxStrings, "bounding-box", []string{}, "bounding box filter, as comma separated latitude,longitude pairs (multiple boxes allowed by defining --bounding-box multiple times)")
	flag.StringArrayVar(&polygonFiles, "polygon-file", []string{}, "polygon filter, as a GeoJSON file containing Polygon or MultiPolygon features (multiple files allowed by defining --polygon-file multiple times)")

	help := flag.BoolP("help", "?", false, "this message")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	gtfsPaths := flag.Args()

	if len(gtfsPaths) == 0 {
		fmt.Fprintln(os.Stderr, "No GTFS location specified, see --help")
		os.Exit(1)
	}

	if len(gtfsPaths) > 1 {
		fmt.Fprintln(os.Stderr, "More than one GTFS location specified, see --help")
		os.Exit(1)
	}

	if *routesMode == *stopsMode {
		fmt.Fprintln(os.Stderr, "Exactly one of --routes / --stops must be specified, see --help")
		os.Exit(1)
	}

	if len(*outputPath) == 0 {
		fmt.Fprintln(os.Stderr, "No output file specified, see --help")
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "Error:", r)
			os.Exit(1)
		}
	}()

	for _, polyFile := range polygonFiles {
		bytes, err := ioutil.ReadFile(polyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter file: ")
			fmt.Fprintf(os.Stderr, err.Error()+".\n")
			os.Exit(1)
		}

		fc, err := geojson.UnmarshalFeatureCollection(bytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter file: ")
			fmt.Fprintf(os.Stderr, err.Error()+".\n")
			os.Exit(1)
		}

		for _, feature := range fc.Features {
			if feature.Geometry.IsMultiPolygon() {
				for _, poly := range feature.Geometry.MultiPolygon {
					polys = append(polys, getPoly(poly))
				}
			}
			if feature.Geometry.IsPolygon() {
				polys = append(polys, getPoly(feature.Geometry.Polygon))
			}
		}
	}

	for _, bboxString := range bboxStrings {
		bbox := make([][2]float64, 0)
		bboxString = strings.Trim(bboxString, " ")

		if len(bboxString) > 0 {
			var err error
			bbox, err = parseCoords(bboxString)

			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse bounding box filter: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}
		}

		if len(bbox) == 2 {
			poly := make([][2]float64, 0, 5)

			poly = append(poly, [2]float64{bbox[0][0], bbox[0][1]})
			poly = append(poly, [2]float64{bbox[0][0], bbox[1][1]})
			poly = append(poly, [2]float64{bbox[1][0], bbox[1][1]})
			poly = append(poly, [2]float64{bbox[1][0], bbox[0][1]})
			poly = append(poly, [2]float64{bbox[0][0], bbox[0][1]})

			polys = append(polys, convert.NewPolygon(poly, make([][][2]float64, 0)))
		}
	}

	src, e := gtfscsv.NewSource(gtfsPaths[0])
	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while opening GTFS feed in '%s':\n", gtfsPaths[0])
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}
	defer src.Close()

	conv := convert.NewConverter(convert.Options{
		DropMissingShapes: *dropMissingShapes,
		ShowWarnings:      *showWarnings,
		PolygonFilter:     polys,
	})

	var fc *convert.FeatureCollection

	fmt.Fprintf(os.Stdout, "Converting GTFS feed in '%s' ...", gtfsPaths[0])
	if *showWarnings {
		fmt.Fprintf(os.Stdout, "\n")
	}

	if *routesMode {
		tables := [4]*gtfscsv.Table{}
		for i, name := range []string{"routes.txt", "trips.txt", "stop_times.txt", "shapes.txt"} {
			tbl, rc, err := openTable(src, name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nError while reading GTFS feed in '%s':\n", gtfsPaths[0])
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
			defer rc.Close()
			tables[i] = tbl
		}

		fc, e = conv.Routes(tables[0], tables[1], tables[2], tables[3])
	} else {
		tbl, rc, err := openTable(src, "stops.txt")
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError while reading GTFS feed in '%s':\n", gtfsPaths[0])
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer rc.Close()

		fc, e = conv.Stops(tbl)
	}

	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while converting GTFS feed in '%s':\n", gtfsPaths[0])
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}

	if *showWarnings {
		fmt.Fprintf(os.Stdout, "... done.\n")
	} else {
		fmt.Fprintf(os.Stdout, " done.\n")
	}

	fmt.Fprintf(os.Stdout, "Outputting GeoJSON to '%s'...", *outputPath)

	f, e := os.Create(*outputPath)
	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while writing GeoJSON to '%s':\n ", *outputPath)
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}

	enc := json.NewEncoder(f)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	e = enc.Encode(fc)
	if e == nil {
		e = f.Close()
	}

	if e != nil {
		fmt.Fprintf(os.Stderr, "\nError while writing GeoJSON to '%s':\n ", *outputPath)
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, " done.\n")
}

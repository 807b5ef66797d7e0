// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package gtfscsv

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, "stops.txt"), []byte("stop_id,stop_lat,stop_lon\nS1,1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	rc, err := src.Open("stops.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	b, err := ioutil.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Error("empty table")
	}

	if _, err := src.Open("shapes.txt"); err == nil {
		t.Error("expected error for missing table")
	}
}

func TestZipSource(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "feed.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}

	w := zip.NewWriter(f)

	// member nested in a directory, must still be found by base name
	m, err := w.Create("feed/stops.txt")
	if err != nil {
		t.Fatal(err)
	}
	m.Write([]byte("stop_id,stop_lat,stop_lon\nS1,1,2\n"))

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	rc, err := src.Open("stops.txt")
	if err != nil {
		t.Fatal(err)
	}

	tbl, err := NewTable("stops.txt", rc)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tbl.Index("stop_lat"); err != nil {
		t.Error(err)
	}

	rc.Close()

	if _, err := src.Open("trips.txt"); err == nil {
		t.Error("expected error for missing archive member")
	}
}

func TestSourceMissing(t *testing.T) {
	if _, err := NewSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing feed")
	}
}

// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package gtfscsv

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// Source resolves GTFS tables by file name from a feed location,
// either a plain directory or a ZIP archive.
type Source interface {
	Open(name string) (io.ReadCloser, error)
	Close() error
}

// NewSource opens the feed at p. A directory resolves tables as
// <dir>/<name>, anything else is treated as a ZIP archive whose
// members are matched by base name, regardless of directory nesting
// inside the archive.
func NewSource(p string) (Source, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("could not open GTFS feed in '%s': %s", p, err.Error())
	}

	if fi.IsDir() {
		return &dirSource{dir: p}, nil
	}

	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("could not open GTFS feed in '%s': %s", p, err.Error())
	}

	return &zipSource{r: r}, nil
}

type dirSource struct {
	dir string
}

func (s *dirSource) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("could not open table '%s': %s", name, err.Error())
	}
	return f, nil
}

func (s *dirSource) Close() error {
	return nil
}

type zipSource struct {
	r *zip.ReadCloser
}

func (s *zipSource) Open(name string) (io.ReadCloser, error) {
	for _, f := range s.r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if path.Base(f.Name) == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("could not open table '%s': %s", name, err.Error())
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("could not open table '%s': no such archive member", name)
}

func (s *zipSource) Close() error {
	return s.r.Close()
}

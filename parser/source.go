/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package parser

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/launix-de/natcore/rb"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ReadSource reads a source file; .xz, .lz4 and .gz files are decompressed
// on the fly.
func ReadSource(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var stream io.Reader = f
	switch filepath.Ext(filename) {
	case ".xz":
		r, err := xz.NewReader(f)
		if err != nil {
			return "", err
		}
		stream = r
	case ".lz4":
		stream = lz4.NewReader(f)
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer r.Close()
		stream = r
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseFile reads and parses a source file. The line breaks that end the
// file are not part of the program.
func ParseFile(env *rb.Env, filename string) (rb.Value, error) {
	source, err := ReadSource(filename)
	if err != nil {
		return rb.Value{}, err
	}
	if env.Trace != nil {
		env.Trace.Event(filename, "parser", "i")
	}
	return Parse(env, strings.TrimRight(source, "\r\n"))
}

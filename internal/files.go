// ribotricer: a tool for detecting actively translating open reading
// frames from ribosome profiling data.
// Copyright (c) 2025, 2026 zcoder-bio.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program. If not, see
// <https://github.com/zcoder-bio/ribotricer/blob/master/LICENSE.txt>.

package internal

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// FileOpen is os.Open with panics in place of errors
func FileOpen(filename string) *os.File {
	file, err := os.Open(filename)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// FileCreate is os.Create with panics in place of errors
func FileCreate(filename string) *os.File {
	file, err := os.Create(filename)
	if err != nil {
		log.Panic(err)
	}
	return file
}

// Close closes the given Closer, with panics in place of errors
func Close(f io.Closer) {
	if err := f.Close(); err != nil {
		log.Panic(err)
	}
}

// MkdirAll is os.MkdirAll with panics in place of errors
func MkdirAll(path string, perm os.FileMode) {
	if err := os.MkdirAll(path, perm); err != nil {
		log.Panic(err)
	}
}

// Write is w.Write with panics in place of errors
func Write(w io.Writer, b []byte) int {
	n, err := w.Write(b)
	if err != nil {
		log.Panic(err)
	}
	return n
}

// WriteString is io.WriteString with panics in place of errors
func WriteString(w io.Writer, s string) int {
	n, err := io.WriteString(w, s)
	if err != nil {
		log.Panic(err)
	}
	return n
}

// NewTempPath returns a sibling path for the given filename with a
// unique suffix. Output files are written to such a path first and
// renamed into place when complete, so that an interrupted run never
// leaves a truncated file behind under the final name.
func NewTempPath(filename string) string {
	return filename + "." + uuid.New().String() + ".partial"
}

// fileReader is a file with an optional decompressor on top of it.
type fileReader struct {
	io.Reader
	gz   *gzip.Reader
	file *os.File
}

func (r *fileReader) Close() (err error) {
	if r.gz != nil {
		err = r.gz.Close()
	}
	if nerr := r.file.Close(); err == nil {
		err = nerr
	}
	return err
}

// OpenMaybeGzip opens the given file for reading, checking the initial
// bytes for the gzip magic. If it is present, reads are routed through
// a decompressor, otherwise the file contents are returned unchanged.
// Panics in place of errors.
func OpenMaybeGzip(filename string) io.ReadCloser {
	f := FileOpen(filename)
	buf := bufio.NewReader(f)
	magic, err := buf.Peek(2)
	if err != nil && err != io.EOF {
		log.Panic(err)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buf)
		if err != nil {
			log.Panic(err)
		}
		return &fileReader{Reader: gz, gz: gz, file: f}
	}
	return &fileReader{Reader: buf, file: f}
}

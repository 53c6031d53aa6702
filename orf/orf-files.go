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

package orf

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/zcoder-bio/ribotricer/internal"
	"github.com/zcoder-bio/ribotricer/utils"
)

// AnnotationHeader is the header line of the candidate ORF annotation
// format. The coordinate column holds comma-separated start-end pairs
// of 0-based inclusive genomic positions, ascending.
const AnnotationHeader = "ORF_ID\tORF_type\ttranscript_id\tgene_id\tchrom\tstrand\tcoordinate"

// AppendCoordinates appends the interval list in the annotation file
// notation to buf.
func AppendCoordinates(buf []byte, intervals []Interval) []byte {
	for i, interval := range intervals {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(interval.Start), 10)
		buf = append(buf, '-')
		buf = strconv.AppendInt(buf, int64(interval.End), 10)
	}
	return buf
}

// ParseCoordinates parses the coordinate column of an annotation row.
// Out-of-order pairs are tolerated and sorted. Returns false if the
// column is not well formed.
func ParseCoordinates(s string) ([]Interval, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	intervals := make([]Interval, 0, len(parts))
	for _, part := range parts {
		dash := strings.IndexByte(part, '-')
		if dash <= 0 {
			return nil, false
		}
		start, err := strconv.ParseInt(part[:dash], 10, 32)
		if err != nil || start < 0 {
			return nil, false
		}
		end, err := strconv.ParseInt(part[dash+1:], 10, 32)
		if err != nil || end < start {
			return nil, false
		}
		intervals = append(intervals, Interval{Start: int32(start), End: int32(end)})
	}
	SortByStart(intervals)
	return intervals, true
}

func parseAnnotationRow(line string) (*ORF, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 7 {
		return nil, false
	}
	strand := fields[5]
	if strand != "+" && strand != "-" {
		return nil, false
	}
	intervals, ok := ParseCoordinates(fields[6])
	if !ok {
		return nil, false
	}
	return &ORF{
		ID:         fields[0],
		Category:   Category(fields[1]),
		Transcript: fields[2],
		Gene:       fields[3],
		Chrom:      utils.Intern(fields[4]),
		Strand:     Strand(strand[0]),
		Intervals:  intervals,
	}, true
}

// ReadAnnotation reads candidate ORFs from an annotation file, in file
// order. Rows that cannot be parsed are skipped and counted, never
// fatal. The file may be gzip compressed.
func ReadAnnotation(filename string) (orfs []*ORF, skipped int) {
	file := internal.OpenMaybeGzip(filename)
	defer internal.Close(file)
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "ORF_ID") {
				continue
			}
		}
		if line == "" {
			continue
		}
		o, ok := parseAnnotationRow(line)
		if !ok {
			skipped++
			continue
		}
		orfs = append(orfs, o)
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	return orfs, skipped
}

// WriteAnnotation writes candidate ORFs to filename in the annotation
// format. The file is first written to a temporary sibling path and
// renamed into place when complete.
func WriteAnnotation(filename string, orfs []*ORF) {
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	internal.WriteString(out, AnnotationHeader)
	internal.WriteString(out, "\n")
	buf := internal.ReserveByteBuffer()
	for _, o := range orfs {
		buf = buf[:0]
		buf = append(buf, o.ID...)
		buf = append(buf, '\t')
		buf = append(buf, o.Category...)
		buf = append(buf, '\t')
		buf = append(buf, o.Transcript...)
		buf = append(buf, '\t')
		buf = append(buf, o.Gene...)
		buf = append(buf, '\t')
		buf = append(buf, *o.Chrom...)
		buf = append(buf, '\t', byte(o.Strand), '\t')
		buf = AppendCoordinates(buf, o.Intervals)
		buf = append(buf, '\n')
		internal.Write(out, buf)
	}
	internal.ReleaseByteBuffer(buf)
	if err := out.Flush(); err != nil {
		log.Panic(err)
	}
	internal.Close(file)
	if err := os.Rename(temp, filename); err != nil {
		log.Panic(err)
	}
}

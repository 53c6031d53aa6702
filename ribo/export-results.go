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

package ribo

import (
	"bufio"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/zcoder-bio/ribotricer/internal"
)

// ResultsHeader is the header line of the translating ORFs table.
const ResultsHeader = "ORF_ID\tcoverage\tcount\tlength\tnonzero\tperiodicity\tpval"

// WriteResults writes the translating ORFs table. Unless reportAll is
// set, only valid results at or above the coherence cutoff are
// written. The count and length columns describe the flank-inclusive
// coverage vector; the nonzero column describes the tested in-ORF
// region.
func WriteResults(filename string, results []Result, cutoff float64, reportAll bool) {
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	internal.WriteString(out, ResultsHeader)
	internal.WriteString(out, "\n")
	buf := internal.ReserveByteBuffer()
	for i := range results {
		result := &results[i]
		if !reportAll && !result.Translating(cutoff) {
			continue
		}
		buf = buf[:0]
		buf = append(buf, result.ORF.ID...)
		buf = append(buf, '\t')
		buf = appendCounts(buf, result.Coverage.Counts)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(result.Coverage.Total()), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(len(result.Coverage.Counts)), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(result.Score.Nonzero), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, result.Score.Coherence, 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, result.Score.PValue, 'g', -1, 64)
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

// appendCounts serializes a coverage vector as a bracketed list, for
// example [1, 0, 2].
func appendCounts(buf []byte, counts []int) []byte {
	buf = append(buf, '[')
	for i, count := range counts {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		buf = strconv.AppendInt(buf, int64(count), 10)
	}
	return append(buf, ']')
}

// WriteReadLengths writes the read length distribution of the kept
// reads, lengths ascending.
func WriteReadLengths(filename string, lengths map[int]int) {
	sorted := make([]int, 0, len(lengths))
	for length := range lengths {
		sorted = append(sorted, length)
	}
	sort.Ints(sorted)
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	internal.WriteString(out, "read_length\tcount\n")
	buf := internal.ReserveByteBuffer()
	for _, length := range sorted {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(length), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(lengths[length]), 10)
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

// WriteMetagenes writes the per-length metagene profiles in long
// form, one row per read length and position relative to the start
// codon.
func WriteMetagenes(filename string, profiles map[int]*Metagene) {
	sorted := make([]int, 0, len(profiles))
	for length := range profiles {
		sorted = append(sorted, length)
	}
	sort.Ints(sorted)
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	internal.WriteString(out, "read_length\tposition\tcount\n")
	buf := internal.ReserveByteBuffer()
	for _, length := range sorted {
		profile := profiles[length]
		for i, count := range profile.Counts {
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(length), 10)
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(i-profile.Upstream), 10)
			buf = append(buf, '\t')
			buf = strconv.AppendFloat(buf, count, 'g', -1, 64)
			buf = append(buf, '\n')
			internal.Write(out, buf)
		}
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

// WriteOffsets writes the P-site offset table, lengths ascending.
func WriteOffsets(filename string, offsets OffsetTable) {
	sorted := make([]int, 0, len(offsets))
	for length := range offsets {
		sorted = append(sorted, length)
	}
	sort.Ints(sorted)
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	internal.WriteString(out, "read_length\toffset\n")
	buf := internal.ReserveByteBuffer()
	for _, length := range sorted {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(length), 10)
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(offsets[length]), 10)
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

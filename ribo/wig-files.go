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

	psort "github.com/exascience/pargo/sort"

	"github.com/zcoder-bio/ribotricer/internal"
)

// A trackPoint is one covered genomic position of a wiggle track.
type trackPoint struct {
	pos   int32
	count uint32
}

type stableTrackSorter []trackPoint

func (s stableTrackSorter) SequentialSort(i, j int) {
	points := s[i:j]
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].pos < points[j].pos
	})
}

func (s stableTrackSorter) NewTemp() psort.StableSorter {
	return stableTrackSorter(make([]trackPoint, len(s)))
}

func (s stableTrackSorter) Len() int {
	return len(s)
}

func (s stableTrackSorter) Less(i, j int) bool {
	return s[i].pos < s[j].pos
}

func (s stableTrackSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableTrackSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// WriteWig writes one strand of a merged density as a wiggle track,
// one variableStep section per chromosome. Chromosomes are ordered
// lexicographically and positions ascending, in the 0-based
// coordinates the tallies use. Positions shifted below zero by the
// P-site correction are written as-is.
func WriteWig(filename string, tally Tally) {
	byChrom := make(map[string][]trackPoint)
	for pos, count := range tally {
		byChrom[*pos.Chrom] = append(byChrom[*pos.Chrom], trackPoint{pos: pos.Pos, count: count})
	}
	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	buf := internal.ReserveByteBuffer()
	for _, chrom := range chroms {
		points := byChrom[chrom]
		psort.StableSort(stableTrackSorter(points))
		internal.WriteString(out, "variableStep chrom=")
		internal.WriteString(out, chrom)
		internal.WriteString(out, "\n")
		for _, point := range points {
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(point.pos), 10)
			buf = append(buf, '\t')
			buf = strconv.AppendUint(buf, uint64(point.count), 10)
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

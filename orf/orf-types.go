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

// Package orf implements the candidate ORF model shared by the
// preparation and detection stages, and the annotation file format
// that connects them.
package orf

import (
	"sort"
	"strconv"

	"github.com/zcoder-bio/ribotricer/utils"
)

// Strand is the genomic strand a read or ORF is associated with.
type Strand byte

const (
	// Forward is the plus strand.
	Forward Strand = '+'
	// Reverse is the minus strand.
	Reverse Strand = '-'
)

// A Category labels a candidate ORF by its position relative to the
// annotated coding region of its transcript.
type Category string

const (
	// CDS is the annotated coding region itself.
	CDS Category = "CDS"
	// UORF lies entirely within the 5' UTR.
	UORF Category = "uORF"
	// OverlapUORF starts in the 5' UTR and runs into the coding
	// region out of frame.
	OverlapUORF Category = "overlap_uORF"
	// DORF lies entirely within the 3' UTR.
	DORF Category = "dORF"
	// OverlapDORF starts inside the coding region out of frame and
	// runs into the 3' UTR.
	OverlapDORF Category = "overlap_dORF"
	// Novel is found on a transcript without an annotated coding
	// region.
	Novel Category = "novel"
)

// An Interval is a genomic span with a 0-based Start and an inclusive
// End. Immutable once constructed.
type Interval struct {
	Start, End int32
}

// Len returns the number of bases the interval spans.
func (i Interval) Len() int32 {
	return i.End - i.Start + 1
}

// SortByStart sorts a slice of Interval by Start position.
func SortByStart(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}

// Extend makes interval1 larger if interval2 overlaps it or directly
// follows it, by storing max(interval1.End, interval2.End) in
// interval1.End; otherwise, interval1 remains unchanged.
// Returns true if interval2 was absorbed, false otherwise.
// interval2.Start >= interval1.Start must be true before
// calling Extend.
func (interval1 *Interval) Extend(interval2 Interval) bool {
	if interval2.Start > interval1.End+1 {
		return false
	}
	if interval2.End > interval1.End {
		interval1.End = interval2.End
	}
	return true
}

// Flatten merges overlapping and directly adjacent intervals into
// larger intervals. intervals must be sorted by Start before calling
// Flatten. The resulting slice is sorted by Start, and no two
// intervals in the result overlap with each other.
// The result shares memory with the intervals argument.
func Flatten(intervals []Interval) []Interval {
	for i, n := 0, len(intervals)-1; i < n; i++ {
		if intervals[i].Extend(intervals[i+1]) {
			n++
			for j := i + 1; j < n; j++ {
				if !intervals[i].Extend(intervals[j]) {
					i++
					intervals[i] = intervals[j]
				}
			}
			return intervals[:i+1]
		}
	}
	return intervals
}

// An ORF is a candidate open reading frame with its exonic structure.
// Intervals are sorted by ascending genomic coordinate regardless of
// strand; for Reverse ORFs the biological 5'->3' traversal order is
// the reverse of the stored interval order.
type ORF struct {
	ID         string
	Category   Category
	Transcript string
	Gene       string
	Chrom      utils.Symbol
	Strand     Strand
	Intervals  []Interval
}

// Len returns the total exonic length of the ORF in nucleotides.
func (o *ORF) Len() int32 {
	var length int32
	for _, interval := range o.Intervals {
		length += interval.Len()
	}
	return length
}

// Start returns the leftmost genomic position of the ORF.
func (o *ORF) Start() int32 {
	return o.Intervals[0].Start
}

// End returns the rightmost genomic position of the ORF.
func (o *ORF) End() int32 {
	return o.Intervals[len(o.Intervals)-1].End
}

// NewID formats the canonical ORF identifier from a transcript name
// and the ORF's genomic extent and exonic length.
func NewID(transcript string, start, end, length int32) string {
	id := make([]byte, 0, len(transcript)+24)
	id = append(id, transcript...)
	id = append(id, '_')
	id = strconv.AppendInt(id, int64(start), 10)
	id = append(id, '_')
	id = strconv.AppendInt(id, int64(end), 10)
	id = append(id, '_')
	id = strconv.AppendInt(id, int64(length), 10)
	return string(id)
}

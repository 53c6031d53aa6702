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
	"github.com/zcoder-bio/ribotricer/orf"
)

// A Coverage is the per-nucleotide P-site density across a candidate
// ORF in biological orientation, with flanking context. Counts[i]
// holds the density at position i-Flank5 relative to the first base
// of the ORF, reading 5' to 3'.
type Coverage struct {
	Counts []int
	Flank5 int
	Flank3 int
}

// Total returns the summed counts of the vector, flanks included.
func (cov *Coverage) Total() int {
	total := 0
	for _, count := range cov.Counts {
		total += count
	}
	return total
}

// InORF returns the slice of the vector covering the ORF proper,
// flanks excluded.
func (cov *Coverage) InORF() []int {
	return cov.Counts[cov.Flank5 : len(cov.Counts)-cov.Flank3]
}

// ORFCoverage assembles the coverage vector of an ORF from a
// strand-keyed density. Exonic positions are visited in genomic
// order, introns are skipped, and flank positions extend beyond the
// ORF ends without regard to exon structure. The flanks are
// biological: on the minus strand the genomic-left flank is the
// 3' flank, and the assembled vector is reversed so that its index
// order runs 5' to 3'. Positions never tallied count zero.
func ORFCoverage(o *orf.ORF, profile StrandTallies, flank5, flank3 int) *Coverage {
	left, right := flank5, flank3
	if o.Strand == orf.Reverse {
		left, right = flank3, flank5
	}
	tally := profile[o.Strand]
	counts := make([]int, 0, int(o.Len())+flank5+flank3)
	first := o.Start()
	for pos := first - int32(left); pos < first; pos++ {
		counts = append(counts, int(tally[GenomePos{Chrom: o.Chrom, Pos: pos}]))
	}
	for _, interval := range o.Intervals {
		for pos := interval.Start; pos <= interval.End; pos++ {
			counts = append(counts, int(tally[GenomePos{Chrom: o.Chrom, Pos: pos}]))
		}
	}
	last := o.End()
	for pos := last + 1; pos <= last+int32(right); pos++ {
		counts = append(counts, int(tally[GenomePos{Chrom: o.Chrom, Pos: pos}]))
	}
	if o.Strand == orf.Reverse {
		for i, j := 0, len(counts)-1; i < j; i, j = i+1, j-1 {
			counts[i], counts[j] = counts[j], counts[i]
		}
	}
	return &Coverage{Counts: counts, Flank5: flank5, Flank3: flank3}
}

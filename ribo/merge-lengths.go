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

// MergeLengths shifts every 5'-end tally by its length's P-site
// offset and sums the shifted counts into a single strand-keyed
// density: downstream on the forward strand, upstream on the reverse
// strand. Lengths without an offset table entry are left out. The
// shifted positions are not clamped; summation is commutative, so the
// result does not depend on iteration order.
func MergeLengths(tallies LengthTallies, offsets OffsetTable) StrandTallies {
	merged := NewStrandTallies()
	for length, strandTallies := range tallies {
		offset, ok := offsets[length]
		if !ok {
			continue
		}
		for strand, tally := range strandTallies {
			shift := int32(offset)
			if strand == orf.Reverse {
				shift = -shift
			}
			mergedTally := merged[strand]
			if mergedTally == nil {
				mergedTally = Tally{}
				merged[strand] = mergedTally
			}
			for pos, count := range tally {
				mergedTally[GenomePos{Chrom: pos.Chrom, Pos: pos.Pos + shift}] += count
			}
		}
	}
	return merged
}

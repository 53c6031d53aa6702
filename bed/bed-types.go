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

// Package bed implements reading gene spans from BED files. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
package bed

import (
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

// A Gene is a stranded gene span as read from a BED file, converted to
// 0-based coordinates with an inclusive End.
type Gene struct {
	Chrom  utils.Symbol
	Start  int32
	End    int32
	Name   string
	Strand orf.Strand
}

// Len returns the number of bases the gene spans.
func (g *Gene) Len() int32 {
	return g.End - g.Start + 1
}

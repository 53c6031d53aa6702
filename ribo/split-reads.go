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
	"fmt"
	"sort"

	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

// Protocol is the strandedness of the sequencing library: whether a
// read maps to the same strand as the transcript it came from, to the
// opposite strand, or to either.
type Protocol int

const (
	ForwardProtocol Protocol = iota
	ReverseProtocol
	UnstrandedProtocol
)

// String returns the protocol name as used in the protocol report.
func (protocol Protocol) String() string {
	switch protocol {
	case ReverseProtocol:
		return "reverse"
	case UnstrandedProtocol:
		return "unstranded"
	default:
		return "forward"
	}
}

// ParseProtocol parses a command line strandedness value. Both the
// yes/reverse/no convention and the full protocol names are accepted.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "yes", "forward":
		return ForwardProtocol, nil
	case "reverse":
		return ReverseProtocol, nil
	case "no", "unstranded":
		return UnstrandedProtocol, nil
	}
	return ForwardProtocol, fmt.Errorf("invalid strandedness %v, expected yes, no, or reverse", s)
}

// A GenomePos is a single genomic base on a chromosome.
type GenomePos struct {
	Chrom utils.Symbol
	Pos   int32
}

// A Tally sparsely maps genomic positions to counts. Positions never
// recorded count zero.
type Tally map[GenomePos]uint32

// StrandTallies holds one tally per effective strand.
type StrandTallies map[orf.Strand]Tally

// NewStrandTallies returns tallies with both strands present.
func NewStrandTallies() StrandTallies {
	return StrandTallies{orf.Forward: Tally{}, orf.Reverse: Tally{}}
}

// LengthTallies groups per-strand 5'-end tallies by read length.
type LengthTallies map[int]StrandTallies

// ScanStats counts the alignment records seen during a BAM scan by
// the reason they were kept or dropped.
type ScanStats struct {
	Total       int
	Unmapped    int
	Secondary   int // secondary or supplementary
	Failed      int // QC fail or PCR duplicate
	Multimapped int
	Kept        int
}

func (stats *ScanStats) add(other ScanStats) {
	stats.Total += other.Total
	stats.Unmapped += other.Unmapped
	stats.Secondary += other.Secondary
	stats.Failed += other.Failed
	stats.Multimapped += other.Multimapped
	stats.Kept += other.Kept
}

// RetainLengths returns the read lengths whose share of the kept
// reads is at least fraction, in ascending order. Fragment lengths
// outside the ribosome footprint range contribute noise rather than
// signal, so rare lengths are dropped before P-site offset alignment.
func RetainLengths(lengths map[int]int, fraction float64) []int {
	total := 0
	for _, count := range lengths {
		total += count
	}
	var retained []int
	for length, count := range lengths {
		if float64(count) >= fraction*float64(total) && count > 0 {
			retained = append(retained, length)
		}
	}
	sort.Ints(retained)
	return retained
}

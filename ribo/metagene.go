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

const (
	// DefaultMetageneUpstream is how far upstream of annotated start
	// codons metagene profiles reach.
	DefaultMetageneUpstream = 60
	// DefaultMetageneDownstream is how far into annotated coding
	// regions metagene profiles reach.
	DefaultMetageneDownstream = 300
)

// A Metagene is the aggregated 5'-end density around annotated start
// codons for one read length. Counts[i] holds the density at position
// i-Upstream relative to the first base of the start codon, in
// biological orientation.
type Metagene struct {
	Upstream int
	Counts   []float64
}

// Total returns the summed density of the profile.
func (profile *Metagene) Total() float64 {
	total := 0.0
	for _, count := range profile.Counts {
		total += count
	}
	return total
}

// MetageneProfiles aggregates one profile per read length by summing
// 5'-end coverage over the annotated coding regions, from up bases
// upstream of the start codon to down bases into the ORF. Coding
// regions shorter than down contribute only the positions they have.
func MetageneProfiles(tallies LengthTallies, orfs []*orf.ORF, up, down int) map[int]*Metagene {
	var annotated []*orf.ORF
	for _, o := range orfs {
		if o.Category == orf.CDS {
			annotated = append(annotated, o)
		}
	}
	profiles := make(map[int]*Metagene, len(tallies))
	for length, strandTallies := range tallies {
		profile := &Metagene{Upstream: up, Counts: make([]float64, up+down)}
		for _, o := range annotated {
			cov := ORFCoverage(o, strandTallies, up, 0)
			window := cov.Counts
			if len(window) > len(profile.Counts) {
				window = window[:len(profile.Counts)]
			}
			for i, count := range window {
				profile.Counts[i] += float64(count)
			}
		}
		profiles[length] = profile
	}
	return profiles
}

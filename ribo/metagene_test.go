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
	"testing"

	"github.com/zcoder-bio/ribotricer/orf"
)

func TestMetageneProfiles(t *testing.T) {
	tallies := LengthTallies{
		28: StrandTallies{
			orf.Forward: Tally{
				pos("chr1", 97):  1, // 3 nt upstream of cds1
				pos("chr1", 100): 1, // cds1 start codon
				pos("chr1", 128): 5, // beyond the window
				pos("chr1", 305): 7, // last base of the short cds3
			},
			orf.Reverse: Tally{
				pos("chr1", 229): 2, // cds2 start codon, minus strand
			},
		},
	}
	uorf := testORF("u1", "chr1", orf.Forward, orf.Interval{Start: 100, End: 129})
	uorf.Category = orf.UORF
	orfs := []*orf.ORF{
		testORF("cds1", "chr1", orf.Forward, orf.Interval{Start: 100, End: 129}),
		testORF("cds2", "chr1", orf.Reverse, orf.Interval{Start: 200, End: 229}),
		testORF("cds3", "chr1", orf.Forward, orf.Interval{Start: 300, End: 305}),
		uorf,
	}
	profiles := MetageneProfiles(tallies, orfs, 6, 9)
	if len(profiles) != 1 {
		t.Fatal("profile count failed")
	}
	profile := profiles[28]
	if profile.Upstream != 6 || len(profile.Counts) != 15 {
		t.Fatal("profile shape failed")
	}
	expected := make([]float64, 15)
	expected[3] = 1  // 97 on cds1
	expected[6] = 3  // 100 on cds1 plus 229 on cds2
	expected[11] = 7 // 305 on cds3, 6 flank plus 5 exonic bases in
	for i := range expected {
		if profile.Counts[i] != expected[i] {
			t.Errorf("profile position %v failed", i-profile.Upstream)
		}
	}
	if profile.Total() != 11 {
		t.Error("profile total failed")
	}
}

func TestMetageneProfilesEmpty(t *testing.T) {
	profiles := MetageneProfiles(LengthTallies{}, nil, 60, 300)
	if len(profiles) != 0 {
		t.Error("empty profiles failed")
	}
}

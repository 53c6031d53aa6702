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
)

// spikeProfile builds a metagene profile of the given size with
// counts at the given absolute indices.
func spikeProfile(up, size int, spikes map[int]float64) *Metagene {
	counts := make([]float64, size)
	for i, v := range spikes {
		counts[i] = v
	}
	return &Metagene{Upstream: up, Counts: counts}
}

// combProfile places count 5' ends every 3 nt, starting phase bases
// into the in-ORF window, as reads with the given P-site offset
// would.
func combProfile(up, size, phase int, value float64) *Metagene {
	spikes := make(map[int]float64)
	for i := up + phase; i < size; i += 3 {
		spikes[i] = value
	}
	return spikeProfile(up, size, spikes)
}

func TestPeriodicityScore(t *testing.T) {
	if score := periodicityScore(combProfile(60, 120, 0, 1)); score < 0.99 {
		t.Error("comb periodicity score failed")
	}
	// a single impulse spreads its power evenly over all frequencies
	if score := periodicityScore(spikeProfile(60, 120, map[int]float64{67: 20})); score > 0.1 {
		t.Error("impulse periodicity score failed")
	}
	if score := periodicityScore(spikeProfile(60, 120, nil)); score != 0 {
		t.Error("empty periodicity score failed")
	}
}

func TestReferenceOffset(t *testing.T) {
	// 5' ends in frame 0 put the P site 12 nt downstream
	if offset := referenceOffset(combProfile(60, 120, 0, 1), 28, 21, 12); offset != 12 {
		t.Error("reference offset phase 0 failed")
	}
	if offset := referenceOffset(combProfile(60, 120, 1, 1), 28, 21, 12); offset != 11 {
		t.Error("reference offset phase 1 failed")
	}
	if offset := referenceOffset(combProfile(60, 120, 2, 1), 28, 21, 12); offset != 13 {
		t.Error("reference offset phase 2 failed")
	}
	// lengths shorter than the anchor step down in whole codons
	if offset := referenceOffset(combProfile(60, 120, 0, 1), 5, 21, 12); offset != 3 {
		t.Error("reference offset short length failed")
	}
}

func TestAlignOffsets(t *testing.T) {
	// length 28 carries ends at 3k-12 with weight 10, length 29 the
	// same comb at 3k-13 with weight 1 plus an off-frame bump that
	// keeps it from outscoring the reference
	spikes28 := make(map[int]float64)
	spikes29 := make(map[int]float64)
	for k := 0; k < 20; k++ {
		spikes28[48+3*k] = 10
		spikes29[47+3*k] = 1
	}
	spikes29[70] = 0.5
	profiles := map[int]*Metagene{
		28: spikeProfile(60, 120, spikes28),
		29: spikeProfile(60, 120, spikes29),
		31: spikeProfile(60, 120, nil),
	}
	offsets, ref := AlignOffsets(profiles, DefaultAlignSettings())
	if ref != 28 {
		t.Error("reference length failed")
	}
	if len(offsets) != 2 || offsets[28] != 12 || offsets[29] != 13 {
		t.Error("offset table failed")
	}
	for length, offset := range offsets {
		if offset < 0 || offset >= length {
			t.Error("offset bounds failed")
		}
	}
}

func TestAlignOffsetsEmpty(t *testing.T) {
	offsets, ref := AlignOffsets(map[int]*Metagene{30: spikeProfile(60, 120, nil)}, DefaultAlignSettings())
	if len(offsets) != 0 || ref != 0 {
		t.Error("empty alignment failed")
	}
}

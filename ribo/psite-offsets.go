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
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// AlignSettings configures the P-site offset search.
type AlignSettings struct {
	// PhaseWindow is the start-proximal stretch of the reference
	// profile whose reading-frame phase fixes the reference offset.
	PhaseWindow int
	// ExpectedOffset is the canonical distance from a read 5' end to
	// the ribosome P site.
	ExpectedOffset int
	// SearchRange is the cross-correlation search radius around the
	// reference offset for the remaining read lengths.
	SearchRange int
}

// DefaultAlignSettings returns the settings tuned for typical
// ribosome footprints, where the P site sits 12 nt into the read.
func DefaultAlignSettings() AlignSettings {
	return AlignSettings{
		PhaseWindow:    21,
		ExpectedOffset: 12,
		SearchRange:    5,
	}
}

// An OffsetTable maps a read length to its P-site offset. Every
// offset o for a length l satisfies 0 <= o < l.
type OffsetTable map[int]int

// AlignOffsets derives one P-site offset per read length from the
// metagene profiles. The most periodic profile becomes the reference:
// its offset follows from the reading-frame phase of its
// start-proximal window, anchored at the expected offset. Every other
// length is then cross-correlated against the reference within the
// search radius. Lengths whose profile carries no signal get no
// entry. The second return value is the reference length, or 0 when
// no length qualifies.
func AlignOffsets(profiles map[int]*Metagene, settings AlignSettings) (OffsetTable, int) {
	lengths := make([]int, 0, len(profiles))
	for length, profile := range profiles {
		if length > 0 && profile.Total() > 0 {
			lengths = append(lengths, length)
		}
	}
	if len(lengths) == 0 {
		return OffsetTable{}, 0
	}
	sort.Ints(lengths)
	ref := lengths[0]
	bestScore, bestTotal := -1.0, -1.0
	for _, length := range lengths {
		profile := profiles[length]
		score := periodicityScore(profile)
		total := profile.Total()
		if score > bestScore || (score == bestScore && total > bestTotal) {
			ref, bestScore, bestTotal = length, score, total
		}
	}
	refProfile := profiles[ref]
	refOffset := referenceOffset(refProfile, ref, settings.PhaseWindow, settings.ExpectedOffset)
	offsets := make(OffsetTable, len(lengths))
	offsets[ref] = refOffset
	for _, length := range lengths {
		if length != ref {
			offsets[length] = alignToReference(profiles[length], refProfile, length, refOffset, settings.SearchRange)
		}
	}
	return offsets, ref
}

// periodicityScore is the share of the non-constant spectral power
// that sits at the codon frequency, computed over the in-ORF window
// of the profile trimmed to whole codons. A perfectly 3-periodic
// profile scores 1, an aperiodic one near 0.
func periodicityScore(profile *Metagene) float64 {
	window := profile.Counts[profile.Upstream:]
	n := len(window) - len(window)%3
	if n < 6 {
		return 0
	}
	window = window[:n]
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, window)
	total := 0.0
	for _, x := range coeff[1:] {
		total += real(x)*real(x) + imag(x)*imag(x)
	}
	if total == 0 {
		return 0
	}
	codon := coeff[n/3]
	return (real(codon)*real(codon) + imag(codon)*imag(codon)) / total
}

// referenceOffset maps the dominant reading-frame phase of the
// profile's start-proximal window to an absolute offset. Reads whose
// P site decodes codon position 3k have their 5' ends at 3k-offset,
// so the observed phase is congruent to -offset modulo 3; among the
// three consecutive candidates around the expected offset exactly one
// matches.
func referenceOffset(profile *Metagene, length, phaseWindow, expected int) int {
	window := profile.Counts[profile.Upstream:]
	if phaseWindow < len(window) {
		window = window[:phaseWindow]
	}
	var phaseSums [3]float64
	for i, count := range window {
		phaseSums[i%3] += count
	}
	phase := 0
	for p := 1; p < 3; p++ {
		if phaseSums[p] > phaseSums[phase] {
			phase = p
		}
	}
	offset := expected
	for candidate := expected - 1; candidate <= expected+1; candidate++ {
		if (candidate+phase)%3 == 0 {
			offset = candidate
			break
		}
	}
	for offset >= length && offset >= 3 {
		offset -= 3
	}
	if offset >= length {
		offset = length - 1
	}
	return offset
}

// alignToReference finds the offset that best phases a profile with
// the reference profile. A candidate offset d shifts the profile by
// d minus the reference offset; the score is the dot product of the
// overlapping windows under that shift. Candidates are visited in
// ascending order, so ties keep the smallest offset.
func alignToReference(profile, refProfile *Metagene, length, refOffset, searchRange int) int {
	lo := refOffset - searchRange
	if lo < 0 {
		lo = 0
	}
	hi := refOffset + searchRange
	if hi > length-1 {
		hi = length - 1
	}
	if hi < lo {
		return hi
	}
	bestOffset := lo
	bestScore := -1.0
	for d := lo; d <= hi; d++ {
		shift := d - refOffset
		score := 0.0
		for i, count := range profile.Counts {
			j := i + shift
			if j < 0 || j >= len(refProfile.Counts) {
				continue
			}
			score += count * refProfile.Counts[j]
		}
		if score > bestScore {
			bestOffset, bestScore = d, score
		}
	}
	return bestOffset
}

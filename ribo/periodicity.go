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
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultMinCount is the minimum summed in-ORF count for a
	// coverage vector to support a meaningful spectral estimate.
	DefaultMinCount = 10
	// DefaultMinNonzero is the minimum number of covered in-ORF
	// positions.
	DefaultMinNonzero = 10
	// DefaultCoherenceCutoff separates translating from
	// non-translating ORFs on the coherence score.
	DefaultCoherenceCutoff = 0.5

	segmentLength = 12
	segmentStep   = 6
)

// TestSettings holds the validity thresholds for periodicity tests.
type TestSettings struct {
	MinCount   int
	MinNonzero int
}

// DefaultTestSettings returns the standard validity thresholds.
func DefaultTestSettings() TestSettings {
	return TestSettings{MinCount: DefaultMinCount, MinNonzero: DefaultMinNonzero}
}

// A Periodicity is the outcome of testing a coverage vector for the
// 3-nucleotide codon periodicity of active translation. Length,
// Total, and Nonzero describe the tested vector after trimming to
// whole codons.
type Periodicity struct {
	Coherence float64
	PValue    float64
	Valid     bool
	Total     int
	Nonzero   int
	Length    int
}

// Coherence tests a coverage vector for codon periodicity. The
// vector is trimmed to whole codons and its magnitude-squared
// coherence with an ideal codon comb is estimated over Welch
// segments; the p-value is the probability of at least this
// coherence arising from incoherent segments. Degenerate input, all
// zero or shorter than one segment, yields an invalid result with a
// p-value of 1.
func Coherence(counts []int, settings TestSettings) Periodicity {
	trimmed := counts[:len(counts)-len(counts)%3]
	result := Periodicity{PValue: 1, Length: len(trimmed)}
	for _, count := range trimmed {
		result.Total += count
		if count > 0 {
			result.Nonzero++
		}
	}
	if result.Total == 0 {
		return result
	}
	result.Valid = result.Total >= settings.MinCount &&
		result.Nonzero >= settings.MinNonzero &&
		result.Length >= segmentLength
	coherence, segments := msCoherence(trimmed)
	result.Coherence = coherence
	if segments > 1 {
		null := distuv.Beta{Alpha: 1, Beta: float64(segments - 1)}
		result.PValue = null.Survival(coherence)
	}
	return result
}

// msCoherence estimates the Welch magnitude-squared coherence of the
// vector against an ideal codon comb at the codon frequency, over
// overlapping boxcar segments. Segment starts fall on codon
// boundaries, so the comb contributes the same coefficient to every
// segment and the coherence reduces to |sum X|^2 / (L * sum |X|^2)
// over the segment coefficients X at the period-3 bin. By the
// Cauchy-Schwarz inequality the estimate lies in [0, 1]. Vectors
// shorter than one segment are taken as a single segment of their
// own length.
func msCoherence(counts []int) (float64, int) {
	length := segmentLength
	if len(counts) < length {
		length = len(counts)
	}
	if length < 3 {
		return 0, 0
	}
	fft := fourier.NewFFT(length)
	seg := make([]float64, length)
	coeff := make([]complex128, length/2+1)
	bin := length / 3
	var sumRe, sumIm, sumPower float64
	segments := 0
	for start := 0; start+length <= len(counts); start += segmentStep {
		for i := range seg {
			seg[i] = float64(counts[start+i])
		}
		coeff = fft.Coefficients(coeff, seg)
		x := coeff[bin]
		sumRe += real(x)
		sumIm += imag(x)
		sumPower += real(x)*real(x) + imag(x)*imag(x)
		segments++
	}
	if sumPower == 0 {
		return 0, segments
	}
	return (sumRe*sumRe + sumIm*sumIm) / (float64(segments) * sumPower), segments
}

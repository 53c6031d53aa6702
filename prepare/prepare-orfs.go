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

// Package prepare implements candidate ORF enumeration: transcript
// models are spliced against a reference genome and scanned in every
// reading frame for start codons, each extended in frame to its first
// stop codon.
package prepare

import (
	"fmt"
	"strings"

	"github.com/exascience/pargo/parallel"
	"github.com/willf/bitset"
	"github.com/zcoder-bio/ribotricer/fasta"
	"github.com/zcoder-bio/ribotricer/gtf"
	"github.com/zcoder-bio/ribotricer/orf"
)

// DefaultMinLength is the minimum candidate ORF length in nucleotides,
// the stop codon excluded.
const DefaultMinLength = 60

// Settings control candidate ORF enumeration.
type Settings struct {
	// MinLength is the minimum ORF length in nucleotides.
	MinLength int
	// StartCodons open an ORF and StopCodons close it. Codons are
	// upper case over the ACGT alphabet.
	StartCodons []string
	StopCodons  []string
}

// DefaultSettings returns the standard enumeration settings: ORFs of
// at least 60 nt opened by ATG and closed by any canonical stop codon.
func DefaultSettings() Settings {
	return Settings{
		MinLength:   DefaultMinLength,
		StartCodons: []string{"ATG"},
		StopCodons:  []string{"TAG", "TAA", "TGA"},
	}
}

// ParseCodons parses a comma-separated codon list. Codons are upper
// cased and must be three bases long over the ACGT alphabet.
func ParseCodons(s string) ([]string, error) {
	var codons []string
	for _, part := range strings.Split(s, ",") {
		codon := strings.ToUpper(strings.TrimSpace(part))
		if len(codon) != 3 {
			return nil, fmt.Errorf("invalid codon %v", part)
		}
		for i := 0; i < 3; i++ {
			switch codon[i] {
			case 'A', 'C', 'G', 'T':
			default:
				return nil, fmt.Errorf("invalid codon %v", part)
			}
		}
		codons = append(codons, codon)
	}
	return codons, nil
}

func codonSet(codons []string) map[string]bool {
	set := make(map[string]bool, len(codons))
	for _, codon := range codons {
		set[codon] = true
	}
	return set
}

// ORFs enumerates candidate ORFs on transcript models against a
// reference genome. Transcripts whose contig is absent from the genome
// or whose exons fall outside it are skipped and counted. Within each
// transcript the annotated coding region, when present, comes first
// and is kept unconditionally; scanned ORFs follow in ascending start
// order. Transcripts are processed in parallel but the result keeps
// the input transcript order.
func ORFs(transcripts []*gtf.Transcript, genome map[string][]byte, settings Settings) (orfs []*orf.ORF, skipped int) {
	starts := codonSet(settings.StartCodons)
	stops := codonSet(settings.StopCodons)
	var usable []*gtf.Transcript
	for _, transcript := range transcripts {
		contig, ok := genome[*transcript.Chrom]
		if !ok || len(transcript.Exons) == 0 ||
			int(transcript.Exons[len(transcript.Exons)-1].End) >= len(contig) {
			skipped++
			continue
		}
		usable = append(usable, transcript)
	}
	results := make([][]*orf.ORF, len(usable))
	parallel.Range(0, len(usable), 0, func(low, high int) {
		for i := low; i < high; i++ {
			transcript := usable[i]
			results[i] = transcriptORFs(transcript, genome[*transcript.Chrom], starts, stops, settings.MinLength)
		}
	})
	for _, result := range results {
		orfs = append(orfs, result...)
	}
	return orfs, skipped
}

// transcriptORFs scans one spliced transcript. Each stop codon is
// claimed by the most upstream start that reaches it, so only the
// longest ORF per stop survives; scanned ORFs that reproduce the
// annotated coding region, or sit fully inside it, are dropped.
func transcriptORFs(transcript *gtf.Transcript, contig []byte, starts, stops map[string]bool, minLength int) []*orf.ORF {
	total := exonicLength(transcript.Exons)
	seq := spliceSeq(contig, transcript.Exons, transcript.Strand, total)

	cdsStart, cdsEnd := -1, -1
	var orfs []*orf.ORF
	if len(transcript.CDS) > 0 {
		cdsLen := exonicLength(transcript.CDS)
		first := transcript.CDS[0].Start
		if transcript.Strand == orf.Reverse {
			first = transcript.CDS[len(transcript.CDS)-1].End
		}
		cdsStart = transcriptPos(transcript.Exons, transcript.Strand, first, total)
		cdsEnd = cdsStart + cdsLen
		orfs = append(orfs, &orf.ORF{
			ID:         orf.NewID(transcript.ID, transcript.CDS[0].Start, transcript.CDS[len(transcript.CDS)-1].End, int32(cdsLen)),
			Category:   orf.CDS,
			Transcript: transcript.ID,
			Gene:       transcript.Gene,
			Chrom:      transcript.Chrom,
			Strand:     transcript.Strand,
			Intervals:  transcript.CDS,
		})
	}

	next := nextStops(seq, stops)
	claimed := bitset.New(uint(len(seq)))
	for i := 0; i+6 <= len(seq); i++ {
		if !starts[string(seq[i:i+3])] {
			continue
		}
		stop := next[i+3]
		if stop < 0 || claimed.Test(uint(stop)) {
			continue
		}
		claimed.Set(uint(stop))
		length := stop - i
		if length < minLength {
			continue
		}
		category := orf.Novel
		if cdsStart >= 0 {
			switch {
			case i == cdsStart && stop == cdsEnd:
				continue
			case stop <= cdsStart:
				category = orf.UORF
			case i < cdsStart:
				category = orf.OverlapUORF
			case i >= cdsEnd:
				category = orf.DORF
			case stop > cdsEnd:
				category = orf.OverlapDORF
			default:
				continue
			}
		}
		intervals := mapToGenome(transcript.Exons, transcript.Strand, i, length, total)
		orfs = append(orfs, &orf.ORF{
			ID:         orf.NewID(transcript.ID, intervals[0].Start, intervals[len(intervals)-1].End, int32(length)),
			Category:   category,
			Transcript: transcript.ID,
			Gene:       transcript.Gene,
			Chrom:      transcript.Chrom,
			Strand:     transcript.Strand,
			Intervals:  intervals,
		})
	}
	return orfs
}

func exonicLength(exons []orf.Interval) int {
	length := 0
	for _, exon := range exons {
		length += int(exon.Len())
	}
	return length
}

// spliceSeq assembles the biological transcript sequence from the exon
// chain, reverse complemented on the reverse strand.
func spliceSeq(contig []byte, exons []orf.Interval, strand orf.Strand, total int) []byte {
	seq := make([]byte, 0, total)
	for _, exon := range exons {
		seq = append(seq, contig[exon.Start:exon.End+1]...)
	}
	if strand == orf.Reverse {
		return fasta.ReverseComplement(seq)
	}
	return seq
}

// nextStops computes, per transcript position, the position of the
// first in-frame stop codon at or after it, or -1 when the frame runs
// off the transcript without one.
func nextStops(seq []byte, stops map[string]bool) []int {
	next := make([]int, len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		switch {
		case i+3 <= len(seq) && stops[string(seq[i:i+3])]:
			next[i] = i
		case i+3 < len(seq):
			next[i] = next[i+3]
		default:
			next[i] = -1
		}
	}
	return next
}

// transcriptPos maps a genomic position on the exon chain to its
// biological transcript coordinate.
func transcriptPos(exons []orf.Interval, strand orf.Strand, pos int32, total int) int {
	p := 0
	for _, exon := range exons {
		if pos > exon.End {
			p += int(exon.Len())
			continue
		}
		if pos >= exon.Start {
			p += int(pos - exon.Start)
		}
		break
	}
	if strand == orf.Reverse {
		return total - 1 - p
	}
	return p
}

// mapToGenome converts a biological transcript range to genomic exonic
// intervals, ascending regardless of strand. On the reverse strand the
// range is mirrored before walking the exon chain.
func mapToGenome(exons []orf.Interval, strand orf.Strand, start, length, total int) []orf.Interval {
	if strand == orf.Reverse {
		start = total - start - length
	}
	var intervals []orf.Interval
	offset, remaining := start, length
	for _, exon := range exons {
		exonLen := int(exon.Len())
		if offset >= exonLen {
			offset -= exonLen
			continue
		}
		runStart := exon.Start + int32(offset)
		run := exonLen - offset
		if run > remaining {
			run = remaining
		}
		intervals = append(intervals, orf.Interval{Start: runStart, End: runStart + int32(run) - 1})
		remaining -= run
		offset = 0
		if remaining == 0 {
			break
		}
	}
	return intervals
}

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
	"log"
	"sort"

	"github.com/exascience/pargo/parallel"

	"github.com/zcoder-bio/ribotricer/orf"
)

const (
	// DefaultMinLengthFraction is the share of the kept reads a read
	// length needs to be retained.
	DefaultMinLengthFraction = 0.01
	// DefaultFlank5 and DefaultFlank3 are the flank widths of
	// exported coverage vectors.
	DefaultFlank5 = 20
	DefaultFlank3 = 0
)

// DetectSettings configures a detection run. The zero values of
// ReadLengths and Offsets mean derive them from the data.
type DetectSettings struct {
	BAM    string
	Prefix string

	// Protocol is the library protocol; when InferProtocol is set it
	// is instead inferred from a sample of ProtocolReads reads.
	Protocol      Protocol
	InferProtocol bool
	ProtocolReads int

	ReadLengths       []int
	Offsets           OffsetTable
	MinLengthFraction float64

	MetageneUpstream   int
	MetageneDownstream int
	Align              AlignSettings

	Flank5          int
	Flank3          int
	Test            TestSettings
	CoherenceCutoff float64
	ReportAll       bool
}

// DefaultDetectSettings returns the settings of a standard run.
func DefaultDetectSettings() DetectSettings {
	return DetectSettings{
		ProtocolReads:      DefaultProtocolReads,
		MinLengthFraction:  DefaultMinLengthFraction,
		MetageneUpstream:   DefaultMetageneUpstream,
		MetageneDownstream: DefaultMetageneDownstream,
		Align:              DefaultAlignSettings(),
		Flank5:             DefaultFlank5,
		Flank3:             DefaultFlank3,
		Test:               DefaultTestSettings(),
		CoherenceCutoff:    DefaultCoherenceCutoff,
	}
}

// A Result pairs a candidate ORF with its coverage vector and
// periodicity outcome.
type Result struct {
	ORF      *orf.ORF
	Coverage *Coverage
	Score    Periodicity
}

// Translating reports whether the result passes the export filter: a
// valid test at or above the coherence cutoff.
func (result *Result) Translating(cutoff float64) bool {
	return result.Score.Valid && result.Score.Coherence >= cutoff
}

// ScoreORFs computes coverage and periodicity for every candidate
// against a merged density. Candidates are scored in parallel; the
// result order is the input order.
func ScoreORFs(orfs []*orf.ORF, merged StrandTallies, flank5, flank3 int, test TestSettings) []Result {
	results := make([]Result, len(orfs))
	parallel.Range(0, len(orfs), 0, func(low, high int) {
		for i := low; i < high; i++ {
			o := orfs[i]
			cov := ORFCoverage(o, merged, flank5, flank3)
			results[i] = Result{ORF: o, Coverage: cov, Score: Coherence(cov.InORF(), test)}
		}
	})
	return results
}

// DetectORFs runs the detection stages in order against a candidate
// list: protocol inference when requested, the BAM scan, metagene
// aggregation, P-site offset alignment, length merging, and candidate
// scoring. It writes the translating ORFs table, the read length and
// metagene and offset diagnostics, and the per-strand wiggle tracks,
// all under settings.Prefix.
func DetectORFs(orfs []*orf.ORF, settings DetectSettings) error {
	protocol := settings.Protocol
	if settings.InferProtocol {
		log.Println("inferring the sequencing protocol")
		inferred, stats, err := InferProtocol(settings.BAM, CDSGeneSpans(orfs), settings.ProtocolReads)
		if err != nil {
			return err
		}
		protocol = inferred
		log.Printf("inferred a %v protocol from %v reads (%.4f same strand, %.4f opposite)",
			protocol, stats.Sampled, stats.SameFraction(), stats.CrossFraction())
	}

	log.Println("splitting alignments by read length")
	tallies, lengthCounts, stats, err := SplitByLength(settings.BAM, protocol)
	if err != nil {
		return err
	}
	log.Printf("scanned %v alignments: %v kept, %v unmapped, %v secondary, %v failed, %v multimapping",
		stats.Total, stats.Kept, stats.Unmapped, stats.Secondary, stats.Failed, stats.Multimapped)
	WriteReadLengths(settings.Prefix+"_read_lengths.tsv", lengthCounts)

	retained := settings.ReadLengths
	if retained == nil {
		retained = RetainLengths(lengthCounts, settings.MinLengthFraction)
	} else {
		retained = append([]int(nil), retained...)
		sort.Ints(retained)
		for _, length := range retained {
			if lengthCounts[length] == 0 {
				log.Printf("no reads of requested length %v", length)
			}
		}
	}
	log.Printf("retained read lengths %v", retained)
	kept := make(LengthTallies, len(retained))
	for _, length := range retained {
		if strandTallies, ok := tallies[length]; ok {
			kept[length] = strandTallies
		}
	}

	log.Println("aggregating metagene profiles")
	profiles := MetageneProfiles(kept, orfs, settings.MetageneUpstream, settings.MetageneDownstream)
	WriteMetagenes(settings.Prefix+"_metagene_profiles.tsv", profiles)

	offsets := settings.Offsets
	if offsets == nil {
		log.Println("aligning P-site offsets")
		var ref int
		offsets, ref = AlignOffsets(profiles, settings.Align)
		if len(offsets) == 0 {
			log.Println("no read length carries signal around annotated start codons")
		} else {
			log.Printf("aligned %v read lengths against reference length %v", len(offsets), ref)
		}
	}
	WriteOffsets(settings.Prefix+"_psite_offsets.tsv", offsets)

	log.Println("merging read lengths")
	merged := MergeLengths(kept, offsets)
	WriteWig(settings.Prefix+"_pos.wig", merged[orf.Forward])
	WriteWig(settings.Prefix+"_neg.wig", merged[orf.Reverse])

	log.Printf("scoring %v candidate ORFs", len(orfs))
	results := ScoreORFs(orfs, merged, settings.Flank5, settings.Flank3, settings.Test)
	translating := 0
	for i := range results {
		if results[i].Translating(settings.CoherenceCutoff) {
			translating++
		}
	}
	log.Printf("%v candidates pass the translation filter", translating)
	WriteResults(settings.Prefix+"_translating_ORFs.tsv", results, settings.CoherenceCutoff, settings.ReportAll)
	return nil
}

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

package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/ribo"
)

var (
	detectBam        string
	detectAnnotation string
	detectPrefix     string
	detectStranded   string
	detectLengths    string
	detectOffsets    string
	detectCutoff     float64
	detectReportAll  bool
	detectUpstream   int
	detectDownstream int
	detectMinCount   int
	detectMinNonzero int
)

var detectOrfsCmd = &cobra.Command{
	Use:   "detect-orfs",
	Short: "detect translating ORFs from BAM alignments of a ribosome profiling sample",
	Long: `detect-orfs profiles the ribosome protected fragments of a sample
against a prepared candidate ORF list. Reads are split by length,
P-site offsets are derived from the metagene profiles of the annotated
coding regions, and the offset densities are merged into a single
profile. Every candidate is then tested for codon periodicity, and the
ORFs passing the phase score cutoff are written to
<prefix>_translating_ORFs.tsv.

Unless --stranded is given, the library protocol is inferred from a
sample of the alignments first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := ribo.DefaultDetectSettings()
		settings.BAM = detectBam
		settings.Prefix = detectPrefix
		settings.MetageneUpstream = detectUpstream
		settings.MetageneDownstream = detectDownstream
		settings.Test.MinCount = detectMinCount
		settings.Test.MinNonzero = detectMinNonzero
		settings.CoherenceCutoff = detectCutoff
		settings.ReportAll = detectReportAll

		ok := checkExist("--bam", detectBam)
		ok = checkExist("--annotation", detectAnnotation) && ok
		ok = checkCreate("--prefix", detectPrefix+"_translating_ORFs.tsv") && ok
		if detectStranded == "" {
			settings.InferProtocol = true
		} else if protocol, err := ribo.ParseProtocol(detectStranded); err != nil {
			log.Printf("Error: %v for command line parameter --stranded.\n", err)
			ok = false
		} else {
			settings.Protocol = protocol
		}
		if detectLengths != "" {
			lengths, err := parseIntList("--read_lengths", detectLengths)
			if err != nil {
				log.Printf("Error: %v.\n", err)
				ok = false
			} else {
				settings.ReadLengths = lengths
			}
		}
		if detectOffsets != "" {
			offsets, err := parseIntList("--psite_offsets", detectOffsets)
			switch {
			case err != nil:
				log.Printf("Error: %v.\n", err)
				ok = false
			case settings.ReadLengths == nil:
				log.Println("Error: --psite_offsets requires --read_lengths.")
				ok = false
			case len(offsets) != len(settings.ReadLengths):
				log.Println("Error: --psite_offsets and --read_lengths must list the same number of values.")
				ok = false
			default:
				settings.Offsets = make(ribo.OffsetTable, len(offsets))
				for i, offset := range offsets {
					length := settings.ReadLengths[i]
					if offset >= length {
						log.Printf("Error: P-site offset %v does not fit read length %v.\n", offset, length)
						ok = false
					}
					settings.Offsets[length] = offset
				}
			}
		}
		if !ok {
			return errInvalidParameters
		}

		var orfs []*orf.ORF
		timedRun(timed, profile, "Reading candidate ORFs.", 1, func() {
			var skipped int
			orfs, skipped = orf.ReadAnnotation(detectAnnotation)
			if skipped > 0 {
				log.Printf("skipped %v malformed annotation rows", skipped)
			}
			log.Printf("read %v candidate ORFs", len(orfs))
		})
		var err error
		timedRun(timed, profile, "Detecting translating ORFs.", 2, func() {
			err = ribo.DetectORFs(orfs, settings)
		})
		return err
	},
}

func init() {
	detectOrfsCmd.Flags().StringVar(&detectBam, "bam", "",
		"BAM alignments of the ribosome profiling sample (required)")
	detectOrfsCmd.Flags().StringVar(&detectAnnotation, "annotation", "",
		"candidate ORFs prepared with prepare-orfs (required)")
	detectOrfsCmd.Flags().StringVar(&detectPrefix, "prefix", "",
		"prefix of the output files (required)")
	detectOrfsCmd.Flags().StringVar(&detectStranded, "stranded", "",
		"library protocol: yes, reverse, or no (default inferred from the data)")
	detectOrfsCmd.Flags().StringVar(&detectLengths, "read_lengths", "",
		"comma separated read lengths to use (default derived from the data)")
	detectOrfsCmd.Flags().StringVar(&detectOffsets, "psite_offsets", "",
		"comma separated P-site offsets, one per read length (default derived from the data)")
	detectOrfsCmd.Flags().Float64Var(&detectCutoff, "phase_score_cutoff", ribo.DefaultCoherenceCutoff,
		"minimum phase score for an ORF to be reported as translating")
	detectOrfsCmd.Flags().BoolVar(&detectReportAll, "report_all", false,
		"report all scored ORFs regardless of the cutoff")
	detectOrfsCmd.Flags().IntVar(&detectUpstream, "metagene_upstream", ribo.DefaultMetageneUpstream,
		"nucleotides upstream of the start codons in the metagene profiles")
	detectOrfsCmd.Flags().IntVar(&detectDownstream, "metagene_downstream", ribo.DefaultMetageneDownstream,
		"nucleotides downstream of the start codons in the metagene profiles")
	detectOrfsCmd.Flags().IntVar(&detectMinCount, "min_count", ribo.DefaultMinCount,
		"minimum reads on an ORF for a valid phase score")
	detectOrfsCmd.Flags().IntVar(&detectMinNonzero, "min_nonzero", ribo.DefaultMinNonzero,
		"minimum covered codons on an ORF for a valid phase score")
}

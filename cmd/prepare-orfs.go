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
	"github.com/zcoder-bio/ribotricer/fasta"
	"github.com/zcoder-bio/ribotricer/gtf"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/prepare"
)

var (
	prepareGtf       string
	prepareFasta     string
	preparePrefix    string
	prepareMinLength int
	prepareStarts    string
	prepareStops     string
)

var prepareOrfsCmd = &cobra.Command{
	Use:   "prepare-orfs",
	Short: "enumerate candidate ORFs from a GTF annotation and a reference genome",
	Long: `prepare-orfs splices every annotated transcript against the reference
genome and scans all reading frames for candidate ORFs: a start codon
extended in frame to its first stop codon. The candidates are written
to <prefix>_candidate_orfs.tsv for use with detect-orfs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := prepare.Settings{MinLength: prepareMinLength}
		var err error
		if settings.StartCodons, err = prepare.ParseCodons(prepareStarts); err != nil {
			return err
		}
		if settings.StopCodons, err = prepare.ParseCodons(prepareStops); err != nil {
			return err
		}
		annotation := preparePrefix + "_candidate_orfs.tsv"
		ok := checkExist("--gtf", prepareGtf)
		ok = checkExist("--fasta", prepareFasta) && ok
		ok = checkCreate("--prefix", annotation) && ok
		if !ok {
			return errInvalidParameters
		}
		var orfs []*orf.ORF
		timedRun(timed, profile, "Enumerating candidate ORFs.", 1, func() {
			records, skipped := gtf.Read(prepareGtf)
			if skipped > 0 {
				log.Printf("skipped %v malformed GTF lines", skipped)
			}
			transcripts := gtf.Transcripts(records)
			genome := fasta.ParseGenome(prepareFasta)
			var dropped int
			orfs, dropped = prepare.ORFs(transcripts, genome, settings)
			if dropped > 0 {
				log.Printf("skipped %v transcripts without usable reference sequence", dropped)
			}
			log.Printf("found %v candidate ORFs on %v transcripts", len(orfs), len(transcripts))
		})
		timedRun(timed, profile, "Writing candidate ORFs.", 2, func() {
			orf.WriteAnnotation(annotation, orfs)
		})
		return nil
	},
}

func init() {
	prepareOrfsCmd.Flags().StringVar(&prepareGtf, "gtf", "",
		"GTF annotation of the transcriptome (required)")
	prepareOrfsCmd.Flags().StringVar(&prepareFasta, "fasta", "",
		"reference genome FASTA, plain or gzip (required)")
	prepareOrfsCmd.Flags().StringVar(&preparePrefix, "prefix", "",
		"prefix of the output files (required)")
	prepareOrfsCmd.Flags().IntVar(&prepareMinLength, "min_orf_length", prepare.DefaultMinLength,
		"minimum candidate ORF length in nucleotides")
	prepareOrfsCmd.Flags().StringVar(&prepareStarts, "start_codons", "ATG",
		"comma separated start codons")
	prepareOrfsCmd.Flags().StringVar(&prepareStops, "stop_codons", "TAG,TAA,TGA",
		"comma separated stop codons")
}

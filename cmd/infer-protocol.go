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
	"github.com/zcoder-bio/ribotricer/bed"
	"github.com/zcoder-bio/ribotricer/gtf"
	"github.com/zcoder-bio/ribotricer/ribo"
)

var (
	inferBam    string
	inferGtf    string
	inferBed    string
	inferPrefix string
	inferReads  int
)

var inferProtocolCmd = &cobra.Command{
	Use:   "infer-protocol",
	Short: "infer the library protocol of a ribosome profiling sample",
	Long: `infer-protocol samples uniquely mapped reads from a BAM file and
compares their mapped strand with the strand of the gene they fall on,
deciding whether the library preserves the transcript strand (forward)
or inverts it (reverse). The gene spans come from a GTF annotation or
a BED6 file. The verdict is written to <prefix>_protocol.txt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		protocolFile := inferPrefix + "_protocol.txt"
		ok := checkExist("--bam", inferBam)
		switch {
		case inferGtf == "" && inferBed == "":
			log.Println("Error: Specify the gene annotation with either --gtf or --bed.")
			ok = false
		case inferGtf != "" && inferBed != "":
			log.Println("Error: The --gtf and --bed parameters exclude each other.")
			ok = false
		case inferGtf != "":
			ok = checkExist("--gtf", inferGtf) && ok
		default:
			ok = checkExist("--bed", inferBed) && ok
		}
		ok = checkCreate("--prefix", protocolFile) && ok
		if !ok {
			return errInvalidParameters
		}

		var genes []*bed.Gene
		timedRun(timed, profile, "Reading gene annotation.", 1, func() {
			var skipped int
			if inferGtf != "" {
				records, skippedLines := gtf.Read(inferGtf)
				skipped = skippedLines
				genes = gtf.GeneSpans(records)
			} else {
				genes, skipped = bed.ReadGenes(inferBed)
			}
			if skipped > 0 {
				log.Printf("skipped %v malformed annotation lines", skipped)
			}
			log.Printf("read %v gene spans", len(genes))
		})
		var err error
		timedRun(timed, profile, "Inferring the library protocol.", 2, func() {
			var protocol ribo.Protocol
			var stats ribo.ProtocolStats
			if protocol, stats, err = ribo.InferProtocol(inferBam, genes, inferReads); err != nil {
				return
			}
			ribo.WriteProtocol(protocolFile, protocol, stats)
			log.Printf("the library is most likely %v (%.4f same strand, %.4f opposite)",
				protocol, stats.SameFraction(), stats.CrossFraction())
		})
		return err
	},
}

func init() {
	inferProtocolCmd.Flags().StringVar(&inferBam, "bam", "",
		"BAM alignments of the ribosome profiling sample (required)")
	inferProtocolCmd.Flags().StringVar(&inferGtf, "gtf", "",
		"GTF annotation to derive gene spans from")
	inferProtocolCmd.Flags().StringVar(&inferBed, "bed", "",
		"BED6 file of stranded gene spans")
	inferProtocolCmd.Flags().StringVar(&inferPrefix, "prefix", "",
		"prefix of the output files (required)")
	inferProtocolCmd.Flags().IntVar(&inferReads, "n_reads", ribo.DefaultProtocolReads,
		"number of uniquely mapped reads to sample")
}

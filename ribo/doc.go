// Package ribo implements the detection core of ribotricer: scanning
// alignments of ribosome-protected fragments, deriving P-site offsets
// from metagene profiles, merging read lengths into a single P-site
// density, and testing candidate ORFs for the 3-nucleotide periodicity
// that distinguishes active translation from background.
//
// The stages mirror the command line workflow. SplitByLength scans a
// BAM file and tallies read 5' ends by read length and strand.
// MetageneProfiles aggregates those tallies around annotated start
// codons, AlignOffsets turns the profiles into one P-site offset per
// read length, and MergeLengths collapses everything into a
// strand-keyed genomic density. ORFCoverage and Coherence then score
// individual candidate ORFs against that density. DetectORFs drives
// all stages in order and writes the result tables.
//
// The BAM scan runs as a pargo pipeline so that alignment filtering
// and 5'-end extraction keep up with the parallel BGZF decompression
// of the reader; see https://godoc.org/github.com/ExaScience/pargo
// for details of pargo pipelines.
package ribo

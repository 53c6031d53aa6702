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
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/biogo/store/interval"

	"github.com/zcoder-bio/ribotricer/bed"
	"github.com/zcoder-bio/ribotricer/internal"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

// DefaultProtocolReads is the number of reads sampled for protocol
// inference.
const DefaultProtocolReads = 20000

// A geneInterval adapts a stranded gene span to the interval tree,
// with half-open coordinates.
type geneInterval struct {
	start, end int
	id         uintptr
	strand     orf.Strand
}

// Overlap implements the method of the interval.IntOverlapper interface.
func (iv geneInterval) Overlap(b interval.IntRange) bool {
	return iv.end > b.Start && iv.start < b.End
}

// ID implements the method of the interval.IntInterface interface.
func (iv geneInterval) ID() uintptr { return iv.id }

// Range implements the method of the interval.IntInterface interface.
func (iv geneInterval) Range() interval.IntRange {
	return interval.IntRange{Start: iv.start, End: iv.end}
}

// geneTrees indexes gene spans per chromosome for overlap queries.
func geneTrees(genes []*bed.Gene) map[utils.Symbol]*interval.IntTree {
	trees := make(map[utils.Symbol]*interval.IntTree)
	for i, gene := range genes {
		tree := trees[gene.Chrom]
		if tree == nil {
			tree = &interval.IntTree{}
			trees[gene.Chrom] = tree
		}
		iv := geneInterval{
			start:  int(gene.Start),
			end:    int(gene.End) + 1,
			id:     uintptr(i),
			strand: gene.Strand,
		}
		if err := tree.Insert(iv, true); err != nil {
			log.Panic(err)
		}
	}
	for _, tree := range trees {
		tree.AdjustRanges()
	}
	return trees
}

// ProtocolStats summarizes a protocol inference sample. Same counts
// the sampled reads that mapped to the strand of their gene, Cross
// the reads that mapped opposite to it; both carry a pseudocount of
// 2, one per strand combination, so the fractions stay defined for
// empty samples.
type ProtocolStats struct {
	Sampled int
	Same    int
	Cross   int
}

// SameFraction returns the fraction of reads agreeing with the gene
// strand.
func (stats ProtocolStats) SameFraction() float64 {
	return float64(stats.Same) / float64(stats.Same+stats.Cross)
}

// CrossFraction returns the fraction of reads opposing the gene
// strand.
func (stats ProtocolStats) CrossFraction() float64 {
	return float64(stats.Cross) / float64(stats.Same+stats.Cross)
}

// InferProtocol samples up to n uniquely mapped reads from a BAM file
// against stranded gene spans and decides whether the library
// preserves the transcript strand or inverts it. Reads that overlap
// no gene, or genes on both strands, witness nothing and are skipped.
// Ties go to the forward protocol.
func InferProtocol(path string, genes []*bed.Gene, n int) (protocol Protocol, stats ProtocolStats, err error) {
	trees := geneTrees(genes)
	file, err := os.Open(path)
	if err != nil {
		return ForwardProtocol, stats, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	reader, err := bam.NewReader(file, 0)
	if err != nil {
		return ForwardProtocol, stats, err
	}
	defer func() {
		if nerr := reader.Close(); err == nil {
			err = nerr
		}
	}()
	stats.Same, stats.Cross = 2, 2
	for stats.Sampled < n {
		rec, rerr := reader.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return ForwardProtocol, stats, rerr
		}
		if rec.Ref == nil || rec.Len() <= 0 ||
			rec.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary|sam.QCFail|sam.Duplicate) != 0 ||
			!uniquelyMapped(rec) {
			continue
		}
		tree := trees[utils.Intern(rec.Ref.Name())]
		if tree == nil {
			continue
		}
		hits := tree.Get(geneInterval{start: rec.Start(), end: rec.End()})
		if len(hits) == 0 {
			continue
		}
		geneStrand := hits[0].(geneInterval).strand
		ambiguous := false
		for _, hit := range hits[1:] {
			if hit.(geneInterval).strand != geneStrand {
				ambiguous = true
				break
			}
		}
		if ambiguous {
			continue
		}
		readStrand := orf.Forward
		if rec.Flags&sam.Reverse != 0 {
			readStrand = orf.Reverse
		}
		if readStrand == geneStrand {
			stats.Same++
		} else {
			stats.Cross++
		}
		stats.Sampled++
	}
	protocol = ForwardProtocol
	if stats.Cross > stats.Same {
		protocol = ReverseProtocol
	}
	if stats.Sampled == 0 {
		log.Println("no usable reads overlapped stranded genes, assuming the forward protocol")
	}
	return protocol, stats, err
}

// CDSGeneSpans derives stranded gene spans from the annotated coding
// regions of a candidate list, for protocol inference against an
// annotation file. ORFs are grouped by gene id, or by transcript id
// when the annotation carries no gene ids; groups that disagree on
// chromosome or strand are dropped, since a read overlapping them
// could never witness the protocol unambiguously.
func CDSGeneSpans(orfs []*orf.ORF) []*bed.Gene {
	spans := make(map[string]*bed.Gene)
	bad := make(map[string]bool)
	var order []string
	for _, o := range orfs {
		if o.Category != orf.CDS {
			continue
		}
		key := o.Gene
		if key == "" {
			key = o.Transcript
		}
		if bad[key] {
			continue
		}
		gene := spans[key]
		if gene == nil {
			spans[key] = &bed.Gene{
				Chrom:  o.Chrom,
				Start:  o.Start(),
				End:    o.End(),
				Name:   key,
				Strand: o.Strand,
			}
			order = append(order, key)
			continue
		}
		if gene.Chrom != o.Chrom || gene.Strand != o.Strand {
			bad[key] = true
			continue
		}
		if o.Start() < gene.Start {
			gene.Start = o.Start()
		}
		if o.End() > gene.End {
			gene.End = o.End()
		}
	}
	genes := make([]*bed.Gene, 0, len(order))
	for _, key := range order {
		if !bad[key] {
			genes = append(genes, spans[key])
		}
	}
	return genes
}

// WriteProtocol writes the protocol inference report.
func WriteProtocol(filename string, protocol Protocol, stats ProtocolStats) {
	temp := internal.NewTempPath(filename)
	file := internal.FileCreate(temp)
	out := bufio.NewWriter(file)
	fmt.Fprintf(out, "protocol: %v\n", protocol)
	fmt.Fprintf(out, "In total %v reads checked:\n", stats.Sampled)
	fmt.Fprintf(out, "\tNumber of reads explained by \"++, --\": %v (%.4f)\n", stats.Same, stats.SameFraction())
	fmt.Fprintf(out, "\tNumber of reads explained by \"+-, -+\": %v (%.4f)\n", stats.Cross, stats.CrossFraction())
	if err := out.Flush(); err != nil {
		log.Panic(err)
	}
	internal.Close(file)
	if err := os.Rename(temp, filename); err != nil {
		log.Panic(err)
	}
}

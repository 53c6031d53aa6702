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
	"context"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/exascience/pargo/pipeline"

	"github.com/zcoder-bio/ribotricer/internal"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

const (
	minBatchSize = 512
	maxBatchSize = 16384
)

// A recordSource adapts a BAM reader to a pargo pipeline source,
// fetching batches of alignment records.
type recordSource struct {
	reader *bam.Reader
	batch  []*sam.Record
	err    error
}

// Err implements the method of the pipeline.Source interface.
func (src *recordSource) Err() error {
	if src.err == io.EOF {
		return nil
	}
	return src.err
}

// Prepare implements the method of the pipeline.Source interface.
func (src *recordSource) Prepare(_ context.Context) int {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
func (src *recordSource) Fetch(size int) int {
	if src.err != nil {
		return 0
	}
	// a fresh slice per batch, since batches are processed in parallel
	batch := make([]*sam.Record, 0, size)
	for len(batch) < size {
		rec, err := src.reader.Read()
		if err != nil {
			src.err = err
			break
		}
		batch = append(batch, rec)
	}
	src.batch = batch
	return len(batch)
}

// Data implements the method of the pipeline.Source interface.
func (src *recordSource) Data() interface{} {
	return src.batch
}

var nhTag = sam.NewTag("NH")

// uniquelyMapped reports whether a record is the single alignment of
// its read: NH == 1 when the aligner reports the tag, the MAPQ 255
// unique-mapping convention otherwise.
func uniquelyMapped(rec *sam.Record) bool {
	for _, aux := range rec.AuxFields {
		if aux.Tag() == nhTag {
			if v, ok := auxInt(aux); ok {
				return v == 1
			}
			return false
		}
	}
	return rec.MapQ == 255
}

func auxInt(aux sam.Aux) (int, bool) {
	switch v := aux.Value().(type) {
	case int8:
		return int(v), true
	case uint8:
		return int(v), true
	case int16:
		return int(v), true
	case uint16:
		return int(v), true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// A fiveEnd is the 5'-terminal genomic base of a kept alignment,
// with its mapped reference length and effective strand.
type fiveEnd struct {
	length int
	strand orf.Strand
	pos    GenomePos
}

// An endBatch carries the extracted 5' ends of one record batch
// together with the scan statistics for that batch, so that parallel
// extraction stages never share counters.
type endBatch struct {
	ends  []fiveEnd
	stats ScanStats
}

// fiveEndOf locates the 5' end of a mapped record. The read length is
// the mapped reference span, so soft-clipped bases do not count. The
// effective strand folds in the protocol: under the reverse protocol
// the mapping strand is flipped, and under the unstranded protocol
// everything collapses onto the forward strand.
func fiveEndOf(rec *sam.Record, protocol Protocol) fiveEnd {
	start := int32(rec.Start())
	end := int32(rec.End())
	reverse := rec.Flags&sam.Reverse != 0
	pos := start
	if reverse {
		pos = end - 1
	}
	strand := orf.Forward
	if reverse {
		strand = orf.Reverse
	}
	switch protocol {
	case ReverseProtocol:
		if strand == orf.Forward {
			strand = orf.Reverse
		} else {
			strand = orf.Forward
		}
	case UnstrandedProtocol:
		strand = orf.Forward
	}
	return fiveEnd{
		length: int(end - start),
		strand: strand,
		pos:    GenomePos{Chrom: utils.Intern(rec.Ref.Name()), Pos: pos},
	}
}

// extractEnds returns a pargo pipeline.Filter that classifies slices
// of alignment records and extracts the 5' ends of the records that
// qualify: mapped, primary, not failed or duplicated, and uniquely
// mapped.
func extractEnds(protocol Protocol) pipeline.Filter {
	return func(_ *pipeline.Pipeline, _ pipeline.NodeKind, _ *int) (receiver pipeline.Receiver, _ pipeline.Finalizer) {
		receiver = func(_ int, data interface{}) interface{} {
			records := data.([]*sam.Record)
			batch := &endBatch{ends: make([]fiveEnd, 0, len(records))}
			for _, rec := range records {
				batch.stats.Total++
				switch {
				case rec.Ref == nil || rec.Flags&sam.Unmapped != 0 || rec.Len() <= 0:
					batch.stats.Unmapped++
				case rec.Flags&(sam.Secondary|sam.Supplementary) != 0:
					batch.stats.Secondary++
				case rec.Flags&(sam.QCFail|sam.Duplicate) != 0:
					batch.stats.Failed++
				case !uniquelyMapped(rec):
					batch.stats.Multimapped++
				default:
					batch.stats.Kept++
					batch.ends = append(batch.ends, fiveEndOf(rec, protocol))
				}
			}
			return batch
		}
		return
	}
}

// SplitByLength scans a BAM file and tallies the 5' ends of the
// qualifying alignments, split by read length and effective strand
// under the given protocol. It also returns the number of kept reads
// per length and the scan statistics.
func SplitByLength(path string, protocol Protocol) (tallies LengthTallies, lengths map[int]int, stats ScanStats, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, stats, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	reader, err := bam.NewReader(file, 0)
	if err != nil {
		return nil, nil, stats, err
	}
	defer func() {
		if nerr := reader.Close(); err == nil {
			err = nerr
		}
	}()
	tallies = make(LengthTallies)
	lengths = make(map[int]int)
	var p pipeline.Pipeline
	p.Source(&recordSource{reader: reader})
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, extractEnds(protocol)),
		pipeline.Seq(pipeline.Receive(func(_ int, data interface{}) interface{} {
			batch := data.(*endBatch)
			stats.add(batch.stats)
			for _, end := range batch.ends {
				strandTallies := tallies[end.length]
				if strandTallies == nil {
					strandTallies = NewStrandTallies()
					tallies[end.length] = strandTallies
				}
				strandTallies[end.strand][end.pos]++
				lengths[end.length]++
			}
			return data
		})),
	)
	internal.RunPipeline(&p)
	return tallies, lengths, stats, err
}

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
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

func testReference(t *testing.T, name string, length int) *sam.Reference {
	ref, err := sam.NewReference(name, "", "", length, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

// alignment builds a mapped test record; cigar "" makes it unmapped.
func alignment(t *testing.T, name string, ref *sam.Reference, pos int, cigar string, flags sam.Flags, mapQ byte, nh int) *sam.Record {
	rec := &sam.Record{
		Name:    name,
		Flags:   flags,
		MapQ:    mapQ,
		MatePos: -1,
		TempLen: 0,
	}
	if cigar == "" {
		rec.Pos = -1
		return rec
	}
	ops, err := sam.ParseCigar([]byte(cigar))
	if err != nil {
		t.Fatal(err)
	}
	rec.Ref = ref
	rec.Pos = pos
	rec.Cigar = ops
	readLen := 0
	for _, op := range ops {
		if op.Type().Consumes().Query != 0 {
			readLen += op.Len()
		}
	}
	seq := make([]byte, readLen)
	qual := make([]byte, readLen)
	for i := range seq {
		seq[i] = 'A'
		qual[i] = 40
	}
	rec.Seq = sam.NewSeq(seq)
	rec.Qual = qual
	if nh > 0 {
		aux, err := sam.NewAux(sam.NewTag("NH"), nh)
		if err != nil {
			t.Fatal(err)
		}
		rec.AuxFields = []sam.Aux{aux}
	}
	return rec
}

func writeTestBAM(t *testing.T, filename string, refs []*sam.Reference, records []*sam.Record) {
	header, err := sam.NewHeader(nil, refs)
	if err != nil {
		t.Fatal(err)
	}
	file, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	writer, err := bam.NewWriter(file, header, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range records {
		if err := writer.Write(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
}

// scanBAM writes the standard scan fixture: three forward footprints,
// one reverse, one soft-clipped, and one record per drop reason.
func scanBAM(t *testing.T) string {
	chr1 := testReference(t, "chr1", 1000)
	records := []*sam.Record{
		alignment(t, "r1", chr1, 100, "28M", 0, 255, 0),
		alignment(t, "r2", chr1, 103, "28M", 0, 255, 0),
		alignment(t, "r3", chr1, 150, "28M", sam.Reverse, 255, 0),
		alignment(t, "r4", chr1, 180, "28M", sam.Secondary, 255, 0),
		alignment(t, "r5", nil, 0, "", sam.Unmapped, 0, 0),
		alignment(t, "r6", chr1, 190, "28M", 0, 255, 2),
		alignment(t, "r7", chr1, 200, "29M", 0, 30, 1),
		alignment(t, "r8", chr1, 220, "28M", sam.Duplicate, 255, 0),
		alignment(t, "r9", chr1, 300, "2S26M", 0, 255, 0),
	}
	filename := filepath.Join(t.TempDir(), "scan.bam")
	writeTestBAM(t, filename, []*sam.Reference{chr1}, records)
	return filename
}

func pos(chrom string, p int32) GenomePos {
	return GenomePos{Chrom: utils.Intern(chrom), Pos: p}
}

func tallyEqual(a, b Tally) bool {
	if len(a) != len(b) {
		return false
	}
	for p, count := range a {
		if b[p] != count {
			return false
		}
	}
	return true
}

func TestSplitByLength(t *testing.T) {
	tallies, lengths, stats, err := SplitByLength(scanBAM(t), ForwardProtocol)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 9 || stats.Kept != 5 || stats.Unmapped != 1 ||
		stats.Secondary != 1 || stats.Failed != 1 || stats.Multimapped != 1 {
		t.Error("scan stats failed")
	}
	if len(tallies) != 3 {
		t.Error("scan length count failed")
	}
	if !tallyEqual(tallies[28][orf.Forward], Tally{pos("chr1", 100): 1, pos("chr1", 103): 1}) {
		t.Error("forward 5' ends failed")
	}
	if !tallyEqual(tallies[28][orf.Reverse], Tally{pos("chr1", 177): 1}) {
		t.Error("reverse 5' end failed")
	}
	if !tallyEqual(tallies[29][orf.Forward], Tally{pos("chr1", 200): 1}) {
		t.Error("NH unique 5' end failed")
	}
	if !tallyEqual(tallies[26][orf.Forward], Tally{pos("chr1", 300): 1}) {
		t.Error("soft clip span failed")
	}
	if lengths[28] != 3 || lengths[29] != 1 || lengths[26] != 1 {
		t.Error("length distribution failed")
	}
}

func TestSplitByLengthReverseProtocol(t *testing.T) {
	tallies, _, _, err := SplitByLength(scanBAM(t), ReverseProtocol)
	if err != nil {
		t.Fatal(err)
	}
	if !tallyEqual(tallies[28][orf.Reverse], Tally{pos("chr1", 100): 1, pos("chr1", 103): 1}) {
		t.Error("reverse protocol flip failed")
	}
	if !tallyEqual(tallies[28][orf.Forward], Tally{pos("chr1", 177): 1}) {
		t.Error("reverse protocol flip to forward failed")
	}
}

func TestSplitByLengthUnstranded(t *testing.T) {
	tallies, _, _, err := SplitByLength(scanBAM(t), UnstrandedProtocol)
	if err != nil {
		t.Fatal(err)
	}
	expected := Tally{pos("chr1", 100): 1, pos("chr1", 103): 1, pos("chr1", 177): 1}
	if !tallyEqual(tallies[28][orf.Forward], expected) {
		t.Error("unstranded fold failed")
	}
	if len(tallies[28][orf.Reverse]) != 0 {
		t.Error("unstranded reverse tally not empty")
	}
}

func TestSplitByLengthMissingFile(t *testing.T) {
	if _, _, _, err := SplitByLength(filepath.Join(t.TempDir(), "absent.bam"), ForwardProtocol); err == nil {
		t.Error("missing BAM file not reported")
	}
}

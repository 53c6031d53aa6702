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

package orf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zcoder-bio/ribotricer/utils"
)

func orfsEqual(orfs1, orfs2 []*ORF) bool {
	if len(orfs1) != len(orfs2) {
		return false
	}
	for i, o1 := range orfs1 {
		o2 := orfs2[i]
		if o1.ID != o2.ID || o1.Category != o2.Category ||
			o1.Transcript != o2.Transcript || o1.Gene != o2.Gene ||
			o1.Chrom != o2.Chrom || o1.Strand != o2.Strand ||
			!intervalsEqual(o1.Intervals, o2.Intervals) {
			return false
		}
	}
	return true
}

func TestParseCoordinates(t *testing.T) {
	intervals, ok := ParseCoordinates("120-150,201-330")
	if !ok || !intervalsEqual(intervals, []Interval{{120, 150}, {201, 330}}) {
		t.Error("ParseCoordinates failed")
	}
	intervals, ok = ParseCoordinates("201-330,120-150")
	if !ok || !intervalsEqual(intervals, []Interval{{120, 150}, {201, 330}}) {
		t.Error("ParseCoordinates out-of-order failed")
	}
	if _, ok := ParseCoordinates(""); ok {
		t.Error("ParseCoordinates empty failed")
	}
	if _, ok := ParseCoordinates("120"); ok {
		t.Error("ParseCoordinates missing dash failed")
	}
	if _, ok := ParseCoordinates("150-120"); ok {
		t.Error("ParseCoordinates inverted pair failed")
	}
	if _, ok := ParseCoordinates("a-150"); ok {
		t.Error("ParseCoordinates bad start failed")
	}
	if _, ok := ParseCoordinates("120-"); ok {
		t.Error("ParseCoordinates bad end failed")
	}
}

func TestAppendCoordinates(t *testing.T) {
	s := string(AppendCoordinates(nil, []Interval{{120, 150}, {201, 330}}))
	if s != "120-150,201-330" {
		t.Error("AppendCoordinates failed")
	}
}

func TestAnnotationRoundTrip(t *testing.T) {
	orfs := []*ORF{
		{
			ID:         "tx1_100_219_40",
			Category:   CDS,
			Transcript: "tx1",
			Gene:       "g1",
			Chrom:      utils.Intern("chr1"),
			Strand:     Forward,
			Intervals:  []Interval{{100, 119}, {200, 219}},
		},
		{
			ID:         "tx2_50_109_60",
			Category:   UORF,
			Transcript: "tx2",
			Gene:       "g2",
			Chrom:      utils.Intern("chr2"),
			Strand:     Reverse,
			Intervals:  []Interval{{50, 109}},
		},
	}
	filename := filepath.Join(t.TempDir(), "candidate_orfs.tsv")
	WriteAnnotation(filename, orfs)
	read, skipped := ReadAnnotation(filename)
	if skipped != 0 {
		t.Error("annotation round trip skipped rows")
	}
	if !orfsEqual(orfs, read) {
		t.Error("annotation round trip failed")
	}
}

func TestReadAnnotationSkipsMalformed(t *testing.T) {
	content := AnnotationHeader + "\n" +
		"tx1_100_219_40\tCDS\ttx1\tg1\tchr1\t+\t100-119,200-219\n" +
		"short\trow\n" +
		"tx2_0_9_10\tCDS\ttx2\tg2\tchr1\t*\t0-9\n" +
		"tx3_0_9_10\tCDS\ttx3\tg3\tchr1\t+\t9-0\n" +
		"tx4_0_9_10\tdORF\ttx4\tg4\tchr1\t-\t0-9\n"
	filename := filepath.Join(t.TempDir(), "candidate_orfs.tsv")
	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	orfs, skipped := ReadAnnotation(filename)
	if skipped != 3 {
		t.Error("malformed annotation rows not counted")
	}
	if len(orfs) != 2 || orfs[0].ID != "tx1_100_219_40" || orfs[1].ID != "tx4_0_9_10" {
		t.Error("well-formed annotation rows not kept")
	}
}

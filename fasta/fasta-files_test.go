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

package fasta

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFasta(t *testing.T) {
	content := ">chr1 assembly:test\n" +
		"acgTACGT\n" +
		"acgt\n" +
		"\n" +
		">chr2\n" +
		"NRYKacgt\n"
	filename := filepath.Join(t.TempDir(), "genome.fa")
	if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	fasta := ParseFasta(filename, nil)
	if len(fasta) != 2 {
		t.Error("ParseFasta contig count failed")
	}
	if string(fasta["chr1"]) != "ACGTACGTACGT" {
		t.Error("ParseFasta chr1 failed")
	}
	if string(fasta["chr2"]) != "NNNNACGT" {
		t.Error("ParseFasta chr2 failed")
	}
}

func TestParseGenomeWithFai(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "genome.fa")
	if err := os.WriteFile(filename, []byte(">chr1\nACGTACGT\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename+".fai", []byte("chr1\t8\t6\t8\t9\n"), 0666); err != nil {
		t.Fatal(err)
	}
	fasta := ParseGenome(filename)
	if string(fasta["chr1"]) != "ACGTACGT" {
		t.Error("ParseGenome with fai failed")
	}
}

func TestParseFai(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "genome.fa.fai")
	if err := os.WriteFile(filename, []byte("chr1\t248956422\t112\t70\t71\n"), 0666); err != nil {
		t.Fatal(err)
	}
	fai := ParseFai(filename)
	ref, ok := fai["chr1"]
	if !ok || ref.Length != 248956422 || ref.Offset != 112 ||
		ref.LineBases != 70 || ref.LineWidth != 71 {
		t.Error("ParseFai failed")
	}
}

func TestReverseComplement(t *testing.T) {
	if string(ReverseComplement([]byte("ATGGCC"))) != "GGCCAT" {
		t.Error("ReverseComplement failed")
	}
	if string(ReverseComplement([]byte("ANT"))) != "ANT" {
		t.Error("ReverseComplement with N failed")
	}
	if len(ReverseComplement(nil)) != 0 {
		t.Error("empty ReverseComplement failed")
	}
}

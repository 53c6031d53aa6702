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

package bed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

const bedContent = "track name=genes\n" +
	"# comment\n" +
	"chr1\t100\t200\tg1\t0\t+\n" +
	"chr1\t300\t400\tg2\t0\t.\n" +
	"chr2\t50\t80\tg3\t0\t-\n"

func checkGenes(t *testing.T, genes []*Gene, skipped int) {
	if skipped != 1 {
		t.Error("strandless BED row not counted")
	}
	if len(genes) != 2 {
		t.Error("BED gene count failed")
		return
	}
	g := genes[0]
	if g.Chrom != utils.Intern("chr1") || g.Start != 100 || g.End != 199 ||
		g.Name != "g1" || g.Strand != orf.Forward {
		t.Error("BED gene 1 failed")
	}
	g = genes[1]
	if g.Chrom != utils.Intern("chr2") || g.Start != 50 || g.End != 79 ||
		g.Name != "g3" || g.Strand != orf.Reverse {
		t.Error("BED gene 2 failed")
	}
	if g.Len() != 30 {
		t.Error("BED gene length failed")
	}
}

func TestReadGenes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "genes.bed")
	if err := os.WriteFile(filename, []byte(bedContent), 0666); err != nil {
		t.Fatal(err)
	}
	genes, skipped := ReadGenes(filename)
	checkGenes(t, genes, skipped)
}

func TestReadGenesGzip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "genes.bed.gz")
	file, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte(bedContent)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
	genes, skipped := ReadGenes(filename)
	checkGenes(t, genes, skipped)
}

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
	"bufio"
	"log"
	"strings"

	"github.com/zcoder-bio/ribotricer/internal"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

// ReadGenes parses gene spans from a BED file with at least six
// columns. The file may be gzip compressed; track, browser, and
// comment lines are tolerated. Rows without a definite strand are
// skipped and counted; a file without a strand column at all cannot
// serve protocol inference and is rejected.
func ReadGenes(filename string) (genes []*Gene, skipped int) {
	file := internal.OpenMaybeGzip(filename)
	defer internal.Close(file)

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		data := strings.Split(line, "\t")
		if len(data) < 6 {
			log.Panicf("BED line with %v columns in %v, need at least 6 for strands", len(data), filename)
		}
		strand := data[5]
		if strand != "+" && strand != "-" {
			skipped++
			continue
		}
		start := int32(internal.ParseInt(data[1], 10, 32))
		end := int32(internal.ParseInt(data[2], 10, 32))
		if end <= start {
			skipped++
			continue
		}
		genes = append(genes, &Gene{
			Chrom:  utils.Intern(data[0]),
			Start:  start,
			End:    end - 1,
			Name:   data[3],
			Strand: orf.Strand(strand[0]),
		})
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	return genes, skipped
}

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

// Package gtf implements reading transcript annotations from GTF
// files. Only the exon and CDS features are retained; coordinates are
// converted from the 1-based inclusive file convention to 0-based
// inclusive.
package gtf

import (
	"bufio"
	"log"
	"strconv"
	"strings"

	"github.com/zcoder-bio/ribotricer/bed"
	"github.com/zcoder-bio/ribotricer/internal"
	"github.com/zcoder-bio/ribotricer/orf"
	"github.com/zcoder-bio/ribotricer/utils"
)

// A Record is one retained GTF feature line.
type Record struct {
	Chrom      utils.Symbol
	Feature    string
	Start, End int32
	Strand     orf.Strand
	Attributes utils.StringMap
}

// TranscriptID returns the transcript_id attribute of the record.
func (r *Record) TranscriptID() string {
	return r.Attributes["transcript_id"]
}

// GeneID returns the gene_id attribute of the record.
func (r *Record) GeneID() string {
	return r.Attributes["gene_id"]
}

func parseAttributes(s string) utils.StringMap {
	attributes := make(utils.StringMap)
	for _, field := range strings.Split(s, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		space := strings.IndexByte(field, ' ')
		if space <= 0 {
			continue
		}
		value := strings.TrimSpace(field[space+1:])
		value = strings.Trim(value, "\"")
		attributes.SetUniqueEntry(field[:space], value)
	}
	return attributes
}

func parseRecord(line string) (*Record, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, false
	}
	strand := fields[6]
	if strand != "+" && strand != "-" {
		return nil, false
	}
	start, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil || start < 1 {
		return nil, false
	}
	end, err := strconv.ParseInt(fields[4], 10, 32)
	if err != nil || end < start {
		return nil, false
	}
	attributes := parseAttributes(fields[8])
	if attributes["transcript_id"] == "" || attributes["gene_id"] == "" {
		return nil, false
	}
	return &Record{
		Chrom:      utils.Intern(fields[0]),
		Feature:    fields[2],
		Start:      int32(start - 1),
		End:        int32(end - 1),
		Strand:     orf.Strand(strand[0]),
		Attributes: attributes,
	}, true
}

// Read parses a GTF file, keeping exon and CDS records. Comment lines
// and features of other types are ignored; lines that cannot be
// parsed are skipped and counted, never fatal. The file may be gzip
// compressed.
func Read(filename string) (records []*Record, skipped int) {
	file := internal.OpenMaybeGzip(filename)
	defer internal.Close(file)

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feature := featureOf(line)
		if feature != "exon" && feature != "CDS" {
			continue
		}
		record, ok := parseRecord(line)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	return records, skipped
}

// featureOf extracts the feature column without splitting the whole
// line, so that the bulk of a large GTF is never tokenized.
func featureOf(line string) string {
	first := strings.IndexByte(line, '\t')
	if first < 0 {
		return ""
	}
	second := strings.IndexByte(line[first+1:], '\t')
	if second < 0 {
		return ""
	}
	rest := line[first+1+second+1:]
	third := strings.IndexByte(rest, '\t')
	if third < 0 {
		return ""
	}
	return rest[:third]
}

// A Transcript is the exonic structure of one annotated transcript,
// with its coding region when present.
type Transcript struct {
	ID     string
	Gene   string
	Chrom  utils.Symbol
	Strand orf.Strand
	Exons  []orf.Interval
	CDS    []orf.Interval
}

// Transcripts assembles transcript models from GTF records, in order
// of first appearance. Exon and CDS interval lists are sorted by
// start and merged where they overlap.
func Transcripts(records []*Record) []*Transcript {
	index := make(map[string]*Transcript)
	var transcripts []*Transcript
	for _, record := range records {
		id := record.TranscriptID()
		transcript := index[id]
		if transcript == nil {
			transcript = &Transcript{
				ID:     id,
				Gene:   record.GeneID(),
				Chrom:  record.Chrom,
				Strand: record.Strand,
			}
			index[id] = transcript
			transcripts = append(transcripts, transcript)
		}
		interval := orf.Interval{Start: record.Start, End: record.End}
		switch record.Feature {
		case "exon":
			transcript.Exons = append(transcript.Exons, interval)
		case "CDS":
			transcript.CDS = append(transcript.CDS, interval)
		}
	}
	for _, transcript := range transcripts {
		orf.SortByStart(transcript.Exons)
		transcript.Exons = orf.Flatten(transcript.Exons)
		orf.SortByStart(transcript.CDS)
		transcript.CDS = orf.Flatten(transcript.CDS)
	}
	return transcripts
}

// GeneSpans collapses records into one stranded span per gene, in
// order of first appearance, for protocol inference. Genes whose
// records disagree on strand or chromosome are dropped: a read
// overlapping them could never witness the protocol unambiguously.
func GeneSpans(records []*Record) []*bed.Gene {
	index := make(map[string]*bed.Gene)
	bad := make(map[string]bool)
	var order []string
	for _, record := range records {
		id := record.GeneID()
		if bad[id] {
			continue
		}
		gene := index[id]
		if gene == nil {
			index[id] = &bed.Gene{
				Chrom:  record.Chrom,
				Start:  record.Start,
				End:    record.End,
				Name:   id,
				Strand: record.Strand,
			}
			order = append(order, id)
			continue
		}
		if gene.Chrom != record.Chrom || gene.Strand != record.Strand {
			bad[id] = true
			continue
		}
		if record.Start < gene.Start {
			gene.Start = record.Start
		}
		if record.End > gene.End {
			gene.End = record.End
		}
	}
	genes := make([]*bed.Gene, 0, len(order))
	for _, id := range order {
		if !bad[id] {
			genes = append(genes, index[id])
		}
	}
	return genes
}

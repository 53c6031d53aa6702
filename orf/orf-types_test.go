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
	"testing"

	"github.com/zcoder-bio/ribotricer/utils"
)

func intervalsEqual(intervals1, intervals2 []Interval) bool {
	if len(intervals1) != len(intervals2) {
		return false
	}
	for i, interval1 := range intervals1 {
		if interval1 != intervals2[i] {
			return false
		}
	}
	return true
}

func TestIntervalLen(t *testing.T) {
	if (Interval{Start: 200, End: 209}).Len() != 10 {
		t.Error("Interval.Len failed")
	}
	if (Interval{Start: 5, End: 5}).Len() != 1 {
		t.Error("single-base Interval.Len failed")
	}
}

func TestFlatten(t *testing.T) {
	if Flatten(nil) != nil {
		t.Error("empty Flatten failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {3, 4}}), []Interval{{2, 4}}) {
		t.Error("Flatten 1 failed")
	}
	// Directly adjacent intervals merge as well.
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {4, 5}}), []Interval{{2, 5}}) {
		t.Error("Flatten 2 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {5, 6}}), []Interval{{2, 3}, {5, 6}}) {
		t.Error("Flatten 3 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 4}, {3, 5}, {4, 6}}), []Interval{{2, 6}}) {
		t.Error("Flatten 4 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 4}, {3, 5}, {4, 6}, {8, 9}}), []Interval{{2, 6}, {8, 9}}) {
		t.Error("Flatten 5 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {2, 5}, {2, 4}, {2, 3}, {2, 6}, {2, 7}}), []Interval{{2, 7}}) {
		t.Error("Flatten 6 failed")
	}
}

func TestSortByStart(t *testing.T) {
	intervals := []Interval{{30, 40}, {2, 9}, {12, 20}}
	SortByStart(intervals)
	if !intervalsEqual(intervals, []Interval{{2, 9}, {12, 20}, {30, 40}}) {
		t.Error("SortByStart failed")
	}
}

func TestORFExtent(t *testing.T) {
	o := &ORF{
		ID:        "tx1_100_219_40",
		Category:  CDS,
		Chrom:     utils.Intern("chr1"),
		Strand:    Forward,
		Intervals: []Interval{{100, 119}, {200, 219}},
	}
	if o.Len() != 40 {
		t.Error("ORF.Len failed")
	}
	if o.Start() != 100 {
		t.Error("ORF.Start failed")
	}
	if o.End() != 219 {
		t.Error("ORF.End failed")
	}
}

func TestNewID(t *testing.T) {
	if NewID("tx1", 100, 219, 40) != "tx1_100_219_40" {
		t.Error("NewID failed")
	}
}

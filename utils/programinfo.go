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

package utils

const (
	// ProgramName is "ribotricer"
	ProgramName = "ribotricer"

	// ProgramVersion is the version of the ribotricer binary
	ProgramVersion = "1.1.0"

	// ProgramURL is the repository for the ribotricer source code
	ProgramURL = "http://github.com/zcoder-bio/ribotricer"
)

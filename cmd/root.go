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

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/zcoder-bio/ribotricer/utils"
)

var (
	logPath     string
	nolog       bool
	timed       bool
	profile     string
	nrOfThreads int
)

var rootCmd = &cobra.Command{
	Use:     utils.ProgramName,
	Version: utils.ProgramVersion,
	Short:   "detect actively translating ORFs from ribosome profiling data",
	Long: `ribotricer detects actively translating open reading frames from
ribosome profiling data.

Candidate ORFs are first enumerated from a transcriptome annotation and
a reference genome with prepare-orfs. detect-orfs then profiles the
ribosome protected fragments of a sample against the candidates and
reports the ORFs whose codon periodicity indicates active translation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if nrOfThreads > 0 {
			runtime.GOMAXPROCS(nrOfThreads)
		}
		if !nolog {
			setLogOutput(logPath)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "",
		"directory to write the log file below (default $HOME)")
	rootCmd.PersistentFlags().BoolVar(&nolog, "nolog", false,
		"do not create a log file")
	rootCmd.PersistentFlags().BoolVar(&timed, "timed", false,
		"measure the runtime of each phase")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "",
		"write a CPU profile per phase with this filename prefix")
	rootCmd.PersistentFlags().IntVar(&nrOfThreads, "nthreads", 0,
		"number of worker threads (default all logical CPUs)")
	rootCmd.AddCommand(prepareOrfsCmd, detectOrfsCmd, inferProtocolCmd)
}

// Execute dispatches to the selected subcommand.
func Execute() error {
	return rootCmd.Execute()
}

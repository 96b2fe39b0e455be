/*
Command metrics-fix sets the vertical metrics of a font.

Ascent and descent are given in percent of the em, the line gap in font units.
Tables 'hhea' and 'OS/2' receive identical values, and flag USE_TYPO_METRICS
is set, so that all rendering engines agree on the line height of the font.

	metrics-fix [--ascent 90] [--descent 22] [--line-gap 0] [-o out.ttf] font.ttf
	metrics-fix --list font.woff2

WOFF2 input is decompressed and written uncompressed, unless the output file
name has extension .woff2.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/tdewolff/argp"
)

// Fix holds the command line options.
type Fix struct {
	Output  string  `short:"o" desc:"Output file (default: input with suffix -fixed)"`
	Ascent  float64 `default:"90" desc:"Ascent in percent of the em"`
	Descent float64 `default:"22" desc:"Descent in percent of the em"`
	LineGap float64 `name:"line-gap" default:"0" desc:"Line gap in font units"`
	Verbose bool    `short:"v" desc:"Verbose output"`
	List    bool    `short:"l" desc:"List the current metrics and exit"`
	Verify  bool    `desc:"Read the output back and check its metrics"`
	NoSums  bool    `name:"no-checksums" desc:"Do not recompute checksums after patching"`
	Input   string  `index:"0" desc:"Input font (.ttf, .otf, .woff, .woff2)"`
}

func main() {
	report.InitDisplay()
	root := argp.NewCmd(&Fix{}, "Set the vertical metrics of a font consistently")
	root.Parse()
	root.PrintHelp()
}

// Run is called by argp after parsing the command line.
func (cmd *Fix) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if err := report.SetupTracing(cmd.Verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	console := report.NewConsole(cmd.Verbose)
	opts := pipeline.Options{
		Input:     cmd.Input,
		Output:    cmd.Output,
		Percent:   metrics.Percent{Ascent: cmd.Ascent, Descent: cmd.Descent, LineGap: cmd.LineGap},
		Verbose:   cmd.Verbose,
		ListOnly:  cmd.List,
		Verify:    cmd.Verify,
		Checksums: !cmd.NoSums,
	}
	if _, err := pipeline.Run(opts, console); err != nil {
		console.Fatal(err)
		os.Exit(1)
	}
	return nil
}

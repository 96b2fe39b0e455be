/*
Command woff2-compress converts a TrueType or OpenType font to WOFF2.

	woff2-compress [-o out.woff2] font.ttf

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/tdewolff/argp"
)

// Compress holds the command line options.
type Compress struct {
	Output  string `short:"o" desc:"Output file (default: input with extension .woff2)"`
	Verbose bool   `short:"v" desc:"Verbose output"`
	Input   string `index:"0" desc:"Input font (.ttf or .otf)"`
}

func main() {
	report.InitDisplay()
	root := argp.NewCmd(&Compress{}, "Compress a font to WOFF2")
	root.Parse()
	root.PrintHelp()
}

// Run is called by argp after parsing the command line.
func (cmd *Compress) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if err := report.SetupTracing(cmd.Verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	console := report.NewConsole(cmd.Verbose)
	opts := pipeline.CompressOptions{Input: cmd.Input, Output: cmd.Output}
	if _, err := pipeline.Compress(opts, console); err != nil {
		console.Fatal(err)
		os.Exit(1)
	}
	return nil
}

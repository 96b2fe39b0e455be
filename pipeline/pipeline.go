/*
Package pipeline sequences a metrics editing run over a single font file.

A run passes through the states

	Loaded → (Decompressed) → Inspected → [list only: stop] → MetricsComputed
	       → Edited → Serialized → Patched → (Compressed) → Written → (Verified)

and ends in Failed if any stage returns a fatal error. Editing always works on
the uncompressed SFNT form of a font. The binary patch of table 'hhea' is
applied unconditionally after serialization.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/container"
	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otedit"
	"github.com/npillmayer/vmetrics/otpatch"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/transcode"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// State is a stage of a pipeline run.
type State int

const (
	Loaded State = iota
	Decompressed
	Inspected
	MetricsComputed
	Edited
	Serialized
	Patched
	Compressed
	Written
	Verified
	Failed
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Decompressed:
		return "Decompressed"
	case Inspected:
		return "Inspected"
	case MetricsComputed:
		return "MetricsComputed"
	case Edited:
		return "Edited"
	case Serialized:
		return "Serialized"
	case Patched:
		return "Patched"
	case Compressed:
		return "Compressed"
	case Written:
		return "Written"
	case Verified:
		return "Verified"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configure a run.
type Options struct {
	Input     string          // path of the font to edit
	Output    string          // output path; derived from Input if empty
	Percent   metrics.Percent // requested metrics
	Verbose   bool            // trace the binary patch
	ListOnly  bool            // report the current metrics and stop
	Verify    bool            // read the written file back and compare
	Checksums bool            // recompute checksums after patching
}

// DefaultOptions returns options for editing input with the default metrics.
func DefaultOptions(input string) Options {
	return Options{
		Input:     input,
		Percent:   metrics.DefaultPercent(),
		Checksums: true,
	}
}

// Result describes the outcome of a run.
type Result struct {
	States       []State             // states visited, in order
	Name         string              // display name of the font
	Format       transcode.Format    // format of the uncompressed font, TrueType or OpenType
	Before       otquery.MetricsInfo // metrics found in the input
	Metrics      metrics.Metrics     // metrics written
	Edit         otedit.Report       // details of the structured edit
	Warnings     []vmetrics.Warning  // non-fatal issues, in order of occurrence
	OutputPath   string
	OutputFormat transcode.Format
	Size         int    // size of the written file in bytes
	CSS          string // @font-face snippet for the written file
}

// Reached is true if the run has visited state s.
func (r Result) Reached(s State) bool {
	for _, st := range r.States {
		if st == s {
			return true
		}
	}
	return false
}

// Final returns the last state of the run.
func (r Result) Final() State {
	if len(r.States) == 0 {
		return Failed
	}
	return r.States[len(r.States)-1]
}

// run carries the mutable state of a single pipeline run.
type run struct {
	opts     Options
	reporter Reporter
	result   Result
	warnings vmetrics.Warnings
}

func (r *run) enter(s State) {
	tracer().Debugf("pipeline state %s", s)
	r.result.States = append(r.result.States, s)
}

func (r *run) warn(ws ...vmetrics.Warning) {
	for _, w := range ws {
		r.reporter.Warn(w)
	}
	r.warnings.Merge(ws)
}

func (r *run) warnError(err error) {
	before := r.warnings.Len()
	r.warnings.AddError(err)
	for _, w := range r.warnings.List()[before:] {
		r.reporter.Warn(w)
	}
}

func (r *run) fail(err error) (Result, error) {
	tracer().Errorf("pipeline failed: %v", err)
	r.enter(Failed)
	r.result.Warnings = r.warnings.List()
	return r.result, err
}

// Run executes a metrics editing run. If reporter is nil, progress is
// traced only.
//
// Fatal errors end the run in state Failed and are returned together with
// the partial result. A list-only run ends in state Inspected and never
// touches the file system besides reading the input.
func Run(opts Options, reporter Reporter) (Result, error) {
	if reporter == nil {
		reporter = TraceReporter{}
	}
	r := &run{opts: opts, reporter: reporter}
	ff, err := fontload.ReadFontFile(opts.Input)
	if err != nil {
		return r.fail(err)
	}
	r.enter(Loaded)
	sfntBytes, err := transcode.ToSFNT(ff.Binary)
	if err != nil {
		return r.fail(err)
	}
	if ff.Format.IsCompressed() {
		r.enter(Decompressed)
	}
	r.result.Format = transcode.Detect(sfntBytes)
	font, ws, err := container.Load(sfntBytes)
	if err != nil {
		return r.fail(err)
	}
	r.warn(ws...)
	before, ws, err := otquery.ReadMetrics(font)
	if err != nil {
		return r.fail(err)
	}
	r.result.Name = fontload.FontName(sfntBytes, filepath.Base(opts.Input))
	r.result.Before = before
	reporter.Inspected(r.result.Name, opts.Input, before)
	r.warn(ws...)
	r.enter(Inspected)
	if opts.ListOnly {
		r.result.Warnings = r.warnings.List()
		return r.result, nil
	}
	//
	out := opts.Output
	if out == "" {
		out = DefaultOutputPath(opts.Input, font.IsCFF())
	}
	outFormat, err := outputFormat(out, font.IsCFF())
	if err != nil {
		return r.fail(err)
	}
	m, err := metrics.Compute(before.UnitsPerEm, opts.Percent)
	if err != nil {
		return r.fail(err)
	}
	r.result.Metrics = m
	reporter.Computed(opts.Percent, m)
	r.enter(MetricsComputed)
	//
	report, ws, err := otedit.Apply(font, m)
	if err != nil {
		return r.fail(err)
	}
	r.result.Edit = report
	r.warn(ws...)
	r.enter(Edited)
	b, err := font.Serialize()
	if err != nil {
		return r.fail(err)
	}
	r.enter(Serialized)
	b, err = otpatch.Apply(b, m, otpatch.Options{Checksums: opts.Checksums, Verbose: opts.Verbose})
	if err != nil { // patch failures leave b unchanged
		r.warnError(err)
	}
	r.enter(Patched)
	if outFormat == transcode.WOFF2 {
		if b, err = transcode.Compress(b); err != nil {
			return r.fail(err)
		}
		r.enter(Compressed)
	}
	if err = writeFile(out, b); err != nil {
		return r.fail(err)
	}
	r.result.OutputPath, r.result.OutputFormat, r.result.Size = out, outFormat, len(b)
	reporter.Written(out, len(b), outFormat)
	r.enter(Written)
	r.result.CSS = CSS(r.result.Name, out, outFormat, m, before.UnitsPerEm)
	reporter.CSS(r.result.CSS)
	if opts.Verify {
		ws := Verify(b, m, opts.Checksums && outFormat != transcode.WOFF2)
		r.warn(ws...)
		if len(ws) == 0 {
			r.enter(Verified)
		}
	}
	r.result.Warnings = r.warnings.List()
	return r.result, nil
}

// writeFile writes the output font. Failures are reported as SerializationFailed.
func writeFile(path string, b []byte) error {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return vmetrics.Wrap(vmetrics.SerializationFailed, "", fmt.Errorf("writing output: %w", err))
	}
	tracer().Infof("wrote %d bytes to %s", len(b), path)
	return nil
}

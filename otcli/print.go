package main

import (
	"fmt"

	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otedit"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/npillmayer/vmetrics/transcode"
	"github.com/pterm/pterm"
)

// preview computes the tables an edit with the current settings would produce.
func (intp *Intp) preview() (metrics.Metrics, otquery.MetricsInfo, error) {
	before := intp.result.Before
	m, err := metrics.Compute(before.UnitsPerEm, intp.percent)
	if err != nil {
		return m, before, err
	}
	hhea, os2 := otedit.Derive(m, before.HHea, before.OS2)
	return m, otquery.MetricsInfo{UnitsPerEm: before.UnitsPerEm, HHea: hhea, OS2: os2}, nil
}

func previewOp(intp *Intp, op *Op) (error, bool) {
	if intp.path == "" {
		return errNoFont, false
	}
	m, after, err := intp.preview()
	if err != nil {
		return err, false
	}
	intp.console.Computed(intp.percent, m)
	pterm.DefaultTable.WithHasHeader().WithData(report.MetricsTable(after)).Render()
	if !after.Consistent() {
		pterm.Warning.Println("font lacks a metrics table, tables will not be consistent")
	}
	return nil, false
}

func writeOp(intp *Intp, op *Op) (error, bool) {
	if intp.path == "" {
		return errNoFont, false
	}
	opts := pipeline.DefaultOptions(intp.path)
	opts.Percent = intp.percent
	opts.Verify = true
	if out, ok := op.hasArg(); ok {
		opts.Output = out
	}
	result, err := pipeline.Run(opts, intp.console)
	if err != nil {
		return err, false
	}
	intp.written = append(intp.written, result.OutputPath)
	tracer().Infof("%d files written in this session", len(intp.written))
	return nil, false
}

func cssOp(intp *Intp, op *Op) (error, bool) {
	if intp.path == "" {
		return errNoFont, false
	}
	m, _, err := intp.preview()
	if err != nil {
		return err, false
	}
	out, ok := op.hasArg()
	if !ok && len(intp.written) > 0 {
		out = intp.written[len(intp.written)-1]
	} else if !ok {
		out = pipeline.DefaultOutputPath(intp.path, intp.isCFF())
	}
	format := transcode.FormatFromPath(out)
	intp.console.CSS(pipeline.CSS(intp.result.Name, out, format, m, intp.result.Before.UnitsPerEm))
	return nil, false
}

func (intp *Intp) isCFF() bool {
	return intp.result.Format == transcode.OpenType
}

func (op Op) String() string {
	if op.arg == "" {
		return opNames[op.code]
	}
	return fmt.Sprintf("%s:%s", opNames[op.code], op.arg)
}

package pipeline

import (
	"path/filepath"

	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/transcode"
)

// CompressOptions configure a compressor run.
type CompressOptions struct {
	Input  string // path of an uncompressed font, extension .ttf or .otf
	Output string // output path; Input with extension .woff2 if empty
}

// Compress converts an uncompressed font file to WOFF2.
//
// Inputs without extension .ttf or .otf are rejected with UnsupportedFormat
// before the file is read. No output file is written on failure.
// The states visited are Loaded, Compressed and Written.
func Compress(opts CompressOptions, reporter Reporter) (Result, error) {
	if reporter == nil {
		reporter = TraceReporter{}
	}
	r := &run{reporter: reporter}
	if f := transcode.FormatFromPath(opts.Input); !f.IsSFNT() {
		return r.fail(vmetrics.Errorf(vmetrics.UnsupportedFormat, "",
			"cannot compress %s: input must be .ttf or .otf", filepath.Base(opts.Input)))
	}
	ff, err := fontload.ReadFontFile(opts.Input)
	if err != nil {
		return r.fail(err)
	}
	r.enter(Loaded)
	r.result.Name = fontload.FontName(ff.Binary, filepath.Base(opts.Input))
	b, err := transcode.Compress(ff.Binary)
	if err != nil {
		return r.fail(err)
	}
	r.enter(Compressed)
	out := opts.Output
	if out == "" {
		out = CompressedOutputPath(opts.Input)
	}
	if err = writeFile(out, b); err != nil {
		return r.fail(err)
	}
	r.result.OutputPath, r.result.OutputFormat, r.result.Size = out, transcode.WOFF2, len(b)
	reporter.Written(out, len(b), transcode.WOFF2)
	r.enter(Written)
	r.result.CSS = CSS(r.result.Name, out, transcode.WOFF2, r.result.Metrics, 0)
	reporter.CSS(r.result.CSS)
	r.result.Warnings = r.warnings.List()
	return r.result, nil
}

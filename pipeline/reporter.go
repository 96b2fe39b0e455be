package pipeline

import (
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/transcode"
)

// Reporter receives progress notifications of a run.
// internal/report.Console renders them to the terminal.
type Reporter interface {
	Inspected(name string, path string, mi otquery.MetricsInfo)
	Computed(p metrics.Percent, m metrics.Metrics)
	Warn(w vmetrics.Warning)
	Written(path string, size int, format transcode.Format)
	CSS(snippet string)
}

// TraceReporter is a Reporter writing to the trace only.
type TraceReporter struct{}

var _ Reporter = TraceReporter{}

func (TraceReporter) Inspected(name string, path string, mi otquery.MetricsInfo) {
	hh, _ := mi.HHeaMetrics()
	typo, _ := mi.TypoMetrics()
	tracer().Infof("%s (%s): em=%d, hhea=%s, OS/2 typo=%s", name, path, mi.UnitsPerEm, hh, typo)
}

func (TraceReporter) Computed(p metrics.Percent, m metrics.Metrics) {
	tracer().Infof("computed %s from %g%%/%g%%/%g", m, p.Ascent, p.Descent, p.LineGap)
}

func (TraceReporter) Warn(w vmetrics.Warning) {
	tracer().Infof("%s", w)
}

func (TraceReporter) Written(path string, size int, format transcode.Format) {
	tracer().Infof("wrote %s (%s, %d bytes)", path, format, size)
}

func (TraceReporter) CSS(snippet string) {
	tracer().Debugf("CSS:\n%s", snippet)
}

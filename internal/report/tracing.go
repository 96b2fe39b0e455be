package report

import (
	"fmt"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/vmetrics"
)

// SetupTracing routes tracing with key 'vmetrics' to the Go logger.
// Only errors are traced, unless verbose is set.
func SetupTracing(verbose bool) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":            "go",
		"trace." + vmetrics.TraceKey: "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	SetTraceLevel(verbose)
	return nil
}

// SetTraceLevel switches between level Debug (verbose) and level Error.
func SetTraceLevel(verbose bool) {
	if verbose {
		tracing.Select(vmetrics.TraceKey).SetTraceLevel(tracing.LevelDebug)
	} else {
		tracing.Select(vmetrics.TraceKey).SetTraceLevel(tracing.LevelError)
	}
}

package vmetrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, TraceKey)
	defer teardown()
	//
	err := Errorf(MetricOutOfRange, "hhea", "ascent %d exceeds int16", 40000)
	assert.True(t, IsKind(err, MetricOutOfRange))
	assert.False(t, IsKind(err, TranscodeFailed))
	assert.Equal(t, MetricOutOfRange, KindOf(err))
	assert.Equal(t, "[MetricOutOfRange] hhea: ascent 40000 exceeds int16", err.Error())
	//
	wrapped := fmt.Errorf("run: %w", err)
	assert.True(t, IsKind(wrapped, MetricOutOfRange), "kind must survive wrapping")
	assert.True(t, errors.Is(wrapped, &Error{Kind: MetricOutOfRange, Table: "hhea"}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: MetricOutOfRange, Table: "OS/2"}))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("brotli: corrupt stream")
	err := Wrap(TranscodeFailed, "", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "[TranscodeFailed] brotli: corrupt stream", err.Error())
	assert.Nil(t, Wrap(TranscodeFailed, "", nil))
}

func TestFatalKinds(t *testing.T) {
	for _, k := range []ErrorKind{InputNotFound, UnsupportedFormat, ContainerMalformed,
		TranscodeFailed, MetricOutOfRange, SerializationFailed} {
		assert.True(t, k.Fatal(), "%s should be fatal", k)
	}
	assert.False(t, PatchTargetNotFound.Fatal())
	assert.False(t, VerificationFailed.Fatal())
}

func TestWarningsCollector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, TraceKey)
	defer teardown()
	//
	var ws Warnings
	assert.Equal(t, 0, ws.Len())
	ws.Addf("OS/2", "table missing, skipping")
	ws.AddError(Errorf(PatchTargetNotFound, "hhea", "no table record"))
	ws.AddError(nil)
	assert.Equal(t, 2, ws.Len())
	assert.True(t, ws.Has(PatchTargetNotFound))
	assert.False(t, ws.Has(VerificationFailed))
	assert.Equal(t, "[WARNING] OS/2: table missing, skipping", ws.List()[0].String())
	assert.Equal(t, "[WARNING:PatchTargetNotFound] hhea: no table record", ws.List()[1].String())
}

package otpatch

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/internal/sfntbuild"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

var m = metrics.Metrics{Ascent: 1843, Descent: -451, LineGap: 0}

func readHHea(t *testing.T, b []byte) (int16, int16, int16) {
	rec, err := sfntdir.FindTable(b, sfntdir.T("hhea"))
	require.NoError(t, err)
	p := b[rec.Offset:]
	return int16(binary.BigEndian.Uint16(p[4:])), int16(binary.BigEndian.Uint16(p[6:])),
		int16(binary.BigEndian.Uint16(p[8:]))
}

func TestPatchOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	in := sfntbuild.Minimal(2048).Build()
	orig := append([]byte{}, in...)
	out, err := Apply(in, m, Options{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, orig, in, "input must not be modified")
	a, d, l := readHHea(t, out)
	assert.Equal(t, [3]int16{1843, -451, 0}, [3]int16{a, d, l})
	// nothing but the 6 patched bytes differ
	rec, _ := sfntdir.FindTable(in, sfntdir.T("hhea"))
	diff := 0
	for i := range in {
		if in[i] != out[i] {
			assert.True(t, i >= int(rec.Offset)+4 && i < int(rec.Offset)+10, "unexpected change at %d", i)
			diff++
		}
	}
	assert.Greater(t, diff, 0)
}

func TestPatchIdempotent(t *testing.T) {
	once, err := Apply(goregular.TTF, m, DefaultOptions())
	require.NoError(t, err)
	twice, err := Apply(once, m, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(once, twice))
}

func TestPatchChecksums(t *testing.T) {
	out, err := Apply(sfntbuild.Minimal(1000).Build(), m, DefaultOptions())
	require.NoError(t, err)
	mismatches, fileOK, err := sfntdir.Verify(out)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
	assert.True(t, fileOK)
	// without checksums, the hhea checksum is stale
	out, err = Apply(sfntbuild.Minimal(1000).Build(), m, Options{})
	require.NoError(t, err)
	mismatches, _, err = sfntdir.Verify(out)
	require.NoError(t, err)
	assert.Equal(t, []sfntdir.Tag{sfntdir.T("hhea")}, mismatches)
}

func TestPatchDirectoryMiss(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	in := sfntbuild.New().
		Table("head", sfntbuild.Head(1000)).
		Table("OS/2", sfntbuild.OS2(4, 800, -200, 0, 0)).
		Build()
	out, err := Apply(in, m, DefaultOptions())
	require.Error(t, err)
	assert.True(t, vmetrics.IsKind(err, vmetrics.PatchTargetNotFound))
	assert.False(t, vmetrics.KindOf(err).Fatal())
	assert.Equal(t, in, out)
}

func TestPatchMalformed(t *testing.T) {
	in := sfntbuild.New().
		Table("head", sfntbuild.Head(1000)).
		Table("hhea", []byte{0, 1, 0, 0, 3, 32, 255}).
		Build()
	out, err := Apply(in, m, DefaultOptions())
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed), "have %v", err)
	assert.Equal(t, in, out)
	//
	out, err = Apply([]byte("nonsense"), m, DefaultOptions())
	assert.True(t, vmetrics.IsKind(err, vmetrics.ContainerMalformed), "have %v", err)
	assert.Equal(t, []byte("nonsense"), out)
}

package otedit

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/container"
	"github.com/npillmayer/vmetrics/internal/sfntbuild"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestEncodeDecodeIdentity(t *testing.T) {
	hhea := sfntbuild.HHea(800, -200, 7)
	hh, err := otquery.DecodeHHea(hhea)
	require.NoError(t, err)
	assert.Equal(t, hhea, EncodeHHea(hh))
	for _, v := range []uint16{0, 1, 2, 4, 5} {
		os2 := sfntbuild.OS2(v, 800, -200, 7, 0x0040)
		info, err := otquery.DecodeOS2(os2)
		require.NoError(t, err)
		assert.Equal(t, os2, EncodeOS2(info), "OS/2 version %d", v)
	}
}

func TestDerive(t *testing.T) {
	m := metrics.Metrics{Ascent: 1843, Descent: -451, LineGap: 0}
	hh, _ := otquery.DecodeHHea(sfntbuild.HHea(800, -200, 7))
	os2, _ := otquery.DecodeOS2(sfntbuild.OS2(4, 800, -200, 7, 0x0040))
	newHH, newOS2 := Derive(m, &hh, &os2)
	require.NotNil(t, newHH)
	require.NotNil(t, newOS2)
	// inputs are left untouched
	assert.Equal(t, int16(800), hh.Ascender)
	assert.Equal(t, int16(800), os2.STypoAscender)
	//
	assert.Equal(t, m.Ascent, newHH.Ascender)
	assert.Equal(t, m.Descent, newHH.Descender)
	assert.Equal(t, m.LineGap, newHH.LineGap)
	assert.Equal(t, hh.AdvanceWidthMax, newHH.AdvanceWidthMax)
	assert.Equal(t, hh.CaretOffset, newHH.CaretOffset)
	assert.Equal(t, hh.NumberOfHMetrics, newHH.NumberOfHMetrics)
	//
	assert.Equal(t, m.Ascent, newOS2.STypoAscender)
	assert.Equal(t, m.Descent, newOS2.STypoDescender)
	assert.Equal(t, uint16(1843), newOS2.UsWinAscent)
	assert.Equal(t, uint16(451), newOS2.UsWinDescent)
	assert.True(t, newOS2.UseTypoMetrics())
	assert.Equal(t, uint16(0x0040|0x0080), newOS2.FsSelection, "other fsSelection bits must be kept")
	//
	a, b := Derive(m, nil, nil)
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestApplyGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	f, _, err := container.Load(goregular.TTF)
	require.NoError(t, err)
	m, err := metrics.Compute(2048, metrics.DefaultPercent())
	require.NoError(t, err)
	report, ws, err := Apply(f, m)
	require.NoError(t, err)
	for _, w := range ws {
		assert.NotEqual(t, "hhea", w.Table, "unexpected warning %s", w)
		assert.NotEqual(t, "OS/2", w.Table, "unexpected warning %s", w)
	}
	assert.True(t, report.HHeaEdited)
	assert.True(t, report.OS2Edited)
	assert.True(t, report.After.Consistent(), "hhea and OS/2 must agree after editing")
	hh, _ := report.After.HHeaMetrics()
	assert.Equal(t, "1843/-451/0", hh.String())
	// object model follows the tables
	assert.Equal(t, int16(1843), f.SFNT.Hhea.Ascender)
	assert.Equal(t, int16(-451), f.SFNT.OS2.STypoDescender)
	// pass-through fields of 'hhea' are preserved
	assert.Equal(t, report.Before.HHea.AdvanceWidthMax, report.After.HHea.AdvanceWidthMax)
	assert.Equal(t, report.Before.HHea.NumberOfHMetrics, report.After.HHea.NumberOfHMetrics)
	assert.Equal(t, report.Before.HHea.CaretSlopeRise, report.After.HHea.CaretSlopeRise)
	// serialized font still decodes to the same metrics
	b, err := f.Serialize()
	require.NoError(t, err)
	g, _, err := container.Load(b)
	require.NoError(t, err)
	mi, _, err := otquery.ReadMetrics(g)
	require.NoError(t, err)
	assert.True(t, mi.Consistent())
}

func TestApplyMissingHHea(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	b := sfntbuild.New().
		Table("head", sfntbuild.Head(1000)).
		Table("OS/2", sfntbuild.OS2(3, 800, -200, 0, 0)).
		Build()
	f, _, err := container.Load(b)
	require.NoError(t, err)
	m := metrics.Metrics{Ascent: 900, Descent: -220, LineGap: 0}
	report, ws, err := Apply(f, m)
	require.NoError(t, err)
	assert.False(t, report.HHeaEdited)
	assert.True(t, report.OS2Edited)
	assert.NotEmpty(t, ws)
	typo, ok := report.After.TypoMetrics()
	require.True(t, ok)
	assert.Equal(t, "900/-220/0", typo.String())
}

func TestApplyMissingOS2(t *testing.T) {
	b := sfntbuild.New().
		Table("head", sfntbuild.Head(1000)).
		Table("hhea", sfntbuild.HHea(800, -200, 0)).
		Build()
	f, _, err := container.Load(b)
	require.NoError(t, err)
	report, ws, err := Apply(f, metrics.Metrics{Ascent: 900, Descent: -220, LineGap: 10})
	require.NoError(t, err)
	assert.True(t, report.HHeaEdited)
	assert.False(t, report.OS2Edited)
	// the missing table has been reported by reading, Apply only adds the skipped edit
	require.Len(t, ws, 1)
	assert.Equal(t, "OS/2", ws[0].Table)
	assert.Equal(t, "table not edited", ws[0].Issue)
	assert.Equal(t, int16(10), report.After.HHea.LineGap)
}

func TestApplyShortOS2AndDSIG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	b := sfntbuild.New().
		Table("head", sfntbuild.Head(1000)).
		Table("hhea", sfntbuild.HHea(800, -200, 0)).
		Table("OS/2", sfntbuild.OS2Short(0)).
		Table("DSIG", []byte{0, 0, 0, 1, 0, 0, 0, 0}).
		Build()
	f, _, err := container.Load(b)
	require.NoError(t, err)
	report, ws, err := Apply(f, metrics.Metrics{Ascent: 900, Descent: -220})
	require.NoError(t, err)
	assert.True(t, report.OS2Extended)
	assert.True(t, report.DSIGDropped)
	assert.False(t, f.Has("DSIG"))
	os2, _ := f.Table("OS/2")
	assert.Len(t, os2, otquery.OS2SizeV0)
	assert.True(t, report.After.Consistent())
	var dsigWarned bool
	for _, w := range ws {
		if w.Table == "DSIG" {
			dsigWarned = true
		}
	}
	assert.True(t, dsigWarned)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegularFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func TestCheckFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	path := goRegularFile(t)
	result, err := pipeline.Run(pipeline.DefaultOptions(path), nil)
	require.NoError(t, err)
	lf, err := loadFont(result.OutputPath)
	require.NoError(t, err)
	issues, err := checkFont(lf)
	require.NoError(t, err)
	assert.Empty(t, issues)
	//
	lf, err = loadFont(path)
	require.NoError(t, err)
	mi, _, err := otquery.ReadMetrics(lf.font)
	require.NoError(t, err)
	issues, err = checkFont(lf)
	require.NoError(t, err)
	if !mi.Consistent() {
		assert.NotEmpty(t, issues)
	}
}

func TestMetricsLines(t *testing.T) {
	hh := otquery.HHeaTableInfo{Ascender: 900, Descender: -220}
	lines := metricsLines(otquery.MetricsInfo{UnitsPerEm: 1000, HHea: &hh})
	require.Len(t, lines, 5)
	assert.Equal(t, "hhea:      900/-220/0 (height 1120)", lines[0])
	assert.Equal(t, "OS/2 typo: missing", lines[1])
	assert.Equal(t, "effective: 900/-220/0 (height 1120)", lines[3])
	assert.Equal(t, "consistent: false", lines[4])
	//
	os2 := otquery.OS2TableInfo{Version: 4, STypoAscender: 800, STypoDescender: -200, FsSelection: 0x80,
		Length: otquery.EncodedSize(4)}
	lines = metricsLines(otquery.MetricsInfo{UnitsPerEm: 1000, HHea: &hh, OS2: &os2})
	require.Len(t, lines, 6)
	assert.Equal(t, "typo flag: true", lines[3])
	assert.Equal(t, "effective: 800/-200/0 (height 1000)", lines[4])
}

func TestRenderMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, vmetrics.TraceKey)
	defer teardown()
	//
	lf, err := loadFont(goRegularFile(t))
	require.NoError(t, err)
	mi, _, err := otquery.ReadMetrics(lf.font)
	require.NoError(t, err)
	ppem := 64
	img, err := renderMetrics(lf.sfnt, mi, "Hxg", ppem)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), 2*viewMargin)
	assert.Greater(t, b.Dy(), ppem)
	// metric lines span the full width, glyphs leave the margin blank
	hh, _ := mi.HHeaMetrics()
	scale := float32(ppem) / float32(mi.UnitsPerEm)
	ascent := float32(ppem)
	for _, lm := range []func() (otquery.LineMetrics, bool){mi.HHeaMetrics, mi.TypoMetrics, mi.WinMetrics} {
		if m, ok := lm(); ok && float32(m.Ascent)*scale > ascent {
			ascent = float32(m.Ascent) * scale
		}
	}
	baseY := float32(viewMargin) + ascent
	assert.Equal(t, hheaColor, img.RGBAAt(0, int(baseY-float32(hh.Ascent)*scale)))
	assert.Equal(t, hheaColor, img.RGBAAt(b.Max.X-1, int(baseY-float32(hh.Descent)*scale)))
	//
	out := filepath.Join(t.TempDir(), "png", "view.png")
	require.NoError(t, writePNG(img, out))
	_, err = os.Stat(out)
	assert.NoError(t, err)
	//
	// control characters and blanks leave nothing to draw
	_, err = renderMetrics(lf.sfnt, mi, "\u0000", ppem)
	assert.Error(t, err)
	_, err = renderMetrics(lf.sfnt, mi, "  ", ppem)
	assert.Error(t, err)
	img, err = renderMetrics(lf.sfnt, mi, "H H", ppem)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), b.Dx()/3)
}

func TestSplitCSVSpace(t *testing.T) {
	assert.Equal(t, []string{"hhea", "OS/2", "head"}, splitCSVSpace("hhea, OS/2 head"))
}

package report

import (
	"fmt"
	"testing"

	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsTable(t *testing.T) {
	hhea := otquery.HHeaTableInfo{Ascender: 900, Descender: -220, LineGap: 0}
	mi := otquery.MetricsInfo{UnitsPerEm: 1000, HHea: &hhea}
	data := MetricsTable(mi)
	require.Len(t, data, 5)
	assert.Equal(t, []string{"hhea", "900", "-220", "0", "1120", "90.0% / 22.0% / 0.0%"}, data[1])
	assert.Equal(t, "-", data[2][1], "no OS/2 table")
	assert.Equal(t, "-", data[4][1])
}

func TestChain(t *testing.T) {
	cause := fmt.Errorf("brotli: corrupt input")
	err := fmt.Errorf("compressing: %w", vmetrics.Wrap(vmetrics.TranscodeFailed, "", cause))
	chain := Chain(err)
	require.Len(t, chain, 3)
	assert.Equal(t, "brotli: corrupt input", chain[2])
}

func TestHint(t *testing.T) {
	err := fmt.Errorf("run: %w", vmetrics.Errorf(vmetrics.MetricOutOfRange, "", "ascent too large"))
	assert.Contains(t, Hint(vmetrics.KindOf(err)), "percentages")
	assert.Empty(t, Hint(vmetrics.KindOf(fmt.Errorf("plain"))))
	assert.Empty(t, Hint(vmetrics.PatchTargetNotFound))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb\n", "  "))
}

var _ pipeline.Reporter = (*Console)(nil)

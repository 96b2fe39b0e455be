package pipeline

import (
	"testing"

	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/transcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutputPath(t *testing.T) {
	for _, c := range []struct {
		in   string
		cff  bool
		want string
	}{
		{"fonts/Go-Regular.ttf", false, "fonts/Go-Regular-fixed.ttf"},
		{"Inter.OTF", true, "Inter-fixed.OTF"},
		{"Inter.woff2", false, "Inter-fixed.ttf"},
		{"Inter.woff2", true, "Inter-fixed.otf"},
		{"Inter.woff", false, "Inter-fixed.ttf"},
		{"font", false, "font-fixed.ttf"},
	} {
		assert.Equal(t, c.want, DefaultOutputPath(c.in, c.cff), c.in)
	}
	assert.Equal(t, "a/b.woff2", CompressedOutputPath("a/b.ttf"))
}

func TestOutputFormat(t *testing.T) {
	f, err := outputFormat("x.woff2", false)
	require.NoError(t, err)
	assert.Equal(t, transcode.WOFF2, f)
	f, err = outputFormat("x.bin", true)
	require.NoError(t, err)
	assert.Equal(t, transcode.OpenType, f)
	_, err = outputFormat("x.woff", false)
	assert.True(t, vmetrics.IsKind(err, vmetrics.UnsupportedFormat))
}

func TestCSS(t *testing.T) {
	m := metrics.Metrics{Ascent: 900, Descent: -220, LineGap: 0}
	css := CSS("My Font", "/tmp/out/My-Font.woff2", transcode.WOFF2, m, 1000)
	assert.Equal(t, `@font-face {
  font-family: "My Font";
  src: url("My-Font.woff2") format("woff2");
  ascent-override: 90%;
  descent-override: 22%;
  line-gap-override: 0%;
}
`, css)
	css = CSS("X", "x.bin", transcode.Unknown, m, 0)
	assert.Equal(t, "@font-face {\n  font-family: \"X\";\n  src: url(\"x.bin\");\n}\n", css)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "MetricsComputed", MetricsComputed.String())
	assert.Equal(t, "State(99)", State(99).String())
	assert.Equal(t, Failed, Result{}.Final())
}

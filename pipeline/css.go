package pipeline

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/transcode"
)

// CSS returns an @font-face rule for a font file. Metric override descriptors
// are included if unitsPerEm is non-zero, and pin the vertical metrics of
// the font in browsers that honor them.
//
// The snippet is informational and meant to be pasted into a style sheet.
func CSS(family string, path string, format transcode.Format, m metrics.Metrics, unitsPerEm uint16) string {
	var sb strings.Builder
	sb.WriteString("@font-face {\n")
	fmt.Fprintf(&sb, "  font-family: %q;\n", family)
	src := fmt.Sprintf("url(%q)", filepath.ToSlash(filepath.Base(path)))
	if kw := transcode.CSSFormat(format); kw != "" {
		src += fmt.Sprintf(" format(%q)", kw)
	}
	fmt.Fprintf(&sb, "  src: %s;\n", src)
	if unitsPerEm > 0 {
		a, d, l := m.Percent(unitsPerEm)
		fmt.Fprintf(&sb, "  ascent-override: %s%%;\n", cssPercent(a))
		fmt.Fprintf(&sb, "  descent-override: %s%%;\n", cssPercent(d))
		fmt.Fprintf(&sb, "  line-gap-override: %s%%;\n", cssPercent(l))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// cssPercent formats a percentage with at most two decimals.
func cssPercent(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // no negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

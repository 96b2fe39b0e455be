package otquery

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// LineMetrics are the three vertical metrics of a font, as stored in one table.
type LineMetrics struct {
	Ascent, Descent sfnt.Units // ascender and descender, descender usually negative
	LineGap         sfnt.Units // line gap
}

func (lm LineMetrics) String() string {
	return fmt.Sprintf("%d/%d/%d", lm.Ascent, lm.Descent, lm.LineGap)
}

// Height returns the baseline-to-baseline distance these metrics produce.
func (lm LineMetrics) Height() sfnt.Units {
	return lm.Ascent - lm.Descent + lm.LineGap
}

// MetricsInfo contains the vertical metrics of all tables which store them.
// HHea and OS2 are nil if the respective table is missing or malformed.
type MetricsInfo struct {
	UnitsPerEm uint16
	HHea       *HHeaTableInfo
	OS2        *OS2TableInfo
}

// HHeaMetrics returns the metrics of table 'hhea', if present.
func (mi MetricsInfo) HHeaMetrics() (LineMetrics, bool) {
	if mi.HHea == nil {
		return LineMetrics{}, false
	}
	return LineMetrics{
		Ascent:  sfnt.Units(mi.HHea.Ascender),
		Descent: sfnt.Units(mi.HHea.Descender),
		LineGap: sfnt.Units(mi.HHea.LineGap),
	}, true
}

// TypoMetrics returns the typographic metrics of table 'OS/2', if present.
func (mi MetricsInfo) TypoMetrics() (LineMetrics, bool) {
	if mi.OS2 == nil || !mi.OS2.HasTypoMetrics() {
		return LineMetrics{}, false
	}
	return LineMetrics{
		Ascent:  sfnt.Units(mi.OS2.STypoAscender),
		Descent: sfnt.Units(mi.OS2.STypoDescender),
		LineGap: sfnt.Units(mi.OS2.STypoLineGap),
	}, true
}

// WinMetrics returns the Windows metrics of table 'OS/2', if present.
// The descent is returned as a negative value and the line gap is zero.
func (mi MetricsInfo) WinMetrics() (LineMetrics, bool) {
	if mi.OS2 == nil || !mi.OS2.HasTypoMetrics() {
		return LineMetrics{}, false
	}
	return LineMetrics{
		Ascent:  sfnt.Units(mi.OS2.UsWinAscent),
		Descent: -sfnt.Units(mi.OS2.UsWinDescent),
	}, true
}

// Consistent is true if tables 'hhea' and 'OS/2' are both present, agree on
// ascent, descent and line gap, the Windows metrics mirror them and
// USE_TYPO_METRICS is set.
func (mi MetricsInfo) Consistent() bool {
	hh, ok1 := mi.HHeaMetrics()
	typo, ok2 := mi.TypoMetrics()
	win, _ := mi.WinMetrics()
	if !ok1 || !ok2 {
		return false
	}
	return hh == typo && win.Ascent == abs(typo.Ascent) && win.Descent == -abs(typo.Descent) &&
		mi.OS2.UseTypoMetrics()
}

func abs(u sfnt.Units) sfnt.Units {
	if u < 0 {
		return -u
	}
	return u
}

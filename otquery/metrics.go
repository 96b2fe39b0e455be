package otquery

import (
	"github.com/npillmayer/vmetrics"
)

// ReadMetrics retrieves the vertical metrics of a font.
//
// Table 'head' is required: if it is missing or malformed, or if its em size
// is zero, a ContainerMalformed error is returned. Missing or malformed tables
// 'hhea' and 'OS/2' are recorded as warnings and left nil in the result.
func ReadMetrics(f Font) (MetricsInfo, []vmetrics.Warning, error) {
	var info MetricsInfo
	ws := &vmetrics.Warnings{}
	upem, err := UnitsPerEm(f)
	if err != nil {
		return info, ws.List(), err
	}
	info.UnitsPerEm = upem
	if b, ok := lookup(f, "hhea"); !ok {
		ws.Addf("hhea", "table not present in font")
	} else if hhea, err := DecodeHHea(b); err != nil {
		ws.AddError(err)
	} else {
		info.HHea = &hhea
	}
	if b, ok := lookup(f, "OS/2"); !ok {
		ws.Addf("OS/2", "table not present in font")
	} else if os2, err := DecodeOS2(b); err != nil {
		ws.AddError(err)
	} else {
		info.OS2 = &os2
		if !os2.HasTypoMetrics() {
			ws.Addf("OS/2", "version 0 table without typographic metrics (%d bytes)", os2.Length)
		}
	}
	tracer().Debugf("font metrics: em=%d, %v, %v", upem, info.HHea, info.OS2)
	return info, ws.List(), nil
}

// EffectiveMetrics returns the metrics a browser engine which honors
// USE_TYPO_METRICS will apply: the typographic metrics of 'OS/2' if the
// flag is set, the metrics of 'hhea' otherwise. If 'hhea' is missing, the
// typographic metrics are used regardless of the flag.
func EffectiveMetrics(mi MetricsInfo) (LineMetrics, bool) {
	if mi.OS2 != nil && mi.OS2.UseTypoMetrics() {
		if typo, ok := mi.TypoMetrics(); ok {
			return typo, true
		}
	}
	if hh, ok := mi.HHeaMetrics(); ok {
		return hh, true
	}
	if typo, ok := mi.TypoMetrics(); ok {
		tracer().Debugf("no table hhea, falling back to typographic metrics")
		return typo, true
	}
	return LineMetrics{}, false
}

/*
Package otedit writes vertical metrics to tables 'OS/2' and 'hhea' of a font
container.

Both tables carry ascent, descent and line gap, and different renderers
consult different tables. Derive computes updated versions of both tables from
one set of metrics, so that they cannot disagree; Apply encodes them and
replaces the tables in the container:

	report, warnings, err := otedit.Apply(font, m)

In table 'OS/2' the typographic metrics are set, the Windows metrics mirror
them as unsigned magnitudes, and flag USE_TYPO_METRICS of fsSelection is
turned on. In table 'hhea' only ascender, descender and line gap change;
every other field is copied from the original table.

A missing table is not an error: it is reported as a warning and the other
table is edited nonetheless. As any edit invalidates a digital signature,
table 'DSIG' is dropped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otedit

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/container"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otquery"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Report describes the edits performed by Apply.
type Report struct {
	Metrics     metrics.Metrics     // the metrics written
	Before      otquery.MetricsInfo // tables before the edit
	After       otquery.MetricsInfo // tables after the edit
	HHeaEdited  bool
	OS2Edited   bool
	OS2Extended bool // a short version 0 table has been extended to 78 bytes
	DSIGDropped bool
}

// Edited is true if at least one table has been edited.
func (r Report) Edited() bool {
	return r.HHeaEdited || r.OS2Edited
}

// Derive computes updated copies of tables 'hhea' and 'OS/2' carrying metrics m.
// Nil inputs produce nil outputs. The inputs are not modified.
func Derive(m metrics.Metrics, hhea *otquery.HHeaTableInfo, os2 *otquery.OS2TableInfo) (
	*otquery.HHeaTableInfo, *otquery.OS2TableInfo) {
	//
	var hh *otquery.HHeaTableInfo
	if hhea != nil {
		upd := *hhea
		upd.Ascender = m.Ascent
		upd.Descender = m.Descent
		upd.LineGap = m.LineGap
		hh = &upd
	}
	var o *otquery.OS2TableInfo
	if os2 != nil {
		upd := *os2
		upd.STypoAscender = m.Ascent
		upd.STypoDescender = m.Descent
		upd.STypoLineGap = m.LineGap
		upd.UsWinAscent = m.WinAscent()
		upd.UsWinDescent = m.WinDescent()
		upd.FsSelection |= otquery.FsSelectionUseTypoMetrics
		if upd.Length < otquery.OS2SizeV0 {
			upd.Length = otquery.OS2SizeV0
		}
		o = &upd
	}
	return hh, o
}

// Apply writes metrics m to tables 'OS/2' and 'hhea' of f.
//
// Missing or malformed metrics tables are skipped with a warning. Problems
// found while reading the tables are not repeated here; callers get them
// from otquery.ReadMetrics. Apply returns an error only if table 'head' is
// unusable.
func Apply(f *container.Font, m metrics.Metrics) (Report, []vmetrics.Warning, error) {
	report := Report{Metrics: m}
	before, _, err := otquery.ReadMetrics(f)
	if err != nil {
		return report, nil, err
	}
	warnings := &vmetrics.Warnings{}
	report.Before = before
	hhea, os2 := Derive(m, before.HHea, before.OS2)
	if hhea != nil {
		orig, _ := f.Table("hhea")
		f.Replace("hhea", withTail(EncodeHHea(*hhea), orig))
		syncHHea(f, *hhea)
		report.HHeaEdited = true
	} else {
		warnings.Addf("hhea", "table not edited")
	}
	if os2 != nil {
		orig, _ := f.Table("OS/2")
		if len(orig) < otquery.OS2SizeV0 {
			warnings.Addf("OS/2", "version 0 table extended from %d to %d bytes", len(orig), otquery.OS2SizeV0)
			report.OS2Extended = true
		}
		f.Replace("OS/2", withTail(EncodeOS2(*os2), orig))
		syncOS2(f, *os2)
		report.OS2Edited = true
	} else {
		warnings.Addf("OS/2", "table not edited")
	}
	if report.Edited() && f.Remove("DSIG") {
		warnings.Addf("DSIG", "digital signature removed, as it is invalidated by editing")
		report.DSIGDropped = true
	}
	report.After, _, err = otquery.ReadMetrics(f)
	tracer().Infof("metrics edited: %s (hhea=%v, OS/2=%v)", m, report.HHeaEdited, report.OS2Edited)
	return report, warnings.List(), err
}

// syncHHea keeps the parsed object model in line with the table bytes.
func syncHHea(f *container.Font, hh otquery.HHeaTableInfo) {
	if f.SFNT.Hhea == nil {
		return
	}
	upd := *f.SFNT.Hhea
	upd.Ascender = hh.Ascender
	upd.Descender = hh.Descender
	upd.LineGap = hh.LineGap
	f.SFNT.Hhea = &upd
}

// syncOS2 keeps the parsed object model in line with the table bytes.
func syncOS2(f *container.Font, os2 otquery.OS2TableInfo) {
	if f.SFNT.OS2 == nil {
		return
	}
	upd := *f.SFNT.OS2
	upd.STypoAscender = os2.STypoAscender
	upd.STypoDescender = os2.STypoDescender
	upd.STypoLineGap = os2.STypoLineGap
	upd.UsWinAscent = os2.UsWinAscent
	upd.UsWinDescent = os2.UsWinDescent
	upd.FsSelection = os2.FsSelection
	f.SFNT.OS2 = &upd
}

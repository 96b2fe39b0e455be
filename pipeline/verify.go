package pipeline

import (
	"bytes"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/npillmayer/vmetrics/transcode"
	"golang.org/x/image/font/sfnt"
)

// Verify reads a written font binary back and compares its metrics tables
// with m. The binary is loaded with a loader independent of the one used for
// editing. WOFF2 binaries are decompressed first.
//
// Differences are returned as VerificationFailed warnings. If checksums is
// set, stale table checksums and a wrong checksum adjustment are reported
// as well. Verification never fails a run.
func Verify(b []byte, m metrics.Metrics, checksums bool) []vmetrics.Warning {
	ws := &vmetrics.Warnings{}
	fail := func(tag string, format string, args ...interface{}) {
		ws.AddError(vmetrics.Errorf(vmetrics.VerificationFailed, tag, format, args...))
	}
	sfntBytes, err := transcode.ToSFNT(b)
	if err != nil {
		fail("", "written font cannot be decoded: %v", err)
		return ws.List()
	}
	ld, err := ot.NewLoader(bytes.NewReader(sfntBytes))
	if err != nil {
		fail("", "written font cannot be loaded: %v", err)
		return ws.List()
	}
	want := otquery.LineMetrics{Ascent: sfnt.Units(m.Ascent), Descent: sfnt.Units(m.Descent),
		LineGap: sfnt.Units(m.LineGap)}
	if raw, ok := rawTable(ld, "hhea"); ok {
		hhea, err := otquery.DecodeHHea(raw)
		if err != nil {
			fail("hhea", "%v", err)
		} else if have, _ := (otquery.MetricsInfo{HHea: &hhea}).HHeaMetrics(); have != want {
			fail("hhea", "have %s, want %s", have, want)
		}
	}
	if raw, ok := rawTable(ld, "OS/2"); ok {
		os2, err := otquery.DecodeOS2(raw)
		if err != nil {
			fail("OS/2", "%v", err)
		} else {
			mi := otquery.MetricsInfo{OS2: &os2}
			if have, _ := mi.TypoMetrics(); have != want {
				fail("OS/2", "typographic metrics: have %s, want %s", have, want)
			}
			if os2.UsWinAscent != m.WinAscent() || os2.UsWinDescent != m.WinDescent() {
				fail("OS/2", "win metrics: have %d/%d, want %d/%d",
					os2.UsWinAscent, os2.UsWinDescent, m.WinAscent(), m.WinDescent())
			}
			if !os2.UseTypoMetrics() {
				fail("OS/2", "USE_TYPO_METRICS not set")
			}
		}
	}
	if checksums {
		verifyChecksums(sfntBytes, ws)
	}
	tracer().Debugf("verification done with %d issues", ws.Len())
	return ws.List()
}

func verifyChecksums(b []byte, ws *vmetrics.Warnings) {
	mismatches, fileOK, err := sfntdir.Verify(b)
	if err != nil {
		ws.AddError(vmetrics.Wrap(vmetrics.VerificationFailed, "", err))
		return
	}
	for _, tag := range mismatches {
		ws.AddError(vmetrics.Errorf(vmetrics.VerificationFailed, tag.String(), "table checksum mismatch"))
	}
	if !fileOK {
		ws.AddError(vmetrics.Errorf(vmetrics.VerificationFailed, "head",
			"file checksum does not match %#x", sfntdir.ChecksumMagic))
	}
}

func rawTable(ld *ot.Loader, tag string) ([]byte, bool) {
	t := ot.MustNewTag(tag)
	if !ld.HasTable(t) {
		return nil, false
	}
	raw, err := ld.RawTable(t)
	if err != nil {
		tracer().Infof("read-back of table %s failed: %v", tag, err)
		return nil, false
	}
	return raw, true
}

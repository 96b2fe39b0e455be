package transcode

import (
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/tdewolff/font"
	"github.com/tdewolff/parse/v2"
)

// shortLocaRange is the number of glyf bytes a short 'loca' entry can address.
const shortLocaRange = 0x20000

// headIndexToLocFormat is the offset of field indexToLocFormat in table 'head'.
const headIndexToLocFormat = 50

// repairLoca fixes the 'loca' table of an SFNT produced by the WOFF2 decoder.
//
// The decoder pads every reconstructed glyph to 4 bytes but keeps the short
// 'loca' format of the original font. If the padded 'glyf' table grows beyond
// 128 KiB, short offsets wrap around and 'loca' is no longer monotonic.
// Such a table is unwrapped and written in long format, with
// head.indexToLocFormat set accordingly. Fonts with an intact 'loca' are
// returned unchanged.
func repairLoca(b []byte) ([]byte, error) {
	dir, err := sfntdir.Parse(b)
	if err != nil {
		return nil, err
	}
	tables, err := dir.Tables()
	if err != nil {
		return nil, err
	}
	tm := otquery.TableMap(tables)
	head, ok := otquery.HeadInfo(tm)
	if !ok || head.IndexToLocFormat != 0 {
		return b, nil
	}
	maxp, ok := otquery.MaxPInfo(tm)
	loca, hasLoca := tm["loca"]
	glyf, hasGlyf := tm["glyf"]
	if !ok || !hasLoca || !hasGlyf || len(loca) < 2*(int(maxp.NumGlyphs)+1) {
		return b, nil
	}
	offsets, wrapped := unwrapShortLoca(loca, int(maxp.NumGlyphs)+1)
	if !wrapped {
		return b, nil
	}
	if last := offsets[len(offsets)-1]; last > uint32(len(glyf)) {
		return nil, vmetrics.Errorf(vmetrics.TranscodeFailed, "loca",
			"glyph offsets exceed table 'glyf': %d > %d", last, len(glyf))
	}
	tracer().Infof("decoded font has wrapped short loca offsets, rewriting loca in long format")
	w := parse.NewBinaryWriter(make([]byte, 0, 4*len(offsets)))
	for _, off := range offsets {
		w.WriteUint32(off)
	}
	tables["loca"] = w.Bytes()
	headBytes := make([]byte, len(tables["head"]))
	copy(headBytes, tables["head"])
	headBytes[headIndexToLocFormat] = 0
	headBytes[headIndexToLocFormat+1] = 1
	tables["head"] = headBytes
	sfnt := &font.SFNT{
		IsTrueType: !dir.IsCFF(),
		IsCFF:      dir.IsCFF(),
		Tables:     tables,
	}
	return writeSFNT(sfnt)
}

// unwrapShortLoca reads n short 'loca' entries as byte offsets. Offsets
// which wrapped around are lifted into the next 128 KiB range. wrapped is
// true if at least one entry had to be lifted.
func unwrapShortLoca(loca []byte, n int) (offsets []uint32, wrapped bool) {
	r := parse.NewBinaryReaderBytes(loca)
	offsets = make([]uint32, n)
	var base, prev uint32
	for i := 0; i < n; i++ {
		off := base + 2*uint32(r.ReadUint16())
		if off < prev {
			base += shortLocaRange
			off += shortLocaRange
			wrapped = true
		}
		offsets[i] = off
		prev = off
	}
	return offsets, wrapped
}

func writeSFNT(sfnt *font.SFNT) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, vmetrics.Errorf(vmetrics.TranscodeFailed, "", "SFNT writer failed: %v", r)
		}
	}()
	return sfnt.Write(), nil
}

package otquery

import (
	"fmt"

	"github.com/npillmayer/vmetrics"
	"github.com/tdewolff/parse/v2"
)

// HHeaTableInfo holds all fields of table 'hhea'.
// Ascender, Descender and LineGap are the vertical metrics used by macOS
// and by browsers that do not consult table 'OS/2'. All other fields are
// passed through unchanged whenever the table is re-encoded.
type HHeaTableInfo struct {
	MajorVersion        uint16
	MinorVersion        uint16
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	Reserved            [4]int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

// HHeaTableSize is the size of table 'hhea' in bytes.
const HHeaTableSize = 36

func (hh HHeaTableInfo) String() string {
	return fmt.Sprintf("hhea{ascender=%d descender=%d lineGap=%d}", hh.Ascender, hh.Descender, hh.LineGap)
}

// DecodeHHea decodes table 'hhea' from raw bytes.
// Tables shorter than 36 bytes are reported as ContainerMalformed.
func DecodeHHea(b []byte) (HHeaTableInfo, error) {
	var info HHeaTableInfo
	if len(b) < HHeaTableSize {
		return info, vmetrics.Errorf(vmetrics.ContainerMalformed, "hhea", "table too short: %d bytes", len(b))
	}
	r := parse.NewBinaryReaderBytes(b)
	info.MajorVersion = r.ReadUint16()
	info.MinorVersion = r.ReadUint16()
	info.Ascender = r.ReadInt16()
	info.Descender = r.ReadInt16()
	info.LineGap = r.ReadInt16()
	info.AdvanceWidthMax = r.ReadUint16()
	info.MinLeftSideBearing = r.ReadInt16()
	info.MinRightSideBearing = r.ReadInt16()
	info.XMaxExtent = r.ReadInt16()
	info.CaretSlopeRise = r.ReadInt16()
	info.CaretSlopeRun = r.ReadInt16()
	info.CaretOffset = r.ReadInt16()
	for i := range info.Reserved {
		info.Reserved[i] = r.ReadInt16()
	}
	info.MetricDataFormat = r.ReadInt16()
	info.NumberOfHMetrics = r.ReadUint16()
	return info, nil
}

// HHeaInfo decodes table 'hhea' of a font.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HHeaInfo(f Font) (HHeaTableInfo, bool) {
	b, ok := lookup(f, "hhea")
	if !ok {
		return HHeaTableInfo{}, false
	}
	info, err := DecodeHHea(b)
	if err != nil {
		tracer().Debugf(err.Error())
	}
	return info, err == nil
}

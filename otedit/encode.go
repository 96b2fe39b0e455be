package otedit

import (
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/tdewolff/parse/v2"
)

// EncodeHHea encodes all fields of table 'hhea' into its 36 byte layout.
func EncodeHHea(hh otquery.HHeaTableInfo) []byte {
	w := parse.NewBinaryWriter(make([]byte, 0, otquery.HHeaTableSize))
	w.WriteUint16(hh.MajorVersion)
	w.WriteUint16(hh.MinorVersion)
	w.WriteInt16(hh.Ascender)
	w.WriteInt16(hh.Descender)
	w.WriteInt16(hh.LineGap)
	w.WriteUint16(hh.AdvanceWidthMax)
	w.WriteInt16(hh.MinLeftSideBearing)
	w.WriteInt16(hh.MinRightSideBearing)
	w.WriteInt16(hh.XMaxExtent)
	w.WriteInt16(hh.CaretSlopeRise)
	w.WriteInt16(hh.CaretSlopeRun)
	w.WriteInt16(hh.CaretOffset)
	for _, r := range hh.Reserved {
		w.WriteInt16(r)
	}
	w.WriteInt16(hh.MetricDataFormat)
	w.WriteUint16(hh.NumberOfHMetrics)
	return w.Bytes()
}

// EncodeOS2 encodes table 'OS/2' in the layout of its version. Version 0
// tables always get the 78 byte layout including typographic metrics;
// versions above 5 are encoded with the fields of version 5.
func EncodeOS2(os2 otquery.OS2TableInfo) []byte {
	w := parse.NewBinaryWriter(make([]byte, 0, otquery.EncodedSize(os2.Version)))
	w.WriteUint16(os2.Version)
	w.WriteInt16(os2.XAvgCharWidth)
	w.WriteUint16(os2.UsWeightClass)
	w.WriteUint16(os2.UsWidthClass)
	w.WriteUint16(os2.FsType)
	w.WriteInt16(os2.YSubscriptXSize)
	w.WriteInt16(os2.YSubscriptYSize)
	w.WriteInt16(os2.YSubscriptXOffset)
	w.WriteInt16(os2.YSubscriptYOffset)
	w.WriteInt16(os2.YSuperscriptXSize)
	w.WriteInt16(os2.YSuperscriptYSize)
	w.WriteInt16(os2.YSuperscriptXOffset)
	w.WriteInt16(os2.YSuperscriptYOffset)
	w.WriteInt16(os2.YStrikeoutSize)
	w.WriteInt16(os2.YStrikeoutPosition)
	w.WriteInt16(os2.SFamilyClass)
	w.WriteBytes(os2.Panose[:])
	for _, r := range os2.UlUnicodeRange {
		w.WriteUint32(r)
	}
	w.WriteBytes(os2.AchVendID[:])
	w.WriteUint16(os2.FsSelection)
	w.WriteUint16(os2.UsFirstCharIndex)
	w.WriteUint16(os2.UsLastCharIndex)
	w.WriteInt16(os2.STypoAscender)
	w.WriteInt16(os2.STypoDescender)
	w.WriteInt16(os2.STypoLineGap)
	w.WriteUint16(os2.UsWinAscent)
	w.WriteUint16(os2.UsWinDescent)
	if os2.Version == 0 {
		return w.Bytes()
	}
	w.WriteUint32(os2.UlCodePageRange[0])
	w.WriteUint32(os2.UlCodePageRange[1])
	if os2.Version == 1 {
		return w.Bytes()
	}
	w.WriteInt16(os2.SxHeight)
	w.WriteInt16(os2.SCapHeight)
	w.WriteUint16(os2.UsDefaultChar)
	w.WriteUint16(os2.UsBreakChar)
	w.WriteUint16(os2.UsMaxContext)
	if os2.Version <= 4 {
		return w.Bytes()
	}
	w.WriteUint16(os2.UsLowerOpticalPointSize)
	w.WriteUint16(os2.UsUpperOpticalPointSize)
	return w.Bytes()
}

// withTail appends the bytes of orig which lie beyond the encoded layout,
// so that tables with excess data keep it.
func withTail(encoded, orig []byte) []byte {
	if len(orig) <= len(encoded) {
		return encoded
	}
	return append(encoded, orig[len(encoded):]...)
}

package otquery

import (
	"github.com/npillmayer/vmetrics"
	"github.com/tdewolff/parse/v2"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const headTableSize = 54

// DecodeHead decodes table 'head' from raw bytes.
func DecodeHead(b []byte) (HeadTableInfo, error) {
	var info HeadTableInfo
	if len(b) < headTableSize {
		return info, vmetrics.Errorf(vmetrics.ContainerMalformed, "head", "table too short: %d bytes", len(b))
	}
	r := parse.NewBinaryReaderBytes(b)
	info.MajorVersion = r.ReadUint16()
	info.MinorVersion = r.ReadUint16()
	info.FontRevision = r.ReadUint32()
	info.CheckSumAdjustment = r.ReadUint32()
	info.MagicNumber = r.ReadUint32()
	info.Flags = r.ReadUint16()
	info.UnitsPerEm = r.ReadUint16()
	info.Created = int64(r.ReadUint64())
	info.Modified = int64(r.ReadUint64())
	info.XMin = r.ReadInt16()
	info.YMin = r.ReadInt16()
	info.XMax = r.ReadInt16()
	info.YMax = r.ReadInt16()
	info.MacStyle = r.ReadUint16()
	info.LowestRecPPEM = r.ReadUint16()
	info.FontDirectionHint = r.ReadInt16()
	info.IndexToLocFormat = r.ReadInt16()
	info.GlyphDataFormat = r.ReadInt16()
	return info, nil
}

// HeadInfo decodes table 'head' of a font.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(f Font) (HeadTableInfo, bool) {
	b, ok := lookup(f, "head")
	if !ok {
		return HeadTableInfo{}, false
	}
	info, err := DecodeHead(b)
	return info, err == nil
}

// UnitsPerEm returns the em size of a font. A missing or short table 'head'
// or an em size of zero are reported as ContainerMalformed.
func UnitsPerEm(f Font) (uint16, error) {
	b, ok := lookup(f, "head")
	if !ok {
		return 0, vmetrics.Errorf(vmetrics.ContainerMalformed, "head", "missing table")
	}
	info, err := DecodeHead(b)
	if err != nil {
		return 0, err
	}
	if info.UnitsPerEm == 0 {
		return 0, vmetrics.Errorf(vmetrics.ContainerMalformed, "head", "units per em is zero")
	}
	return info.UnitsPerEm, nil
}

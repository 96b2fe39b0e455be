package otquery

import (
	"fmt"

	"github.com/npillmayer/vmetrics"
	"github.com/tdewolff/parse/v2"
)

// FsSelectionUseTypoMetrics is bit 7 of OS/2.fsSelection. If set, applications
// should use the typographic metrics for line spacing.
const FsSelectionUseTypoMetrics uint16 = 1 << 7

// Sizes of table 'OS/2' by version.
const (
	OS2SizeV0Short = 68  // version 0, Apple layout ending with usLastCharIndex
	OS2SizeV0      = 78  // version 0, including typographic and Windows metrics
	OS2SizeV1      = 86  // version 1 adds code page ranges
	OS2SizeV2      = 96  // versions 2 to 4 add x-height, cap height and others
	OS2SizeV5      = 100 // version 5 adds optical point sizes
)

// OS2TableInfo holds all fields of table 'OS/2', for versions 0 to 5.
// Fields which are not present in a table's version are zero.
type OS2TableInfo struct {
	Version                 uint16
	XAvgCharWidth           int16
	UsWeightClass           uint16
	UsWidthClass            uint16
	FsType                  uint16
	YSubscriptXSize         int16
	YSubscriptYSize         int16
	YSubscriptXOffset       int16
	YSubscriptYOffset       int16
	YSuperscriptXSize       int16
	YSuperscriptYSize       int16
	YSuperscriptXOffset     int16
	YSuperscriptYOffset     int16
	YStrikeoutSize          int16
	YStrikeoutPosition      int16
	SFamilyClass            int16
	Panose                  [10]byte
	UlUnicodeRange          [4]uint32
	AchVendID               [4]byte
	FsSelection             uint16
	UsFirstCharIndex        uint16
	UsLastCharIndex         uint16
	STypoAscender           int16
	STypoDescender          int16
	STypoLineGap            int16
	UsWinAscent             uint16
	UsWinDescent            uint16
	UlCodePageRange         [2]uint32
	SxHeight                int16
	SCapHeight              int16
	UsDefaultChar           uint16
	UsBreakChar             uint16
	UsMaxContext            uint16
	UsLowerOpticalPointSize uint16
	UsUpperOpticalPointSize uint16

	// Length is the size in bytes of the table this info has been decoded from.
	Length int
}

func (os2 OS2TableInfo) String() string {
	return fmt.Sprintf("OS/2{v%d typo=%d/%d/%d win=%d/%d useTypo=%v}", os2.Version,
		os2.STypoAscender, os2.STypoDescender, os2.STypoLineGap,
		os2.UsWinAscent, os2.UsWinDescent, os2.UseTypoMetrics())
}

// UseTypoMetrics reports whether bit USE_TYPO_METRICS of fsSelection is set.
func (os2 OS2TableInfo) UseTypoMetrics() bool {
	return os2.FsSelection&FsSelectionUseTypoMetrics != 0
}

// HasTypoMetrics is false for short version 0 tables, which end before
// field sTypoAscender.
func (os2 OS2TableInfo) HasTypoMetrics() bool {
	return os2.Length >= OS2SizeV0
}

// EncodedSize returns the number of bytes needed to encode version v of
// table 'OS/2', with typographic metrics present.
func EncodedSize(v uint16) int {
	switch {
	case v == 0:
		return OS2SizeV0
	case v == 1:
		return OS2SizeV1
	case v <= 4:
		return OS2SizeV2
	}
	return OS2SizeV5
}

// DecodeOS2 decodes table 'OS/2' from raw bytes. Tables too short for their
// version are reported as ContainerMalformed. Excess bytes are tolerated.
// Versions above 5 are decoded as far as version 5 goes.
func DecodeOS2(b []byte) (OS2TableInfo, error) {
	var os2 OS2TableInfo
	if len(b) < OS2SizeV0Short {
		return os2, vmetrics.Errorf(vmetrics.ContainerMalformed, "OS/2", "table too short: %d bytes", len(b))
	}
	r := parse.NewBinaryReaderBytes(b)
	os2.Length = len(b)
	os2.Version = r.ReadUint16()
	if os2.Version > 0 && len(b) < EncodedSize(os2.Version) {
		return os2, vmetrics.Errorf(vmetrics.ContainerMalformed, "OS/2",
			"table of version %d too short: %d bytes", os2.Version, len(b))
	}
	os2.XAvgCharWidth = r.ReadInt16()
	os2.UsWeightClass = r.ReadUint16()
	os2.UsWidthClass = r.ReadUint16()
	os2.FsType = r.ReadUint16()
	os2.YSubscriptXSize = r.ReadInt16()
	os2.YSubscriptYSize = r.ReadInt16()
	os2.YSubscriptXOffset = r.ReadInt16()
	os2.YSubscriptYOffset = r.ReadInt16()
	os2.YSuperscriptXSize = r.ReadInt16()
	os2.YSuperscriptYSize = r.ReadInt16()
	os2.YSuperscriptXOffset = r.ReadInt16()
	os2.YSuperscriptYOffset = r.ReadInt16()
	os2.YStrikeoutSize = r.ReadInt16()
	os2.YStrikeoutPosition = r.ReadInt16()
	os2.SFamilyClass = r.ReadInt16()
	copy(os2.Panose[:], r.ReadBytes(10))
	for i := range os2.UlUnicodeRange {
		os2.UlUnicodeRange[i] = r.ReadUint32()
	}
	copy(os2.AchVendID[:], r.ReadBytes(4))
	os2.FsSelection = r.ReadUint16()
	os2.UsFirstCharIndex = r.ReadUint16()
	os2.UsLastCharIndex = r.ReadUint16()
	if len(b) < OS2SizeV0 {
		return os2, nil
	}
	os2.STypoAscender = r.ReadInt16()
	os2.STypoDescender = r.ReadInt16()
	os2.STypoLineGap = r.ReadInt16()
	os2.UsWinAscent = r.ReadUint16()
	os2.UsWinDescent = r.ReadUint16()
	if os2.Version == 0 {
		return os2, nil
	}
	os2.UlCodePageRange[0] = r.ReadUint32()
	os2.UlCodePageRange[1] = r.ReadUint32()
	if os2.Version == 1 {
		return os2, nil
	}
	os2.SxHeight = r.ReadInt16()
	os2.SCapHeight = r.ReadInt16()
	os2.UsDefaultChar = r.ReadUint16()
	os2.UsBreakChar = r.ReadUint16()
	os2.UsMaxContext = r.ReadUint16()
	if os2.Version <= 4 {
		return os2, nil
	}
	os2.UsLowerOpticalPointSize = r.ReadUint16()
	os2.UsUpperOpticalPointSize = r.ReadUint16()
	return os2, nil
}

// OS2Info decodes table 'OS/2' of a font.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func OS2Info(f Font) (OS2TableInfo, bool) {
	b, ok := lookup(f, "OS/2")
	if !ok {
		return OS2TableInfo{}, false
	}
	info, err := DecodeOS2(b)
	if err != nil {
		tracer().Debugf(err.Error())
	}
	return info, err == nil
}

package otquery

import (
	"github.com/tdewolff/parse/v2"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// Only the version and the number of glyphs are decoded.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
}

const maxpMinSize = 6

// MaxPInfo decodes table 'maxp' from raw bytes.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(f Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b, ok := lookup(f, "maxp")
	if !ok || len(b) < maxpMinSize {
		return info, false
	}
	r := parse.NewBinaryReaderBytes(b)
	info.VersionFixed = r.ReadUint32()
	info.NumGlyphs = r.ReadUint16()
	return info, true
}

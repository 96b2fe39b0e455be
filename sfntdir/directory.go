/*
Package sfntdir locates tables inside the binary representation of an SFNT font.

An SFNT font (TrueType or OpenType with CFF outlines) starts with a 12 byte
offset table, immediately followed by one 16 byte record per table:

	offset table:  sfntVersion u32 | numTables u16 | searchRange u16 | entrySelector u16 | rangeShift u16
	table record:  tag [4]u8 | checksum u32 | offset u32 | length u32

Package sfntdir reads this directory without interpreting any table. It is
the only place in this module which knows about raw byte offsets of the
directory and of the few table fields which are patched in place.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntdir

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/tdewolff/parse/v2"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Layout of the table directory.
const (
	HeaderSize = 12 // size of the offset table
	RecordSize = 16 // size of a table record
)

// SFNT flavors, i.e. values of sfntVersion.
const (
	FlavorTrueType uint32 = 0x00010000
	FlavorCFF      uint32 = 0x4f54544f // 'OTTO'
	FlavorApple    uint32 = 0x74727565 // 'true'
)

// Field offsets within tables, relative to the start of the table.
const (
	HHeaAscender  = 4
	HHeaDescender = 6
	HHeaLineGap   = 8
	HHeaMinSize   = 10 // bytes needed to patch ascender, descender and line gap
	HHeaSize      = 36

	HeadChecksumAdjustment = 8
	HeadUnitsPerEm         = 18
	HeadSize               = 54

	OS2FsSelection    = 62
	OS2TypoAscender   = 68
	OS2TypoDescender  = 70
	OS2TypoLineGap    = 72
	OS2WinAscent      = 74
	OS2WinDescent     = 76
	OS2MinSize        = 68 // version 0, Apple layout without typographic metrics
	OS2MinMetricsSize = 78 // size needed to hold typographic and Windows metrics
)

// ErrTableNotFound is returned by FindTable if a tag is not in the directory.
var ErrTableNotFound = errors.New("table not found in directory")

// --- Tag -------------------------------------------------------------------

// Tag identifies a table, e.g. 'hhea'. Tags are compared as 32 bit big endian values.
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	var t [4]byte
	copy(t[:], b)
	return Tag(uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3]))
}

// T returns a Tag from a (4-letter) string, padded with spaces if necessary.
//
//	T("cvt") == T("cvt ")
func T(t string) Tag {
	return MakeTag([]byte((t + "    ")[:4]))
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// --- Directory -------------------------------------------------------------

// Record is an entry of the table directory.
// Offset is the byte position of the table's content within the font binary.
type Record struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

func (r Record) String() string {
	return fmt.Sprintf("%s checksum=0x%08X offset=%d length=%d", r.Tag, r.Checksum, r.Offset, r.Length)
}

// End returns the offset of the first byte behind the table (without padding).
func (r Record) End() uint64 {
	return uint64(r.Offset) + uint64(r.Length)
}

// Directory is the table directory of an SFNT font, in file order.
type Directory struct {
	Flavor  uint32
	Records []Record
	size    int // length of the binary the directory has been read from
	binary  []byte
}

// Parse reads the table directory of an SFNT font binary.
// It reads at most numTables records and never reads past the end of b.
// A truncated directory or an unknown flavor is reported as ContainerMalformed.
// Parse does not check that the tables themselves lie within b; see Check.
func Parse(b []byte) (*Directory, error) {
	if len(b) < HeaderSize {
		return nil, vmetrics.Errorf(vmetrics.ContainerMalformed, "",
			"font binary too short for an offset table: %d bytes", len(b))
	}
	r := parse.NewBinaryReaderBytes(b)
	flavor := r.ReadUint32()
	if flavor != FlavorTrueType && flavor != FlavorCFF && flavor != FlavorApple {
		return nil, vmetrics.Errorf(vmetrics.ContainerMalformed, "",
			"font type not supported: %x", flavor)
	}
	numTables := r.ReadUint16()
	_ = r.ReadBytes(6) // searchRange, entrySelector, rangeShift
	if r.Len() < int64(RecordSize)*int64(numTables) {
		return nil, vmetrics.Errorf(vmetrics.ContainerMalformed, "",
			"table directory truncated: %d records announced, room for %d", numTables, r.Len()/int64(RecordSize))
	}
	dir := &Directory{Flavor: flavor, size: len(b), binary: b}
	dir.Records = make([]Record, 0, numTables)
	for i := 0; i < int(numTables); i++ {
		rec := Record{}
		rec.Tag = MakeTag(r.ReadBytes(4))
		rec.Checksum = r.ReadUint32()
		rec.Offset = r.ReadUint32()
		rec.Length = r.ReadUint32()
		dir.Records = append(dir.Records, rec)
	}
	tracer().Debugf("table directory: flavor=%08x, %d tables", flavor, numTables)
	return dir, nil
}

// Find returns the first record with the given tag.
func (dir *Directory) Find(tag Tag) (Record, bool) {
	for _, rec := range dir.Records {
		if rec.Tag == tag {
			return rec, true
		}
	}
	return Record{}, false
}

// Check verifies that every table lies within the font binary.
func (dir *Directory) Check() error {
	for _, rec := range dir.Records {
		if err := dir.checkBounds(rec); err != nil {
			return err
		}
	}
	return nil
}

func (dir *Directory) checkBounds(rec Record) error {
	if rec.End() > uint64(dir.size) {
		return vmetrics.Errorf(vmetrics.ContainerMalformed, rec.Tag.String(),
			"bounds [%d:%d] exceed font size %d", rec.Offset, rec.End(), dir.size)
	}
	return nil
}

// IsCFF is true for fonts with CFF outlines ('OTTO').
func (dir *Directory) IsCFF() bool {
	return dir.Flavor == FlavorCFF
}

// Tags returns the tags of all tables, in directory order.
func (dir *Directory) Tags() []Tag {
	tags := make([]Tag, len(dir.Records))
	for i, rec := range dir.Records {
		tags[i] = rec.Tag
	}
	return tags
}

// Tables returns the content of every table, keyed by tag string. The
// slices share memory with the binary the directory has been parsed from.
// Tables out of bounds are reported as ContainerMalformed. Duplicate tags
// resolve to the first record.
func (dir *Directory) Tables() (map[string][]byte, error) {
	tables := make(map[string][]byte, len(dir.Records))
	for _, rec := range dir.Records {
		if err := dir.checkBounds(rec); err != nil {
			return nil, err
		}
		tag := rec.Tag.String()
		if _, dup := tables[tag]; dup {
			continue
		}
		tables[tag] = dir.binary[rec.Offset:rec.End():rec.End()]
	}
	return tables, nil
}

// FindTable scans the table directory of a font binary for a table.
// The scan is sequential and the first match wins. If tag is not present,
// ErrTableNotFound is returned. A broken directory or a table reaching past
// the end of b yield ContainerMalformed errors.
func FindTable(b []byte, tag Tag) (Record, error) {
	dir, err := Parse(b)
	if err != nil {
		return Record{}, err
	}
	rec, ok := dir.Find(tag)
	if !ok {
		tracer().Debugf("table %s not in directory of %d tables", tag, len(dir.Records))
		return Record{}, ErrTableNotFound
	}
	if err := dir.checkBounds(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// recordPosition returns the byte position of the directory record for tag,
// or -1 if the tag is not present.
func recordPosition(dir *Directory, tag Tag) int {
	for i, rec := range dir.Records {
		if rec.Tag == tag {
			return HeaderSize + i*RecordSize
		}
	}
	return -1
}

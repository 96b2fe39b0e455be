/*
Package sfntbuild assembles small SFNT font binaries from raw tables.

It is used by tests throughout this module to create containers with exactly
the tables (and the defects) a test case needs. Fonts built here have a
correct table directory, correct table checksums, 4-byte aligned tables and,
if a 'head' table is present, a correct checkSumAdjustment.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntbuild

import (
	"encoding/binary"
	"math/bits"
	"sort"

	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/tdewolff/parse/v2"
)

// Builder collects tables for a font binary.
type Builder struct {
	flavor uint32
	tables map[string][]byte
	order  []string // nil: sort by tag
}

// New creates a builder for a TrueType flavored font.
func New() *Builder {
	return &Builder{flavor: sfntdir.FlavorTrueType, tables: make(map[string][]byte)}
}

// Flavor sets the sfntVersion of the font, e.g. sfntdir.FlavorCFF.
func (bld *Builder) Flavor(flavor uint32) *Builder {
	bld.flavor = flavor
	return bld
}

// Table adds (or replaces) a table.
func (bld *Builder) Table(tag string, data []byte) *Builder {
	bld.tables[tag] = data
	return bld
}

// Order sets the order of tables in the directory, overriding sorting by tag.
// Tags not added with Table are ignored.
func (bld *Builder) Order(tags ...string) *Builder {
	bld.order = tags
	return bld
}

// Build serializes the font.
func (bld *Builder) Build() []byte {
	tags := bld.tags()
	numTables := uint16(len(tags))
	entrySelector := uint16(0)
	if numTables > 0 {
		entrySelector = uint16(bits.Len16(numTables) - 1)
	}
	searchRange := uint16(1<<entrySelector) * 16
	w := parse.NewBinaryWriter([]byte{})
	w.WriteUint32(bld.flavor)
	w.WriteUint16(numTables)
	w.WriteUint16(searchRange)
	w.WriteUint16(entrySelector)
	w.WriteUint16(numTables*16 - searchRange)
	w.WriteBytes(make([]byte, int(numTables)*sfntdir.RecordSize))
	offsets := make([]uint32, len(tags))
	for i, tag := range tags {
		offsets[i] = uint32(w.Len())
		w.WriteBytes(bld.tables[tag])
		for w.Len()&3 != 0 {
			w.WriteByte(0)
		}
	}
	buf := w.Bytes()
	for i, tag := range tags {
		data := bld.tables[tag]
		pos := sfntdir.HeaderSize + i*sfntdir.RecordSize
		copy(buf[pos:], (tag + "    ")[:4])
		binary.BigEndian.PutUint32(buf[pos+4:], sfntdir.TableChecksum(sfntdir.T(tag), data))
		binary.BigEndian.PutUint32(buf[pos+8:], offsets[i])
		binary.BigEndian.PutUint32(buf[pos+12:], uint32(len(data)))
	}
	if _, ok := bld.tables["head"]; ok {
		_ = sfntdir.UpdateChecksumAdjustment(buf)
	}
	return buf
}

func (bld *Builder) tags() []string {
	if bld.order != nil {
		tags := make([]string, 0, len(bld.order))
		for _, tag := range bld.order {
			if _, ok := bld.tables[tag]; ok {
				tags = append(tags, tag)
			}
		}
		return tags
	}
	tags := make([]string, 0, len(bld.tables))
	for tag := range bld.tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// --- Tables ----------------------------------------------------------------

// Head creates a 54 byte 'head' table with the given units per em.
func Head(unitsPerEm uint16) []byte {
	w := parse.NewBinaryWriter([]byte{})
	w.WriteUint16(1)          // majorVersion
	w.WriteUint16(0)          // minorVersion
	w.WriteUint32(0x00010000) // fontRevision
	w.WriteUint32(0)          // checksumAdjustment
	w.WriteUint32(0x5F0F3CF5) // magicNumber
	w.WriteUint16(0x000B)     // flags
	w.WriteUint16(unitsPerEm)
	w.WriteBytes(make([]byte, 16)) // created, modified
	w.WriteInt16(0)                // xMin
	w.WriteInt16(-200)             // yMin
	w.WriteInt16(1000)             // xMax
	w.WriteInt16(800)              // yMax
	w.WriteUint16(0)               // macStyle
	w.WriteUint16(8)               // lowestRecPPEM
	w.WriteInt16(2)                // fontDirectionHint
	w.WriteInt16(0)                // indexToLocFormat
	w.WriteInt16(0)                // glyphDataFormat
	return w.Bytes()
}

// HHea creates a 36 byte 'hhea' table. Pass-through fields carry distinct
// non-zero values, so tests can check that they survive edits.
func HHea(ascender, descender, lineGap int16) []byte {
	w := parse.NewBinaryWriter([]byte{})
	w.WriteUint16(1) // majorVersion
	w.WriteUint16(0) // minorVersion
	w.WriteInt16(ascender)
	w.WriteInt16(descender)
	w.WriteInt16(lineGap)
	w.WriteUint16(1234) // advanceWidthMax
	w.WriteInt16(-17)   // minLeftSideBearing
	w.WriteInt16(-23)   // minRightSideBearing
	w.WriteInt16(1211)  // xMaxExtent
	w.WriteInt16(1)     // caretSlopeRise
	w.WriteInt16(0)     // caretSlopeRun
	w.WriteInt16(5)     // caretOffset
	w.WriteInt16(0)     // reserved
	w.WriteInt16(0)     // reserved
	w.WriteInt16(0)     // reserved
	w.WriteInt16(0)     // reserved
	w.WriteInt16(0)     // metricDataFormat
	w.WriteUint16(3)    // numberOfHMetrics
	return w.Bytes()
}

// OS2 creates an 'OS/2' table of the given version with the given typographic
// metrics. Version 0 creates the 78 byte layout; use OS2Short for 68 bytes.
func OS2(version uint16, ascender, descender, lineGap int16, fsSelection uint16) []byte {
	w := parse.NewBinaryWriter([]byte{})
	os2Common(w, version, fsSelection)
	w.WriteInt16(ascender)
	w.WriteInt16(descender)
	w.WriteInt16(lineGap)
	w.WriteUint16(uint16(ascender))   // usWinAscent
	w.WriteUint16(uint16(-descender)) // usWinDescent
	if version >= 1 {
		w.WriteUint32(0x00000001) // ulCodePageRange1
		w.WriteUint32(0)          // ulCodePageRange2
	}
	if version >= 2 {
		w.WriteInt16(500) // sxHeight
		w.WriteInt16(700) // sCapHeight
		w.WriteUint16(0)  // usDefaultChar
		w.WriteUint16(32) // usBreakChar
		w.WriteUint16(2)  // usMaxContext
	}
	if version >= 5 {
		w.WriteUint16(0)      // usLowerOpticalPointSize
		w.WriteUint16(0xFFFE) // usUpperOpticalPointSize
	}
	return w.Bytes()
}

// OS2Short creates a 68 byte version 0 'OS/2' table without typographic metrics.
func OS2Short(fsSelection uint16) []byte {
	w := parse.NewBinaryWriter([]byte{})
	os2Common(w, 0, fsSelection)
	return w.Bytes()
}

func os2Common(w *parse.BinaryWriter, version uint16, fsSelection uint16) {
	w.WriteUint16(version)
	w.WriteInt16(500)  // xAvgCharWidth
	w.WriteUint16(400) // usWeightClass
	w.WriteUint16(5)   // usWidthClass
	w.WriteUint16(0)   // fsType
	for i := 0; i < 10; i++ {
		w.WriteInt16(int16(100 + i)) // sub- and superscript sizes and offsets, strikeout
	}
	w.WriteInt16(0)                // sFamilyClass
	w.WriteBytes(make([]byte, 10)) // panose
	w.WriteUint32(1)               // ulUnicodeRange1
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteBytes([]byte("TEST")) // achVendID
	w.WriteUint16(fsSelection)
	w.WriteUint16(32)  // usFirstCharIndex
	w.WriteUint16(126) // usLastCharIndex
}

// Minimal returns a font with tables 'head', 'hhea' and 'OS/2' (version 4).
func Minimal(unitsPerEm uint16) *Builder {
	return New().
		Table("head", Head(unitsPerEm)).
		Table("hhea", HHea(800, -200, 0)).
		Table("OS/2", OS2(4, 800, -200, 0, 0x0040))
}

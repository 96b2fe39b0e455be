/*
Package container holds a font in its object-model form while it is edited.

A Font wraps a github.com/tdewolff/font SFNT, whose table map holds the raw
bytes of every table. Tables are replaced wholesale; the serializer writes
the table map, recomputing the directory, table checksums and
head.checkSumAdjustment.

Fonts which the full parser rejects (e.g., because a required table such as
'hhea' is missing) are loaded in a relaxed mode, directly from the table
directory, with a warning. Such fonts can be edited and serialized, but not
compressed to WOFF2.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package container

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/tdewolff/font"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Font is a font container, owned by exactly one editing run.
type Font struct {
	SFNT      *font.SFNT         // object model, Tables holds raw table bytes
	Directory *sfntdir.Directory // table directory of the binary the font was loaded from
	Relaxed   bool               // true if the full parser rejected the font
}

// Load creates a font container from an uncompressed SFNT binary.
//
// A broken table directory, a missing or short table 'head', or an em size of
// zero are fatal and reported as ContainerMalformed. If the full parser
// rejects the font for other reasons, the font is loaded from its table
// directory and a warning is returned.
func Load(b []byte) (*Font, []vmetrics.Warning, error) {
	ws := &vmetrics.Warnings{}
	dir, err := sfntdir.Parse(b)
	if err != nil {
		return nil, ws.List(), err
	}
	if err = dir.Check(); err != nil {
		return nil, ws.List(), err
	}
	f := &Font{Directory: dir}
	sfnt, parseErr := parseSFNT(b)
	if parseErr != nil {
		tracer().Infof("font rejected by parser, loading from table directory: %v", parseErr)
		tables, err := dir.Tables()
		if err != nil {
			return nil, ws.List(), err
		}
		ws.Addf("", "font loaded in relaxed mode: %v", parseErr)
		sfnt = &font.SFNT{
			Length:     uint32(len(b)),
			Version:    string(b[:4]),
			IsCFF:      dir.IsCFF(),
			IsTrueType: !dir.IsCFF(),
			Tables:     tables,
		}
		f.Relaxed = true
	}
	f.SFNT = sfnt
	if _, err := f.UnitsPerEm(); err != nil {
		return nil, ws.List(), err
	}
	tracer().Debugf("loaded font with %d tables (relaxed=%v)", len(sfnt.Tables), f.Relaxed)
	return f, ws.List(), nil
}

// parseSFNT calls the full parser, turning panics into errors.
func parseSFNT(b []byte) (sfnt *font.SFNT, err error) {
	defer func() {
		if r := recover(); r != nil {
			sfnt, err = nil, fmt.Errorf("parser panicked: %v", r)
		}
	}()
	return font.ParseSFNT(b, 0)
}

// Table returns the raw bytes of a table. Font implements otquery.Font.
func (f *Font) Table(tag string) ([]byte, bool) {
	b, ok := f.SFNT.Tables[tag]
	return b, ok
}

// Has is true if the font contains table tag.
func (f *Font) Has(tag string) bool {
	_, ok := f.SFNT.Tables[tag]
	return ok
}

// Tags returns the tags of all tables, sorted.
func (f *Font) Tags() []string {
	tags := make([]string, 0, len(f.SFNT.Tables))
	for tag := range f.SFNT.Tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// UnitsPerEm returns the em size from table 'head'.
func (f *Font) UnitsPerEm() (uint16, error) {
	return otquery.UnitsPerEm(f)
}

// IsCFF is true for fonts with CFF outlines.
func (f *Font) IsCFF() bool {
	return f.SFNT.IsCFF
}

// Replace replaces (or adds) a table. The font keeps a reference to data.
func (f *Font) Replace(tag string, data []byte) {
	tracer().Debugf("replacing table %s (%d bytes -> %d bytes)", tag, len(f.SFNT.Tables[tag]), len(data))
	f.SFNT.Tables[tag] = data
}

// Remove removes a table. It returns false if the table has not been present.
func (f *Font) Remove(tag string) bool {
	if _, ok := f.SFNT.Tables[tag]; !ok {
		return false
	}
	delete(f.SFNT.Tables, tag)
	return true
}

// Serialize writes the font to an SFNT binary. Tables are written in tag
// order, 4-byte aligned, with checksums and head.checkSumAdjustment
// recomputed. Failures of the serializer are reported as SerializationFailed.
func (f *Font) Serialize() (b []byte, err error) {
	head, ok := f.Table("head")
	if !ok || len(head) < sfntdir.HeadSize {
		return nil, vmetrics.Errorf(vmetrics.SerializationFailed, "head", "table missing or too short")
	}
	if !f.SFNT.IsTrueType && !f.SFNT.IsCFF {
		return nil, vmetrics.Errorf(vmetrics.SerializationFailed, "", "unknown SFNT flavor %q", f.SFNT.Version)
	}
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("serializer panicked: %v", r)
			b, err = nil, vmetrics.Errorf(vmetrics.SerializationFailed, "", "serializer failed: %v", r)
		}
	}()
	b = f.SFNT.Write()
	f.SFNT.Length = uint32(len(b))
	tracer().Debugf("serialized font with %d tables to %d bytes", len(f.SFNT.Tables), len(b))
	return b, nil
}

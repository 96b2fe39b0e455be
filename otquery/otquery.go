/*
Package otquery decodes the font tables involved in vertical metrics.

Decoding works on raw table bytes, as delivered by any Font (usually a
container.Font, or a plain TableMap). The resulting info structs are plain
values without any references to the font binary:

	hhea, ok := otquery.HHeaInfo(font)
	os2, ok := otquery.OS2Info(font)

ReadMetrics collects the vertical metrics of all relevant tables at once and
is used for inspecting fonts as well as for verifying edited fonts.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Font gives access to the raw bytes of font tables by tag.
type Font interface {
	Table(tag string) ([]byte, bool)
}

// TableMap is a Font made of a map of tables, as used by package
// github.com/tdewolff/font.
type TableMap map[string][]byte

// Table returns the table for tag, if present.
func (tm TableMap) Table(tag string) ([]byte, bool) {
	b, ok := tm[tag]
	return b, ok
}

func lookup(f Font, tag string) ([]byte, bool) {
	if f == nil {
		return nil, false
	}
	return f.Table(tag)
}

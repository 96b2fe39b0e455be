/*
Package otpatch patches the vertical metrics of table 'hhea' directly in a
serialized font binary.

The patch is applied after a font has been serialized, and independently of
the structured edit of package otedit: it re-locates table 'hhea' through the
table directory and overwrites ascender, descender and line gap in place.
This guarantees that the bytes written to disk carry the intended metrics,
whatever the serializer did with the object model.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otpatch

import (
	"encoding/binary"
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/sfntdir"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Options control the patcher.
type Options struct {
	Checksums bool // recompute the 'hhea' checksum and head.checkSumAdjustment
	Verbose   bool // trace the patched offsets and values
}

// DefaultOptions returns options with checksum recomputation turned on.
func DefaultOptions() Options {
	return Options{Checksums: true}
}

// Apply writes ascender, descender and line gap of m into table 'hhea' of
// font binary b. b is not modified; the patch is applied to a copy.
//
// If the table cannot be located, the input is returned unchanged together
// with a PatchTargetNotFound error. A malformed directory or a table too
// short to hold the fields also return the input unchanged, with a
// ContainerMalformed error. Both are meant to be treated as warnings.
//
// Patching is idempotent: applying the same metrics twice yields identical bytes.
func Apply(b []byte, m metrics.Metrics, opts Options) ([]byte, error) {
	rec, err := sfntdir.FindTable(b, sfntdir.T("hhea"))
	if err != nil {
		if errors.Is(err, sfntdir.ErrTableNotFound) {
			tracer().Infof("patch skipped: no table hhea in directory")
			return b, vmetrics.Wrap(vmetrics.PatchTargetNotFound, "hhea", err)
		}
		return b, err
	}
	if rec.Length < sfntdir.HHeaMinSize {
		return b, vmetrics.Errorf(vmetrics.ContainerMalformed, "hhea",
			"table too short to patch: %d bytes", rec.Length)
	}
	out := make([]byte, len(b))
	copy(out, b)
	pos := int(rec.Offset)
	binary.BigEndian.PutUint16(out[pos+sfntdir.HHeaAscender:], uint16(m.Ascent))
	binary.BigEndian.PutUint16(out[pos+sfntdir.HHeaDescender:], uint16(m.Descent))
	binary.BigEndian.PutUint16(out[pos+sfntdir.HHeaLineGap:], uint16(m.LineGap))
	if opts.Verbose {
		tracer().Infof("patched hhea at offset %d: ascender=%d @%d, descender=%d @%d, lineGap=%d @%d",
			pos, m.Ascent, pos+sfntdir.HHeaAscender, m.Descent, pos+sfntdir.HHeaDescender,
			m.LineGap, pos+sfntdir.HHeaLineGap)
	}
	if opts.Checksums {
		if err := sfntdir.UpdateTableChecksum(out, rec.Tag); err != nil {
			return b, err
		}
		if err := sfntdir.UpdateChecksumAdjustment(out); err != nil && !errors.Is(err, sfntdir.ErrTableNotFound) {
			return b, err
		}
	}
	return out, nil
}

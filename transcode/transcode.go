/*
Package transcode converts fonts between SFNT (TrueType/OpenType) and the
WOFF2 web font format.

The codec itself is provided by package github.com/tdewolff/font and treated
as opaque: transcode detects formats, dispatches and maps failures to
TranscodeFailed errors. The one exception is a 'loca' table with wrapped
short offsets in decoded WOFF2 fonts, which is rewritten in long format. Compression is never applied implicitly; callers
decide from the output path whether a WOFF2 file is wanted.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package transcode

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/tdewolff/font"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Format is a font file format.
type Format int

// Font formats recognized by this package.
const (
	Unknown Format = iota
	TrueType
	OpenType // SFNT with CFF outlines
	WOFF
	WOFF2
)

func (f Format) String() string {
	switch f {
	case TrueType:
		return "TrueType"
	case OpenType:
		return "OpenType"
	case WOFF:
		return "WOFF"
	case WOFF2:
		return "WOFF2"
	}
	return "unknown"
}

// IsSFNT is true for uncompressed formats.
func (f Format) IsSFNT() bool {
	return f == TrueType || f == OpenType
}

// IsCompressed is true for web font formats.
func (f Format) IsCompressed() bool {
	return f == WOFF || f == WOFF2
}

// Ext returns the file extension for a format, including the dot.
func (f Format) Ext() string {
	switch f {
	case TrueType:
		return ".ttf"
	case OpenType:
		return ".otf"
	case WOFF:
		return ".woff"
	case WOFF2:
		return ".woff2"
	}
	return ""
}

// MediaType returns the MIME type of a format.
func (f Format) MediaType() string {
	switch f {
	case TrueType:
		return "font/ttf"
	case OpenType:
		return "font/otf"
	case WOFF:
		return "font/woff"
	case WOFF2:
		return "font/woff2"
	}
	return "application/octet-stream"
}

// CSSFormat returns the keyword for the format() hint of a CSS src descriptor.
func CSSFormat(f Format) string {
	switch f {
	case TrueType:
		return "truetype"
	case OpenType:
		return "opentype"
	case WOFF:
		return "woff"
	case WOFF2:
		return "woff2"
	}
	return ""
}

// Detect determines the format of a font binary from its signature.
func Detect(b []byte) Format {
	if len(b) < 4 {
		return Unknown
	}
	switch string(b[:4]) {
	case "wOF2":
		return WOFF2
	case "wOFF":
		return WOFF
	case "OTTO":
		return OpenType
	case "true":
		return TrueType
	}
	if binary.BigEndian.Uint32(b) == 0x00010000 {
		return TrueType
	}
	return Unknown
}

// FormatFromPath determines the format of a font file from its extension.
// Extensions are matched case-insensitively.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		return TrueType
	case ".otf":
		return OpenType
	case ".woff":
		return WOFF
	case ".woff2":
		return WOFF2
	}
	return Unknown
}

// Decompress decodes a WOFF2 font to SFNT. Codec failures are reported as
// TranscodeFailed.
func Decompress(b []byte) (sfnt []byte, err error) {
	if f := Detect(b); f != WOFF2 {
		return nil, vmetrics.Errorf(vmetrics.TranscodeFailed, "", "not a WOFF2 font: %s", f)
	}
	defer recoverCodec("WOFF2 decoder", &err)
	sfnt, err = font.ParseWOFF2(b)
	if err != nil {
		return nil, vmetrics.Wrap(vmetrics.TranscodeFailed, "", fmt.Errorf("WOFF2 decoding: %w", err))
	}
	if sfnt, err = repairLoca(sfnt); err != nil {
		return nil, vmetrics.Wrap(vmetrics.TranscodeFailed, "", fmt.Errorf("WOFF2 decoding: %w", err))
	}
	tracer().Debugf("decompressed WOFF2 of %d bytes to %d bytes", len(b), len(sfnt))
	return sfnt, nil
}

// ToSFNT returns the uncompressed SFNT form of a font binary, decoding WOFF
// and WOFF2 as necessary. SFNT input is returned as is.
func ToSFNT(b []byte) (sfnt []byte, err error) {
	switch f := Detect(b); f {
	case TrueType, OpenType:
		return b, nil
	case WOFF2:
		return Decompress(b)
	case WOFF:
		defer recoverCodec("WOFF decoder", &err)
		sfnt, err = font.ToSFNT(b)
		if err != nil {
			return nil, vmetrics.Wrap(vmetrics.TranscodeFailed, "", fmt.Errorf("WOFF decoding: %w", err))
		}
		return sfnt, nil
	}
	return nil, vmetrics.Errorf(vmetrics.UnsupportedFormat, "", "unrecognized font format")
}

// Compress encodes an SFNT font as WOFF2. The SFNT has to be a complete font,
// as the encoder transforms tables 'glyf', 'loca' and 'hmtx'. Table 'DSIG' is
// dropped by the encoder. Failures are reported as TranscodeFailed.
func Compress(b []byte) (woff2 []byte, err error) {
	if f := Detect(b); !f.IsSFNT() {
		return nil, vmetrics.Errorf(vmetrics.UnsupportedFormat, "", "cannot compress format %s", f)
	}
	defer recoverCodec("WOFF2 encoder", &err)
	sfnt, err := font.ParseSFNT(b, 0)
	if err != nil {
		return nil, vmetrics.Wrap(vmetrics.TranscodeFailed, "", fmt.Errorf("WOFF2 encoding: %w", err))
	}
	woff2, err = sfnt.WriteWOFF2()
	if err != nil {
		return nil, vmetrics.Wrap(vmetrics.TranscodeFailed, "", fmt.Errorf("WOFF2 encoding: %w", err))
	}
	tracer().Debugf("compressed SFNT of %d bytes to WOFF2 of %d bytes", len(b), len(woff2))
	return woff2, nil
}

// recoverCodec turns a panic of the codec into a TranscodeFailed error.
func recoverCodec(what string, err *error) {
	if r := recover(); r != nil {
		tracer().Errorf("%s panicked: %v", what, r)
		*err = vmetrics.Errorf(vmetrics.TranscodeFailed, "", "%s failed: %v", what, r)
	}
}

package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/transcode"
)

// FixedSuffix is inserted before the extension of derived output paths.
const FixedSuffix = "-fixed"

// DefaultOutputPath derives the output path for an edited font from the input
// path by inserting "-fixed" before the extension. Compressed inputs are
// written uncompressed, with extension ".otf" for CFF fonts and ".ttf" otherwise.
//
//	Go-Regular.ttf   → Go-Regular-fixed.ttf
//	Inter.woff2      → Inter-fixed.ttf
func DefaultOutputPath(input string, cff bool) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if f := transcode.FormatFromPath(input); !f.IsSFNT() {
		ext = sfntFormat(cff).Ext()
	}
	return base + FixedSuffix + ext
}

// CompressedOutputPath derives the output path of the compressor by
// replacing the extension of input with ".woff2".
func CompressedOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + transcode.WOFF2.Ext()
}

// outputFormat determines the format to write from the output path.
// Paths without a font extension are written as uncompressed SFNT.
func outputFormat(path string, cff bool) (transcode.Format, error) {
	switch f := transcode.FormatFromPath(path); f {
	case transcode.WOFF2:
		return f, nil
	case transcode.WOFF:
		return f, vmetrics.Errorf(vmetrics.UnsupportedFormat, "",
			"cannot write WOFF 1.0, use extension .woff2 or %s", sfntFormat(cff).Ext())
	}
	return sfntFormat(cff), nil
}

func sfntFormat(cff bool) transcode.Format {
	if cff {
		return transcode.OpenType
	}
	return transcode.TrueType
}

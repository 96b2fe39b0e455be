package fontload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/npillmayer/vmetrics/transcode"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// FontFile is a font file read from disk, in its on-disk format.
type FontFile struct {
	Path   string
	Format transcode.Format // format detected from the file's signature
	Binary []byte
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// ReadFontFile reads a font file. A file which does not exist is reported as
// InputNotFound.
func ReadFontFile(path string) (*FontFile, error) {
	bytez, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, vmetrics.Wrap(vmetrics.InputNotFound, "", err)
		}
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	ff := &FontFile{Path: path, Binary: bytez, Format: transcode.Detect(bytez)}
	tracer().Debugf("read %s: %d bytes, format %s", path, len(bytez), ff.Format)
	return ff, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull)
	if err != nil {
		tracer().Debugf("font has no full name: %v", err)
		f.Fontname = ""
	}
	return f, nil
}

// FontName returns a display name for an uncompressed font binary.
// Fonts rejected by the parser are searched for a name table directly.
// If no name can be found, fallback is returned.
func FontName(sfntBytes []byte, fallback string) string {
	if f, err := ParseOpenTypeFont(sfntBytes); err == nil && f.Fontname != "" {
		return f.Fontname
	}
	dir, err := sfntdir.Parse(sfntBytes)
	if err != nil {
		return fallback
	}
	tables, err := dir.Tables()
	if err != nil {
		return fallback
	}
	if name := otquery.NameEntry(otquery.TableMap(tables), sfnt.NameIDFull); name != "" {
		return name
	}
	return fallback
}

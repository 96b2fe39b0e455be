/*
Command ot-tools offers diagnostics for the vertical metrics of fonts.

	ot-tools font  <font> [tables...]   table directory, names and metrics
	ot-tools check <font>               checksums and metrics consistency
	ot-tools view  <font> [text...]     render text with its line metrics to PNG

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/vmetrics/container"
	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/npillmayer/vmetrics/transcode"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for diagnosing the vertical metrics of OpenType fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path (.ttf, .otf, .woff, .woff2)", "").
		AddArgument("tables...", "optional list of table tags (e.g. hhea,OS/2,head)", "").
		AddFlag("errors,e", "print warnings", commando.Bool, nil).
		AddFlag("verbose,V", "trace loading", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("check").
		SetDescription("Check table checksums and the consistency of vertical metrics. Exits with 1 on issues.").
		SetShortDescription("check a font").
		AddArgument("font", "font file path (.ttf, .otf, .woff, .woff2)", "").
		AddFlag("verbose,V", "trace loading", commando.Bool, nil).
		SetAction(runCheckCommand)

	commando.
		Register("view").
		SetDescription("Render a line of text to a PNG image, with lines for each set of vertical metrics.").
		SetShortDescription("metrics to image").
		AddArgument("font", "font file path (.ttf, .otf, .woff, .woff2)", "").
		AddArgument("text...", "text to render", "Hxgé").
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 96).
		AddFlag("verbose,V", "trace loading", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

// loadedFont is a font as read from disk, with its uncompressed form loaded.
type loadedFont struct {
	file     *fontload.FontFile
	sfnt     []byte
	font     *container.Font
	warnings []string
}

func mustLoadFont(path string, verbose bool) *loadedFont {
	if err := report.SetupTracing(verbose); err != nil {
		fatalf("%v", err)
	}
	lf, err := loadFont(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return lf
}

func loadFont(path string) (*loadedFont, error) {
	ff, err := fontload.ReadFontFile(path)
	if err != nil {
		return nil, err
	}
	b, err := transcode.ToSFNT(ff.Binary)
	if err != nil {
		return nil, err
	}
	f, ws, err := container.Load(b)
	if err != nil {
		return nil, err
	}
	lf := &loadedFont{file: ff, sfnt: b, font: f}
	for _, w := range ws {
		lf.warnings = append(lf.warnings, w.String())
	}
	return lf, nil
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}

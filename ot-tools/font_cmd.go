package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	lf := mustLoadFont(fontPath, mustFlagBool(flags["verbose"], "verbose"))

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Format: %s (%s)\n", lf.file.Format, lf.file.Format.MediaType())
	fmt.Printf("Name: %s\n", fontload.FontName(lf.sfnt, filepath.Base(fontPath)))
	if family := otquery.NameEntry(lf.font, sfnt.NameIDFamily); family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub := otquery.NameEntry(lf.font, sfnt.NameIDSubfamily); sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if version := otquery.NameEntry(lf.font, sfnt.NameIDVersion); version != "" {
		fmt.Printf("Version: %s\n", version)
	}
	if maxp, ok := otquery.MaxPInfo(lf.font); ok {
		fmt.Printf("Glyphs: %d\n", maxp.NumGlyphs)
	}
	fmt.Printf("Relaxed: %v\n", lf.font.Relaxed)

	tags := lf.font.Tags()
	fmt.Printf("Tables (%d): %s\n", len(tags), strings.Join(tags, " "))

	mi, ws, err := otquery.ReadMetrics(lf.font)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Units per em: %d\n", mi.UnitsPerEm)
	for _, line := range metricsLines(mi) {
		fmt.Println(line)
	}

	if len(args["tables"].Value) > 0 {
		printSelectedTables(lf.font.Directory, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, w := range lf.warnings {
			fmt.Println(w)
		}
		for _, w := range ws {
			fmt.Println(w.String())
		}
	}
}

// metricsLines formats each set of vertical metrics of a font as one line.
func metricsLines(mi otquery.MetricsInfo) []string {
	var lines []string
	add := func(name string, lm otquery.LineMetrics, ok bool) {
		if !ok {
			lines = append(lines, fmt.Sprintf("%-10s missing", name+":"))
			return
		}
		lines = append(lines, fmt.Sprintf("%-10s %s (height %d)", name+":", lm, lm.Height()))
	}
	hh, ok := mi.HHeaMetrics()
	add("hhea", hh, ok)
	typo, ok := mi.TypoMetrics()
	add("OS/2 typo", typo, ok)
	win, ok := mi.WinMetrics()
	add("OS/2 win", win, ok)
	if mi.OS2 != nil {
		lines = append(lines, fmt.Sprintf("%-10s %v", "typo flag:", mi.OS2.UseTypoMetrics()))
	}
	eff, ok := otquery.EffectiveMetrics(mi)
	add("effective", eff, ok)
	lines = append(lines, fmt.Sprintf("%-10s %v", "consistent:", mi.Consistent()))
	return lines
}

func printSelectedTables(dir *sfntdir.Directory, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		rec, ok := dir.Find(sfntdir.T(tagName))
		if !ok {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		fmt.Printf("table %s: offset=%d size=%d checksum=%08x\n", tagName, rec.Offset, rec.Length, rec.Checksum)
	}
}

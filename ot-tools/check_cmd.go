package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/sfntdir"
	"github.com/thatisuday/commando"
)

func runCheckCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	lf := mustLoadFont(fontPath, mustFlagBool(flags["verbose"], "verbose"))
	issues, err := checkFont(lf)
	if err != nil {
		fatalf("%v", err)
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if len(issues) > 0 {
		fmt.Printf("%s: %d issues\n", fontPath, len(issues))
		os.Exit(1)
	}
	fmt.Printf("%s: ok\n", fontPath)
}

// checkFont lists the checksum and metrics problems of a font.
// Checksums are checked on the uncompressed form of the font.
func checkFont(lf *loadedFont) ([]string, error) {
	var issues []string
	mismatches, fileOK, err := sfntdir.Verify(lf.sfnt)
	if err != nil {
		return nil, err
	}
	for _, tag := range mismatches {
		issues = append(issues, fmt.Sprintf("table %s: checksum mismatch", tag))
	}
	if !fileOK {
		issues = append(issues, "head: checkSumAdjustment is wrong")
	}
	mi, _, err := otquery.ReadMetrics(lf.font)
	if err != nil {
		return nil, err
	}
	hh, okh := mi.HHeaMetrics()
	typo, okt := mi.TypoMetrics()
	switch {
	case !okh:
		issues = append(issues, "hhea: table missing")
	case !okt:
		issues = append(issues, "OS/2: typographic metrics missing")
	case hh != typo:
		issues = append(issues, fmt.Sprintf("hhea %s differs from OS/2 typo %s", hh, typo))
	}
	if okt {
		win, _ := mi.WinMetrics()
		if win.Ascent != typo.Ascent || win.Descent != typo.Descent {
			issues = append(issues, fmt.Sprintf("OS/2 win %d/%d differs from typo %d/%d",
				win.Ascent, win.Descent, typo.Ascent, typo.Descent))
		}
		if !mi.OS2.UseTypoMetrics() {
			issues = append(issues, "OS/2: USE_TYPO_METRICS not set")
		}
	}
	return issues, nil
}

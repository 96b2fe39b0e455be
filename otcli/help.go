package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "metrics", "hhea", "os/2", "os2":
		pterm.Info.Println("Vertical metrics")
		pterm.Println(`
	Vertical metrics are stored in two tables:
	+------+--------------------------------------------------+
	| hhea | ascender, descender, lineGap                     |
	+------+--------------------------------------------------+
	| OS/2 | sTypoAscender, sTypoDescender, sTypoLineGap,     |
	|      | usWinAscent, usWinDescent, fsSelection bit 7     |
	+------+--------------------------------------------------+
	Browsers on macOS use hhea, Windows engines use the OS/2 win values,
	unless fsSelection bit 7 (USE_TYPO_METRICS) is set.
	Writing sets all of them to the same values.
	`)
	case "write", "css":
		pterm.Info.Println("write[:path] / css[:path]")
		pterm.Println(`
	write           writes the font with suffix -fixed, read back for verification
	write:out.woff2 writes WOFF2 if the extension says so
	css             prints an @font-face rule with metric overrides
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	list            current metrics of the font
	tables          table directory
	ascent:<pct>    ascent in percent of the em (default 90)
	descent:<pct>   descent in percent of the em (default 22)
	linegap:<units> line gap in font units (default 0)
	preview         tables as they would be written
	write[:<path>]  write the font
	css[:<path>]    @font-face rule for the output
	help[:<topic>]  topics: metrics, write
	quit
	`)
	}
}

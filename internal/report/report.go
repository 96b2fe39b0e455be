package report

import (
	"fmt"
	"strings"

	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/npillmayer/vmetrics/transcode"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InitDisplay sets up pterm for moderately fancy output.
func InitDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  " WARN ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Console reports the progress of a run to the terminal.
type Console struct {
	Verbose bool
	p       *message.Printer
}

// NewConsole creates a console reporter.
func NewConsole(verbose bool) *Console {
	return &Console{Verbose: verbose, p: message.NewPrinter(language.English)}
}

// Inspected prints the vertical metrics found in a font.
func (c *Console) Inspected(name string, path string, mi otquery.MetricsInfo) {
	pterm.Info.Println(fmt.Sprintf("%s (%s)", name, path))
	pterm.Printf("units per em: %s\n", c.p.Sprintf("%d", mi.UnitsPerEm))
	pterm.DefaultTable.WithHasHeader().WithData(MetricsTable(mi)).Render()
}

// MetricsTable formats the metrics of a font as table rows, header first.
func MetricsTable(mi otquery.MetricsInfo) [][]string {
	data := [][]string{
		{"Table", "Ascent", "Descent", "Line Gap", "Height", "Percent of em"},
	}
	row := func(name string, lm otquery.LineMetrics, ok bool) {
		if !ok {
			data = append(data, []string{name, "-", "-", "-", "-", "-"})
			return
		}
		data = append(data, []string{
			name,
			fmt.Sprintf("%d", lm.Ascent),
			fmt.Sprintf("%d", lm.Descent),
			fmt.Sprintf("%d", lm.LineGap),
			fmt.Sprintf("%d", lm.Height()),
			percentages(lm, mi.UnitsPerEm),
		})
	}
	hh, ok := mi.HHeaMetrics()
	row("hhea", hh, ok)
	typo, ok := mi.TypoMetrics()
	row("OS/2 typo", typo, ok)
	win, ok := mi.WinMetrics()
	row("OS/2 win", win, ok)
	flag := "-"
	if mi.OS2 != nil {
		flag = "no"
		if mi.OS2.UseTypoMetrics() {
			flag = "yes"
		}
	}
	data = append(data, []string{"USE_TYPO_METRICS", flag, "", "", "", ""})
	return data
}

func percentages(lm otquery.LineMetrics, upem uint16) string {
	m := metrics.Metrics{Ascent: int16(lm.Ascent), Descent: int16(lm.Descent), LineGap: int16(lm.LineGap)}
	a, d, l := m.Percent(upem)
	return fmt.Sprintf("%.1f%% / %.1f%% / %.1f%%", a, d, l)
}

// Computed prints the metrics about to be written.
func (c *Console) Computed(p metrics.Percent, m metrics.Metrics) {
	pterm.Info.Println(fmt.Sprintf("ascent %g%%, descent %g%%, line gap %g => %s",
		p.Ascent, p.Descent, p.LineGap, m))
}

// Warn prints a non-fatal issue.
func (c *Console) Warn(w vmetrics.Warning) {
	pterm.Warning.Println(w.String())
}

// Written prints the location and size of an output file.
func (c *Console) Written(path string, size int, format transcode.Format) {
	pterm.Success.Println(c.p.Sprintf("wrote %s (%s, %d bytes)", path, format, size))
}

// CSS prints a CSS snippet.
func (c *Console) CSS(snippet string) {
	if snippet == "" {
		return
	}
	pterm.Info.Println("CSS")
	pterm.Println(indent(snippet, "    "))
}

// Fatal prints a fatal error. In verbose mode the full chain of causes is shown.
func (c *Console) Fatal(err error) {
	if err == nil {
		return
	}
	pterm.Error.Println(err.Error())
	if h := Hint(vmetrics.KindOf(err)); h != "" {
		pterm.Println(indent(h, "    "))
	}
	if c.Verbose {
		for i, cause := range Chain(err)[1:] {
			pterm.Println(indent(cause, strings.Repeat("  ", i+1)))
		}
	}
}

// Hint returns advice for the user for fatal errors of kind k, if any.
func Hint(k vmetrics.ErrorKind) string {
	switch k {
	case vmetrics.InputNotFound:
		return "check the path of the input font"
	case vmetrics.UnsupportedFormat:
		return "supported formats are .ttf, .otf and .woff2 (.woff as input only)"
	case vmetrics.MetricOutOfRange:
		return "ascent and descent are percentages of the em, e.g. 90 and 22"
	case vmetrics.SerializationFailed:
		return "check that the output directory exists and is writable"
	}
	return ""
}

// Chain lists an error and all of its causes.
func Chain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return chain
}

func indent(s string, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

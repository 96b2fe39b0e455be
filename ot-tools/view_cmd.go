package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/otquery"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Colors of the metric lines.
var (
	baselineColor = color.RGBA{160, 160, 160, 255}
	hheaColor     = color.RGBA{0, 0, 255, 255}
	typoColor     = color.RGBA{0, 160, 0, 255}
	winColor      = color.RGBA{255, 0, 0, 255}
)

const viewMargin = 16

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	lf := mustLoadFont(fontPath, mustFlagBool(flags["verbose"], "verbose"))
	text := args["text"].Value
	if text == "" {
		fatalf("input text is empty")
	}
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	mi, _, err := otquery.ReadMetrics(lf.font)
	if err != nil {
		fatalf("%v", err)
	}
	img, err := renderMetrics(lf.sfnt, mi, text, ppem)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (blue=hhea, green=OS/2 typo, red=OS/2 win, gray=baseline)\n", outPath)
}

// renderMetrics renders a line of text and draws a horizontal line for the
// ascent and descent of each set of vertical metrics. The image is sized to
// hold the text and all metric lines.
func renderMetrics(b []byte, mi otquery.MetricsInfo, text string, ppem int) (*image.RGBA, error) {
	f, err := fontload.ParseOpenTypeFont(b)
	if err != nil {
		return nil, err
	}
	sf := f.SFNT
	if mi.UnitsPerEm == 0 {
		return nil, errors.New("invalid units-per-em")
	}
	scale := float32(ppem) / float32(mi.UnitsPerEm)
	type metricLine struct {
		lm otquery.LineMetrics
		c  color.RGBA
	}
	var lines []metricLine
	if win, ok := mi.WinMetrics(); ok {
		lines = append(lines, metricLine{win, winColor})
	}
	if typo, ok := mi.TypoMetrics(); ok {
		lines = append(lines, metricLine{typo, typoColor})
	}
	if hh, ok := mi.HHeaMetrics(); ok {
		lines = append(lines, metricLine{hh, hheaColor})
	}
	ascent, descent := float32(ppem), float32(0)
	for _, l := range lines {
		if a := float32(l.lm.Ascent) * scale; a > ascent {
			ascent = a
		}
		if d := -float32(l.lm.Descent) * scale; d > descent {
			descent = d
		}
	}
	//
	var buf sfnt.Buffer
	type glyphPath struct {
		segs sfnt.Segments
		dx   float32
	}
	var paths []glyphPath
	var penX float32
	outlines := 0
	for _, r := range text {
		gid, err := sf.GlyphIndex(&buf, r)
		if err != nil || gid == 0 {
			continue
		}
		segs, err := sf.LoadGlyph(&buf, gid, fixed.I(ppem), nil)
		if err != nil {
			continue
		}
		if len(segs) > 0 {
			outlines++
			// segments become invalid once the buffer is re-used
			paths = append(paths, glyphPath{segs: append(sfnt.Segments(nil), segs...), dx: penX})
		}
		if adv, err := sf.GlyphAdvance(&buf, gid, fixed.I(ppem), font.HintingNone); err == nil {
			penX += float32(adv) / 64
		}
	}
	if outlines == 0 {
		return nil, errors.New("no glyph with an outline found")
	}
	width := int(penX) + 2*viewMargin
	height := int(ascent+descent+0.5) + 2*viewMargin
	baseY := float32(viewMargin) + ascent
	//
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, p := range paths {
		tx := float32(viewMargin) + p.dx
		for _, seg := range p.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.MoveTo(tx+float32(seg.Args[0].X)/64, baseY+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpLineTo:
				rast.LineTo(tx+float32(seg.Args[0].X)/64, baseY+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpQuadTo:
				rast.QuadTo(
					tx+float32(seg.Args[0].X)/64, baseY+float32(seg.Args[0].Y)/64,
					tx+float32(seg.Args[1].X)/64, baseY+float32(seg.Args[1].Y)/64,
				)
			case sfnt.SegmentOpCubeTo:
				rast.CubeTo(
					tx+float32(seg.Args[0].X)/64, baseY+float32(seg.Args[0].Y)/64,
					tx+float32(seg.Args[1].X)/64, baseY+float32(seg.Args[1].Y)/64,
					tx+float32(seg.Args[2].X)/64, baseY+float32(seg.Args[2].Y)/64,
				)
			}
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	drawHLine(img, int(baseY), baselineColor)
	for _, l := range lines {
		drawHLine(img, int(baseY-float32(l.lm.Ascent)*scale), l.c)
		drawHLine(img, int(baseY-float32(l.lm.Descent)*scale), l.c)
	}
	return img, nil
}

func drawHLine(img *image.RGBA, y int, c color.RGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetRGBA(x, y, c)
	}
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

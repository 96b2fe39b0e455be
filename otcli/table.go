package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/vmetrics/container"
	"github.com/npillmayer/vmetrics/internal/fontload"
	"github.com/npillmayer/vmetrics/transcode"
	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded")

func listOp(intp *Intp, op *Op) (error, bool) {
	if intp.path == "" {
		return errNoFont, false
	}
	intp.console.Inspected(intp.result.Name, intp.path, intp.result.Before)
	return nil, false
}

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if intp.path == "" {
		return errNoFont, false
	}
	ff, err := fontload.ReadFontFile(intp.path)
	if err != nil {
		return err, false
	}
	b, err := transcode.ToSFNT(ff.Binary)
	if err != nil {
		return err, false
	}
	f, _, err := container.Load(b)
	if err != nil {
		return err, false
	}
	data := [][]string{{"Tag", "Offset", "Length", "Checksum"}}
	for _, rec := range f.Directory.Records {
		data = append(data, []string{
			rec.Tag.String(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("%08x", rec.Checksum),
		})
	}
	pterm.Printf("%s, %s, %d tables\n", intp.result.Name, ff.Format, len(f.Directory.Records))
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func ascentOp(intp *Intp, op *Op) (error, bool) {
	v, err := numArg(op)
	if err == nil {
		intp.percent.Ascent = v
	}
	return err, false
}

func descentOp(intp *Intp, op *Op) (error, bool) {
	v, err := numArg(op)
	if err == nil {
		intp.percent.Descent = v
	}
	return err, false
}

func lineGapOp(intp *Intp, op *Op) (error, bool) {
	v, err := numArg(op)
	if err == nil {
		intp.percent.LineGap = v
	}
	return err, false
}

// numArg parses a non-negative number argument. A trailing '%' is ignored.
func numArg(op *Op) (float64, error) {
	arg, ok := op.hasArg()
	if !ok {
		return 0, fmt.Errorf("%s needs a value, e.g. %s:90", opNames[op.code], opNames[op.code])
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", opNames[op.code], arg)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", opNames[op.code])
	}
	return v, nil
}

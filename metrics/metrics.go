/*
Package metrics computes vertical font metrics from percentages of the em square.

Designers think of ascent and descent as fractions of the em: "the ascent is at
90 % of the em, the descent at 22 %". Fonts store them as integers in font
units. Compute bridges the two:

	m, err := metrics.Compute(2048, metrics.Percent{Ascent: 90, Descent: 22})
	// m == Metrics{Ascent: 1843, Descent: -451, LineGap: 0}

The descent is always given as a positive percentage and always comes out as a
zero or negative number of font units, as this is how tables 'hhea' and 'OS/2'
store it.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package metrics

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
)

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Defaults as used by the command line tools.
const (
	DefaultAscent  = 90.0
	DefaultDescent = 22.0
	DefaultLineGap = 0.0
)

// Percent is the user-level input for a metrics edit.
type Percent struct {
	Ascent  float64 // ascent in percent of the em
	Descent float64 // descent in percent of the em, unsigned
	LineGap float64 // line gap in font units (not a percentage)
}

// DefaultPercent returns the default input of 90 % / 22 % / 0 units.
func DefaultPercent() Percent {
	return Percent{Ascent: DefaultAscent, Descent: DefaultDescent, LineGap: DefaultLineGap}
}

// Metrics are vertical metrics in font units, ready to be stored in a font.
// Descent is zero or negative.
type Metrics struct {
	Ascent  int16
	Descent int16
	LineGap int16
}

func (m Metrics) String() string {
	return fmt.Sprintf("ascent=%d descent=%d line-gap=%d", m.Ascent, m.Descent, m.LineGap)
}

// WinAscent returns the ascent as an unsigned magnitude, as stored in OS/2.usWinAscent.
func (m Metrics) WinAscent() uint16 {
	return abs16(m.Ascent)
}

// WinDescent returns the descent as an unsigned magnitude, as stored in OS/2.usWinDescent.
func (m Metrics) WinDescent() uint16 {
	return abs16(m.Descent)
}

// Percent maps m back to percentages of an em of size unitsPerEm.
// The line gap is returned as a percentage as well, as CSS wants it.
func (m Metrics) Percent(unitsPerEm uint16) (ascent, descent, lineGap float64) {
	if unitsPerEm == 0 {
		return 0, 0, 0
	}
	em := float64(unitsPerEm)
	return float64(m.Ascent) * 100 / em, -float64(m.Descent) * 100 / em, float64(m.LineGap) * 100 / em
}

// Compute maps percentages of an em of size unitsPerEm to font units.
//
//	ascent  =  round(unitsPerEm * p.Ascent / 100)
//	descent = -round(unitsPerEm * |p.Descent| / 100)
//	lineGap =  round(p.LineGap)
//
// Rounding is half away from zero. Results not representable as int16 are
// reported as MetricOutOfRange; negative or non-finite inputs as well.
// An em size of zero is a ContainerMalformed error.
func Compute(unitsPerEm uint16, p Percent) (Metrics, error) {
	var m Metrics
	if unitsPerEm == 0 {
		return m, vmetrics.Errorf(vmetrics.ContainerMalformed, "head", "units per em is zero")
	}
	em := float64(unitsPerEm)
	ascent, err := toInt16("ascent", math.Round(em*p.Ascent/100))
	if err != nil {
		return m, err
	}
	if ascent < 0 {
		return m, vmetrics.Errorf(vmetrics.MetricOutOfRange, "", "ascent must not be negative: %g %%", p.Ascent)
	}
	descent, err := toInt16("descent", -math.Round(em*math.Abs(p.Descent)/100))
	if err != nil {
		return m, err
	}
	lineGap, err := toInt16("line gap", math.Round(p.LineGap))
	if err != nil {
		return m, err
	}
	m = Metrics{Ascent: ascent, Descent: descent, LineGap: lineGap}
	tracer().Debugf("metrics for em=%d and %v%%/%v%%/%v: %s", unitsPerEm, p.Ascent, p.Descent, p.LineGap, m)
	return m, nil
}

func toInt16(name string, v float64) (int16, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, vmetrics.Errorf(vmetrics.MetricOutOfRange, "", "%s is not a finite number", name)
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, vmetrics.Errorf(vmetrics.MetricOutOfRange, "", "%s of %g font units exceeds 16-bit range", name, v)
	}
	return int16(v), nil
}

func abs16(v int16) uint16 {
	if v < 0 {
		return uint16(-int32(v))
	}
	return uint16(v)
}

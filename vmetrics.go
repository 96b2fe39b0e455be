/*
Package vmetrics is for editing the vertical metrics of OpenType fonts.

Browsers disagree about which table of a font is authoritative for line
spacing. Some engines read the legacy 'hhea' table, others follow the
typographic values of table 'OS/2' if the font asks them to. A font which
should render with identical line boxes everywhere therefore needs both tables
to tell the same story. Module vmetrics sets them to designer-chosen values:

▪︎ package `metrics` computes font-unit values from percentages of the em square,

▪︎ package `otedit` writes them to tables 'OS/2' and 'hhea' of a font container,

▪︎ package `otpatch` patches table 'hhea' directly in the serialized binary,

▪︎ package `transcode` converts from and to the WOFF2 web font format,

▪︎ package `pipeline` strings everything together.

This package holds the error kinds and warnings shared by all of them.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

Baseline-to-baseline distances:
https://learn.microsoft.com/en-us/typography/opentype/spec/recom#baseline-to-baseline-distances

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package vmetrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// TraceKey is the tracing key used throughout this module.
const TraceKey = "vmetrics"

// tracer writes to trace with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(TraceKey)
}

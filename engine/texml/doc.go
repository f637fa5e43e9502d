/*
Package texml converts TeXML trees into TeX source text.

TeXML is an XML vocabulary describing TeX input: commands with optional and
required arguments, environments, control characters, groups, references to
TeX's special characters, and literal text. It has been introduced by
Douglas Lovell in

    "TeXML: Typesetting with TeX", TUGboat, Volume 20 (1999), No. 3

Trees are made of html.Node values (golang.org/x/net/html), usually produced
by package input/texml. Every node is classified by its Kind; each kind has a
conversion rule, and container kinds aggregate a fixed set of permitted child
kinds in document order. Nodes of unknown kinds, and nodes of known kinds at
positions not permitted by their parent, are silently skipped. This keeps
conversion robust against vocabulary extensions.

Literal text is escaped (see Escape), except for text which is an immediate
child of an environment named "verbatim".

A Converter holds no state besides its options and may be used concurrently.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package texml

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'texml.engine'.
func tracer() tracing.Trace {
	return tracing.Select("texml.engine")
}

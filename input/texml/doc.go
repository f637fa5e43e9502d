/*
Package texml reads TeXML documents.

TeXML input is XML. Parsing produces a tree of html.Node values from
golang.org/x/net/html, which is the node type used by all tree-processing
packages of this module. The HTML5 parser itself is never used, as it would
neither respect XML empty-element tags nor case-sensitive element names.

Mapping of XML to nodes:

    document             html.DocumentNode
    element              html.ElementNode, Data = local name
    attribute            html.Attribute, Key = local name
    character data       html.TextNode (adjacent runs are merged)
    CDATA section        html.TextNode
    comment              html.CommentNode

Namespace prefixes and namespace declarations are dropped, as are processing
instructions and directives. Documents declaring a character encoding other
than UTF-8 are decoded using golang.org/x/net/html/charset.

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

// tracer traces with key 'texml.input'.
func tracer() tracing.Trace {
	return tracing.Select("texml.input")
}

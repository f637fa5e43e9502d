package texml

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/texml/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Parse reads an XML document from r and returns its document node.
// The document node has exactly one element child, the document element.
//
// Errors are of code core.EPARSE, except for a nil reader (core.EARGUMENT).
func Parse(r io.Reader) (*html.Node, error) {
	if r == nil {
		return nil, core.Error(core.EARGUMENT, "cannot parse TeXML from nil reader")
	}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	doc := &html.Node{Type: html.DocumentNode}
	current := doc
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, col := dec.InputPos()
			return nil, core.WrapError(err, core.EPARSE,
				"cannot parse TeXML input at line %d, column %d", line, col)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if current == doc && documentElement(doc) != nil {
				line, _ := dec.InputPos()
				return nil, core.Error(core.EPARSE,
					"second document element <%s> at line %d", t.Name.Local, line)
			}
			n := &html.Node{
				Type: html.ElementNode,
				Data: t.Name.Local,
				Attr: attributes(t.Attr),
			}
			current.AppendChild(n)
			current = n
		case xml.EndElement:
			current = current.Parent
		case xml.CharData:
			if current != doc {
				appendText(current, string(t))
			}
		case xml.Comment:
			if current != doc {
				current.AppendChild(&html.Node{Type: html.CommentNode, Data: string(t)})
			}
		default:
			tracer().Debugf("dropping XML token of type %T", tok)
		}
	}
	if documentElement(doc) == nil {
		return nil, core.Error(core.EPARSE, "TeXML input has no document element")
	}
	tracer().Debugf("parsed TeXML document with root <%s>", documentElement(doc).Data)
	return doc, nil
}

// ParseString parses a TeXML document from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

func attributes(xattrs []xml.Attr) []html.Attribute {
	if len(xattrs) == 0 {
		return nil
	}
	attrs := make([]html.Attribute, 0, len(xattrs))
	for _, a := range xattrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrs = append(attrs, html.Attribute{Key: a.Name.Local, Val: a.Value})
	}
	return attrs
}

// appendText adds text to parent, merging it with a preceding text node.
func appendText(parent *html.Node, text string) {
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += text
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func documentElement(doc *html.Node) *html.Node {
	for ch := doc.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

package main

import (
	"io"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/texml/core"
	"github.com/npillmayer/texml/engine/dom"
	"github.com/npillmayer/texml/engine/texml"
	input "github.com/npillmayer/texml/input/texml"
	"golang.org/x/net/html"
)

// selection restricts conversion to parts of a document. At most one of
// xpath and css may be set.
type selection struct {
	xpath string
	css   string
}

// nodes returns the nodes of doc to convert. Selected nodes nested within
// another selected node are dropped, as they are part of the outer node's
// output.
func (sel selection) nodes(doc *html.Node) ([]*html.Node, error) {
	var nodes []*html.Node
	var err error
	switch {
	case sel.xpath != "" && sel.css != "":
		return nil, core.Error(core.EARGUMENT, "cannot select with both XPath and CSS")
	case sel.xpath != "":
		nodes, err = dom.XPath(doc, sel.xpath)
	case sel.css != "":
		nodes, err = dom.CSS(doc, sel.css)
	default:
		return []*html.Node{doc}, nil
	}
	if err != nil {
		return nil, err
	}
	return outermost(nodes), nil
}

// outermost filters out nodes which have an ancestor in nodes.
func outermost(nodes []*html.Node) []*html.Node {
	selected := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		selected[n] = true
	}
	result := nodes[:0:0]
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil && !nested; p = p.Parent {
			nested = selected[p]
		}
		if nested {
			tracer().Debugf("dropping nested selection <%s>", n.Data)
			continue
		}
		result = append(result, n)
	}
	return result
}

func newConverter(conf schuko.Configuration) (*texml.Converter, error) {
	opts, err := texml.FromConfig(conf)
	if err != nil {
		return nil, err
	}
	return texml.New(opts...), nil
}

// convertInput parses a TeXML document from r, converts the selected nodes
// and writes the TeX output to w, one converted node after the other.
func convertInput(conv *texml.Converter, sel selection, r io.Reader, w io.Writer) error {
	doc, err := input.Parse(r)
	if err != nil {
		return err
	}
	nodes, err := sel.nodes(doc)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		tracer().Infof("selection matches no nodes")
	}
	for _, n := range nodes {
		tex, err := conv.Convert(n)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, tex); err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot write output")
		}
	}
	return nil
}

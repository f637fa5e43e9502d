/*
Package dom selects nodes of TeXML trees.

Selection works with XPath expressions (github.com/antchfx/xpath) or with CSS
selectors (github.com/andybalholm/cascadia). Both operate on trees of
html.Node, as produced by package input/texml.

CSS type selectors are matched case-insensitively against lowercase element
names, therefore the root element TeXML cannot be selected by its type. Use
XPath if case matters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/texml/core"
	"github.com/npillmayer/texml/engine/dom/xpathadapter"
	"golang.org/x/net/html"
)

// tracer traces with key 'texml.dom'.
func tracer() tracing.Trace {
	return tracing.Select("texml.dom")
}

// XPath returns the nodes below root (including root) matching an XPath
// expression, in document order and without duplicates. Absolute location
// paths start at root; usually root will be a document node.
//
// Matches of attributes or namespaces are reported as the element they
// belong to. An expression evaluating to a non-node value (e.g. "count(//cmd)")
// yields no nodes.
func XPath(root *html.Node, expr string) ([]*html.Node, error) {
	if root == nil {
		return nil, core.Error(core.EARGUMENT, "cannot query nil node")
	}
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EARGUMENT, "invalid XPath expression %q", expr)
	}
	nav := xpathadapter.NewNavigator(root)
	var nodes []*html.Node
	seen := make(map[*html.Node]bool)
	iter := x.Select(nav)
	for iter.MoveNext() {
		n, err := xpathadapter.CurrentNode(iter.Current())
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "XPath query %q", expr)
		}
		if n == nil || seen[n] {
			continue
		}
		seen[n] = true
		nodes = append(nodes, n)
	}
	tracer().Debugf("XPath %q selected %d nodes", expr, len(nodes))
	return nodes, nil
}

// CSS returns the nodes below root (including root) matching a CSS selector,
// in document order.
func CSS(root *html.Node, selector string) ([]*html.Node, error) {
	if root == nil {
		return nil, core.Error(core.EARGUMENT, "cannot query nil node")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EARGUMENT, "invalid CSS selector %q", selector)
	}
	nodes := sel.MatchAll(root)
	tracer().Debugf("CSS selector %q selected %d nodes", selector, len(nodes))
	return nodes, nil
}

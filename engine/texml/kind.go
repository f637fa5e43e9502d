package texml

import (
	"golang.org/x/net/html"
)

// Kind classifies TeXML nodes.
type Kind int8

// Node kinds of TeXML. KindUnknown covers everything outside the vocabulary,
// including comments and elements of other vocabularies.
const (
	KindUnknown Kind = iota
	KindTeXML        // document root
	KindCmd          // command invocation
	KindEnv          // environment
	KindOpt          // optional argument
	KindParm         // required argument
	KindCtrl         // control character
	KindGroup        // anonymous group
	KindSpec         // special character
	KindText         // literal text
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindTeXML:   "TeXML",
	KindCmd:     "cmd",
	KindEnv:     "env",
	KindOpt:     "opt",
	KindParm:    "parm",
	KindCtrl:    "ctrl",
	KindGroup:   "group",
	KindSpec:    "spec",
	KindText:    "#text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// elementKinds maps element names to kinds. Names are case-sensitive.
var elementKinds = map[string]Kind{
	"TeXML": KindTeXML,
	"cmd":   KindCmd,
	"env":   KindEnv,
	"opt":   KindOpt,
	"parm":  KindParm,
	"ctrl":  KindCtrl,
	"group": KindGroup,
	"spec":  KindSpec,
}

// KindOf classifies a node. A nil node is of kind KindUnknown.
func KindOf(n *html.Node) Kind {
	if n == nil {
		return KindUnknown
	}
	switch n.Type {
	case html.TextNode:
		return KindText
	case html.ElementNode:
		if k, ok := elementKinds[n.Data]; ok {
			return k
		}
	}
	return KindUnknown
}

// kindSet is a set of node kinds, used for the permitted children of
// container kinds.
type kindSet uint16

func setOf(kinds ...Kind) kindSet {
	var s kindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

func (s kindSet) contains(k Kind) bool {
	return k != KindUnknown && s&(1<<uint(k)) != 0
}

// Permitted children of the container kinds.
var (
	bodyKinds = setOf(KindCmd, KindEnv, KindCtrl, KindSpec, KindText)
	argKinds  = setOf(KindCmd, KindCtrl, KindSpec, KindText)
	optKinds  = setOf(KindOpt)
	parmKinds = setOf(KindParm)
)

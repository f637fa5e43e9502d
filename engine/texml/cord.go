package texml

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
	"golang.org/x/net/html"
)

// Leaf is the leaf type of cords created by ConvertCord. Every leaf is a
// fragment of TeX output and remembers the TeXML node it was produced by.
type Leaf struct {
	node    *html.Node
	kind    Kind
	content string
}

// Node returns the TeXML node which produced the leaf's text.
func (l Leaf) Node() *html.Node {
	return l.node
}

// Kind returns the kind of the node which produced the leaf's text.
func (l Leaf) Kind() Kind {
	return l.kind
}

// Weight of a leaf is its string length in bytes.
func (l Leaf) Weight() uint64 {
	return uint64(len(l.content))
}

func (l Leaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l Leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	left := Leaf{node: l.node, kind: l.kind, content: l.content[:i]}
	right := Leaf{node: l.node, kind: l.kind, content: l.content[i:]}
	return left, right
}

// Substring returns a string segment of the leaf's text fragment.
func (l Leaf) Substring(i, j uint64) []byte {
	return []byte(l.content[i:j])
}

var _ cords.Leaf = Leaf{}

func (l Leaf) dbgString() string {
	cont := strings.Replace(l.content, "\n", "_", -1)
	return fmt.Sprintf("{<%s> \"%s\"}", l.kind, cont)
}

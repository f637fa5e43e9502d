package texml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/texml/core"
	"golang.org/x/net/html"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Converter converts TeXML trees to TeX. A Converter is immutable after
// creation.
type Converter struct {
	nlhints   bool
	normalize bool
	form      norm.Form
}

// New creates a converter. Without options, newline hints are honored and
// text is not normalized.
func New(opts ...Option) *Converter {
	c := &Converter{nlhints: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Convert converts a TeXML node with default options. See Converter.Convert.
func Convert(n *html.Node) (string, error) {
	return defaultConverter.Convert(n)
}

// Convert converts node n and its descendents to TeX.
//
// If n is a document node, its document element is converted. A node of
// unknown kind converts to the empty string. A missing required attribute
// results in an error of code core.EINVALID, naming the path of the offending
// element.
func (c *Converter) Convert(n *html.Node) (string, error) {
	text, err := c.ConvertCord(n)
	if err != nil {
		return "", err
	}
	if text.IsVoid() {
		return "", nil
	}
	return text.String(), nil
}

// ConvertCord converts node n like Convert does, but returns the TeX output as
// a cord. Every leaf of the cord is of type Leaf and refers to the node which
// produced it.
func (c *Converter) ConvertCord(n *html.Node) (cords.Cord, error) {
	if n == nil {
		return cords.Cord{}, core.Error(core.EARGUMENT, "cannot convert nil node")
	}
	if n.Type == html.DocumentNode {
		if n = documentElement(n); n == nil {
			tracer().Infof("document has no document element")
			return cords.Cord{}, nil
		}
	}
	rule, ok := handlerFor(KindOf(n))
	if !ok {
		tracer().Debugf("no handler for %s", describe(n))
		return cords.Cord{}, nil
	}
	w := &walker{conv: c, b: cords.NewBuilder()}
	if err := rule(w, n); err != nil {
		return cords.Cord{}, err
	}
	return w.b.Cord(), nil
}

// --- Dispatch --------------------------------------------------------------

// rule is the conversion rule for a node kind.
type rule func(*walker, *html.Node) error

// handlerFor returns the conversion rule for kind k. For KindUnknown there is
// no handler.
func handlerFor(k Kind) (rule, bool) {
	switch k {
	case KindTeXML:
		return (*walker).root, true
	case KindCmd:
		return (*walker).cmd, true
	case KindEnv:
		return (*walker).env, true
	case KindOpt:
		return (*walker).opt, true
	case KindParm:
		return (*walker).parm, true
	case KindCtrl:
		return (*walker).ctrl, true
	case KindGroup:
		return (*walker).group, true
	case KindSpec:
		return (*walker).spec, true
	case KindText:
		return (*walker).text, true
	}
	return nil, false
}

// walker collects the output of a single conversion.
type walker struct {
	conv *Converter
	b    *cords.Builder
}

// emit appends s to the output, remembering n as its origin.
func (w *walker) emit(n *html.Node, s string) error {
	if s == "" {
		return nil
	}
	leaf := Leaf{node: n, kind: KindOf(n), content: s}
	tracer().Debugf("emit %s", leaf.dbgString())
	if err := w.b.Append(leaf); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot append output of %s", describe(n))
	}
	return nil
}

// children converts the children of n which are of a permitted kind, in
// document order. Other children are skipped.
func (w *walker) children(n *html.Node, permitted kindSet) error {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		k := KindOf(ch)
		if !permitted.contains(k) {
			if k != KindText {
				tracer().Debugf("skipping %s within <%s>", describe(ch), n.Data)
			}
			continue
		}
		rule, ok := handlerFor(k)
		if !ok {
			continue
		}
		if err := rule(w, ch); err != nil {
			return err
		}
	}
	return nil
}

// wrap emits prefix, the permitted children of n, and suffix.
func (w *walker) wrap(n *html.Node, prefix string, permitted kindSet, suffix string) error {
	if err := w.emit(n, prefix); err != nil {
		return err
	}
	if err := w.children(n, permitted); err != nil {
		return err
	}
	return w.emit(n, suffix)
}

// --- Rules -----------------------------------------------------------------

func (w *walker) root(n *html.Node) error {
	return w.children(n, bodyKinds)
}

func (w *walker) cmd(n *html.Node) error {
	name, err := required(n, "name")
	if err != nil {
		return err
	}
	if w.conv.nlhints && boolAttr(n, "nl1") {
		if err := w.emit(n, "\n"); err != nil {
			return err
		}
	}
	if err := w.emit(n, `\`+name); err != nil {
		return err
	}
	if err := w.children(n, optKinds); err != nil {
		return err
	}
	if err := w.children(n, parmKinds); err != nil {
		return err
	}
	if err := w.emit(n, " "); err != nil {
		return err
	}
	if w.conv.nlhints && boolAttr(n, "nl2") {
		return w.emit(n, "\n")
	}
	return nil
}

func (w *walker) env(n *html.Node) error {
	name, err := required(n, "name")
	if err != nil {
		return err
	}
	begin := attrOrDefault(n, "begin", "begin")
	end := attrOrDefault(n, "end", "end")
	return w.wrap(n,
		`\`+begin+"{"+name+"}\n",
		bodyKinds,
		`\`+end+"{"+name+"}\n")
}

func (w *walker) opt(n *html.Node) error {
	return w.wrap(n, "[", argKinds, "]")
}

func (w *walker) parm(n *html.Node) error {
	return w.wrap(n, "{", argKinds, "}")
}

func (w *walker) group(n *html.Node) error {
	return w.wrap(n, "{", bodyKinds, "}")
}

// ctrl emits the control version of the character given by attribute ch,
// i.e. its code point masked with 0x9F. A missing or empty attribute
// produces nothing.
func (w *walker) ctrl(n *html.Node) error {
	ch, ok := attr(n, "ch")
	if !ok || ch == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(ch)
	if r == utf8.RuneError && size <= 1 {
		r = rune(ch[0])
	}
	if size < len(ch) {
		tracer().Debugf("<ctrl> at %s: using first character of %q", nodePath(n), ch)
	}
	return w.emit(n, string(r&0x9F))
}

// specials maps categories of special characters to TeX's reserved
// characters.
var specials = map[string]string{
	"esc":     `\`,
	"bg":      "{",
	"eg":      "}",
	"mshift":  "$",
	"align":   "&",
	"parm":    "#",
	"sup":     "^",
	"sub":     "_",
	"tilde":   "~",
	"comment": "%",
}

func (w *walker) spec(n *html.Node) error {
	cat, _ := attr(n, "cat")
	s, ok := specials[cat]
	if !ok {
		tracer().Debugf("<spec> at %s: unknown category %q", nodePath(n), cat)
		return nil
	}
	return w.emit(n, s)
}

func (w *walker) text(n *html.Node) error {
	verbatim := isVerbatim(n.Parent)
	switch {
	case !w.conv.normalize && verbatim:
		return w.emit(n, n.Data)
	case !w.conv.normalize:
		return w.emit(n, Escape(n.Data))
	case verbatim:
		return w.emit(n, w.conv.form.String(n.Data))
	}
	s, _, err := transform.String(transform.Chain(w.conv.form, Escaper), n.Data)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot normalize text within %s", nodePath(n.Parent))
	}
	return w.emit(n, s)
}

// --- Helpers ---------------------------------------------------------------

// isVerbatim is a predicate: is n an environment named "verbatim"?
func isVerbatim(n *html.Node) bool {
	if KindOf(n) != KindEnv {
		return false
	}
	name, _ := attr(n, "name")
	return name == "verbatim"
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// attrOrDefault returns the value of attribute key, or dflt if it is absent or
// empty.
func attrOrDefault(n *html.Node, key, dflt string) string {
	if v, _ := attr(n, key); v != "" {
		return v
	}
	return dflt
}

func boolAttr(n *html.Node, key string) bool {
	v, ok := attr(n, key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func required(n *html.Node, key string) (string, error) {
	if v, _ := attr(n, key); v != "" {
		return v, nil
	}
	return "", core.Error(core.EINVALID, "<%s> at %s is missing attribute '%s'",
		n.Data, nodePath(n), key)
}

func documentElement(doc *html.Node) *html.Node {
	for ch := doc.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

// nodePath returns the location of an element as a sequence of steps from
// the document element, e.g. "/TeXML[1]/env[1]/cmd[2]".
func nodePath(n *html.Node) string {
	var steps []string
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		i := 1
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode && s.Data == n.Data {
				i++
			}
		}
		steps = append(steps, fmt.Sprintf("%s[%d]", n.Data, i))
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return "/" + strings.Join(steps, "/")
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return fmt.Sprintf("<%s>", n.Data)
	case html.TextNode:
		return "text node"
	case html.CommentNode:
		return "comment"
	}
	return fmt.Sprintf("node of type %d", n.Type)
}

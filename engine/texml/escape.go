package texml

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/texml/core"
	"golang.org/x/text/transform"
)

// escapes holds the replacement for every byte reserved by TeX.
// An empty entry means the byte is copied unchanged.
var escapes = [256]string{
	'%':  `\%{}`,
	'{':  `\{`,
	'}':  `\}`,
	'|':  `$|${}`,
	'#':  `\#{}`,
	'_':  `\_{}`,
	'^':  "\\char`\\^{}",
	'~':  "\\char`\\~{}",
	'&':  `\&{}`,
	'$':  `\${}`,
	'<':  `$<${}`,
	'>':  `$>${}`,
	'\\': `$\backslash${}`,
}

// Escape returns a copy of text with every character reserved by TeX replaced
// by a sequence typesetting it literally. Escaping operates on bytes; all
// non-reserved bytes, including multi-byte UTF-8 sequences, are copied
// unchanged.
func Escape(text string) string {
	i := 0
	for i < len(text) && escapes[text[i]] == "" {
		i++
	}
	if i == len(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	b.WriteString(text[:i])
	for ; i < len(text); i++ {
		if r := escapes[text[i]]; r != "" {
			b.WriteString(r)
		} else {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// EscapeValue escapes a string, a byte slice or a fmt.Stringer.
// A nil value or a value of any other type is rejected with an error of
// code core.EARGUMENT.
func EscapeValue(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return Escape(x), nil
	case *string:
		if x != nil {
			return Escape(*x), nil
		}
	case []byte:
		if x != nil {
			return Escape(string(x)), nil
		}
	case fmt.Stringer:
		if rv := reflect.ValueOf(x); rv.Kind() != reflect.Ptr || !rv.IsNil() {
			return Escape(x.String()), nil
		}
	}
	return "", core.Error(core.EARGUMENT, "cannot escape value of type %T", v)
}

// Escaper is a transform.Transformer applying the same substitutions as
// Escape. It is stateless and may be chained with other transformers, e.g.
// Unicode normalization forms.
var Escaper transform.Transformer = escaper{}

type escaper struct {
	transform.NopResetter
}

func (escaper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if r := escapes[c]; r != "" {
			if nDst+len(r) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], r)
		} else {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
		}
		nSrc++
	}
	return nDst, nSrc, nil
}

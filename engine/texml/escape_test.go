package texml

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/texml/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

var reserved = map[string]string{
	"%":  `\%{}`,
	"{":  `\{`,
	"}":  `\}`,
	"|":  `$|${}`,
	"#":  `\#{}`,
	"_":  `\_{}`,
	"^":  "\\char`\\^{}",
	"~":  "\\char`\\~{}",
	"&":  `\&{}`,
	"$":  `\${}`,
	"<":  `$<${}`,
	">":  `$>${}`,
	"\\": `$\backslash${}`,
}

func TestEscapeEmpty(t *testing.T) {
	assert.Equal(t, "", Escape(""))
}

func TestEscapePlainText(t *testing.T) {
	for _, s := range []string{
		"lore ipsum",
		"Grüße aus Köln",
		"line one\nline two\ttabbed",
		"punctuation: .,;:!?'\"()[]*+-=/@`",
	} {
		assert.Equal(t, s, Escape(s))
	}
}

func TestEscapeReservedCharacters(t *testing.T) {
	assert.Len(t, reserved, 13)
	for c, r := range reserved {
		assert.Equal(t, r, Escape(c), "escaping %q", c)
	}
}

func TestEscapeNestedBraces(t *testing.T) {
	assert.Equal(t,
		`outside \{inside\} \{\{deep \{\{inside\}\}\} a group\}`,
		Escape("outside {inside} {{deep {{inside}}} a group}"))
}

func TestEscapeMixed(t *testing.T) {
	assert.Equal(t, `a\&{}b\${}c`, Escape("a&b$c"))
	assert.Equal(t, `50\%{} off \_{}now\_{}`, Escape("50% off _now_"))
}

func TestEscapeIsHomomorphic(t *testing.T) {
	parts := []string{"", "plain", "a&b", "{x}", "100%", `\relax`, "ü~^", "<tag>"}
	for _, s1 := range parts {
		for _, s2 := range parts {
			assert.Equal(t, Escape(s1)+Escape(s2), Escape(s1+s2), "%q + %q", s1, s2)
		}
	}
}

func TestEscapeValue(t *testing.T) {
	s, err := EscapeValue("x_y")
	require.NoError(t, err)
	assert.Equal(t, `x\_{}y`, s)
	s, err = EscapeValue([]byte("#1"))
	require.NoError(t, err)
	assert.Equal(t, `\#{}1`, s)
	str := "$"
	s, err = EscapeValue(&str)
	require.NoError(t, err)
	assert.Equal(t, `\${}`, s)
	s, err = EscapeValue(KindCmd)
	require.NoError(t, err)
	assert.Equal(t, "cmd", s)
}

func TestEscapeValueRejectsInvalidArguments(t *testing.T) {
	var nilString *string
	var nilBytes []byte
	var nilBuffer *bytes.Buffer
	for _, v := range []interface{}{nil, nilString, nilBytes, nilBuffer, 42} {
		s, err := EscapeValue(v)
		assert.Error(t, err, "value %#v", v)
		assert.Equal(t, core.EARGUMENT, core.Code(err))
		assert.Equal(t, "", s)
	}
}

func TestEscaperTransformer(t *testing.T) {
	input := strings.Repeat(`50% of {all} \items & more_`, 100)
	s, _, err := transform.String(Escaper, input)
	require.NoError(t, err)
	assert.Equal(t, Escape(input), s)
	//
	r := transform.NewReader(strings.NewReader(input), Escaper)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, Escape(input), string(out))
}

func TestEscaperShortDestination(t *testing.T) {
	dst := make([]byte, 3)
	nDst, nSrc, err := Escaper.Transform(dst, []byte("a%b"), true)
	assert.Equal(t, transform.ErrShortDst, err)
	assert.Equal(t, 1, nDst)
	assert.Equal(t, 1, nSrc)
}

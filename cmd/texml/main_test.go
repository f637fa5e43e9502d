package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/texml/core"
	"github.com/npillmayer/texml/engine/texml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var report = `<?xml version="1.0"?>
<TeXML>
<cmd name="chapter"><parm>Results</parm></cmd>
<env name="verbatim">50% &amp; {more}</env>
<cmd name="footnote"><parm>100%</parm></cmd>
</TeXML>`

func newConf() *koanfadapter.KConf {
	conf := koanfadapter.New(nil, "", nil)
	conf.InitDefaults()
	return conf
}

func TestParseFlags(t *testing.T) {
	conf := newConf()
	args, err := parseFlags([]string{"-nlhints=false", "-normalize", "NFC",
		"-xpath", "//cmd", "-o", "out.tex", "in.xml"}, conf)
	require.NoError(t, err)
	assert.Equal(t, "in.xml", args.input)
	assert.Equal(t, "out.tex", args.output)
	assert.Equal(t, "//cmd", args.sel.xpath)
	assert.False(t, args.interactive)
	assert.True(t, conf.IsSet("texml.nlhints"))
	assert.False(t, conf.GetBool("texml.nlhints"))
	assert.Equal(t, "NFC", conf.GetString("texml.normalize"))
	assert.Equal(t, "Error", conf.GetString("trace.texml.engine"))
}

func TestParseFlagsKeepsConfiguration(t *testing.T) {
	conf := newConf()
	conf.Set("texml.normalize", "NFD")
	conf.Set("trace.texml.input", "Debug")
	args, err := parseFlags([]string{"-i"}, conf)
	require.NoError(t, err)
	assert.True(t, args.interactive)
	assert.Equal(t, "", args.input)
	assert.False(t, conf.IsSet("texml.nlhints"))
	assert.Equal(t, "NFD", conf.GetString("texml.normalize"))
	assert.Equal(t, "Debug", conf.GetString("trace.texml.input"))
	//
	_, err = parseFlags([]string{"-trace", "Info"}, conf)
	require.NoError(t, err)
	assert.Equal(t, "Info", conf.GetString("trace.texml.input"))
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"a.xml", "b.xml"}, newConf())
	assert.Equal(t, core.EARGUMENT, core.Code(err))
	_, err = parseFlags([]string{"-nosuchflag"}, newConf())
	assert.Equal(t, core.EARGUMENT, core.Code(err))
}

func TestConvertInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "texml.cli", "texml.engine")
	defer teardown()
	//
	conv, err := newConverter(newConf())
	require.NoError(t, err)
	var out strings.Builder
	err = convertInput(conv, selection{}, strings.NewReader(report), &out)
	require.NoError(t, err)
	assert.Equal(t, "\n\\chapter{Results} \n\\begin{verbatim}\n50% & {more}\\end{verbatim}\n"+
		"\n\\footnote{100\\%{}} \n", out.String())
}

func TestConvertSelected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "texml.cli")
	defer teardown()
	//
	conv := texml.New()
	var out strings.Builder
	err := convertInput(conv, selection{xpath: "//cmd/parm"}, strings.NewReader(report), &out)
	require.NoError(t, err)
	assert.Equal(t, "{Results}{100\\%{}}", out.String())
	//
	out.Reset()
	err = convertInput(conv, selection{css: "cmd[name=footnote]"}, strings.NewReader(report), &out)
	require.NoError(t, err)
	assert.Equal(t, "\\footnote{100\\%{}} ", out.String())
	//
	out.Reset()
	err = convertInput(conv, selection{css: "group"}, strings.NewReader(report), &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	//
	err = convertInput(conv, selection{xpath: "//cmd", css: "cmd"}, strings.NewReader(report), &out)
	assert.Equal(t, core.EARGUMENT, core.Code(err))
}

func TestConvertInputErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "texml.cli")
	defer teardown()
	//
	conv := texml.New()
	var out strings.Builder
	err := convertInput(conv, selection{}, strings.NewReader("<TeXML>"), &out)
	assert.Equal(t, exitParse, exitCode(err))
	err = convertInput(conv, selection{}, strings.NewReader("<TeXML><cmd/></TeXML>"), &out)
	assert.Equal(t, exitInvalid, exitCode(err))
	_, _, err = openInput("/no/such/file.xml")
	assert.Equal(t, exitMissing, exitCode(err))
	assert.Equal(t, exitOther, exitCode(errors.New("other")))
	assert.Equal(t, exitOK, exitCode(nil))
}

func TestNewConverterRejectsUnknownForm(t *testing.T) {
	conf := newConf()
	conf.Set("texml.normalize", "NFX")
	_, err := newConverter(conf)
	assert.Equal(t, core.EARGUMENT, core.Code(err))
}

func TestEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "texml.cli")
	defer teardown()
	//
	intp := &Intp{conv: texml.New(texml.NewlineHints(false))}
	tex, err := intp.eval(`<cmd name="section" nl2="1"><parm>A &amp; B</parm></cmd>`)
	require.NoError(t, err)
	assert.Equal(t, "\\section{A \\&{} B} ", tex)
	_, err = intp.eval(`<cmd name="section">`)
	assert.Equal(t, core.EPARSE, core.Code(err))
}

func TestConvertNestedSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "texml.cli")
	defer teardown()
	//
	nested := `<TeXML><cmd name="emph"><parm><cmd name="textbf"><parm>x</parm></cmd></parm></cmd>` +
		`<cmd name="par"/></TeXML>`
	conv := texml.New()
	var out strings.Builder
	err := convertInput(conv, selection{xpath: "//cmd"}, strings.NewReader(nested), &out)
	require.NoError(t, err)
	assert.Equal(t, "\\emph{\\textbf{x} } \\par ", out.String())
	//
	out.Reset()
	err = convertInput(conv, selection{css: "cmd"}, strings.NewReader(nested), &out)
	require.NoError(t, err)
	assert.Equal(t, "\\emph{\\textbf{x} } \\par ", out.String())
}

/*
Command texml converts TeXML documents to TeX.

Usage:

	texml [flags] [file]

Without a file argument, input is read from stdin. Output goes to stdout
unless flag -o names an output file. With flag -i texml starts an interactive
session, where every input line is taken as the content of a TeXML root
element and converted immediately.

Defaults for flags -nlhints and -normalize may be set in a NestedText
configuration file, usually ~/.config/texml/config.nt:

	texml:
	  nlhints: false
	  normalize: NFC
	trace:
	  texml:
	    engine: Debug

Flags given on the command line take precedence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/texml/core"
	"github.com/pterm/pterm"
)

// tracer traces with key 'texml.cli'
func tracer() tracing.Trace {
	return tracing.Select("texml.cli")
}

// Exit codes
const (
	exitOK = iota
	exitParse
	exitInvalid
	exitMissing
	exitOther
)

func main() {
	initDisplay()

	conf := koanfadapter.New(nil, "texml", []string{"nt"})
	conf.InitDefaults()
	args, err := parseFlags(os.Args[1:], conf)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitOther)
	}

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		pterm.Error.Println("error configuring tracing")
		os.Exit(exitOther)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", conf.GetString("trace.texml.cli"))

	conv, err := newConverter(conf)
	if err != nil {
		exit(err)
	}
	if args.interactive {
		pterm.Info.Println("Welcome to TeXML")  // colored welcome message
		pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
		if err := repl(conv, os.Stdout); err != nil {
			exit(core.WrapError(err, core.EINTERNAL, "cannot start interactive mode"))
		}
		return
	}

	in, closeIn, err := openInput(args.input)
	if err != nil {
		exit(err)
	}
	out, closeOut, err := openOutput(args.output)
	if err != nil {
		closeIn()
		exit(err)
	}
	w := bufio.NewWriter(out)
	err = convertInput(conv, args.sel, in, w)
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = core.WrapError(ferr, core.EINTERNAL, "cannot write output")
	}
	closeOut()
	closeIn()
	if err != nil {
		exit(err)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func exit(err error) {
	pterm.Error.Println(err.Error())
	os.Exit(exitCode(err))
}

// exitCode maps error codes to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	switch core.Code(err) {
	case core.EPARSE:
		return exitParse
	case core.EINVALID:
		return exitInvalid
	case core.EMISSING:
		return exitMissing
	}
	return exitOther
}

// --- Flags -----------------------------------------------------------------

type cliArgs struct {
	input       string // empty for stdin
	output      string // empty for stdout
	interactive bool
	sel         selection
}

// parseFlags parses the command line. Flags which are explicitly set override
// the corresponding configuration values in conf.
func parseFlags(argv []string, conf *koanfadapter.KConf) (cliArgs, error) {
	var args cliArgs
	fs := flag.NewFlagSet("texml", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: texml [flags] [file]\n")
		fs.PrintDefaults()
	}
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	nlhints := fs.Bool("nlhints", true, "Honor newline hints nl1 and nl2 of commands")
	normalize := fs.String("normalize", "", "Unicode normalization of text [NFC|NFD|NFKC|NFKD]")
	fs.StringVar(&args.sel.xpath, "xpath", "", "Convert nodes selected by an XPath expression (outermost matches only)")
	fs.StringVar(&args.sel.css, "css", "", "Convert nodes selected by a CSS selector (outermost matches only)")
	fs.StringVar(&args.output, "o", "", "Output file")
	fs.BoolVar(&args.interactive, "i", false, "Interactive mode")
	if err := fs.Parse(argv); err != nil {
		return args, core.WrapError(err, core.EARGUMENT, "invalid command line")
	}
	if fs.NArg() > 1 {
		return args, core.Error(core.EARGUMENT, "too many input files: %v", fs.Args())
	}
	args.input = fs.Arg(0)
	var traceSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			traceSet = true
		case "nlhints":
			conf.Set("texml.nlhints", *nlhints)
		case "normalize":
			conf.Set("texml.normalize", *normalize)
		}
	})
	for _, key := range []string{"cli", "engine", "input", "dom"} {
		key = "trace.texml." + key
		if traceSet || !conf.IsSet(key) {
			conf.Set(key, *tlevel)
		}
	}
	return args, nil
}

// --- Input and output ------------------------------------------------------

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EMISSING, "cannot open input file %q", path)
	}
	tracer().Debugf("reading TeXML from %s", path)
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EINTERNAL, "cannot create output file %q", path)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			tracer().Errorf("closing %s: %v", path, err)
		}
	}, nil
}

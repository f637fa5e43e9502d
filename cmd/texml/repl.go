package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/texml/engine/texml"
	input "github.com/npillmayer/texml/input/texml"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	conv *texml.Converter
	repl *readline.Instance
	out  io.Writer
}

// repl starts interactive mode. It returns when the user quits or input ends.
func repl(conv *texml.Converter, out io.Writer) error {
	rl, err := readline.New("texml > ")
	if err != nil {
		return err
	}
	defer rl.Close()
	intp := &Intp{conv: conv, repl: rl, out: out}
	intp.REPL()
	return nil
}

// REPL reads lines until EOF or "quit".
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		if line == "help" {
			help()
			continue
		}
		tex, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		fmt.Fprintln(intp.out, tex)
	}
	pterm.Info.Println("Good bye!")
}

// eval converts a TeXML fragment, i.e. the content of a root element.
func (intp *Intp) eval(line string) (string, error) {
	tracer().Debugf("eval %q", line)
	doc, err := input.ParseString("<TeXML>" + line + "</TeXML>")
	if err != nil {
		return "", err
	}
	return intp.conv.Convert(doc)
}

func help() {
	pterm.Info.Println(`Enter the content of a TeXML document, e.g.
    <cmd name="section"><parm>Introduction</parm></cmd>
Enter "quit" or <ctrl>D to leave.`)
}

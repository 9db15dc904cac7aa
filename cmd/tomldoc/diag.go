package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KimNorgaard/go-tomldoc"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// errReported signals that a command already printed its diagnostics.
var errReported = errors.New("reported")

// painter writes colored diagnostics. Colors are only enabled when the
// output is a terminal.
type painter struct {
	w        io.Writer
	location *color.Color
	err      *color.Color
	ok       *color.Color
	caret    *color.Color
}

func newPainter(w io.Writer) *painter {
	p := &painter{
		w:        w,
		location: color.New(color.Bold),
		err:      color.New(color.FgRed, color.Bold),
		ok:       color.New(color.FgGreen),
		caret:    color.New(color.FgYellow, color.Bold),
	}
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, c := range []*color.Color{p.location, p.err, p.ok, p.caret} {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *painter) errorf(format string, args ...any) {
	fmt.Fprintln(p.w, p.err.Sprintf(format, args...))
}

func (p *painter) okf(format string, args ...any) {
	fmt.Fprintln(p.w, p.ok.Sprintf(format, args...))
}

// syntax prints a syntax error with the offending source line and a
// caret under the column.
func (p *painter) syntax(name string, src []byte, se *tomldoc.SyntaxError) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.location.Sprintf("%s:%d:%d:", name, se.Line, se.Column),
		p.err.Sprint("error:"),
		se.Msg)

	line := sourceLine(src, se.Offset)
	fmt.Fprintf(p.w, "  %s\n", line)
	col := min(se.Column-1, len(line))
	fmt.Fprintf(p.w, "  %s%s\n", strings.Repeat(" ", col), p.caret.Sprint("^"))
}

// sourceLine returns the line containing offset with tabs expanded to a
// single space so the caret lines up.
func sourceLine(src []byte, offset int) string {
	offset = min(offset, len(src))
	start := strings.LastIndexByte(string(src[:offset]), '\n') + 1
	end := len(src)
	if i := strings.IndexByte(string(src[start:]), '\n'); i >= 0 {
		end = start + i
	}
	line := strings.TrimSuffix(string(src[start:end]), "\r")
	return strings.ReplaceAll(line, "\t", " ")
}

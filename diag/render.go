package diag

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer prints diagnostics compiler style: location, message, the
// offending source line and a caret.
type Renderer struct {
	w        io.Writer
	location *color.Color
	errText  *color.Color
	caret    *color.Color
}

func NewRenderer(w io.Writer, colored bool) *Renderer {
	r := &Renderer{
		w:        w,
		location: color.New(color.Bold),
		errText:  color.New(color.FgRed, color.Bold),
		caret:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{r.location, r.errText, r.caret} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render prints d. src is the content of d.File; without it only the
// location line is printed.
func (r *Renderer) Render(d Diagnostic, src []byte) error {
	pos := d.Span.Start
	_, err := fmt.Fprintf(r.w, "%s %s %s\n",
		r.location.Sprintf("%s:%d:%d:", d.File, pos.Line, pos.Column),
		r.errText.Sprint("error:"),
		d.Message)
	if err != nil || src == nil {
		return err
	}
	line := sourceLine(src, pos.Line)
	if line == "" {
		return nil
	}
	width := d.Span.End.Offset - d.Span.Start.Offset
	if d.Span.End.Line != pos.Line || width < 1 {
		width = 1
	}
	pad := caretPadding(line, pos.Column)
	_, err = fmt.Fprintf(r.w, "  %s\n  %s%s\n", line, pad, r.caret.Sprint(strings.Repeat("^", width)))
	return err
}

// RenderAll prints every diagnostic, reading sources through lookup.
func (r *Renderer) RenderAll(diags []Diagnostic, lookup func(file string) []byte) error {
	for _, d := range diags {
		var src []byte
		if lookup != nil {
			src = lookup(d.File)
		}
		if err := r.Render(d, src); err != nil {
			return err
		}
	}
	return nil
}

func sourceLine(src []byte, line int) string {
	for i := 1; i < line; i++ {
		nl := bytes.IndexByte(src, '\n')
		if nl < 0 {
			return ""
		}
		src = src[nl+1:]
	}
	if nl := bytes.IndexByte(src, '\n'); nl >= 0 {
		src = src[:nl]
	}
	return strings.TrimRight(string(src), "\r")
}

// caretPadding keeps tabs so the caret lines up under the column.
func caretPadding(line string, column int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

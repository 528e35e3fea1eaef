// Package diag turns the error nodes of a syntax tree into diagnostics and
// prints them.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dhamidi/jsyn/java/parser"
)

// Diagnostic is one syntax error located in a file.
type Diagnostic struct {
	File    string
	Span    parser.Span
	Key     string
	Message string
	// Text is the source wrapped by the error node, empty for a missing
	// token.
	Text string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// FromTree extracts a diagnostic for every error node under root, in source
// order.
func FromTree(file string, root *parser.Node) []Diagnostic {
	if root == nil {
		return nil
	}
	var diags []Diagnostic
	for _, n := range root.Errors() {
		d := Diagnostic{File: file, Span: n.Span, Text: n.Text()}
		if n.Error != nil {
			d.Key = n.Error.Key
			d.Message = n.Error.Message
		}
		diags = append(diags, d)
	}
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start.Offset < diags[j].Span.Start.Offset
	})
	return diags
}

// FileError reports the syntax errors of one file.
type FileError struct {
	File        string
	Diagnostics []Diagnostic
}

func (e *FileError) Error() string {
	n := len(e.Diagnostics)
	if n == 1 {
		return fmt.Sprintf("%s: 1 syntax error", e.File)
	}
	return fmt.Sprintf("%s: %d syntax errors", e.File, n)
}

// Aggregate groups diagnostics by file into one error per failing file. It
// returns nil when there are no diagnostics.
func Aggregate(diags []Diagnostic) error {
	byFile := map[string][]Diagnostic{}
	var files []string
	for _, d := range diags {
		if _, ok := byFile[d.File]; !ok {
			files = append(files, d.File)
		}
		byFile[d.File] = append(byFile[d.File], d)
	}
	sort.Strings(files)

	var result *multierror.Error
	for _, f := range files {
		result = multierror.Append(result, &FileError{File: f, Diagnostics: byFile[f]})
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return result.ErrorOrNil()
}

func listFormat(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  " + err.Error()
	}
	files := "files"
	if len(errs) == 1 {
		files = "file"
	}
	return fmt.Sprintf("syntax errors in %d %s:\n%s", len(errs), files, strings.Join(lines, "\n"))
}

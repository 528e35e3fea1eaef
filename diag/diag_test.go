package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsyn/java/parser"
)

func parse(t *testing.T, file, src string) []Diagnostic {
	t.Helper()
	root := parser.ParseCompilationUnit(strings.NewReader(src), parser.WithFile(file)).Finish()
	require.NotNil(t, root)
	return FromTree(file, root)
}

func TestFromTree(t *testing.T) {
	assert.Empty(t, parse(t, "Ok.java", "class A {}"))

	diags := parse(t, "A.java", "class A {\n  int x\n}")
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "A.java", d.File)
	assert.Equal(t, "';' expected", d.Message)
	assert.NotEmpty(t, d.Key)
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.True(t, strings.HasPrefix(d.Error(), "A.java:2:"), d.Error())
}

func TestFromTreeOrder(t *testing.T) {
	diags := parse(t, "B.java", "class A { int x }\nclass B extends { }")
	require.Len(t, diags, 2)
	assert.Less(t, diags[0].Span.Start.Offset, diags[1].Span.Start.Offset)
	assert.Nil(t, FromTree("x", nil))
}

func TestRender(t *testing.T) {
	src := "class A {\n\tint x\n}"
	diags := parse(t, "A.java", src)
	require.Len(t, diags, 1)

	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.RenderAll(diags, func(string) []byte { return []byte(src) }))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "A.java:2:"), lines[0])
	assert.Contains(t, lines[0], "error: ';' expected")
	assert.Equal(t, "  \tint x", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  \t"), "caret keeps the tab: %q", lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "^"))
	assert.NotContains(t, buf.String(), "\x1b[", "colour is off")
}

func TestRenderWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	d := Diagnostic{File: "X.java", Message: "boom", Span: parser.Span{Start: parser.Position{Line: 3, Column: 4}}}
	require.NoError(t, NewRenderer(&buf, false).Render(d, nil))
	assert.Equal(t, "X.java:3:4: error: boom\n", buf.String())
}

func TestRenderColored(t *testing.T) {
	var buf bytes.Buffer
	d := Diagnostic{File: "X.java", Message: "boom", Span: parser.Span{Start: parser.Position{Line: 1, Column: 1}}}
	require.NoError(t, NewRenderer(&buf, true).Render(d, nil))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestAggregate(t *testing.T) {
	assert.NoError(t, Aggregate(nil))

	diags := append(parse(t, "B.java", "class A { int x }\nclass B extends { }"), parse(t, "A.java", "class A { int x }")...)
	err := Aggregate(diags)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var first *FileError
	require.True(t, errors.As(merr.Errors[0], &first))
	assert.Equal(t, "A.java", first.File)
	assert.Equal(t, "syntax errors in 2 files:\n  A.java: 1 syntax error\n  B.java: 2 syntax errors", err.Error())
}

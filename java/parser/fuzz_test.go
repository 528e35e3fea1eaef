package parser

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Any input, however broken, must produce a tree that reproduces it and
// closes every node.
func fuzzParse(f *testing.F, parse func(r io.Reader, opts ...Option) *Parser) {
	seeds := []string{
		"", "class A {}", "class A {", "}", "int x = ;", "a >> b >>> c >= d",
		"List<List<String>> x;", "switch (x) { case 1 -> ", "record R(", "@", "module m { requires",
		"\"\"\"\n", "/* open", "x -> { yield", "new int[", "non-sealed class", "(a, b) -> (c) d",
	}
	files, _ := filepath.Glob(filepath.Join("testdata", "*.java"))
	for _, path := range files {
		if data, err := os.ReadFile(path); err == nil {
			seeds = append(seeds, string(data))
		}
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		p := parse(strings.NewReader(src))
		root := p.Finish()
		if root == nil {
			t.Fatalf("no tree, err = %v", p.Err())
		}
		if root.Text() != src {
			t.Fatalf("tree text differs from input\n got: %q\nwant: %q", root.Text(), src)
		}
		if p.Unbalanced() != 0 {
			t.Fatalf("%d markers left open", p.Unbalanced())
		}
	})
}

func FuzzParseCompilationUnit(f *testing.F) {
	fuzzParse(f, ParseCompilationUnit)
}

func FuzzParseREPL(f *testing.F) {
	fuzzParse(f, ParseREPL)
}

func FuzzParseExpression(f *testing.F) {
	fuzzParse(f, ParseExpression)
}

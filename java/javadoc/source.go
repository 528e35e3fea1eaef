package javadoc

import (
	"strings"

	"github.com/dhamidi/jsyn/java/parser"
)

// Comment is a documentation comment as it appears in a source tree. A run
// of /// lines forms a single Markdown comment.
type Comment struct {
	Span     parser.Span
	Markdown bool
	Text     string
}

func (c Comment) Parse() *DocComment {
	if c.Markdown {
		return ParseMarkdown(c.Text)
	}
	return Parse(c.Text)
}

// Collect returns every documentation comment in the tree in source order.
func Collect(root *parser.Node) []Comment {
	toks := tokens(root)
	var comments []Comment
	for i := 0; i < len(toks); i++ {
		switch toks[i].Kind {
		case parser.TokenDocComment:
			comments = append(comments, Comment{Span: toks[i].Span, Text: toks[i].Literal})
		case parser.TokenMarkdownDocComment:
			c, next := markdownRun(toks, i)
			comments = append(comments, c)
			i = next - 1
		}
	}
	return comments
}

// Attached returns the documentation comment directly preceding decl, with
// only whitespace and ordinary comments in between.
func Attached(root, decl *parser.Node) (Comment, bool) {
	toks := tokens(root)
	first := -1
	for i, t := range toks {
		if t.Span.Start.Offset >= decl.Span.Start.Offset && !t.Kind.IsTrivia() {
			first = i
			break
		}
	}
	if first < 0 {
		return Comment{}, false
	}
	for i := first - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case parser.TokenDocComment:
			return Comment{Span: toks[i].Span, Text: toks[i].Literal}, true
		case parser.TokenMarkdownDocComment:
			start := i
			for start >= 2 && continuesRun(toks, start-2) {
				start -= 2
			}
			c, _ := markdownRun(toks, start)
			return c, true
		case parser.TokenWhitespace, parser.TokenComment, parser.TokenLineComment:
			continue
		}
		return Comment{}, false
	}
	return Comment{}, false
}

// continuesRun reports whether the /// line at i is followed by another on
// the next line.
func continuesRun(toks []*parser.Token, i int) bool {
	return i+2 < len(toks) &&
		toks[i].Kind == parser.TokenMarkdownDocComment &&
		toks[i+1].Kind == parser.TokenWhitespace &&
		strings.Count(toks[i+1].Literal, "\n") == 1 &&
		toks[i+2].Kind == parser.TokenMarkdownDocComment
}

func markdownRun(toks []*parser.Token, i int) (Comment, int) {
	c := Comment{Span: toks[i].Span, Markdown: true}
	lines := []string{toks[i].Literal}
	j := i
	for continuesRun(toks, j) {
		j += 2
		lines = append(lines, toks[j].Literal)
		c.Span.End = toks[j].Span.End
	}
	c.Text = strings.Join(lines, "\n")
	return c, j + 1
}

func tokens(root *parser.Node) []*parser.Token {
	var toks []*parser.Token
	root.Walk(func(n *parser.Node) bool {
		if n.Token != nil {
			toks = append(toks, n.Token)
		}
		return true
	})
	return toks
}

package codebase

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jsyn/java/javadoc"
	"github.com/dhamidi/jsyn/java/parser"
)

// Symbol is an entry of a file's declaration outline.
type Symbol struct {
	Name     string
	Kind     parser.NodeKind
	Span     parser.Span
	NameSpan parser.Span
	Children []Symbol
}

// Outline returns the declarations under n, nested as in the source.
func Outline(n *parser.Node) []Symbol {
	var symbols []Symbol
	for _, child := range n.Children {
		if child.Kind == parser.KindToken {
			continue
		}
		if !child.Kind.IsDeclaration() {
			symbols = append(symbols, Outline(child)...)
			continue
		}
		name, nameSpan := declName(child)
		symbols = append(symbols, Symbol{
			Name:     name,
			Kind:     child.Kind,
			Span:     child.Span,
			NameSpan: nameSpan,
			Children: Outline(child),
		})
	}
	return symbols
}

// declName returns the declared identifier and where it is.
func declName(n *parser.Node) (string, parser.Span) {
	switch n.Kind {
	case parser.KindImplicitClass:
		return "(implicit class)", parser.Span{Start: n.Span.Start, End: n.Span.Start}
	case parser.KindModuleDecl:
		if ref := n.FirstChildOfKind(parser.KindModuleReference); ref != nil {
			return n.Name(), ref.Span
		}
	}
	for _, c := range n.Children {
		if c.IsToken(parser.TokenIdent) {
			return c.Token.Literal, c.Span
		}
	}
	return "", parser.Span{Start: n.Span.Start, End: n.Span.Start}
}

func (c *Codebase) Symbols(path string) []Symbol {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return nil
	}
	return Outline(f.AST)
}

// DeclarationAt returns the innermost declaration containing the 1-based
// line and column.
func DeclarationAt(root *parser.Node, line, column int) *parser.Node {
	var found *parser.Node
	root.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindToken || !contains(n.Span, line, column) {
			return false
		}
		if n.Kind.IsDeclaration() {
			found = n
		}
		return true
	})
	return found
}

func contains(s parser.Span, line, column int) bool {
	if line < s.Start.Line || line == s.Start.Line && column < s.Start.Column {
		return false
	}
	return line < s.End.Line || line == s.End.Line && column < s.End.Column
}

// Hover describes the declaration at the position: its signature and the
// first sentence of its documentation comment.
func (c *Codebase) Hover(path string, line, column int) (string, parser.Span, bool) {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return "", parser.Span{}, false
	}
	decl := DeclarationAt(f.AST, line, column)
	if decl == nil {
		return "", parser.Span{}, false
	}
	text := fmt.Sprintf("```java\n%s\n```", signature(f.Content, decl))
	if comment, ok := javadoc.Attached(f.AST, decl); ok {
		if summary := javadoc.Summary(comment.Parse()); summary != "" {
			text += "\n\n" + summary
		}
	}
	return text, decl.Span, true
}

// signature is the source of decl from its first significant token up to
// its body or initializer, on one line.
func signature(content []byte, decl *parser.Node) string {
	start, end := -1, decl.Span.End.Offset
	depth := 0
	decl.Walk(func(n *parser.Node) bool {
		if n.Token == nil || n.Token.Kind.IsTrivia() {
			return true
		}
		if start < 0 {
			start = n.Token.Span.Start.Offset
		}
		if end != decl.Span.End.Offset {
			return false
		}
		switch n.Token.Kind {
		case parser.TokenLParen:
			depth++
		case parser.TokenRParen:
			depth--
		case parser.TokenLBrace, parser.TokenSemicolon, parser.TokenAssign:
			if depth == 0 {
				end = n.Token.Span.Start.Offset
			}
		}
		return true
	})
	if start < 0 || end > len(content) || start > end {
		return ""
	}
	return strings.Join(strings.Fields(string(content[start:end])), " ")
}

package parser

import (
	"strings"
	"testing"
)

func significantKinds(input string) []TokenKind {
	var kinds []TokenKind
	for _, tok := range Tokenize([]byte(input), "Test.java") {
		if !tok.Kind.IsTrivia() {
			kinds = append(kinds, tok.Kind)
		}
	}
	return kinds
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123 0x1F 0b101 10L", []TokenKind{TokenIntLiteral, TokenIntLiteral, TokenIntLiteral, TokenIntLiteral, TokenEOF}},
		{"3.14 1e10 2f", []TokenKind{TokenFloatLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenEOF}},
		{`"hello" 'a'`, []TokenKind{TokenStringLiteral, TokenCharLiteral, TokenEOF}},
		{`"Hello \{name}"`, []TokenKind{TokenStringTemplate, TokenEOF}},
		{"\"\"\"\n  text\n  \"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"\"\"\"\n  \\{x}\n  \"\"\"", []TokenKind{TokenTextBlockTemplate, TokenEOF}},
		{"== != < <=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenEOF}},
		{"-> :: ... @", []TokenKind{TokenArrow, TokenColonColon, TokenEllipsis, TokenAt, TokenEOF}},
		// '>' runs are always split
		{">>", []TokenKind{TokenGT, TokenGT, TokenEOF}},
		{">>>=", []TokenKind{TokenGT, TokenGT, TokenGT, TokenAssign, TokenEOF}},
		{">=", []TokenKind{TokenGT, TokenAssign, TokenEOF}},
		{"List<List<String>>", []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenLT, TokenIdent, TokenGT, TokenGT, TokenEOF}},
		// contextual keywords stay identifiers
		{"var record sealed permits yield when module", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := significantKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerTrivia(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"  \t\n", TokenWhitespace},
		{"// line", TokenLineComment},
		{"//// banner", TokenLineComment},
		{"/// markdown", TokenMarkdownDocComment},
		{"/* block */", TokenComment},
		{"/**/", TokenComment},
		{"/** doc */", TokenDocComment},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "Test.java")
			if len(tokens) != 2 {
				t.Fatalf("got %d tokens, want 2", len(tokens))
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if !tokens[0].Kind.IsTrivia() {
				t.Errorf("%v is not trivia", tokens[0].Kind)
			}
			if tokens[0].Literal != tt.input {
				t.Errorf("literal = %q, want %q", tokens[0].Literal, tt.input)
			}
		})
	}
}

func TestLexerCoversEveryByte(t *testing.T) {
	inputs := []string{
		"class A { int x = 1 >>> 2; }",
		"/* unterminated",
		"\"unterminated\nnext",
		"a\r\nb\rc\n",
		"\u00e9t\u00e9 = \"caf\u00e9\";",
		"\xff\xfe",
	}
	for _, input := range inputs {
		var sb strings.Builder
		for _, tok := range Tokenize([]byte(input), "") {
			sb.WriteString(tok.Literal)
		}
		if sb.String() != input {
			t.Errorf("tokens of %q concatenate to %q", input, sb.String())
		}
	}
}

func TestLexerPositionTracking(t *testing.T) {
	tokens := Tokenize([]byte("class\n  Foo"), "Test.java")
	var foo Token
	for _, tok := range tokens {
		if tok.Literal == "Foo" {
			foo = tok
		}
	}
	if foo.Span.Start.Line != 2 || foo.Span.Start.Column != 3 {
		t.Errorf("Foo starts at %s, want 2:3", foo.Span.Start)
	}
	if foo.Span.Start.Offset != 8 {
		t.Errorf("Foo offset = %d, want 8", foo.Span.Start.Offset)
	}
	if foo.Span.Start.File != "Test.java" {
		t.Errorf("file = %q", foo.Span.Start.File)
	}
	last := tokens[len(tokens)-1]
	if last.Kind != TokenEOF || last.Span.Len() != 0 {
		t.Errorf("last token = %v, want zero-width EOF", last)
	}
}

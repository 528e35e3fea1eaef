package parser

import (
	"context"
	"io"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jsyn.parser")

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithContext makes the parse stop early, returning a partial tree, once ctx
// is done.
func WithContext(ctx context.Context) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

func WithLanguageLevel(level LanguageLevel) Option {
	return func(p *Parser) {
		p.features = NewLevelFeatures(level)
	}
}

func WithFeatures(features Features) Option {
	return func(p *Parser) {
		p.features = features
	}
}

func WithMessages(messages Messages) Option {
	return func(p *Parser) {
		p.messages = messages
	}
}

type entryFunc func(g *grammar) CompletedMarker

// Parser reads its input once and parses it with one of the entry
// productions. The result is cached: Finish may be called repeatedly.
type Parser struct {
	file     string
	ctx      context.Context
	features Features
	messages Messages
	reader   io.Reader
	entry    entryFunc
	repl     bool

	input      []byte
	tokens     []Token
	root       *Node
	incomplete bool
	unbalanced int
	err        error
}

func newParser(r io.Reader, entry entryFunc, opts []Option) *Parser {
	p := &Parser{
		ctx:    context.Background(),
		reader: r,
		entry:  entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(g *grammar) CompletedMarker {
		return g.files.Parse()
	}, opts)
}

// ParseREPL parses interactive input: a sequence of imports, declarations,
// statements and expressions. A missing ';' at the very end is accepted.
func ParseREPL(r io.Reader, opts ...Option) *Parser {
	p := newParser(r, func(g *grammar) CompletedMarker {
		return g.files.ParseREPL()
	}, opts)
	p.repl = true
	return p
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, fragment(func(g *grammar) {
		g.exprs.parseRequired()
	}), opts)
}

func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, fragment(func(g *grammar) {
		if _, ok := g.stmts.Parse(); !ok {
			g.b.Error(msgExpectedStatement)
		}
	}), opts)
}

// ParseType parses a single type, including void, varargs and wildcards.
func ParseType(r io.Reader, opts ...Option) *Parser {
	return newParser(r, fragment(func(g *grammar) {
		if g.refs.ParseType(VoidType|Ellipsis|Wildcard) == nil {
			g.b.Error(msgExpectedType)
		}
	}), opts)
}

// fragment wraps a single production in a KindFragment root. Tokens left
// over after it form one error node.
func fragment(parse func(g *grammar)) entryFunc {
	return func(g *grammar) CompletedMarker {
		root := g.b.Mark()
		parse(g)
		g.errorUntil(func() bool { return false }, msgUnexpectedToken)
		return root.Complete(KindFragment)
	}
}

func (p *Parser) readAll() error {
	if p.input != nil || p.err != nil {
		return p.err
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		p.err = err
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

func (p *Parser) run() {
	if p.root != nil {
		return
	}
	start := time.Now()
	p.tokens = Tokenize(p.input, p.file)
	b := NewBuilder(p.ctx, p.tokens, p.messages)
	g := newGrammar(b, p.features)
	g.repl = p.repl
	p.entry(g)
	p.root, p.incomplete = b.Build()
	p.unbalanced = b.Unbalanced()
	if b.Canceled() {
		p.err = p.ctx.Err()
	}
	log.Debugf("parsed %s: %d tokens, %d errors in %s", p.name(), len(p.tokens), len(p.root.Errors()), time.Since(start))
}

func (p *Parser) name() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

// Finish parses the input and returns the tree. The tree always covers the
// whole input; syntax errors are embedded as KindError nodes. Finish only
// returns nil when reading the input failed.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.run()
	return p.root
}

// Err reports a read error, or the context error when the parse was cut
// short.
func (p *Parser) Err() error {
	return p.err
}

// IsComplete reports whether the input forms a finished construct. It is
// false when the input ends inside one, as "1 +" or "class A {" do, which
// lets a REPL ask for a continuation line.
func (p *Parser) IsComplete() bool {
	if p.Finish() == nil {
		return false
	}
	return !p.incomplete
}

// Comments returns every comment token of the input, doc comments included,
// in source order.
func (p *Parser) Comments() []Token {
	if p.Finish() == nil {
		return nil
	}
	var comments []Token
	for _, tok := range p.tokens {
		switch tok.Kind {
		case TokenComment, TokenLineComment, TokenDocComment, TokenMarkdownDocComment:
			comments = append(comments, tok)
		}
	}
	return comments
}

// Unbalanced returns the number of markers the grammar left open. It is
// zero for every input unless the grammar has a bug.
func (p *Parser) Unbalanced() int {
	return p.unbalanced
}

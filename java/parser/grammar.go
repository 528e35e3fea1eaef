package parser

// Context tells the declaration and statement parsers where they are, which
// decides which productions are legal and how recovery behaves.
type Context int

const (
	ContextFile Context = iota
	ContextClass
	ContextCodeBlock
	ContextAnnotationInterface
	ContextREPL
)

func (c Context) String() string {
	switch c {
	case ContextFile:
		return "file"
	case ContextClass:
		return "class"
	case ContextCodeBlock:
		return "code-block"
	case ContextAnnotationInterface:
		return "annotation-interface"
	case ContextREPL:
		return "repl"
	}
	return "unknown"
}

// grammar is the aggregate shared by the sibling parsers. Each sibling holds
// a pointer back to it to reach the builder, the feature oracle and the
// other siblings.
type grammar struct {
	b        *Builder
	features Features
	// repl tolerates a missing ';' at the very end of the input.
	repl bool

	refs     *ReferenceParser
	patterns *PatternParser
	exprs    *ExpressionParser
	decls    *DeclarationParser
	stmts    *StatementParser
	modules  *ModuleParser
	files    *FileParser
}

func newGrammar(b *Builder, features Features) *grammar {
	if features == nil {
		features = NewLevelFeatures(LatestLevel)
	}
	g := &grammar{b: b, features: features}
	g.refs = &ReferenceParser{g: g}
	g.patterns = &PatternParser{g: g}
	g.exprs = &ExpressionParser{g: g}
	g.decls = &DeclarationParser{g: g}
	g.stmts = &StatementParser{g: g}
	g.modules = &ModuleParser{g: g}
	g.files = &FileParser{g: g}
	return g
}

func (g *grammar) has(f Feature) bool {
	return g.features.Has(f)
}

func (g *grammar) check(kind TokenKind) bool {
	return g.b.Kind() == kind
}

func (g *grammar) match(kinds ...TokenKind) bool {
	k := g.b.Kind()
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// optional consumes the current token if it has the given kind.
func (g *grammar) optional(kind TokenKind) bool {
	if g.b.Kind() == kind {
		g.b.Advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or records a zero-width
// "missing token" error without consuming anything.
func (g *grammar) expect(kind TokenKind) bool {
	if g.optional(kind) {
		return true
	}
	g.b.Error(msgExpectedToken, quote(kind))
	return false
}

func (g *grammar) expectIdentifier() bool {
	if g.optional(TokenIdent) {
		return true
	}
	g.b.Error(msgExpectedIdentifier)
	return false
}

func (g *grammar) expectSemicolon() bool {
	if g.repl && g.b.Pos() >= g.b.eofIndex() {
		return true
	}
	return g.expect(TokenSemicolon)
}

// errorToken wraps the current token in an error node.
func (g *grammar) errorToken(key string, args ...any) {
	m := g.b.Mark()
	g.b.Advance()
	m.CompleteError(key, args...)
}

// errorUntil wraps at least one token, and then everything up to a token
// accepted by stop, into one error node.
func (g *grammar) errorUntil(stop func() bool, key string, args ...any) {
	if g.b.EOF() {
		return
	}
	m := g.b.Mark()
	g.b.Advance()
	for !g.b.EOF() && !stop() {
		g.b.Advance()
	}
	m.CompleteError(key, args...)
}

// mustProgress returns a function to call at the end of a loop iteration. If
// the iteration consumed nothing, the current token is wrapped as an error so
// the loop still moves forward, and the function reports false.
func (g *grammar) mustProgress() func() bool {
	saved := g.b.Pos()
	return func() bool {
		if g.b.Pos() == saved {
			if !g.b.EOF() {
				g.errorToken(msgUnexpectedToken)
			}
			return false
		}
		return true
	}
}

// recoverToLineEnd wraps the tokens remaining on the line of the last
// consumed token into one error node. It stops early at tokens that end or
// open a body.
func (g *grammar) recoverToLineEnd(key string, args ...any) {
	b := g.b
	if b.Pos() == 0 || b.EOF() {
		b.Error(key, args...)
		return
	}
	line := b.tokens[b.sig[b.Pos()-1]].Span.End.Line
	onLine := func() bool {
		return b.Token().Span.Start.Line == line && !g.match(TokenLBrace, TokenRBrace, TokenSemicolon)
	}
	if !onLine() {
		b.Error(key, args...)
		return
	}
	g.errorUntil(func() bool { return !onLine() }, key, args...)
}

// matchingBrace returns the significant index of the '}' closing the '{' at
// the cursor, or -1 when braces do not balance before the end of input.
func (g *grammar) matchingBrace() int {
	b := g.b
	depth := 0
	for i := b.pos; i < b.limit(); i++ {
		switch b.tokens[b.sig[i]].Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// requireFeature reports a zero-width error when f is unavailable. The
// construct is still parsed by the caller.
func (g *grammar) requireFeature(f Feature, what string) bool {
	if g.has(f) {
		return true
	}
	g.b.Error(msgFeatureUnsupported, what)
	return false
}

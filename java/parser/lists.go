package parser

// ListDescriptor describes a bracketed, delimited list shared by several
// productions.
type ListDescriptor struct {
	Kind      NodeKind
	Open      TokenKind
	Close     TokenKind
	Delimiter TokenKind
	// Stop tokens end the list early without being consumed.
	Stop []TokenKind
	// TrailingDelimiter allows a delimiter right before Close.
	TrailingDelimiter bool
	// Element parses one element and reports whether it consumed anything.
	Element  func(g *grammar) bool
	ErrorKey string
}

var (
	methodParameters = &ListDescriptor{
		Kind:      KindParameters,
		Open:      TokenLParen,
		Close:     TokenRParen,
		Delimiter: TokenComma,
		Stop:      []TokenKind{TokenLBrace, TokenRBrace, TokenSemicolon, TokenThrows, TokenArrow},
		ErrorKey:  msgExpectedParameter,
	}
	recordComponents = &ListDescriptor{
		Kind:      KindRecordHeader,
		Open:      TokenLParen,
		Close:     TokenRParen,
		Delimiter: TokenComma,
		Stop:      []TokenKind{TokenLBrace, TokenRBrace, TokenSemicolon, TokenImplements},
		ErrorKey:  msgExpectedParameter,
	}
	resources = &ListDescriptor{
		Kind:              KindResourceList,
		Open:              TokenLParen,
		Close:             TokenRParen,
		Delimiter:         TokenSemicolon,
		Stop:              []TokenKind{TokenLBrace, TokenRBrace},
		TrailingDelimiter: true,
		ErrorKey:          msgExpectedExpression,
	}
	lambdaParameters = &ListDescriptor{
		Kind:      KindLambdaParameters,
		Open:      TokenLParen,
		Close:     TokenRParen,
		Delimiter: TokenComma,
		Stop:      []TokenKind{TokenArrow, TokenLBrace, TokenRBrace, TokenSemicolon},
		ErrorKey:  msgExpectedParameter,
	}
)

// The element parsers reach these descriptors again through parseList, so
// they are attached here rather than in the declarations above.
func init() {
	methodParameters.Element = parseFormalParameter
	recordComponents.Element = parseRecordComponent
	resources.Element = parseResource
	lambdaParameters.Element = parseLambdaParameter
}

// parseList parses a list described by d at its opening token. Every
// iteration either parses an element, consumes a delimiter or an unexpected
// token, or leaves the loop, so the list always terminates.
func (d *DeclarationParser) parseList(desc *ListDescriptor) CompletedMarker {
	g := d.g
	b := g.b
	m := b.Mark()
	if !g.expect(desc.Open) {
		return m.Complete(desc.Kind)
	}
	stop := func() bool {
		return b.Kind() == desc.Close || b.EOF() || g.match(desc.Stop...)
	}
	for !stop() {
		if !desc.Element(g) {
			if b.Kind() == desc.Delimiter {
				b.Error(desc.ErrorKey)
			} else {
				g.errorUntil(func() bool { return stop() || b.Kind() == desc.Delimiter }, desc.ErrorKey)
			}
		}
		if !g.optional(desc.Delimiter) {
			if stop() {
				break
			}
			// garbage after an element
			g.errorUntil(func() bool { return stop() || b.Kind() == desc.Delimiter }, msgExpectedToken, quote(desc.Close))
			if !g.optional(desc.Delimiter) {
				break
			}
		}
		if b.Kind() == desc.Close && !desc.TrailingDelimiter {
			b.Error(desc.ErrorKey)
		}
	}
	g.expect(desc.Close)
	return m.Complete(desc.Kind)
}

func parseFormalParameter(g *grammar) bool {
	return g.decls.parseParameter(KindParameter, Ellipsis, true)
}

func parseRecordComponent(g *grammar) bool {
	return g.decls.parseParameter(KindRecordComponent, Ellipsis, false)
}

func parseLambdaParameter(g *grammar) bool {
	b := g.b
	if b.Kind() == TokenIdent && (b.LookAhead(1) == TokenComma || b.LookAhead(1) == TokenRParen) {
		m := b.Mark()
		b.Advance()
		m.Complete(KindParameter)
		return true
	}
	flags := Ellipsis
	if g.has(FeatureVarLambdaParams) {
		flags |= VarType
	}
	return g.decls.parseParameter(KindParameter, flags, false)
}

// parseResource parses "Type name = expr" or a variable access such as
// "this.in" or "in".
func parseResource(g *grammar) bool {
	b := g.b
	m := b.Mark()
	if g.decls.parseLocalVariable(false, false) {
		m.Complete(KindResource)
		return true
	}
	if _, ok := g.exprs.Parse(); ok {
		m.Complete(KindResource)
		return true
	}
	m.Rollback()
	return false
}

package parser

// PatternParser parses type-test and deconstruction patterns.
type PatternParser struct {
	g *grammar
}

// PreParsePattern reports whether a pattern starts at the cursor. It never
// consumes anything.
func (p *PatternParser) PreParsePattern() bool {
	b := p.g.b
	m := b.Mark()
	ok := p.preParse()
	m.Rollback()
	return ok
}

func (p *PatternParser) preParse() bool {
	b := p.g.b
	_, hasModifiers := p.g.decls.parseModifierList(modifiersLocal)
	if p.g.refs.ParseType(0) == nil {
		return false
	}
	if b.Kind() == TokenIdent {
		return !isWhen(b)
	}
	return b.Kind() == TokenLParen && !hasModifiers && p.g.has(FeatureRecordPatterns)
}

// ParsePattern parses a pattern. Callers check PreParsePattern first.
func (p *PatternParser) ParsePattern() CompletedMarker {
	b := p.g.b
	if isUnnamed(b, 0) && b.LookAhead(1) != TokenIdent && b.LookAhead(1) != TokenLParen {
		m := b.Mark()
		b.Advance()
		return m.Complete(KindUnnamedPattern)
	}

	m := b.Mark()
	_, hasModifiers := p.g.decls.parseModifierList(modifiersLocal)
	if p.g.refs.ParseType(0) == nil {
		b.Error(msgExpectedType)
		return m.Complete(KindTypeTestPattern)
	}

	if b.Kind() == TokenLParen && !hasModifiers {
		p.parseDeconstructionList()
		if b.Kind() == TokenIdent && !isWhen(b) {
			b.Advance()
		}
		return m.Complete(KindDeconstructionPattern)
	}

	p.g.expectIdentifier()
	return m.Complete(KindTypeTestPattern)
}

func (p *PatternParser) parseDeconstructionList() {
	b := p.g.b
	m := b.Mark()
	b.Advance()
	for !p.g.match(TokenRParen, TokenEOF) {
		progress := p.g.mustProgress()
		if p.PreParsePattern() || isUnnamed(b, 0) {
			p.ParsePattern()
		} else {
			b.Error(msgExpectedPattern)
			if !p.g.match(TokenComma) {
				// the rest of the case label is left to the switch
				if p.g.match(TokenArrow, TokenColon, TokenLBrace, TokenRBrace, TokenSemicolon) {
					break
				}
				progress()
				continue
			}
		}
		if !p.g.optional(TokenComma) {
			break
		}
	}
	p.g.expect(TokenRParen)
	m.Complete(KindDeconstructionList)
}

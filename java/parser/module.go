package parser

// ModuleParser parses module declarations. Every word of the module grammar
// is a contextual keyword and is compared by text.
type ModuleParser struct {
	g *grammar
}

var moduleDirectives = map[string]NodeKind{
	"requires": KindRequiresDirective,
	"exports":  KindExportsDirective,
	"opens":    KindOpensDirective,
	"uses":     KindUsesDirective,
	"provides": KindProvidesDirective,
}

// Parse parses "open? module a.b { directives }". m is opened by the caller
// before the annotations of the declaration.
func (p *ModuleParser) Parse(m Marker) CompletedMarker {
	g := p.g
	b := g.b
	g.requireFeature(FeatureModules, "Modules")
	if isOpenModule(b) {
		b.Advance()
	}
	b.Advance()
	if !p.parseModuleReference() {
		b.Error(msgExpectedIdentifier)
	}
	if b.Kind() != TokenLBrace {
		b.Error(msgExpectedToken, quote(TokenLBrace))
		return m.Complete(KindModuleDecl)
	}

	end := g.matchingBrace()
	b.Advance()
	if end >= 0 {
		b.PushLimit(end)
	}
	for !b.EOF() && b.Kind() != TokenRBrace {
		progress := g.mustProgress()
		if !p.parseDirective() {
			p.skipUnknownDirective()
		}
		progress()
	}
	if end >= 0 {
		b.PopLimit()
	}
	g.expect(TokenRBrace)
	return m.Complete(KindModuleDecl)
}

func (p *ModuleParser) directiveAhead() bool {
	b := p.g.b
	if b.Kind() != TokenIdent {
		return false
	}
	_, ok := moduleDirectives[b.Text()]
	return ok
}

func (p *ModuleParser) parseDirective() bool {
	g := p.g
	b := g.b
	if !p.directiveAhead() {
		return false
	}
	kind := moduleDirectives[b.Text()]
	m := b.Mark()
	b.Advance()
	switch kind {
	case KindRequiresDirective:
		// "requires transitive;" names a module called transitive
		for (isWord(b, 0, "transitive") || b.Kind() == TokenStatic) && b.LookAhead(1) != TokenSemicolon && b.LookAhead(1) != TokenDot {
			b.Advance()
		}
		if !p.parseModuleReference() {
			b.Error(msgExpectedIdentifier)
		}
	case KindExportsDirective, KindOpensDirective:
		p.expectName()
		if isWord(b, 0, "to") {
			b.Advance()
			p.parseModuleReferenceList()
		}
	case KindUsesDirective:
		p.expectName()
	case KindProvidesDirective:
		p.expectName()
		if isWord(b, 0, "with") {
			b.Advance()
			for {
				p.expectName()
				if !g.optional(TokenComma) {
					break
				}
			}
		} else {
			b.Error(msgExpectedToken, "'with'")
		}
	}
	p.finishDirective()
	m.Complete(kind)
	return true
}

func (p *ModuleParser) expectName() {
	if _, ok := p.g.refs.ParseQualifiedName(true); !ok {
		p.g.b.Error(msgExpectedIdentifier)
	}
}

func (p *ModuleParser) parseModuleReference() bool {
	b := p.g.b
	if b.Kind() != TokenIdent {
		return false
	}
	m := b.Mark()
	p.g.refs.parseQualifiedNameTokens(true)
	m.Complete(KindModuleReference)
	return true
}

func (p *ModuleParser) parseModuleReferenceList() {
	for {
		if !p.parseModuleReference() {
			p.g.b.Error(msgExpectedIdentifier)
		}
		if !p.g.optional(TokenComma) {
			return
		}
	}
}

// finishDirective expects the closing ';'. Anything before it on the way
// is wrapped into one error node.
func (p *ModuleParser) finishDirective() {
	g := p.g
	b := g.b
	if g.optional(TokenSemicolon) {
		return
	}
	stop := func() bool {
		return b.Kind() == TokenSemicolon || b.Kind() == TokenRBrace || p.directiveAhead()
	}
	if b.EOF() || stop() {
		b.Error(msgExpectedToken, quote(TokenSemicolon))
		return
	}
	g.errorUntil(stop, msgExpectedToken, quote(TokenSemicolon))
	g.optional(TokenSemicolon)
}

// skipUnknownDirective wraps tokens up to and including the next ';', or up
// to the next directive, into one error node.
func (p *ModuleParser) skipUnknownDirective() {
	b := p.g.b
	m := b.Mark()
	for !b.EOF() && b.Kind() != TokenRBrace {
		if b.Kind() == TokenSemicolon {
			b.Advance()
			break
		}
		b.Advance()
		if p.directiveAhead() {
			break
		}
	}
	m.CompleteError(msgExpectedDirective)
}

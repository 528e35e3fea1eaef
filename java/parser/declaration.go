package parser

// DeclarationParser parses type declarations, members, local variables,
// modifier lists and annotations.
type DeclarationParser struct {
	g *grammar
}

type modifierSet int

const (
	// modifiersMember accepts every modifier keyword plus sealed and
	// non-sealed.
	modifiersMember modifierSet = iota
	// modifiersLocal accepts final and annotations, as on parameters,
	// patterns and local variables.
	modifiersLocal
)

// Parse parses a declaration legal in ctx. It reports false, consuming
// nothing, when the tokens at the cursor do not start one, so the caller can
// try another production.
func (d *DeclarationParser) Parse(ctx Context) (CompletedMarker, bool) {
	g := d.g
	b := g.b

	if b.Kind() == TokenLBrace || (b.Kind() == TokenStatic && b.LookAhead(1) == TokenLBrace) {
		if ctx != ContextClass {
			return CompletedMarker{}, false
		}
		m := b.Mark()
		g.optional(TokenStatic)
		g.stmts.parseBlock()
		return m.Complete(KindInitializer), true
	}

	m := b.Mark()
	_, hasModifiers := d.parseModifierList(modifiersMember)

	switch {
	case b.Kind() == TokenAt && b.LookAhead(1) == TokenInterface:
		return d.parseTypeDecl(m, KindAnnotationDecl), true
	case b.Kind() == TokenClass:
		return d.parseTypeDecl(m, KindClassDecl), true
	case b.Kind() == TokenInterface:
		return d.parseTypeDecl(m, KindInterfaceDecl), true
	case b.Kind() == TokenEnum:
		return d.parseTypeDecl(m, KindEnumDecl), true
	case isRecordStart(b) && g.has(FeatureRecords):
		return d.parseTypeDecl(m, KindRecordDecl), true
	}

	hasTypeParams := g.refs.ParseTypeParameters()

	if ctx == ContextClass && b.Kind() == TokenIdent {
		switch b.LookAhead(1) {
		case TokenLParen:
			return d.parseConstructor(m), true
		case TokenLBrace:
			b.Advance()
			g.stmts.parseCodeBlock(true)
			return m.Complete(KindCompactConstructorDecl), true
		}
	}

	flags := VoidType
	if ctx == ContextCodeBlock || ctx == ContextREPL {
		flags |= VarType
	}
	info := g.refs.ParseType(flags)
	if info == nil {
		if !hasModifiers && !hasTypeParams {
			m.Rollback()
			return CompletedMarker{}, false
		}
		return m.CompleteError(msgExpectedDeclaration), true
	}

	if b.Kind() != TokenIdent {
		if ctx == ContextCodeBlock || ctx == ContextREPL || ctx == ContextFile {
			if !hasModifiers && !hasTypeParams {
				m.Rollback()
				return CompletedMarker{}, false
			}
		}
		b.Error(msgExpectedIdentifier)
		return m.Complete(d.variableKind(ctx)), true
	}

	if b.LookAhead(1) == TokenLParen {
		if ctx == ContextCodeBlock {
			m.Rollback()
			return CompletedMarker{}, false
		}
		return d.parseMethod(m), true
	}
	if hasTypeParams {
		b.Error(msgExpectedToken, quote(TokenLParen))
	}
	return d.parseDeclarators(m, d.variableKind(ctx), true, true), true
}

func (d *DeclarationParser) variableKind(ctx Context) NodeKind {
	if ctx == ContextCodeBlock {
		return KindLocalVarDecl
	}
	return KindFieldDecl
}

// parseModifierList parses modifiers and annotations. A Modifiers node is
// only created when at least one was present.
func (d *DeclarationParser) parseModifierList(set modifierSet) (CompletedMarker, bool) {
	g := d.g
	b := g.b
	m := b.Mark()
	found := false
loop:
	for {
		k := b.Kind()
		switch {
		case k == TokenAt:
			if b.LookAhead(1) == TokenInterface {
				break loop
			}
			d.parseAnnotation()
		case k == TokenFinal:
			b.Advance()
		case set == modifiersLocal:
			break loop
		case k == TokenDefault && (b.LookAhead(1) == TokenColon || b.LookAhead(1) == TokenArrow):
			break loop
		case k.IsModifier():
			b.Advance()
		case isSealed(b):
			g.requireFeature(FeatureSealedClasses, "Sealed classes")
			b.Advance()
		case isNonSealed(b):
			g.requireFeature(FeatureSealedClasses, "Sealed classes")
			b.AdvanceComposite(TokenIdent, 3)
		default:
			break loop
		}
		found = true
	}
	if !found {
		m.Drop()
		return CompletedMarker{}, false
	}
	return m.Complete(KindModifiers), true
}

// parseTypeAnnotations parses the annotations in front of a type or an
// array dimension.
func (d *DeclarationParser) parseTypeAnnotations() bool {
	b := d.g.b
	found := false
	for b.Kind() == TokenAt && b.LookAhead(1) != TokenInterface {
		d.parseAnnotation()
		found = true
	}
	return found
}

func (d *DeclarationParser) parseAnnotation() CompletedMarker {
	g := d.g
	b := g.b
	m := b.Mark()
	b.Advance()
	if _, ok := g.refs.ParseQualifiedName(false); !ok {
		b.Error(msgExpectedIdentifier)
		return m.Complete(KindAnnotation)
	}
	if b.Kind() == TokenLParen {
		d.parseAnnotationArgs()
	}
	return m.Complete(KindAnnotation)
}

func (d *DeclarationParser) parseAnnotationArgs() {
	g := d.g
	b := g.b
	m := b.Mark()
	b.Advance()
	switch {
	case b.Kind() == TokenRParen:
	case b.Kind() == TokenIdent && b.LookAhead(1) == TokenAssign:
		for {
			em := b.Mark()
			g.expectIdentifier()
			g.expect(TokenAssign)
			d.parseAnnotationValue()
			em.Complete(KindAnnotationElement)
			if !g.optional(TokenComma) {
				break
			}
		}
	default:
		d.parseAnnotationValue()
	}
	g.expect(TokenRParen)
	m.Complete(KindAnnotationArgs)
}

func (d *DeclarationParser) parseAnnotationValue() bool {
	g := d.g
	b := g.b
	switch b.Kind() {
	case TokenAt:
		d.parseAnnotation()
		return true
	case TokenLBrace:
		m := b.Mark()
		b.Advance()
		for !g.match(TokenRBrace, TokenEOF) {
			if !d.parseAnnotationValue() && b.Kind() != TokenComma {
				break
			}
			if !g.optional(TokenComma) {
				break
			}
		}
		g.expect(TokenRBrace)
		m.Complete(KindAnnotationArrayInit)
		return true
	}
	if _, ok := g.exprs.ParseConditional(); ok {
		return true
	}
	b.Error(msgExpectedValue)
	return false
}

// parseTypeDecl parses a class, interface, enum, record or annotation
// interface after its modifiers.
func (d *DeclarationParser) parseTypeDecl(m Marker, kind NodeKind) CompletedMarker {
	g := d.g
	b := g.b
	b.Advance()
	if kind == KindAnnotationDecl {
		b.Advance()
	}
	g.expectIdentifier()
	g.refs.ParseTypeParameters()

	if kind == KindRecordDecl {
		if b.Kind() == TokenLParen {
			d.parseList(recordComponents)
		} else {
			b.Error(msgExpectedToken, quote(TokenLParen))
		}
	}

	for {
		switch {
		case b.Kind() == TokenExtends:
			g.refs.parseReferenceList(KindExtendsClause)
			continue
		case b.Kind() == TokenImplements:
			g.refs.parseReferenceList(KindImplementsClause)
			continue
		case isPermits(b):
			g.requireFeature(FeatureSealedClasses, "Sealed classes")
			g.refs.parseReferenceList(KindPermitsClause)
			continue
		}
		break
	}

	if b.Kind() != TokenLBrace {
		g.recoverToLineEnd(msgExpectedToken, quote(TokenLBrace))
	}
	if b.Kind() == TokenLBrace {
		d.parseClassBody(kind)
	}
	return m.Complete(kind)
}

// parseClassBody parses "{ members }". The region up to the matching brace
// is parsed through a limit so recovery inside cannot run past it.
func (d *DeclarationParser) parseClassBody(kind NodeKind) {
	g := d.g
	b := g.b
	end := g.matchingBrace()
	b.Advance()
	if end >= 0 {
		b.PushLimit(end)
	}
	if kind == KindEnumDecl {
		d.parseEnumConstants()
	}
	ctx := ContextClass
	if kind == KindAnnotationDecl {
		ctx = ContextAnnotationInterface
	}
	d.parseMembers(ctx)
	if end >= 0 {
		b.PopLimit()
	}
	g.expect(TokenRBrace)
}

func (d *DeclarationParser) parseAnonymousClass() CompletedMarker {
	defer d.g.exprs.nested()()
	m := d.g.b.Mark()
	d.parseClassBody(KindAnonymousClass)
	return m.Complete(KindAnonymousClass)
}

func (d *DeclarationParser) parseMembers(ctx Context) {
	g := d.g
	b := g.b
	for !b.EOF() && b.Kind() != TokenRBrace {
		if g.optional(TokenSemicolon) {
			continue
		}
		progress := g.mustProgress()
		if _, ok := d.Parse(ctx); !ok {
			g.errorUntil(func() bool { return d.memberStart() }, msgExpectedDeclaration)
		}
		progress()
	}
}

// memberStart reports whether the cursor looks like the start of a member,
// ending an unexpected-token run.
func (d *DeclarationParser) memberStart() bool {
	b := d.g.b
	k := b.Kind()
	switch {
	case k.IsModifier(), k.IsPrimitive():
		return true
	case k == TokenIdent:
		return b.LookAhead(1) == TokenIdent || isSealed(b) || isNonSealed(b) || isRecordStart(b)
	}
	switch k {
	case TokenAt, TokenClass, TokenInterface, TokenEnum, TokenVoid, TokenLT, TokenRBrace, TokenLBrace, TokenSemicolon:
		return true
	}
	return false
}

func (d *DeclarationParser) parseEnumConstants() {
	g := d.g
	b := g.b
	for d.enumConstantAhead() {
		m := b.Mark()
		d.parseTypeAnnotations()
		b.Advance()
		if b.Kind() == TokenLParen {
			g.exprs.ParseArgumentList()
		}
		if b.Kind() == TokenLBrace {
			d.parseAnonymousClass()
		}
		m.Complete(KindEnumConstant)
		if !g.optional(TokenComma) {
			break
		}
	}
	if !g.match(TokenRBrace, TokenEOF) {
		g.expectSemicolon()
	}
}

func (d *DeclarationParser) enumConstantAhead() bool {
	b := d.g.b
	m := b.Mark()
	d.parseTypeAnnotations()
	ok := false
	if b.Kind() == TokenIdent {
		switch b.LookAhead(1) {
		case TokenComma, TokenSemicolon, TokenLParen, TokenLBrace, TokenRBrace, TokenEOF:
			ok = true
		}
	}
	m.Rollback()
	return ok
}

func (d *DeclarationParser) parseConstructor(m Marker) CompletedMarker {
	g := d.g
	b := g.b
	b.Advance()
	d.parseList(methodParameters)
	if b.Kind() == TokenThrows {
		g.refs.parseReferenceList(KindThrowsList)
	}
	if b.Kind() != TokenLBrace {
		g.recoverToLineEnd(msgExpectedToken, quote(TokenLBrace))
	}
	if b.Kind() == TokenLBrace {
		g.stmts.parseCodeBlock(true)
	}
	return m.Complete(KindConstructorDecl)
}

func (d *DeclarationParser) parseMethod(m Marker) CompletedMarker {
	g := d.g
	b := g.b
	b.Advance()
	d.parseList(methodParameters)
	for g.refs.arrayDimensionAhead() {
		d.parseTypeAnnotations()
		b.Advance()
		b.Advance()
	}
	if b.Kind() == TokenThrows {
		g.refs.parseReferenceList(KindThrowsList)
	}
	if b.Kind() == TokenDefault {
		dm := b.Mark()
		b.Advance()
		d.parseAnnotationValue()
		dm.Complete(KindAnnotationDefault)
	}
	switch b.Kind() {
	case TokenLBrace:
		g.stmts.parseCodeBlock(false)
	case TokenSemicolon:
		b.Advance()
	default:
		g.recoverToLineEnd(msgExpectedBodyOrSemi)
		if b.Kind() == TokenLBrace {
			g.stmts.parseCodeBlock(false)
		} else {
			g.optional(TokenSemicolon)
		}
	}
	return m.Complete(KindMethodDecl)
}

// parseDeclarators parses "a[] = x, b, c = y" after the type. Each comma
// closes the current declarator node and opens a sibling of the same kind.
func (d *DeclarationParser) parseDeclarators(m Marker, kind NodeKind, multiple, requireSemicolon bool) CompletedMarker {
	g := d.g
	b := g.b
	for {
		g.expectIdentifier()
		for g.refs.arrayDimensionAhead() {
			d.parseTypeAnnotations()
			b.Advance()
			b.Advance()
		}
		if g.optional(TokenAssign) {
			if b.Kind() == TokenLBrace {
				g.exprs.ParseArrayInitializer()
			} else {
				g.exprs.parseRequired()
			}
		}
		if !multiple || b.Kind() != TokenComma {
			break
		}
		b.Advance()
		m.Complete(kind)
		m = b.Mark()
	}
	if requireSemicolon {
		g.expectSemicolon()
	}
	return m.Complete(kind)
}

// parseLocalVariable parses a local variable declaration if one starts at
// the cursor, as in for-loop headers and resource lists.
func (d *DeclarationParser) parseLocalVariable(requireSemicolon, multiple bool) bool {
	g := d.g
	b := g.b
	m := b.Mark()
	d.parseModifierList(modifiersLocal)
	info := g.refs.ParseType(VarType)
	if info == nil || b.Kind() != TokenIdent {
		m.Rollback()
		return false
	}
	d.parseDeclarators(m, KindLocalVarDecl, multiple, requireSemicolon)
	return true
}

// parseParameter parses one formal parameter, record component or typed
// lambda parameter. With receiver set, "Type this" and "Type Outer.this"
// are accepted as receiver parameters.
func (d *DeclarationParser) parseParameter(kind NodeKind, flags TypeFlags, receiver bool) bool {
	g := d.g
	b := g.b
	m := b.Mark()
	d.parseModifierList(modifiersLocal)
	if g.refs.ParseType(flags) == nil {
		m.Rollback()
		return false
	}
	if receiver {
		if b.Kind() == TokenThis {
			b.Advance()
			m.Complete(KindReceiverParameter)
			return true
		}
		if b.Kind() == TokenIdent && b.LookAhead(1) == TokenDot && b.LookAhead(2) == TokenThis {
			b.Advance()
			b.Advance()
			b.Advance()
			m.Complete(KindReceiverParameter)
			return true
		}
	}
	g.expectIdentifier()
	for g.refs.arrayDimensionAhead() {
		d.parseTypeAnnotations()
		b.Advance()
		b.Advance()
	}
	m.Complete(kind)
	return true
}

package parser

// ExpressionParser parses expressions by precedence climbing over the
// operator table in precedence.go.
type ExpressionParser struct {
	g *grammar

	// caseLabel is set while parsing case labels and guards, where
	// "x -> ..." starts a rule body and not a lambda.
	caseLabel int
}

// Parse parses a full expression including assignments and lambdas. It
// reports false, consuming nothing, when no expression starts here.
func (e *ExpressionParser) Parse() (CompletedMarker, bool) {
	return e.parseBinary(precAssign)
}

// ParseConditional parses an expression without a top-level assignment.
func (e *ExpressionParser) ParseConditional() (CompletedMarker, bool) {
	return e.parseBinary(precConditional)
}

// ParseCaseLabel parses a case constant or a guard condition.
func (e *ExpressionParser) ParseCaseLabel() (CompletedMarker, bool) {
	e.caseLabel++
	defer func() { e.caseLabel-- }()
	return e.parseBinary(precConditional)
}

// nested clears the case label state for a bracketed subexpression, where
// "x -> ..." is a lambda again. The returned func restores it.
func (e *ExpressionParser) nested() func() {
	saved := e.caseLabel
	e.caseLabel = 0
	return func() { e.caseLabel = saved }
}

// parseRequired parses an expression, reporting a missing one.
func (e *ExpressionParser) parseRequired() bool {
	if _, ok := e.Parse(); ok {
		return true
	}
	e.g.b.Error(msgExpectedExpression)
	return false
}

func (e *ExpressionParser) parseBinary(min precedence) (CompletedMarker, bool) {
	left, ok := e.parseUnary()
	if !ok {
		return left, false
	}
	return e.parseBinaryRest(left, min), true
}

func (e *ExpressionParser) parseBinaryRest(left CompletedMarker, min precedence) CompletedMarker {
	b := e.g.b
	for {
		op, width, info, ok := lookupOperator(b)
		if !ok || info.level < min {
			return left
		}
		m := left.Precede()
		switch {
		case info.level == precAssign:
			advanceOperator(b, op, width)
			if _, ok := e.parseBinary(precAssign); !ok {
				b.Error(msgExpectedExpression)
			}
			left = m.Complete(KindAssignExpr)

		case op == TokenQuestion:
			b.Advance()
			e.parseRequired()
			e.g.expect(TokenColon)
			if _, ok := e.parseBinary(precConditional); !ok {
				b.Error(msgExpectedExpression)
			}
			left = m.Complete(KindConditionalExpr)

		case op == TokenInstanceof:
			b.Advance()
			e.parseInstanceofTarget()
			left = m.Complete(KindInstanceofExpr)

		default:
			count := 0
			for {
				op, width, next, ok := lookupOperator(b)
				if !ok || next.level != info.level || op == TokenInstanceof {
					break
				}
				advanceOperator(b, op, width)
				rhs := info.level + 1
				if info.rightAssoc {
					rhs = info.level
				}
				if _, ok := e.parseBinary(rhs); !ok {
					b.Error(msgExpectedExpression)
				}
				count++
			}
			if count > 1 && info.polyadic {
				left = m.Complete(KindPolyadicExpr)
			} else {
				left = m.Complete(KindBinaryExpr)
			}
		}
	}
}

func (e *ExpressionParser) parseInstanceofTarget() {
	g := e.g
	if g.match(TokenFinal, TokenAt) || g.patterns.PreParsePattern() {
		g.requireFeature(FeaturePatternInstanceof, "Patterns in instanceof")
		g.patterns.ParsePattern()
		return
	}
	if g.refs.ParseType(0) == nil {
		g.b.Error(msgExpectedType)
	}
}

func (e *ExpressionParser) parseUnary() (CompletedMarker, bool) {
	b := e.g.b
	switch b.Kind() {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		m := b.Mark()
		b.Advance()
		if _, ok := e.parseUnary(); !ok {
			b.Error(msgExpectedExpression)
		}
		return m.Complete(KindUnaryExpr), true
	case TokenLParen:
		if !e.lambdaAhead() {
			if cast, ok := e.tryCast(); ok {
				return cast, true
			}
		}
	}
	return e.parsePostfix()
}

// tryCast parses "(Type) operand" speculatively. A parenthesised reference
// type followed by something that could continue an arithmetic expression,
// like "(a) + b", is left to the parenthesised expression production.
func (e *ExpressionParser) tryCast() (CompletedMarker, bool) {
	b := e.g.b
	m := b.Mark()
	b.Advance()
	info := e.g.refs.ParseType(IntersectionTypes)
	if info == nil || b.HasErrorsSince(m) || b.Kind() != TokenRParen {
		m.Rollback()
		return CompletedMarker{}, false
	}
	b.Advance()
	if !e.castOperandAhead(info.Primitive && !info.Array) {
		m.Rollback()
		return CompletedMarker{}, false
	}
	if e.lambdaAhead() {
		e.parseLambda()
	} else if _, ok := e.parseUnary(); !ok {
		b.Error(msgExpectedExpression)
	}
	return m.Complete(KindCastExpr), true
}

func (e *ExpressionParser) castOperandAhead(primitive bool) bool {
	k := e.g.b.Kind()
	switch {
	case k == TokenIdent, k.IsLiteral(), k.IsPrimitive():
		return true
	}
	switch k {
	case TokenLParen, TokenNot, TokenBitNot, TokenThis, TokenSuper, TokenNew, TokenSwitch, TokenVoid:
		return true
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement:
		return primitive
	}
	return false
}

// lambdaAhead decides whether a lambda starts at the cursor: "x ->",
// "() ->", "(a, b) ->" by plain lookahead, typed parameter lists by a
// speculative parse.
func (e *ExpressionParser) lambdaAhead() bool {
	b := e.g.b
	if e.caseLabel > 0 {
		return false
	}
	switch b.Kind() {
	case TokenIdent:
		return b.LookAhead(1) == TokenArrow
	case TokenLParen:
	default:
		return false
	}
	if b.LookAhead(1) == TokenRParen {
		return b.LookAhead(2) == TokenArrow
	}
	for n := 1; b.LookAhead(n) == TokenIdent; n += 2 {
		next := b.LookAhead(n + 1)
		if next == TokenRParen {
			return b.LookAhead(n+2) == TokenArrow
		}
		if next != TokenComma {
			break
		}
	}
	m := b.Mark()
	b.Advance()
	ok := e.typedLambdaParameters()
	m.Rollback()
	return ok
}

func (e *ExpressionParser) typedLambdaParameters() bool {
	b := e.g.b
	for {
		e.g.decls.parseModifierList(modifiersLocal)
		if e.g.refs.ParseType(Ellipsis|VarType) == nil {
			return false
		}
		if !e.g.match(TokenIdent, TokenThis) {
			return false
		}
		b.Advance()
		if !e.g.optional(TokenComma) {
			break
		}
	}
	return b.Kind() == TokenRParen && b.LookAhead(1) == TokenArrow
}

func (e *ExpressionParser) parseLambda() CompletedMarker {
	b := e.g.b
	m := b.Mark()
	if b.Kind() == TokenIdent {
		pm := b.Mark()
		p := b.Mark()
		b.Advance()
		p.Complete(KindParameter)
		pm.Complete(KindLambdaParameters)
	} else {
		e.g.decls.parseList(lambdaParameters)
	}
	e.g.expect(TokenArrow)
	if b.Kind() == TokenLBrace {
		e.g.stmts.parseBlock()
	} else {
		e.parseRequired()
	}
	return m.Complete(KindLambdaExpr)
}

func (e *ExpressionParser) parsePostfix() (CompletedMarker, bool) {
	b := e.g.b
	expr, ok := e.parsePrimary()
	if !ok {
		return expr, false
	}
	for {
		switch b.Kind() {
		case TokenDot:
			var done bool
			expr, done = e.parseSelector(expr)
			if done {
				return expr, true
			}
		case TokenLBracket:
			m := expr.Precede()
			b.Advance()
			restore := e.nested()
			e.parseRequired()
			restore()
			e.g.expect(TokenRBracket)
			expr = m.Complete(KindArrayAccess)
		case TokenColonColon:
			m := expr.Precede()
			b.Advance()
			e.g.refs.ParseTypeArguments(false)
			if !e.g.optional(TokenNew) {
				e.g.expectIdentifier()
			}
			expr = m.Complete(KindMethodRef)
		case TokenIncrement, TokenDecrement:
			m := expr.Precede()
			b.Advance()
			expr = m.Complete(KindPostfixExpr)
		default:
			return expr, true
		}
	}
}

// parseSelector parses what follows a '.' in a postfix chain. done reports
// that the chain cannot continue.
func (e *ExpressionParser) parseSelector(expr CompletedMarker) (result CompletedMarker, done bool) {
	b := e.g.b
	g := e.g
	m := expr.Precede()
	switch next := b.LookAhead(1); next {
	case TokenIdent:
		b.Advance()
		b.Advance()
		if b.Kind() == TokenLParen {
			e.ParseArgumentList()
			return m.Complete(KindCallExpr), false
		}
		return m.Complete(KindFieldAccess), false
	case TokenLT:
		b.Advance()
		g.refs.ParseTypeArguments(false)
		if g.optional(TokenSuper) || g.optional(TokenThis) || g.expectIdentifier() {
			if b.Kind() == TokenLParen {
				e.ParseArgumentList()
			} else {
				g.expect(TokenLParen)
			}
		}
		return m.Complete(KindCallExpr), false
	case TokenNew:
		b.Advance()
		return e.parseNew(m), false
	case TokenThis, TokenSuper:
		b.Advance()
		b.Advance()
		kind := KindThis
		if next == TokenSuper {
			kind = KindSuper
		}
		c := m.Complete(kind)
		if b.Kind() == TokenLParen {
			// outer.super(...) in a constructor body
			cm := c.Precede()
			e.ParseArgumentList()
			c = cm.Complete(KindCallExpr)
		}
		return c, false
	case TokenClass:
		b.Advance()
		b.Advance()
		return m.Complete(KindClassLiteral), false
	case TokenStringTemplate, TokenTextBlockTemplate, TokenStringLiteral, TokenTextBlock:
		b.Advance()
		b.Advance()
		g.requireFeature(FeatureStringTemplates, "String templates")
		return m.Complete(KindTemplateExpr), false
	default:
		b.Advance()
		b.Error(msgExpectedIdentifier)
		return m.Complete(KindFieldAccess), true
	}
}

func (e *ExpressionParser) parsePrimary() (CompletedMarker, bool) {
	b := e.g.b
	g := e.g
	switch k := b.Kind(); {
	case k == TokenStringTemplate || k == TokenTextBlockTemplate:
		m := b.Mark()
		b.Advance()
		g.requireFeature(FeatureStringTemplates, "String templates")
		return m.Complete(KindLiteral), true
	case k == TokenTextBlock:
		m := b.Mark()
		b.Advance()
		g.requireFeature(FeatureTextBlocks, "Text blocks")
		return m.Complete(KindLiteral), true
	case k.IsLiteral():
		m := b.Mark()
		b.Advance()
		return m.Complete(KindLiteral), true
	case k == TokenThis || k == TokenSuper:
		m := b.Mark()
		b.Advance()
		kind := KindThis
		if k == TokenSuper {
			kind = KindSuper
		}
		c := m.Complete(kind)
		if b.Kind() == TokenLParen {
			cm := c.Precede()
			e.ParseArgumentList()
			c = cm.Complete(KindCallExpr)
		}
		return c, true
	case k == TokenNew:
		return e.parseNew(b.Mark()), true
	case k == TokenLParen:
		if e.lambdaAhead() {
			return e.parseLambda(), true
		}
		m := b.Mark()
		b.Advance()
		restore := e.nested()
		e.parseRequired()
		restore()
		if b.Kind() == TokenComma {
			e.skipParenTail()
		}
		g.expect(TokenRParen)
		return m.Complete(KindParenExpr), true
	case k == TokenSwitch:
		g.requireFeature(FeatureSwitchExpressions, "Switch expressions")
		return g.stmts.parseSwitch(KindSwitchExpr), true
	case k == TokenIdent:
		if e.lambdaAhead() {
			return e.parseLambda(), true
		}
		if typ, ok := e.tryTypeReference(); ok {
			return typ, true
		}
		m := b.Mark()
		b.Advance()
		id := m.Complete(KindIdentifier)
		if b.Kind() == TokenLParen {
			cm := id.Precede()
			e.ParseArgumentList()
			return cm.Complete(KindCallExpr), true
		}
		return id, true
	case k.IsPrimitive() || k == TokenVoid:
		info := g.refs.ParseType(VoidType)
		if !g.check(TokenColonColon) && !(g.check(TokenDot) && b.LookAhead(1) == TokenClass) {
			b.Error(msgExpectedToken, quote(TokenDot))
		}
		return info.Marker, true
	case k == TokenAt:
		// annotated type in a method reference, as in "@A Foo::bar"
		m := b.Mark()
		if info := g.refs.ParseType(0); info != nil && g.check(TokenColonColon) {
			m.Drop()
			return info.Marker, true
		}
		m.Rollback()
	}
	return CompletedMarker{}, false
}

// skipParenTail wraps ", b, c" after the first expression of a
// parenthesised list into one error, leaving the closing ')' in place.
func (e *ExpressionParser) skipParenTail() {
	g := e.g
	b := g.b
	m := b.Mark()
	depth := 0
	for !b.EOF() && !g.match(TokenSemicolon, TokenLBrace, TokenRBrace) {
		if b.Kind() == TokenRParen {
			if depth == 0 {
				break
			}
			depth--
		} else if b.Kind() == TokenLParen {
			depth++
		}
		b.Advance()
	}
	m.CompleteError(msgExpectedToken, quote(TokenRParen))
}

// tryTypeReference accepts a generic or array type used as the qualifier of
// a method reference or class literal: "List<String>::new", "Foo[].class".
func (e *ExpressionParser) tryTypeReference() (CompletedMarker, bool) {
	b := e.g.b
	switch b.LookAhead(1) {
	case TokenLT:
	case TokenLBracket:
		if b.LookAhead(2) != TokenRBracket {
			return CompletedMarker{}, false
		}
	case TokenDot:
		if !e.qualifiedTypeAhead() {
			return CompletedMarker{}, false
		}
	default:
		return CompletedMarker{}, false
	}
	m := b.Mark()
	info := e.g.refs.ParseType(0)
	if info == nil || b.HasErrorsSince(m) || !(info.Parameterized || info.Array) {
		m.Rollback()
		return CompletedMarker{}, false
	}
	switch {
	case b.Kind() == TokenColonColon:
	case info.Array && b.Kind() == TokenDot && b.LookAhead(1) == TokenClass:
	default:
		m.Rollback()
		return CompletedMarker{}, false
	}
	m.Drop()
	return info.Marker, true
}

// qualifiedTypeAhead scans a.b.c for a following '<' or "[]".
func (e *ExpressionParser) qualifiedTypeAhead() bool {
	b := e.g.b
	n := 1
	for b.LookAhead(n) == TokenDot && b.LookAhead(n+1) == TokenIdent {
		n += 2
	}
	switch b.LookAhead(n) {
	case TokenLT:
		return true
	case TokenLBracket:
		return b.LookAhead(n+1) == TokenRBracket
	}
	return false
}

// parseNew parses a creation expression starting at 'new'. m is opened by
// the caller so qualified creations "outer.new Inner()" wrap the qualifier.
func (e *ExpressionParser) parseNew(m Marker) CompletedMarker {
	b := e.g.b
	g := e.g
	b.Advance()
	g.refs.ParseTypeArguments(false)
	if b.Kind().IsPrimitive() {
		tm := b.Mark()
		b.Advance()
		tm.Complete(KindType)
		e.parseArrayCreation()
		return m.Complete(KindNewExpr)
	}
	if _, ok := g.refs.ParseJavaCodeReference(true, true); !ok {
		b.Error(msgExpectedIdentifier)
		return m.Complete(KindNewExpr)
	}
	switch b.Kind() {
	case TokenLBracket, TokenAt:
		e.parseArrayCreation()
	case TokenLParen:
		e.ParseArgumentList()
		if b.Kind() == TokenLBrace {
			g.decls.parseAnonymousClass()
		}
	default:
		g.expect(TokenLParen)
	}
	return m.Complete(KindNewExpr)
}

func (e *ExpressionParser) parseArrayCreation() {
	b := e.g.b
	g := e.g
	sized := false
	for {
		if b.Kind() == TokenAt {
			g.decls.parseTypeAnnotations()
		}
		if b.Kind() != TokenLBracket {
			break
		}
		b.Advance()
		if g.optional(TokenRBracket) {
			continue
		}
		e.parseRequired()
		g.expect(TokenRBracket)
		sized = true
	}
	if b.Kind() == TokenLBrace {
		e.ParseArrayInitializer()
		return
	}
	if !sized {
		b.Error(msgExpectedArrayDimension)
	}
}

// ParseArgumentList parses "(a, b, c)" at '('.
func (e *ExpressionParser) ParseArgumentList() CompletedMarker {
	b := e.g.b
	g := e.g
	defer e.nested()()
	m := b.Mark()
	b.Advance()
	if b.Kind() != TokenRParen {
		for {
			if _, ok := e.Parse(); !ok {
				b.Error(msgExpectedExpression)
				if b.Kind() != TokenComma {
					break
				}
			}
			if !g.optional(TokenComma) {
				break
			}
		}
	}
	g.expect(TokenRParen)
	return m.Complete(KindArguments)
}

// ParseArrayInitializer parses "{a, {b}, c,}" at '{'. A trailing comma is
// allowed.
func (e *ExpressionParser) ParseArrayInitializer() CompletedMarker {
	b := e.g.b
	g := e.g
	defer e.nested()()
	m := b.Mark()
	b.Advance()
	for !g.match(TokenRBrace, TokenEOF) {
		if b.Kind() == TokenLBrace {
			e.ParseArrayInitializer()
		} else if _, ok := e.Parse(); !ok {
			if g.match(TokenSemicolon, TokenRParen, TokenComma) {
				b.Error(msgExpectedExpression)
				if b.Kind() != TokenComma {
					break
				}
			} else {
				g.errorToken(msgExpectedExpression)
			}
		}
		if !g.optional(TokenComma) {
			break
		}
	}
	g.expect(TokenRBrace)
	return m.Complete(KindArrayInit)
}

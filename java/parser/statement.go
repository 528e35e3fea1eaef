package parser

// StatementParser parses statements and blocks.
type StatementParser struct {
	g *grammar
}

// Parse parses one block statement. It reports false, consuming nothing,
// when no statement starts at the cursor.
func (s *StatementParser) Parse() (CompletedMarker, bool) {
	g := s.g
	b := g.b

	switch b.Kind() {
	case TokenLBrace:
		return s.parseBlock(), true
	case TokenSemicolon:
		m := b.Mark()
		b.Advance()
		return m.Complete(KindEmptyStmt), true
	case TokenIf:
		return s.parseIf(), true
	case TokenWhile:
		m := b.Mark()
		b.Advance()
		s.parseCondition()
		s.parseBody()
		return m.Complete(KindWhileStmt), true
	case TokenDo:
		m := b.Mark()
		b.Advance()
		s.parseBody()
		if g.expect(TokenWhile) {
			s.parseCondition()
		}
		g.expectSemicolon()
		return m.Complete(KindDoStmt), true
	case TokenFor:
		return s.parseFor(), true
	case TokenSwitch:
		return s.parseSwitch(KindSwitchStmt), true
	case TokenReturn:
		m := b.Mark()
		b.Advance()
		if b.Kind() != TokenSemicolon {
			g.exprs.Parse()
		}
		g.expectSemicolon()
		return m.Complete(KindReturnStmt), true
	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if b.Kind() == TokenContinue {
			kind = KindContinueStmt
		}
		m := b.Mark()
		b.Advance()
		g.optional(TokenIdent)
		g.expectSemicolon()
		return m.Complete(kind), true
	case TokenThrow:
		m := b.Mark()
		b.Advance()
		g.exprs.parseRequired()
		g.expectSemicolon()
		return m.Complete(KindThrowStmt), true
	case TokenTry:
		return s.parseTry(), true
	case TokenSynchronized:
		if b.LookAhead(1) == TokenLParen {
			m := b.Mark()
			b.Advance()
			s.parseCondition()
			s.parseBlockOrError()
			return m.Complete(KindSynchronizedStmt), true
		}
	case TokenAssert:
		m := b.Mark()
		b.Advance()
		g.exprs.parseRequired()
		if g.optional(TokenColon) {
			g.exprs.parseRequired()
		}
		g.expectSemicolon()
		return m.Complete(KindAssertStmt), true
	case TokenElse:
		m := b.Mark()
		b.Advance()
		return m.CompleteError(msgElseWithoutIf), true
	case TokenCatch:
		m := b.Mark()
		s.parseCatchClause()
		return m.CompleteError(msgCatchWithoutTry), true
	case TokenFinally:
		m := b.Mark()
		s.parseFinallyClause()
		return m.CompleteError(msgFinallyWithoutTry), true
	case TokenCase, TokenDefault:
		if s.switchLabelAhead() {
			m := b.Mark()
			s.parseSwitchLabel()
			if !g.optional(TokenColon) {
				g.optional(TokenArrow)
			}
			return m.CompleteError(msgCaseOutsideSwitch), true
		}
	case TokenIdent:
		if b.LookAhead(1) == TokenColon {
			m := b.Mark()
			b.Advance()
			b.Advance()
			s.parseBody()
			return m.Complete(KindLabeledStmt), true
		}
		if isYieldStatement(b, g.features) {
			m := b.Mark()
			b.Advance()
			g.exprs.parseRequired()
			g.expectSemicolon()
			return m.Complete(KindYieldStmt), true
		}
	}

	m := b.Mark()
	if _, ok := g.decls.Parse(ContextCodeBlock); ok {
		return m.Complete(KindDeclarationStmt), true
	}
	if _, ok := g.exprs.Parse(); ok {
		g.expectSemicolon()
		return m.Complete(KindExprStmt), true
	}
	m.Drop()
	return CompletedMarker{}, false
}

// parseBlockStatement parses one statement of a block. Tokens that start no
// statement are wrapped into one error node.
func (s *StatementParser) parseBlockStatement() {
	g := s.g
	progress := g.mustProgress()
	if _, ok := s.Parse(); !ok {
		g.errorUntil(s.statementStart, msgExpectedStatement)
	}
	progress()
}

func (s *StatementParser) statementStart() bool {
	k := s.g.b.Kind()
	switch {
	case k == TokenIdent, k.IsLiteral(), k >= TokenAbstract && k <= TokenWhile:
		return true
	}
	switch k {
	case TokenLBrace, TokenRBrace, TokenSemicolon, TokenLParen, TokenAt, TokenLT,
		TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		return true
	}
	return false
}

// parseBody parses the statement controlled by if, while, for, do or a
// label.
func (s *StatementParser) parseBody() {
	if _, ok := s.Parse(); !ok {
		s.g.b.Error(msgExpectedStatement)
	}
}

func (s *StatementParser) parseBlockOrError() {
	if s.g.b.Kind() == TokenLBrace {
		s.parseBlock()
		return
	}
	s.g.b.Error(msgExpectedToken, quote(TokenLBrace))
}

func (s *StatementParser) parseCondition() {
	g := s.g
	g.expect(TokenLParen)
	g.exprs.parseRequired()
	g.expect(TokenRParen)
}

func (s *StatementParser) parseBlock() CompletedMarker {
	return s.parseCodeBlock(false)
}

// parseCodeBlock parses "{ statements }". Constructor bodies also accept
// explicit constructor invocations.
func (s *StatementParser) parseCodeBlock(constructor bool) CompletedMarker {
	g := s.g
	b := g.b
	defer g.exprs.nested()()
	m := b.Mark()
	end := g.matchingBrace()
	if !g.expect(TokenLBrace) {
		return m.Complete(KindBlock)
	}
	if end >= 0 {
		b.PushLimit(end)
	}
	first := true
	for !b.EOF() && b.Kind() != TokenRBrace {
		if constructor && s.explicitConstructorInvocationAhead() {
			if !first {
				g.requireFeature(FeatureStatementsBeforeSuper, "Statements before this() or super()")
			}
			s.parseExplicitConstructorInvocation()
		} else {
			s.parseBlockStatement()
		}
		first = false
	}
	if end >= 0 {
		b.PopLimit()
	}
	g.expect(TokenRBrace)
	return m.Complete(KindBlock)
}

// parseIf parses an if statement and its else-if chain iteratively, keeping
// the open markers on an explicit stack.
func (s *StatementParser) parseIf() CompletedMarker {
	g := s.g
	b := g.b
	var stack []Marker
	for {
		stack = append(stack, b.Mark())
		b.Advance()
		s.parseCondition()
		s.parseBody()
		if !g.optional(TokenElse) {
			break
		}
		if b.Kind() != TokenIf {
			s.parseBody()
			break
		}
	}
	var done CompletedMarker
	for i := len(stack) - 1; i >= 0; i-- {
		done = stack[i].Complete(KindIfStmt)
	}
	return done
}

func (s *StatementParser) parseFor() CompletedMarker {
	g := s.g
	b := g.b
	m := b.Mark()
	b.Advance()
	g.expect(TokenLParen)

	if g.has(FeatureRecordPatterns) && s.recordPatternForEachAhead() {
		g.patterns.ParsePattern()
		g.expect(TokenColon)
		g.exprs.parseRequired()
		g.expect(TokenRParen)
		s.parseBody()
		return m.Complete(KindForEachPatternStmt)
	}

	if s.forEachAhead() {
		g.decls.parseParameter(KindParameter, VarType, false)
		b.Advance()
		g.exprs.parseRequired()
		g.expect(TokenRParen)
		s.parseBody()
		return m.Complete(KindForEachStmt)
	}

	if b.Kind() != TokenSemicolon && !g.decls.parseLocalVariable(false, true) {
		s.parseExpressionList()
	}
	g.expectSemicolon()
	if b.Kind() != TokenSemicolon {
		g.exprs.parseRequired()
	}
	g.expectSemicolon()
	if b.Kind() != TokenRParen {
		s.parseExpressionList()
	}
	g.expect(TokenRParen)
	s.parseBody()
	return m.Complete(KindForStmt)
}

func (s *StatementParser) parseExpressionList() {
	g := s.g
	for {
		g.exprs.parseRequired()
		if !g.optional(TokenComma) {
			return
		}
	}
}

func (s *StatementParser) recordPatternForEachAhead() bool {
	g := s.g
	b := g.b
	if !g.patterns.PreParsePattern() {
		return false
	}
	m := b.Mark()
	p := g.patterns.ParsePattern()
	ok := p.Kind() == KindDeconstructionPattern && b.Kind() == TokenColon
	m.Rollback()
	return ok
}

func (s *StatementParser) forEachAhead() bool {
	g := s.g
	b := g.b
	m := b.Mark()
	ok := g.decls.parseParameter(KindParameter, VarType, false) && !b.HasErrorsSince(m) && b.Kind() == TokenColon
	m.Rollback()
	return ok
}

// parseSwitch parses a switch statement or expression. The body is a
// sequence of "case ...:" groups or "case ... ->" rules.
func (s *StatementParser) parseSwitch(kind NodeKind) CompletedMarker {
	g := s.g
	b := g.b
	defer g.exprs.nested()()
	m := b.Mark()
	b.Advance()
	s.parseCondition()
	if b.Kind() != TokenLBrace {
		b.Error(msgExpectedToken, quote(TokenLBrace))
		return m.Complete(kind)
	}
	end := g.matchingBrace()
	b.Advance()
	if end >= 0 {
		b.PushLimit(end)
	}
	for !b.EOF() && b.Kind() != TokenRBrace {
		progress := g.mustProgress()
		if s.switchLabelAhead() {
			s.parseSwitchEntry()
		} else {
			g.errorUntil(func() bool { return s.switchLabelAhead() || b.Kind() == TokenRBrace }, msgExpectedCaseLabel)
		}
		progress()
	}
	if end >= 0 {
		b.PopLimit()
	}
	g.expect(TokenRBrace)
	return m.Complete(kind)
}

func (s *StatementParser) switchLabelAhead() bool {
	b := s.g.b
	switch b.Kind() {
	case TokenCase:
		return true
	case TokenDefault:
		return b.LookAhead(1) == TokenColon || b.LookAhead(1) == TokenArrow
	}
	return false
}

func (s *StatementParser) parseSwitchEntry() {
	g := s.g
	b := g.b
	m := b.Mark()
	s.parseSwitchLabel()

	if g.optional(TokenArrow) {
		switch b.Kind() {
		case TokenLBrace:
			s.parseBlock()
		case TokenThrow:
			s.Parse()
		default:
			g.exprs.parseRequired()
			g.expectSemicolon()
		}
		m.Complete(KindSwitchRule)
		return
	}

	if !g.optional(TokenColon) {
		b.Error(msgExpectedColonOrArrow)
	}
	for !b.EOF() && b.Kind() != TokenRBrace && !s.switchLabelAhead() {
		s.parseBlockStatement()
	}
	m.Complete(KindSwitchGroup)
}

// parseSwitchLabel parses "default" or "case" with its labels and an
// optional guard.
func (s *StatementParser) parseSwitchLabel() {
	g := s.g
	b := g.b
	m := b.Mark()
	if g.optional(TokenDefault) {
		m.Complete(KindDefaultCaseLabel)
		return
	}
	b.Advance()
	for {
		if !s.parseCaseLabelElement() {
			b.Error(msgExpectedCaseLabel)
			if b.Kind() != TokenComma {
				break
			}
		}
		if !g.optional(TokenComma) {
			break
		}
	}
	m.Complete(KindCaseLabelList)

	if isWhen(b) {
		gm := b.Mark()
		b.Advance()
		if _, ok := g.exprs.ParseCaseLabel(); !ok {
			b.Error(msgExpectedExpression)
		}
		gm.Complete(KindGuard)
	}
}

func (s *StatementParser) parseCaseLabelElement() bool {
	g := s.g
	b := g.b
	if b.Kind() == TokenDefault {
		b.Advance()
		return true
	}
	if g.has(FeatureSwitchPatterns) && (g.patterns.PreParsePattern() || s.unnamedPatternAhead()) {
		g.patterns.ParsePattern()
		return true
	}
	_, ok := g.exprs.ParseCaseLabel()
	return ok
}

func (s *StatementParser) unnamedPatternAhead() bool {
	b := s.g.b
	if !s.g.has(FeatureUnnamedVariables) || !isUnnamed(b, 0) {
		return false
	}
	switch b.LookAhead(1) {
	case TokenComma, TokenArrow, TokenColon:
		return true
	}
	return isWhen(b)
}

func (s *StatementParser) parseTry() CompletedMarker {
	g := s.g
	b := g.b
	m := b.Mark()
	b.Advance()
	hasResources := b.Kind() == TokenLParen
	if hasResources {
		g.decls.parseList(resources)
	}
	s.parseBlockOrError()
	hasCatch := false
	for b.Kind() == TokenCatch {
		s.parseCatchClause()
		hasCatch = true
	}
	if b.Kind() == TokenFinally {
		s.parseFinallyClause()
	} else if !hasCatch && !hasResources {
		b.Error(msgExpectedCatchOrFinally)
	}
	return m.Complete(KindTryStmt)
}

func (s *StatementParser) parseCatchClause() {
	g := s.g
	b := g.b
	m := b.Mark()
	b.Advance()
	if g.expect(TokenLParen) {
		if !g.decls.parseParameter(KindParameter, UnionTypes, false) {
			b.Error(msgExpectedParameter)
		}
		g.expect(TokenRParen)
	}
	s.parseBlockOrError()
	m.Complete(KindCatchClause)
}

func (s *StatementParser) parseFinallyClause() {
	m := s.g.b.Mark()
	s.g.b.Advance()
	s.parseBlockOrError()
	m.Complete(KindFinallyClause)
}

// explicitConstructorInvocationAhead: this(...), super(...), <T>this(...),
// outer.super(...).
func (s *StatementParser) explicitConstructorInvocationAhead() bool {
	b := s.g.b
	switch b.Kind() {
	case TokenThis, TokenSuper:
		return b.LookAhead(1) == TokenLParen
	case TokenLT:
		return true
	case TokenIdent:
		for n := 0; b.LookAhead(n) == TokenIdent && b.LookAhead(n+1) == TokenDot; n += 2 {
			if b.LookAhead(n+2) == TokenSuper && b.LookAhead(n+3) == TokenLParen {
				return true
			}
		}
	}
	return false
}

func (s *StatementParser) parseExplicitConstructorInvocation() {
	g := s.g
	b := g.b
	m := b.Mark()
	if b.Kind() == TokenLT {
		g.refs.ParseTypeArguments(false)
		if !g.optional(TokenThis) && !g.optional(TokenSuper) {
			b.Error(msgExpectedToken, quote(TokenSuper))
		}
		if b.Kind() == TokenLParen {
			g.exprs.ParseArgumentList()
		} else {
			g.expect(TokenLParen)
		}
	} else {
		g.exprs.parseRequired()
	}
	g.expectSemicolon()
	m.Complete(KindExplicitConstructorInvocation)
}

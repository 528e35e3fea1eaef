package parser

// Contextual keywords are ordinary identifiers to the lexer. Each predicate
// below decides from lookahead whether the identifier at the cursor acts as a
// keyword here.

func isWord(b *Builder, n int, word string) bool {
	return b.LookAhead(n) == TokenIdent && b.TextAt(n) == word
}

// isRecordStart: "record Name (" or "record Name <".
func isRecordStart(b *Builder) bool {
	return isWord(b, 0, "record") && b.LookAhead(1) == TokenIdent &&
		(b.LookAhead(2) == TokenLParen || b.LookAhead(2) == TokenLT)
}

// isSealed: "sealed" followed by something that can continue a modifier
// list.
func isSealed(b *Builder) bool {
	if !isWord(b, 0, "sealed") {
		return false
	}
	next := b.LookAhead(1)
	if next.IsModifier() || next == TokenClass || next == TokenInterface || next == TokenAt {
		return true
	}
	return next == TokenIdent && (b.TextAt(1) == "non" || b.TextAt(1) == "sealed" || b.TextAt(1) == "record")
}

// isNonSealed: the three adjacent tokens "non", "-", "sealed".
func isNonSealed(b *Builder) bool {
	return isWord(b, 0, "non") && b.RawLookup(1) == TokenMinus &&
		b.RawLookup(2) == TokenIdent && b.rawText(2) == "sealed"
}

func isPermits(b *Builder) bool {
	return isWord(b, 0, "permits")
}

// isWhen reports whether "when" at the cursor starts a guard rather than
// being used as a name.
func isWhen(b *Builder) bool {
	if !isWord(b, 0, "when") {
		return false
	}
	switch b.LookAhead(1) {
	case TokenArrow, TokenColon, TokenComma, TokenRParen, TokenSemicolon, TokenEOF,
		TokenAnd, TokenOr, TokenQuestion:
		return false
	}
	return true
}

// isOpenModule: "open module".
func isOpenModule(b *Builder) bool {
	return isWord(b, 0, "open") && isWord(b, 1, "module")
}

// isModuleStart: "module Name" at the top of a file.
func isModuleStart(b *Builder) bool {
	return isWord(b, 0, "module") && b.LookAhead(1) == TokenIdent
}

// isVarType: "var" used as the inferred type of a local variable or lambda
// parameter.
func isVarType(b *Builder, f Features) bool {
	return f.Has(FeatureVarLocals) && isWord(b, 0, "var") && b.LookAhead(1) == TokenIdent
}

// isYieldStatement: "yield" starting a yield statement rather than an
// expression using a variable or method named yield.
func isYieldStatement(b *Builder, f Features) bool {
	if !f.Has(FeatureSwitchExpressions) || !isWord(b, 0, "yield") {
		return false
	}
	switch b.LookAhead(1) {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign, TokenShlAssign,
		TokenDot, TokenLBracket, TokenIncrement, TokenDecrement, TokenArrow, TokenColonColon,
		TokenColon, TokenSemicolon, TokenRParen, TokenComma, TokenEOF,
		// yield >>= 1
		TokenGT:
		return false
	}
	return true
}

// isUnnamed: the "_" placeholder.
func isUnnamed(b *Builder, n int) bool {
	return isWord(b, n, "_")
}

// isModuleImport: "import module Name;". A package named module is
// imported as "import module.x;" and does not match.
func isModuleImport(b *Builder) bool {
	return b.Kind() == TokenImport && isWord(b, 1, "module") && b.LookAhead(2) == TokenIdent
}

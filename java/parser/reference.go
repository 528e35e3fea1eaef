package parser

// TypeFlags configure ReferenceParser.ParseType.
type TypeFlags uint16

const (
	// EatLastDot consumes a dangling '.' after a qualified name, reporting
	// a missing identifier.
	EatLastDot TypeFlags = 1 << iota
	// Ellipsis accepts a trailing '...' (variable arity parameter).
	Ellipsis
	// Wildcard accepts '?' types.
	Wildcard
	// Diamonds accepts empty type argument lists '<>'.
	Diamonds
	// UnionTypes accepts 'A | B' (catch parameters).
	UnionTypes
	// IntersectionTypes accepts 'A & B' (casts).
	IntersectionTypes
	// VarType accepts 'var' as an inferred type.
	VarType
	// IncompleteAnnotations keeps a dangling annotation list when no type
	// follows it.
	IncompleteAnnotations
	// VoidType accepts 'void'.
	VoidType
)

// TypeInfo describes a parsed type for callers that need to tell types from
// expressions.
type TypeInfo struct {
	Primitive     bool
	Array         bool
	Vararg        bool
	Parameterized bool
	HasErrors     bool
	Marker        CompletedMarker
}

// ReferenceParser parses types, type parameters, type arguments and
// qualified names.
type ReferenceParser struct {
	g *grammar
}

// ParseType parses a type at the cursor. It returns nil, consuming nothing,
// when the current token cannot start a type.
func (r *ReferenceParser) ParseType(flags TypeFlags) *TypeInfo {
	b := r.g.b
	info := r.parseTypeInfo(flags)
	if info == nil {
		return nil
	}

	if flags&(UnionTypes|IntersectionTypes) != 0 {
		sep := TokenBitOr
		kind := KindUnionType
		if flags&UnionTypes == 0 {
			sep = TokenBitAnd
			kind = KindIntersectionType
		}
		if r.g.check(sep) {
			m := info.Marker.Precede()
			for r.g.optional(sep) {
				if next := r.parseTypeInfo(flags &^ (Ellipsis | VarType)); next == nil {
					b.Error(msgExpectedType)
					info.HasErrors = true
					break
				}
			}
			info.Marker = m.Complete(kind)
		}
	}
	return info
}

func (r *ReferenceParser) parseTypeInfo(flags TypeFlags) *TypeInfo {
	b := r.g.b
	g := r.g
	info := &TypeInfo{}

	m := b.Mark()
	annotated := g.decls.parseTypeAnnotations()

	switch k := b.Kind(); {
	case k.IsPrimitive():
		b.Advance()
		info.Primitive = true
	case k == TokenVoid && flags&VoidType != 0:
		b.Advance()
		info.Primitive = true
	case k == TokenQuestion && flags&Wildcard != 0:
		r.parseWildcard(m, info)
		return info
	case k == TokenIdent && flags&VarType != 0 && isVarType(b, g.features):
		b.Advance()
	case k == TokenIdent:
		r.parseClassTypeSegments(flags, info)
	default:
		if annotated && flags&IncompleteAnnotations != 0 {
			b.Error(msgExpectedType)
			info.HasErrors = true
			info.Marker = m.Complete(KindType)
			return info
		}
		m.Rollback()
		return nil
	}
	typ := m.Complete(KindType)

	for r.arrayDimensionAhead() {
		am := typ.Precede()
		g.decls.parseTypeAnnotations()
		b.Advance()
		b.Advance()
		typ = am.Complete(KindArrayType)
		info.Array = true
	}

	if flags&Ellipsis != 0 && g.check(TokenEllipsis) {
		vm := typ.Precede()
		b.Advance()
		typ = vm.Complete(KindVarargType)
		info.Vararg = true
	}

	info.Marker = typ
	return info
}

// arrayDimensionAhead reports whether an optionally annotated "[]" follows.
func (r *ReferenceParser) arrayDimensionAhead() bool {
	b := r.g.b
	if b.Kind() == TokenLBracket {
		return b.LookAhead(1) == TokenRBracket
	}
	if b.Kind() != TokenAt {
		return false
	}
	m := b.Mark()
	r.g.decls.parseTypeAnnotations()
	ok := b.Kind() == TokenLBracket && b.LookAhead(1) == TokenRBracket
	m.Rollback()
	return ok
}

func (r *ReferenceParser) parseWildcard(m Marker, info *TypeInfo) {
	b := r.g.b
	b.Advance()
	if r.g.match(TokenExtends, TokenSuper) {
		b.Advance()
		if r.ParseType(0) == nil {
			b.Error(msgExpectedType)
			info.HasErrors = true
		}
	}
	info.Marker = m.Complete(KindWildcard)
}

// parseClassTypeSegments parses Name<Args>.Name<Args>... into the current
// type node.
func (r *ReferenceParser) parseClassTypeSegments(flags TypeFlags, info *TypeInfo) {
	b := r.g.b
	b.Advance()
	if r.ParseTypeArguments(flags&Diamonds != 0) {
		info.Parameterized = true
	}
	for b.Kind() == TokenDot {
		next := b.LookAhead(1)
		if next == TokenIdent {
			b.Advance()
			b.Advance()
			if r.ParseTypeArguments(flags&Diamonds != 0) {
				info.Parameterized = true
			}
			continue
		}
		if next == TokenAt && r.annotatedSegmentAhead() {
			b.Advance()
			r.g.decls.parseTypeAnnotations()
			b.Advance()
			if r.ParseTypeArguments(flags&Diamonds != 0) {
				info.Parameterized = true
			}
			continue
		}
		if flags&EatLastDot != 0 {
			b.Advance()
			b.Error(msgExpectedIdentifier)
			info.HasErrors = true
		}
		return
	}
}

// annotatedSegmentAhead checks for ". @A Name" after a type segment.
func (r *ReferenceParser) annotatedSegmentAhead() bool {
	b := r.g.b
	m := b.Mark()
	b.Advance()
	r.g.decls.parseTypeAnnotations()
	ok := b.Kind() == TokenIdent
	m.Rollback()
	return ok
}

// ParseTypeArguments parses "<T, U>" if the cursor is at '<'. Closing '>'
// tokens arrive one at a time from the lexer, so nested lists close
// naturally.
func (r *ReferenceParser) ParseTypeArguments(diamonds bool) bool {
	b := r.g.b
	if b.Kind() != TokenLT {
		return false
	}
	m := b.Mark()
	b.Advance()
	if b.Kind() == TokenGT {
		if !diamonds {
			b.Error(msgExpectedType)
		}
		b.Advance()
		m.Complete(KindTypeArguments)
		return true
	}
	for {
		if r.ParseType(Wildcard) == nil {
			b.Error(msgExpectedType)
			if !r.g.match(TokenComma) {
				break
			}
		}
		if !r.g.optional(TokenComma) {
			break
		}
	}
	r.g.expect(TokenGT)
	m.Complete(KindTypeArguments)
	return true
}

// ParseTypeParameters parses "<T extends A & B, U>" if the cursor is at '<'.
func (r *ReferenceParser) ParseTypeParameters() bool {
	b := r.g.b
	if b.Kind() != TokenLT {
		return false
	}
	m := b.Mark()
	b.Advance()
	for {
		if !r.parseTypeParameter() {
			b.Error(msgExpectedIdentifier)
			break
		}
		if !r.g.optional(TokenComma) {
			break
		}
	}
	r.g.expect(TokenGT)
	m.Complete(KindTypeParameters)
	return true
}

func (r *ReferenceParser) parseTypeParameter() bool {
	b := r.g.b
	m := b.Mark()
	r.g.decls.parseTypeAnnotations()
	if b.Kind() != TokenIdent {
		m.Rollback()
		return false
	}
	b.Advance()
	if r.g.optional(TokenExtends) {
		for {
			if r.ParseType(0) == nil {
				b.Error(msgExpectedType)
				break
			}
			if !r.g.optional(TokenBitAnd) {
				break
			}
		}
	}
	m.Complete(KindTypeParameter)
	return true
}

// ParseJavaCodeReference parses a class or interface reference such as
// a.b.Outer<T>.Inner as used after new, extends, implements and throws.
func (r *ReferenceParser) ParseJavaCodeReference(eatLastDot, typeArgs bool) (CompletedMarker, bool) {
	b := r.g.b
	if b.Kind() != TokenIdent && b.Kind() != TokenAt {
		return CompletedMarker{}, false
	}
	flags := Diamonds
	if eatLastDot {
		flags |= EatLastDot
	}
	if !typeArgs {
		m := b.Mark()
		r.g.decls.parseTypeAnnotations()
		if !r.parseQualifiedNameTokens(eatLastDot) {
			m.Rollback()
			return CompletedMarker{}, false
		}
		return m.Complete(KindType), true
	}
	m := b.Mark()
	r.g.decls.parseTypeAnnotations()
	if b.Kind() != TokenIdent {
		m.Rollback()
		return CompletedMarker{}, false
	}
	info := &TypeInfo{}
	r.parseClassTypeSegments(flags, info)
	return m.Complete(KindType), true
}

// ParseQualifiedName parses a.b.c into a QualifiedName node. With
// eatLastDot a trailing '.' is consumed and reported.
func (r *ReferenceParser) ParseQualifiedName(eatLastDot bool) (CompletedMarker, bool) {
	b := r.g.b
	if b.Kind() != TokenIdent {
		return CompletedMarker{}, false
	}
	m := b.Mark()
	r.parseQualifiedNameTokens(eatLastDot)
	return m.Complete(KindQualifiedName), true
}

func (r *ReferenceParser) parseQualifiedNameTokens(eatLastDot bool) bool {
	b := r.g.b
	if !r.g.optional(TokenIdent) {
		return false
	}
	for b.Kind() == TokenDot {
		if b.LookAhead(1) == TokenIdent {
			b.Advance()
			b.Advance()
			continue
		}
		if eatLastDot {
			b.Advance()
			b.Error(msgExpectedIdentifier)
		}
		break
	}
	return true
}

// parseReferenceList parses comma separated class references, as in
// extends, implements, permits and throws clauses.
func (r *ReferenceParser) parseReferenceList(kind NodeKind) CompletedMarker {
	b := r.g.b
	m := b.Mark()
	b.Advance()
	for {
		if _, ok := r.ParseJavaCodeReference(true, true); !ok {
			b.Error(msgExpectedIdentifier)
			break
		}
		if !r.g.optional(TokenComma) {
			break
		}
	}
	return m.Complete(kind)
}

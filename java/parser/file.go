package parser

// FileParser parses whole compilation units and REPL input.
type FileParser struct {
	g *grammar
}

// Parse parses a compilation unit: package, imports, then type
// declarations or a module. Members that appear outside any type are
// wrapped, together with everything after them, in an implicit class.
func (f *FileParser) Parse() CompletedMarker {
	g := f.g
	b := g.b
	root := b.Mark()

	f.parsePackage()
	f.parseImportList()

	var implicit Marker
	implicitOpen := false
	for !b.EOF() {
		if g.optional(TokenSemicolon) {
			continue
		}
		progress := g.mustProgress()
		switch {
		case f.moduleAhead():
			m := b.Mark()
			g.decls.parseModifierList(modifiersLocal)
			g.modules.Parse(m)
		case b.Kind() == TokenImport:
			m := b.Mark()
			f.parseImport()
			m.CompleteError(msgExpectedDeclaration)
		default:
			decl, ok := g.decls.Parse(ContextFile)
			if !ok {
				g.errorUntil(f.topLevelStart, msgExpectedDeclaration)
				break
			}
			if !implicitOpen && !isTypeDeclaration(decl.Kind()) && decl.Kind() != KindError {
				implicit = decl.Precede()
				implicitOpen = true
				g.requireFeature(FeatureImplicitClasses, "Implicitly declared classes")
			}
		}
		progress()
	}
	if implicitOpen {
		implicit.Complete(KindImplicitClass)
	}
	return root.Complete(KindCompilationUnit)
}

func isTypeDeclaration(kind NodeKind) bool {
	switch kind {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

func (f *FileParser) topLevelStart() bool {
	b := f.g.b
	return b.Kind() == TokenImport || b.Kind() == TokenPackage || f.moduleAhead() || f.g.decls.memberStart()
}

// moduleAhead looks past annotations for "module" or "open module".
func (f *FileParser) moduleAhead() bool {
	b := f.g.b
	switch {
	case isModuleStart(b) || isOpenModule(b):
		return true
	case b.Kind() != TokenAt:
		return false
	}
	m := b.Mark()
	f.g.decls.parseTypeAnnotations()
	ok := isModuleStart(b) || isOpenModule(b)
	m.Rollback()
	return ok
}

func (f *FileParser) parsePackage() {
	g := f.g
	b := g.b
	if b.Kind() != TokenPackage && !(b.Kind() == TokenAt && f.annotatedPackageAhead()) {
		return
	}
	m := b.Mark()
	g.decls.parseModifierList(modifiersLocal)
	b.Advance()
	if _, ok := g.refs.ParseQualifiedName(true); !ok {
		b.Error(msgExpectedIdentifier)
	}
	g.expectSemicolon()
	m.Complete(KindPackageDecl)
}

func (f *FileParser) annotatedPackageAhead() bool {
	b := f.g.b
	m := b.Mark()
	f.g.decls.parseTypeAnnotations()
	ok := b.Kind() == TokenPackage
	m.Rollback()
	return ok
}

// parseImportList parses consecutive imports; it stops at the first token
// that is neither an import nor a stray ';'.
func (f *FileParser) parseImportList() {
	g := f.g
	b := g.b
	if b.Kind() != TokenImport {
		return
	}
	m := b.Mark()
	for b.Kind() == TokenImport || b.Kind() == TokenSemicolon {
		if g.optional(TokenSemicolon) {
			continue
		}
		f.parseImport()
	}
	m.Complete(KindImportList)
}

func (f *FileParser) parseImport() CompletedMarker {
	g := f.g
	b := g.b
	m := b.Mark()
	if isModuleImport(b) {
		g.requireFeature(FeatureModuleImports, "Module imports")
		b.Advance()
		b.Advance()
		g.modules.parseModuleReference()
		g.expectSemicolon()
		return m.Complete(KindModuleImportDecl)
	}

	b.Advance()
	kind := KindImportDecl
	if g.optional(TokenStatic) {
		kind = KindImportStaticDecl
	}
	if _, ok := g.refs.ParseQualifiedName(false); !ok {
		b.Error(msgExpectedIdentifier)
	} else if b.Kind() == TokenDot {
		b.Advance()
		if !g.optional(TokenStar) {
			b.Error(msgExpectedIdentifier)
		}
	}
	g.expectSemicolon()
	return m.Complete(kind)
}

package parser

// snippetAttempt parses one kind of REPL snippet. It reports false, having
// consumed nothing, when the input does not start such a snippet.
type snippetAttempt func(f *FileParser) bool

var snippetAttempts = []snippetAttempt{
	(*FileParser).replImport,
	(*FileParser).replDeclaration,
	(*FileParser).replStatement,
	(*FileParser).replExpression,
}

// ParseREPL parses a sequence of snippets as typed into an interactive
// shell: imports, declarations, statements and bare expressions.
func (f *FileParser) ParseREPL() CompletedMarker {
	g := f.g
	b := g.b
	root := b.Mark()
	for !b.EOF() {
		if g.optional(TokenSemicolon) {
			continue
		}
		progress := g.mustProgress()
		if !f.parseSnippet() {
			g.errorUntil(func() bool { return false }, msgExpectedStatement)
			break
		}
		progress()
	}
	return root.Complete(KindREPLSession)
}

// parseSnippet keeps the first attempt that parses without errors. When
// every applicable attempt reports errors, the first applicable one is
// parsed again and kept with its errors.
func (f *FileParser) parseSnippet() bool {
	b := f.g.b
	first := -1
	for i, attempt := range snippetAttempts {
		m := b.Mark()
		ok := attempt(f)
		if ok && !b.HasErrorsSince(m) {
			m.Complete(KindREPLSnippet)
			return true
		}
		m.Rollback()
		if ok && first < 0 {
			first = i
		}
	}
	if first < 0 {
		return false
	}
	m := b.Mark()
	snippetAttempts[first](f)
	m.Complete(KindREPLSnippet)
	return true
}

func (f *FileParser) replImport() bool {
	if f.g.b.Kind() != TokenImport {
		return false
	}
	f.parseImport()
	return true
}

func (f *FileParser) replDeclaration() bool {
	_, ok := f.g.decls.Parse(ContextREPL)
	return ok
}

func (f *FileParser) replStatement() bool {
	_, ok := f.g.stmts.Parse()
	return ok
}

func (f *FileParser) replExpression() bool {
	if _, ok := f.g.exprs.Parse(); !ok {
		return false
	}
	f.g.optional(TokenSemicolon)
	return true
}

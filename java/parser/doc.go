// Package parser provides a speculative, error-tolerant parser for Java
// source code.
//
// # Overview
//
// The parser produces a lossless concrete syntax tree: every byte of input,
// whitespace and comments included, ends up in exactly one token leaf, and
// Node.Text of the root reproduces the input. Malformed input never stops
// the parse. Problems are recorded as KindError nodes inside the tree.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Builder   │────▶│    Tree     │
//	│  (bytes)    │     │  (tokens)   │     │  (events)   │     │   (Node)    │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                                               ▲
//	                                               │ Mark / Complete / Rollback
//	                    ┌──────────────────────────┴───────────────────────┐
//	                    │ File  Module  Declaration  Statement  Expression │
//	                    │ Pattern  Reference                               │
//	                    └──────────────────────────────────────────────────┘
//
// The grammar parsers never build nodes directly. They drive a Builder, a
// cursor over the significant tokens that appends start, finish, token and
// error events to a log. A Marker is a checkpoint in that log:
//
//	m := b.Mark()
//	// ... consume tokens ...
//	m.Complete(KindCastExpr)   // becomes a node
//	m.Rollback()               // or: discard everything since Mark
//	m.Drop()                   // or: keep the tokens, drop the node
//
// Rolling back truncates the log, so speculative parses cost nothing to
// undo and never leave stray errors behind. CompletedMarker.Precede wraps an
// already completed node retroactively, which is how binary expressions and
// implicit classes are built.
//
// # Lexing
//
// The lexer never emits '>>', '>>>', '>=', '>>=' or '>>>='. Each '>' is its
// own token so nested type arguments close naturally; the expression parser
// merges adjacent '>' tokens back into shift and comparison operators.
// Contextual keywords such as var, record, sealed, permits, when, yield and
// the module words are plain identifiers recognised by small predicates.
//
// # Error Recovery
//
// Errors come in two shapes:
//
//   - a zero-width error where an expected token is missing, as in
//     "int x = ;" which reports "Expression expected" right after '='
//   - an error node wrapping a run of unexpected tokens, ending at a token
//     that can start the next statement or member
//
// Class bodies, blocks and switch bodies are brace-matched up front, so
// recovery inside one never escapes into the enclosing declaration.
// Every loop consumes at least one token per iteration, so the parse
// terminates on any input.
//
// # Language Levels
//
// Syntax added after Java 8 is gated by a Features oracle. Gated syntax is
// still parsed; when the feature is unavailable a zero-width error says so:
//
//	p := parser.ParseCompilationUnit(r, parser.WithLanguageLevel(11))
//
// # Entry Points
//
//	ParseCompilationUnit(r, opts...)  // a .java file
//	ParseREPL(r, opts...)             // snippets as typed into a shell
//	ParseExpression(r, opts...)       // one expression
//	ParseStatement(r, opts...)        // one statement
//	ParseType(r, opts...)             // one type
//
// Each returns a *Parser. Finish returns the tree; IsComplete reports
// whether the input ended inside an unfinished construct, for REPL
// continuation prompts.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Create separate
// instances for concurrent parsing of different files.
//
// # Example Usage
//
//	p := parser.ParseCompilationUnit(strings.NewReader(src), parser.WithFile("Main.java"))
//	tree := p.Finish()
//	for _, e := range tree.Errors() {
//	    fmt.Println(e.Span.Start, e.Error.Message)
//	}
package parser

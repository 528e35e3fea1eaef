package codebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jsyn/java/parser"
)

type published struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func newTestServer(t *testing.T) (*LSPServer, *[]published) {
	t.Helper()
	ls := NewLSPServer(newFs(t, nil), nil, "test")
	root := "/proj"
	result, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)
	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "jsyn", init.ServerInfo.Name)
	assert.NotNil(t, init.Capabilities.HoverProvider)
	assert.NotNil(t, init.Capabilities.DocumentSymbolProvider)

	var sent []published
	ls.notify = func(method string, params any) {
		sent = append(sent, published{method, params.(protocol.PublishDiagnosticsParams)})
	}
	return ls, &sent
}

func open(t *testing.T, ls *LSPServer, uri, text string) {
	t.Helper()
	require.NoError(t, ls.textDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Version: 1, Text: text},
	}))
}

func TestPublishDiagnostics(t *testing.T) {
	ls, sent := newTestServer(t)
	open(t, ls, "file:///proj/A.java", brokenSource)

	require.Len(t, *sent, 1)
	p := (*sent)[0]
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, p.method)
	assert.Equal(t, "file:///proj/A.java", p.params.URI)
	require.NotEmpty(t, p.params.Diagnostics)
	d := p.params.Diagnostics[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	assert.NotEmpty(t, d.Message)
	assert.True(t, ls.isOpen("/proj/A.java"))

	require.NoError(t, ls.textDocumentDidChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///proj/A.java"}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "class A { int x = 1; }"}},
	}))
	require.Len(t, *sent, 2)
	assert.Empty(t, (*sent)[1].params.Diagnostics)
	assert.NotNil(t, (*sent)[1].params.Diagnostics)

	require.NoError(t, ls.textDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///proj/A.java"},
	}))
	assert.False(t, ls.isOpen("/proj/A.java"))
}

func TestDidSave(t *testing.T) {
	ls, sent := newTestServer(t)
	text := brokenSource
	require.NoError(t, ls.textDocumentDidSave(&glsp.Context{}, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///proj/A.java"},
		Text:         &text,
	}))
	require.Len(t, *sent, 1)
	assert.NotEmpty(t, (*sent)[0].params.Diagnostics)
}

func TestDocumentSymbol(t *testing.T) {
	ls, _ := newTestServer(t)
	open(t, ls, "file:///proj/Point.java", pointSource)

	result, err := ls.textDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///proj/Point.java"},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Point", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindClass, symbols[0].Kind)
	assert.Equal(t, protocol.Position{Line: 3, Character: 13}, symbols[0].SelectionRange.Start)
	require.Len(t, symbols[0].Children, 2)
	assert.Equal(t, protocol.SymbolKindField, symbols[0].Children[0].Kind)
	assert.Equal(t, protocol.SymbolKindMethod, symbols[0].Children[1].Kind)
}

func TestHoverRequest(t *testing.T) {
	ls, _ := newTestServer(t)
	open(t, ls, "file:///proj/Point.java", pointSource)

	hover, err := ls.textDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///proj/Point.java"},
			Position:     protocol.Position{Line: 7, Character: 10},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(t, content.Value, "void move(int dx)")
	assert.Contains(t, content.Value, "Moves the point by dx.")

	hover, err = ls.textDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///proj/Other.java"},
		},
	})
	assert.NoError(t, err)
	assert.Nil(t, hover)
}

func TestPositionConversion(t *testing.T) {
	content := []byte("ab\nxé z\n😀y")

	z := parser.Position{Offset: 7, Line: 2, Column: 5}
	assert.Equal(t, protocol.Position{Line: 1, Character: 3}, toProtocolPosition(content, z))
	line, column := fromProtocolPosition(content, protocol.Position{Line: 1, Character: 3})
	assert.Equal(t, []int{2, 5}, []int{line, column})

	y := parser.Position{Offset: 13, Line: 3, Column: 5}
	assert.Equal(t, protocol.Position{Line: 2, Character: 2}, toProtocolPosition(content, y))
	line, column = fromProtocolPosition(content, protocol.Position{Line: 2, Character: 2})
	assert.Equal(t, []int{3, 5}, []int{line, column})

	line, column = fromProtocolPosition(content, protocol.Position{Line: 0, Character: 99})
	assert.Equal(t, []int{1, 3}, []int{line, column})
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///tmp/My%20Project/A.java")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/My Project/A.java", path)
	assert.Equal(t, "file:///tmp/My%20Project/A.java", pathToURI(path))

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}

func TestSymbolKind(t *testing.T) {
	tests := map[parser.NodeKind]protocol.SymbolKind{
		parser.KindClassDecl:       protocol.SymbolKindClass,
		parser.KindRecordDecl:      protocol.SymbolKindStruct,
		parser.KindEnumConstant:    protocol.SymbolKindEnumMember,
		parser.KindConstructorDecl: protocol.SymbolKindConstructor,
		parser.KindModuleDecl:      protocol.SymbolKindModule,
		parser.KindBlock:           protocol.SymbolKindObject,
	}
	for kind, want := range tests {
		assert.Equal(t, want, symbolKind(kind), kind.String())
	}
}

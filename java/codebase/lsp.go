package codebase

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jsyn/config"
	"github.com/dhamidi/jsyn/diag"
	"github.com/dhamidi/jsyn/java/parser"
)

const lsName = "jsyn"

var lspLog = commonlog.GetLogger("jsyn.lsp")

// PollInterval is how often the language server looks for files changed
// outside the editor.
var PollInterval = 2 * time.Second

type LSPServer struct {
	fs       afero.Fs
	cfg      *config.Config
	codebase *Codebase
	watcher  *Watcher
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
}

func NewLSPServer(fs afero.Fs, cfg *config.Config, version string) *LSPServer {
	ls := &LSPServer{
		fs:      fs,
		cfg:     cfg,
		version: version,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(ls.fs, rootDir, ls.cfg)

	capabilities := ls.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		lspLog.Errorf("initial scan: %s", err)
	}

	ls.watcher = NewWatcher(ls.codebase, PollInterval)
	ls.watcher.Skip = ls.isOpen
	ls.watcher.OnChange = func(path string, removed bool) {
		if removed {
			ls.publish(path, nil)
			return
		}
		if f := ls.codebase.GetFile(path); f != nil {
			ls.publish(path, f)
		}
	}
	ls.watcher.Start(context.Background())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) update(path string, content []byte) {
	f := ls.codebase.UpdateFile(context.Background(), path, content)
	ls.publish(path, f)
}

// publish sends the file's syntax errors to the client. A nil file clears
// them.
func (ls *LSPServer) publish(path string, f *FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	if f != nil {
		diagnostics = toProtocolDiagnostics(f.Content, f.Diagnostics)
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	ls.open[path] = true
	ls.mu.Unlock()
	ls.update(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(path, []byte(whole.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(path, []byte(*params.Text))
		return nil
	}
	if err := ls.codebase.ScanFile(context.Background(), path); err != nil {
		lspLog.Warningf("save %s: %s", path, err)
		return nil
	}
	ls.publish(path, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil || f.AST == nil {
		return nil, nil
	}
	return toDocumentSymbols(f.Content, Outline(f.AST)), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	line, column := fromProtocolPosition(f.Content, params.Position)
	text, span, ok := ls.codebase.Hover(path, line, column)
	if !ok {
		return nil, nil
	}
	r := toProtocolRange(f.Content, span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
		Range: &r,
	}, nil
}

func toProtocolDiagnostics(content []byte, diags []diag.Diagnostic) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    toProtocolRange(content, d.Span),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Key},
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toDocumentSymbols(content []byte, symbols []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		name := s.Name
		if name == "" {
			name = "(anonymous)"
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           name,
			Kind:           symbolKind(s.Kind),
			Range:          toProtocolRange(content, s.Span),
			SelectionRange: toProtocolRange(content, s.NameSpan),
			Children:       toDocumentSymbols(content, s.Children),
		})
	}
	return out
}

func symbolKind(k parser.NodeKind) protocol.SymbolKind {
	switch k {
	case parser.KindClassDecl, parser.KindImplicitClass:
		return protocol.SymbolKindClass
	case parser.KindInterfaceDecl, parser.KindAnnotationDecl:
		return protocol.SymbolKindInterface
	case parser.KindEnumDecl:
		return protocol.SymbolKindEnum
	case parser.KindRecordDecl:
		return protocol.SymbolKindStruct
	case parser.KindEnumConstant:
		return protocol.SymbolKindEnumMember
	case parser.KindFieldDecl:
		return protocol.SymbolKindField
	case parser.KindMethodDecl:
		return protocol.SymbolKindMethod
	case parser.KindConstructorDecl, parser.KindCompactConstructorDecl:
		return protocol.SymbolKindConstructor
	case parser.KindModuleDecl:
		return protocol.SymbolKindModule
	default:
		return protocol.SymbolKindObject
	}
}

func toProtocolRange(content []byte, s parser.Span) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(content, s.Start),
		End:   toProtocolPosition(content, s.End),
	}
}

// toProtocolPosition converts a byte position to a zero-based line and a
// character offset in UTF-16 code units.
func toProtocolPosition(content []byte, p parser.Position) protocol.Position {
	line := p.Line - 1
	if line < 0 {
		line = 0
	}
	end := min(p.Offset, len(content))
	start := max(end-(p.Column-1), 0)
	var units int
	for _, r := range string(content[start:end]) {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

// fromProtocolPosition converts a client position to a 1-based line and
// byte column.
func fromProtocolPosition(content []byte, p protocol.Position) (line, column int) {
	offset := p.IndexIn(string(content))
	lineStart := bytes.LastIndexByte(content[:offset], '\n') + 1
	return int(p.Line) + 1, offset - lineStart + 1
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

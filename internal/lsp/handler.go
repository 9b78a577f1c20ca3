package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"elread/internal/ast"
	"elread/internal/parser"
)

var log = commonlog.GetLogger("elread.lsp")

// Semantic token types reported by the server, in legend order.
var SemanticTokenTypes = []string{
	"function",
	"variable",
	"keyword",
	"number",
	"string",
	"operator",
}

// Semantic token modifiers, as bit positions.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

type document struct {
	text  string
	forms []ast.Expr
}

// Handler implements the language server for Emacs Lisp buffers.
type Handler struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*document
}

func NewHandler() *Handler {
	return &Handler{
		documents: make(map[protocol.DocumentUri]*document),
	}
}

// Initialize advertises full text sync, completion and full-document
// semantic tokens.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("opened %s", uri)

	_, diagnostics := h.update(uri, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.documents, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange applies the changes in order. Full sync sends the
// whole text; ranged changes are applied too in case a client sends them.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	var text string
	if doc, ok := h.documents[uri]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, change)
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	_, diagnostics := h.update(uri, text)
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// TextDocumentCompletion offers the names defined in the document, and the
// argument keywords after "&", that extend the symbol before the cursor.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	h.mu.RLock()
	doc := h.documents[params.TextDocument.URI]
	h.mu.RUnlock()

	items := []protocol.CompletionItem{}
	if doc != nil {
		prefix := symbolPrefix(doc.text, offsetAt(doc.text, params.Position))
		items = completionItems(doc.forms, prefix)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.text, doc.forms)),
	}, nil
}

// getOrLoad returns an open document, reading it from disk when the client
// asks about a file it never opened.
func (h *Handler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.documents[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc, diagnostics := h.update(uri, string(content))
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return doc, nil
}

// update reads text, stores the result and returns it with its diagnostics.
func (h *Handler) update(uri protocol.DocumentUri, text string) (*document, []protocol.Diagnostic) {
	forms, diagnostics := parser.ParseSource(displayName(uri), text)
	doc := &document{text: text, forms: forms}

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	return doc, ConvertDiagnostics(text, diagnostics)
}

func displayName(uri protocol.DocumentUri) string {
	if path, err := uriToPath(uri); err == nil && path != "" {
		return path
	}
	return uri
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

// sendDiagnosticNotification publishes diagnostics, an empty list included
// so that fixed errors disappear from the client.
func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

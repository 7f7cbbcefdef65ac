package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/RubixDev/Roost/pkg/diag"
	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	builtins []string
	content  map[lsp.DocumentURI]string
}

func newServer() *server {
	builtins := eval.NewEvaler().Builtin().Names()
	sort.Strings(builtins)
	return &server{builtins, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("request:", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	// Tokens lexed before an error are still useful.
	tokens, _ := parse.Lex(parse.Source{Name: string(params.TextDocument.URI), Code: content})
	for _, tok := range tokens {
		if tok.From <= idx && idx < tok.To && tok.Kind != parse.EOL {
			r := lspRangeFromRange(content, tok)
			return lsp.Hover{
				Contents: []lsp.MarkedString{{Language: "markdown", Value: s.describe(tok)}},
				Range:    &r,
			}, nil
		}
	}
	return lsp.Hover{}, nil
}

// Describes a token for hover.
func (s *server) describe(tok parse.Token) string {
	switch {
	case tok.Kind == parse.Identifier && s.isBuiltin(tok.Value):
		return "builtin function `" + tok.Value + "`"
	case tok.Kind == parse.Identifier:
		return "identifier `" + tok.Value + "`"
	case tok.Kind == parse.Number:
		return "number `" + tok.Value + "`"
	case tok.Kind == parse.String:
		return "string " + parse.Quote(tok.Value)
	case tok.Kind >= parse.Var && tok.Kind <= parse.Catch:
		return "keyword " + tok.Kind.String()
	default:
		return "operator " + tok.Kind.String()
	}
}

func (s *server) isBuiltin(name string) bool {
	i := sort.SearchStrings(s.builtins, name)
	return i < len(s.builtins) && s.builtins[i] == name
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	begin := identStart(content, dot)
	prefix := content[begin:dot]
	replace := lspRangeFromRange(content, diag.Ranging{From: begin, To: dot})

	items := []lsp.CompletionItem{}
	seen := make(map[string]bool)
	add := func(name string, kind lsp.CompletionItemKind, detail string) {
		if seen[name] || !strings.HasPrefix(name, prefix) {
			return
		}
		seen[name] = true
		items = append(items, lsp.CompletionItem{
			Label:    name,
			Kind:     kind,
			Detail:   detail,
			TextEdit: &lsp.TextEdit{Range: replace, NewText: name},
		})
	}

	for _, decl := range declarations(params.TextDocument.URI, content) {
		add(decl.name, decl.kind, decl.detail)
	}
	for _, name := range s.builtins {
		add(name, lsp.CIKFunction, "builtin function")
	}
	keywords := parse.Keywords()
	sort.Strings(keywords)
	for _, name := range keywords {
		add(name, lsp.CIKKeyword, "keyword")
	}
	return items, nil
}

type declaration struct {
	name   string
	kind   lsp.CompletionItemKind
	detail string
}

// Finds names declared with var, fun and class, in the order they appear.
func declarations(uri lsp.DocumentURI, content string) []declaration {
	tokens, _ := parse.Lex(parse.Source{Name: string(uri), Code: content})
	var decls []declaration
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i+1].Kind != parse.Identifier {
			continue
		}
		name := tokens[i+1].Value
		switch tokens[i].Kind {
		case parse.Var:
			decls = append(decls, declaration{name, lsp.CIKVariable, "variable"})
		case parse.Fun:
			decls = append(decls, declaration{name, lsp.CIKFunction, "function"})
		case parse.Class:
			decls = append(decls, declaration{name, lsp.CIKClass, "class"})
		}
	}
	return decls
}

// Returns the start of the identifier that ends at dot.
func identStart(s string, dot int) int {
	begin := dot
	for begin > 0 && isIdentByte(s[begin-1]) {
		begin--
	}
	return begin
}

func isIdentByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content})
	var source, msg string
	var r diag.Ranger
	switch err := err.(type) {
	case nil:
		return []lsp.Diagnostic{}
	case *parse.LexError:
		source, msg, r = "lex", err.Message, err
	case *parse.ParseError:
		source, msg, r = "parse", err.Message, err
	default:
		logger.Println("unexpected error from parse:", err)
		return []lsp.Diagnostic{}
	}
	return []lsp.Diagnostic{{
		Range:    lspRangeFromRange(content, r),
		Severity: lsp.Error,
		Source:   source,
		Message:  msg,
	}}
}

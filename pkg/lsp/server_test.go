package lsp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/RubixDev/Roost/pkg/testutil"
)

const testURI = lsp.DocumentURI("file:///test.roost")

type client struct {
	ctx   context.Context
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

// Starts a server connected to a client through pipes.
func setup(t *testing.T) *client {
	ctx, cancel := context.WithCancel(context.Background())
	r0, w0 := testutil.MustPipe()
	r1, w1 := testutil.MustPipe()
	serverConn := serve(ctx, transport{r0, w1})

	diags := make(chan lsp.PublishDiagnosticsParams, 10)
	clientHandler := jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		if req.Method == "textDocument/publishDiagnostics" {
			var params lsp.PublishDiagnosticsParams
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				t.Errorf("bad publishDiagnostics params: %v", err)
			}
			diags <- params
		}
		return nil, nil
	})
	clientConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{r1, w0}, jsonrpc2.VSCodeObjectCodec{}),
		clientHandler)

	t.Cleanup(func() {
		clientConn.Close()
		serverConn.Close()
		cancel()
	})
	return &client{ctx, clientConn, diags}
}

func (c *client) call(t *testing.T, method string, params, result any) {
	t.Helper()
	if err := c.conn.Call(c.ctx, method, params, result); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func (c *client) notify(t *testing.T, method string, params any) {
	t.Helper()
	if err := c.conn.Notify(c.ctx, method, params); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func (c *client) open(t *testing.T, content string) {
	t.Helper()
	c.notify(t, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, Text: content}})
}

func (c *client) nextDiags(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-c.diags:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		panic("unreachable")
	}
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	c.call(t, "initialize", lsp.InitializeParams{}, &result)
	caps := result.Capabilities
	if !caps.HoverProvider || caps.CompletionProvider == nil {
		t.Errorf("got capabilities %+v", caps)
	}
	if caps.TextDocumentSync == nil || caps.TextDocumentSync.Options == nil ||
		caps.TextDocumentSync.Options.Change != lsp.TDSKFull {
		t.Errorf("got text document sync %+v", caps.TextDocumentSync)
	}
}

func TestMethodNotFound(t *testing.T) {
	c := setup(t)
	err := c.conn.Call(c.ctx, "nonexistent", nil, nil)
	if rpcErr, ok := err.(*jsonrpc2.Error); !ok || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)
	c.open(t, "var x =")
	want := lsp.PublishDiagnosticsParams{URI: testURI, Diagnostics: []lsp.Diagnostic{{
		Range:    lsp.Range{Start: lsp.Position{Line: 0, Character: 7}, End: lsp.Position{Line: 0, Character: 7}},
		Severity: lsp.Error,
		Source:   "parse",
		Message:  "should be expression",
	}}}
	if diff := cmp.Diff(want, c.nextDiags(t)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	c.notify(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "var x = 'a\n"}},
	})
	got := c.nextDiags(t)
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Source != "lex" {
		t.Errorf("got diagnostics %+v, want one lex error", got.Diagnostics)
	}

	c.notify(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "var x = 1"}},
	})
	if got := c.nextDiags(t); len(got.Diagnostics) != 0 {
		t.Errorf("got diagnostics %+v, want none", got.Diagnostics)
	}
}

func TestCompletion(t *testing.T) {
	c := setup(t)
	c.open(t, "var x = 1\nfun foo() {}\nclass Bar {}\nf")
	c.nextDiags(t)

	var items []lsp.CompletionItem
	c.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 3, Character: 1}}}, &items)

	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	if diff := cmp.Diff([]string{"foo", "false", "for", "fun"}, labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	wantEdit := &lsp.TextEdit{
		Range:   lsp.Range{Start: lsp.Position{Line: 3, Character: 0}, End: lsp.Position{Line: 3, Character: 1}},
		NewText: "foo",
	}
	if len(items) > 0 && (items[0].Kind != lsp.CIKFunction || !cmp.Equal(wantEdit, items[0].TextEdit)) {
		t.Errorf("got first item %+v", items[0])
	}
}

func TestHover(t *testing.T) {
	c := setup(t)
	c.open(t, "println(x)")
	c.nextDiags(t)

	tests := []struct {
		pos  lsp.Position
		want string
	}{
		{lsp.Position{Line: 0, Character: 2}, "builtin function `println`"},
		{lsp.Position{Line: 0, Character: 8}, "identifier `x`"},
		{lsp.Position{Line: 0, Character: 7}, "operator '('"},
	}
	for _, test := range tests {
		var hover lsp.Hover
		c.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     test.pos}, &hover)
		if len(hover.Contents) != 1 || hover.Contents[0].Value != test.want {
			t.Errorf("hover at %v -> %+v, want %q", test.pos, hover.Contents, test.want)
		}
	}
}

func TestPositions(t *testing.T) {
	s := "a\nb\r\n\U0001F600c"
	tests := []struct {
		idx int
		pos lsp.Position
	}{
		{0, lsp.Position{Line: 0, Character: 0}},
		{2, lsp.Position{Line: 1, Character: 0}},
		{3, lsp.Position{Line: 1, Character: 1}},
		{4, lsp.Position{Line: 2, Character: 0}},
		{9, lsp.Position{Line: 2, Character: 2}},
		{10, lsp.Position{Line: 2, Character: 3}},
	}
	for _, test := range tests {
		if got := lspPositionFromIdx(s, test.idx); got != test.pos {
			t.Errorf("lspPositionFromIdx(%d) = %v, want %v", test.idx, got, test.pos)
		}
		if got := lspPositionToIdx(s, test.pos); got != test.idx {
			t.Errorf("lspPositionToIdx(%v) = %d, want %d", test.pos, got, test.idx)
		}
	}
}

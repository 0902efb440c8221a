package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.crush.sh/pkg/testutil"
)

var testURI = lsp.DocumentURI("file:///foo")

type clientFixture struct {
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

// Connects a client to a new server over an in-memory pipe.
func setup(t *testing.T) *clientFixture {
	s, err := newServer()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	a, b := net.Pipe()
	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(a, jsonrpc2.VSCodeObjectCodec{}), handler(s))
	f := &clientFixture{diags: make(chan lsp.PublishDiagnosticsParams, 10)}
	f.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(b, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(f.handle))
	t.Cleanup(func() {
		f.conn.Close()
		serverConn.Close()
	})
	return f
}

func (f *clientFixture) handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if req.Method == "textDocument/publishDiagnostics" {
		var params lsp.PublishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		f.diags <- params
	}
	return nil, nil
}

func (f *clientFixture) call(t *testing.T, method string, params, result any) {
	t.Helper()
	if err := f.conn.Call(context.Background(), method, params, result); err != nil {
		t.Fatalf("%s -> %v", method, err)
	}
}

func (f *clientFixture) open(t *testing.T, content string) {
	t.Helper()
	f.call(t, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: testURI, Text: content}}, nil)
}

func (f *clientFixture) nextDiags(t *testing.T) []lsp.Diagnostic {
	t.Helper()
	select {
	case params := <-f.diags:
		if params.URI != testURI {
			t.Errorf("diagnostics for %v, want %v", params.URI, testURI)
		}
		return params.Diagnostics
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("timed out waiting for diagnostics")
		return nil
	}
}

func TestInitialize(t *testing.T) {
	f := setup(t)
	var result lsp.InitializeResult
	f.call(t, "initialize", lsp.InitializeParams{}, &result)
	caps := result.Capabilities
	if caps.CompletionProvider == nil || !caps.HoverProvider {
		t.Errorf("capabilities do not include completion and hover: %+v", caps)
	}
}

func TestUnknownMethod(t *testing.T) {
	f := setup(t)
	err := f.conn.Call(context.Background(), "nope", struct{}{}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestDiagnostics(t *testing.T) {
	f := setup(t)

	f.open(t, "echo a | uniq")
	if diags := f.nextDiags(t); len(diags) != 0 {
		t.Errorf("diagnostics for valid code: %v", diags)
	}

	f.call(t, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "echo\necho ["}},
	}, nil)
	diags := f.nextDiags(t)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if d := diags[0]; d.Severity != lsp.Error || d.Source != "parse" ||
		d.Range.Start != (lsp.Position{Line: 1, Character: 6}) {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestDiagnostics_UnknownCommand(t *testing.T) {
	f := setup(t)

	f.open(t, "let f=`{ echo }\nf; nope a | echo {stream/nope}")
	want := []lsp.Diagnostic{
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 3},
				End:   lsp.Position{Line: 1, Character: 7}},
			Severity: lsp.Warning, Source: "crush", Message: "unknown command: nope",
		},
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 18},
				End:   lsp.Position{Line: 1, Character: 29}},
			Severity: lsp.Warning, Source: "crush", Message: "unknown command: stream/nope",
		},
	}
	if diff := cmp.Diff(want, f.nextDiags(t)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestCompletion(t *testing.T) {
	f := setup(t)
	f.open(t, "ec\nstream/un\necho $tr")
	f.nextDiags(t)

	complete := func(line, char int) []lsp.CompletionItem {
		var items []lsp.CompletionItem
		f.call(t, "textDocument/completion", lsp.CompletionParams{
			TextDocumentPositionParams: lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
				Position:     lsp.Position{Line: line, Character: char}}}, &items)
		return items
	}
	edit := func(line, from, to int, text string) *lsp.TextEdit {
		return &lsp.TextEdit{
			Range: lsp.Range{
				Start: lsp.Position{Line: line, Character: from},
				End:   lsp.Position{Line: line, Character: to}},
			NewText: text}
	}

	want := []lsp.CompletionItem{
		{Label: "echo", Kind: lsp.CIKFunction, TextEdit: edit(0, 0, 2, "echo")}}
	if diff := cmp.Diff(want, complete(0, 2)); diff != "" {
		t.Errorf("command completion (-want +got):\n%s", diff)
	}

	want = []lsp.CompletionItem{
		{Label: "uniq", Kind: lsp.CIKFunction, TextEdit: edit(1, 7, 9, "uniq")}}
	if diff := cmp.Diff(want, complete(1, 9)); diff != "" {
		t.Errorf("namespace completion (-want +got):\n%s", diff)
	}

	want = []lsp.CompletionItem{
		{Label: "true", Kind: lsp.CIKVariable, TextEdit: edit(2, 6, 8, "true")}}
	if diff := cmp.Diff(want, complete(2, 8)); diff != "" {
		t.Errorf("variable completion (-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	f := setup(t)
	f.open(t, "stream/seq 3 | uniq")
	f.nextDiags(t)

	hover := func(char int) lsp.Hover {
		var h lsp.Hover
		f.call(t, "textDocument/hover", lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 0, Character: char}}, &h)
		return h
	}

	h := hover(16)
	if len(h.Contents) != 1 || h.Contents[0].Value != "<builtin stream/uniq>" {
		t.Errorf("hover contents %v, want the builtin", h.Contents)
	}
	if h := hover(11); len(h.Contents) != 0 {
		t.Errorf("hover over an argument shows %v", h.Contents)
	}
}

func TestDidClose(t *testing.T) {
	f := setup(t)
	f.open(t, "echo")
	f.nextDiags(t)
	f.call(t, "textDocument/didClose", lsp.DidCloseTextDocumentParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: testURI}}, nil)

	var items []lsp.CompletionItem
	f.call(t, "textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 0, Character: 4}}}, &items)
	for _, item := range items {
		if item.Label == "echo" && item.TextEdit.Range.End.Character != 0 {
			t.Errorf("closed document is still used for completion")
		}
	}
}

package lsp

import (
	"context"
	"encoding/json"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.crush.sh/pkg/diag"
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/vals"
	"src.crush.sh/pkg/mods"
	"src.crush.sh/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	evaler  *eval.Evaler
	content map[lsp.DocumentURI]string
}

func newServer() (*server, error) {
	ev := eval.NewEvaler()
	if err := mods.AddTo(ev.Root); err != nil {
		return nil, err
	}
	return &server{ev, make(map[lsp.DocumentURI]string)}, nil
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,
		"exit":                    exit,

		"initialized": noop,
		"shutdown":    noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
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
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"/", "$"}},
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
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(uri, content))
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server only advertises
	// support for that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, s.diagnostics(uri, content))
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

// Shows the value bound to the command name or variable under the cursor.
func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	jobs, err := parse.Parse(parse.Source{Name: string(params.TextDocument.URI), Code: content})
	if err != nil {
		return lsp.Hover{}, nil
	}
	ref, ok := findRef(jobs, lspPositionToIdx(content, params.Position))
	if !ok {
		return lsp.Hover{}, nil
	}
	v, err := s.evaler.Global.GetPath(ref.path)
	if err != nil {
		return lsp.Hover{}, nil
	}
	rg := lspRangeFromRange(content, ref)
	return lsp.Hover{
		Contents: []lsp.MarkedString{lsp.RawMarkedString(vals.Repr(v))},
		Range:    &rg,
	}, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	word, from := wordBefore(content, dot)
	sigil := ""
	if strings.HasPrefix(word, "$") {
		sigil, word, from = "$", word[1:], from+1
	}

	var scope *eval.Scope
	var names []string
	if i := strings.LastIndexByte(word, '/'); i >= 0 {
		ns, err := s.evaler.Global.GetPath(strings.Split(word[:i], "/"))
		if err != nil {
			return []lsp.CompletionItem{}, nil
		}
		var ok bool
		if scope, ok = ns.(*eval.Scope); !ok {
			return []lsp.CompletionItem{}, nil
		}
		names = scope.Names()
		word, from = word[i+1:], from+i+1
	} else {
		scope = s.evaler.Global
		names = scope.VisibleNames()
	}

	lspRange := lspRangeFromRange(content, diag.Ranging{From: from, To: dot})
	items := []lsp.CompletionItem{}
	for _, name := range names {
		if !strings.HasPrefix(name, word) {
			continue
		}
		v, _ := scope.Get(name)
		items = append(items, lsp.CompletionItem{
			Label:    name,
			Kind:     completionKind(v, sigil),
			TextEdit: &lsp.TextEdit{Range: lspRange, NewText: name},
		})
	}
	return items, nil
}

func completionKind(v vals.Value, sigil string) lsp.CompletionItemKind {
	switch v.(type) {
	case *eval.Scope:
		return lsp.CIKModule
	case eval.Command:
		if sigil == "" {
			return lsp.CIKFunction
		}
	}
	return lsp.CIKVariable
}

// Returns the word ending at dot and its start index. A word stops at
// whitespace and at the characters that delimit values.
func wordBefore(s string, dot int) (string, int) {
	from := dot
	for from > 0 && !strings.ContainsRune(" \t\r\n|;{}[]`=", rune(s[from-1])) {
		from--
	}
	return s[from:dot], from
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, diags []lsp.Diagnostic) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags})
	if err != nil {
		logger.Println("publish diagnostics:", err)
	}
}

// Returns the parse error of the content, or if it parses, warnings about
// commands that are neither builtins nor declared with let in the content.
func (s *server) diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	jobs, err := parse.Parse(parse.Source{Name: string(uri), Code: content})
	if err != nil {
		e := parse.GetError(err)
		return []lsp.Diagnostic{{
			Range:    lspRangeFromRange(content, e),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  e.Message,
		}}
	}

	declared := make(map[string]bool)
	walkCalls(jobs, func(c *parse.CallDef) {
		if len(c.Name) == 1 && c.Name[0] == "let" {
			for _, arg := range c.Args {
				declared[arg.Name] = true
			}
		}
	})
	diags := []lsp.Diagnostic{}
	walkCalls(jobs, func(c *parse.CallDef) {
		if declared[c.Name[0]] {
			return
		}
		if _, err := s.evaler.Global.GetPath(c.Name); err != nil {
			diags = append(diags, lsp.Diagnostic{
				Range:    lspRangeFromRange(content, nameRange(c)),
				Severity: lsp.Warning,
				Source:   "crush",
				Message:  "unknown command: " + strings.Join(c.Name, "/"),
			})
		}
	})
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// One UTF-16 unit.
			p.Character++
		default:
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}

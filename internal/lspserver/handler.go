// Package lspserver exposes the constant-propagation analysis over LSP,
// grounded on the teacher's internal/lsp.KansoHandler: a mutex-guarded
// per-document map, glsp method wiring, and the same URI<->path handling.
// Unlike the teacher (which hovers over Kanso source and its AST), this
// handler hovers over a loaded §6 JSON LIR document and the most recent
// constprop.Result computed for it.
package lspserver

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"control/internal/constprop"
	"control/internal/lir"
	"control/internal/loader"
	"control/internal/report"
)

// AnalyzeCommand is the workspace/executeCommand name that runs the
// analysis for a given function and returns the formatter's text output.
const AnalyzeCommand = "control.analyzeFunction"

type document struct {
	content string
	program *lir.Program
	// lastResult and lastFn cache the most recently requested analysis so
	// Hover can answer without re-running executeCommand.
	lastFn     string
	lastResult *constprop.Result
}

// Handler implements the LSP server handlers for control's JSON LIR
// documents.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewHandler() *Handler {
	return &Handler{docs: make(map[string]*document)}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("control LSP Initialize called")

	commands := []string{AnalyzeCommand}
	trueVal := true

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: &trueVal,
				Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: &trueVal,
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: commands,
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("control LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("control LSP Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened document: %s\n", params.TextDocument.URI)
	return h.loadDocument(string(params.TextDocument.URI))
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed document: %s\n", params.TextDocument.URI)
	return h.loadDocument(string(params.TextDocument.URI))
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed document: %s\n", params.TextDocument.URI)
	path, err := uriToPath(string(params.TextDocument.URI))
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, path)
	return nil
}

func (h *Handler) loadDocument(rawURI string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	prog, err := loader.Load(content)
	if err != nil {
		// Malformed documents are stored without a parsed program;
		// AnalyzeCommand then returns an error and Hover returns no hover,
		// instead of crashing the server, since a document may
		// legitimately be mid-edit and not yet parse.
		h.mu.Lock()
		h.docs[path] = &document{content: string(content)}
		h.mu.Unlock()
		return nil
	}

	h.mu.Lock()
	h.docs[path] = &document{content: string(content), program: prog}
	h.mu.Unlock()
	return nil
}

// ExecuteCommand implements workspace/executeCommand for AnalyzeCommand:
// arguments are [uri string, function string]; the result is the
// formatter's text output for that function.
func (h *Handler) ExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != AnalyzeCommand {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 2 {
		return nil, fmt.Errorf("%s expects [uri, function] arguments", AnalyzeCommand)
	}
	rawURI, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: uri argument must be a string", AnalyzeCommand)
	}
	fnName, ok := params.Arguments[1].(string)
	if !ok {
		return nil, fmt.Errorf("%s: function argument must be a string", AnalyzeCommand)
	}

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if !ok || doc.program == nil {
		return nil, fmt.Errorf("document %s is not open or does not parse", rawURI)
	}

	fn, ok := doc.program.Function(fnName)
	if !ok {
		return nil, fmt.Errorf("no function named %q", fnName)
	}
	if err := constprop.ValidateFunction(fn); err != nil {
		return nil, err
	}

	result := constprop.Analyze(doc.program, fn)

	h.mu.Lock()
	doc.lastFn = fnName
	doc.lastResult = result
	h.mu.Unlock()

	return report.Format(result), nil
}

// Hover reports the constant-propagation binding of the identifier at the
// cursor, drawn from the most recently computed result for that document.
// It looks up the word under the cursor as a variable name across every
// block's post-store and reports the first non-Bottom binding found; this
// is a best-effort lookup (the JSON wire format carries no source
// spans), not a precise block-scoped query.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(string(params.TextDocument.URI))
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	var content, lastFn string
	var result *constprop.Result
	if ok {
		content = doc.content
		lastFn = doc.lastFn
		result = doc.lastResult
	}
	h.mu.RUnlock()
	if !ok || result == nil {
		return nil, nil
	}

	word := wordAt(content, params.Position)
	if word == "" {
		return nil, nil
	}

	for _, blockID := range sortedKeys(result.Post) {
		store := result.Post[blockID]
		v := store.Get(word)
		if v.IsBottom() {
			continue
		}
		md := protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: fmt.Sprintf("%s -> %s  (block %s, function %s)", word, v.String(), blockID, lastFn),
		}
		return &protocol.Hover{Contents: md}, nil
	}
	return nil, nil
}

func sortedKeys(m map[string]*constprop.Store) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// wordAt extracts the identifier under a 0-indexed line/character position
// in content, using the same simple whitespace/punctuation splitting
// approach as a plain-text editor's "word under cursor".
func wordAt(content string, pos protocol.Position) string {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	if int(pos.Character) > len(line) {
		return ""
	}
	isWordChar := func(r byte) bool {
		return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	start := int(pos.Character)
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	end := int(pos.Character)
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	return line[start:end]
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 2 && path[2] == ':' {
		path = path[1:]
	}
	return path, nil
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

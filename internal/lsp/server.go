// Package lsp hosts the outline engine behind a JSON-RPC language server.
// It owns the transport and serialization; all symbol semantics live in
// the outline package.
package lsp

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/codemapper/rubyoutline/internal/docstore"
)

const serverName = "rubyoutline"

// Server handles LSP requests over a single client connection.
type Server struct {
	store  *docstore.Store
	logger *logrus.Logger

	// sessionID tags log lines for this connection.
	sessionID string

	mu       sync.Mutex
	shutdown bool
}

// NewServer creates a server backed by the given document store.
func NewServer(store *docstore.Store, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		store:     store,
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// Run serves LSP over stream (typically stdio) until the client disconnects.
func (s *Server) Run(ctx context.Context, stream io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(s.handle),
	)
	defer conn.Close()

	s.logger.WithField("session", s.sessionID).Info("language server started")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-conn.DisconnectNotify():
		s.logger.WithField("session", s.sessionID).Info("client disconnected")
		return nil
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.mu.Lock()
	down := s.shutdown
	s.mu.Unlock()
	if down && req.Method != "exit" {
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}

	switch req.Method {
	case "initialize":
		return s.initialize()

	case "initialized":
		return nil, nil

	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil

	case "exit":
		return nil, conn.Close()

	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.store.Open(
			normalizeURI(string(params.TextDocument.URI)),
			string(params.TextDocument.LanguageID),
			params.TextDocument.Version,
			params.TextDocument.Text,
		)
		return nil, nil

	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		// Full sync: the last change event carries the whole document.
		if len(params.ContentChanges) == 0 {
			return nil, nil
		}
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		docURI := normalizeURI(string(params.TextDocument.URI))
		if err := s.store.Change(docURI, params.TextDocument.Version, text); err != nil {
			s.logger.WithField("session", s.sessionID).WithError(err).Warn("didChange for unopened document")
		}
		return nil, nil

	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.store.Close(normalizeURI(string(params.TextDocument.URI)))
		return nil, nil

	case "textDocument/documentSymbol":
		var params protocol.DocumentSymbolParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		symbols, err := s.store.Symbols(normalizeURI(string(params.TextDocument.URI)))
		if err != nil {
			// The document was closed (or never opened); an empty outline
			// is the only sensible answer.
			s.logger.WithField("session", s.sessionID).WithError(err).Debug("documentSymbol without document")
			return []protocol.DocumentSymbol{}, nil
		}
		return toDocumentSymbols(symbols), nil

	default:
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
	}
}

func (s *Server) initialize() (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DocumentSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name: serverName,
		},
	}, nil
}

func unmarshalParams(req *jsonrpc2.Request, v interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeParseError, Message: err.Error()}
	}
	return nil
}

// normalizeURI canonicalizes the client's document URI so didOpen and
// documentSymbol agree on the store key regardless of escaping.
func normalizeURI(raw string) string {
	if raw == "" {
		return raw
	}
	return string(uri.New(raw))
}

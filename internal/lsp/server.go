package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/core"
	"github.com/funvibe/fxquery/internal/query"
)

// JSON-RPC envelopes
type RequestMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ResponseMessage struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	// Result must be present (even if null) on success.
	Result interface{} `json:"result"`
	Error  *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MaxContentLength bounds a single message body.
const MaxContentLength = 64 << 20

const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

type ServerCapabilities struct {
	HoverProvider      bool `json:"hoverProvider"`
	DefinitionProvider bool `json:"definitionProvider"`
}

// Server answers hover and definition requests from a fixed set of query
// responses over the stdio LSP framing.
type Server struct {
	gs        *core.GlobalState
	responses []*query.Response
	writer    io.Writer
	logger    *zap.Logger

	mu       sync.Mutex // serializes writes
	shutdown bool
}

func NewServer(gs *core.GlobalState, responses []*query.Response, w io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{gs: gs, responses: responses, writer: w, logger: logger}
}

// Serve reads framed messages from r until EOF or an exit notification.
func (s *Server) Serve(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		contentLength := -1
		// headers end at an empty line
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return fmt.Errorf("reading header: %w", err)
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				if contentLength >= 0 {
					break
				}
				continue
			}
			if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
				n, err := strconv.Atoi(v)
				if err != nil {
					return fmt.Errorf("parsing Content-Length: %w", err)
				}
				if n < 0 || n > MaxContentLength {
					return fmt.Errorf("message length %d out of range [0, %d]", n, MaxContentLength)
				}
				contentLength = n
			}
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, content); err != nil {
			return fmt.Errorf("reading content: %w", err)
		}

		exit, err := s.handleMessage(content)
		if err != nil {
			s.logger.Warn("handling message", zap.Error(err))
		}
		if exit {
			return nil
		}
	}
}

func (s *Server) handleMessage(content []byte) (exit bool, err error) {
	var msg RequestMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return false, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	s.logger.Debug("received message", zap.String("method", msg.Method), zap.Any("id", msg.ID))

	if msg.ID == nil {
		// notifications
		if msg.Method != "exit" {
			return false, nil
		}
		if !s.shutdown {
			s.logger.Warn("exit without shutdown")
		}
		return true, nil
	}

	var result interface{}
	switch msg.Method {
	case "initialize":
		result = InitializeResult{Capabilities: ServerCapabilities{HoverProvider: true, DefinitionProvider: true}}
	case "shutdown":
		s.shutdown = true
	case "textDocument/hover":
		result, err = s.withResponse(msg, func(resp *query.Response) (interface{}, error) {
			hover, err := HoverFor(s.gs, resp)
			if hover == nil {
				return nil, err
			}
			return hover, err
		})
	case "textDocument/definition":
		result, err = s.withResponse(msg, func(resp *query.Response) (interface{}, error) {
			return DefinitionFor(s.gs, resp)
		})
	default:
		return false, s.send(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      msg.ID,
			Error:   &Error{Code: codeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", msg.Method)},
		})
	}
	if err != nil {
		return false, s.send(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      msg.ID,
			Error:   &Error{Code: codeInvalidParams, Message: err.Error()},
		})
	}
	return false, s.send(ResponseMessage{Jsonrpc: "2.0", ID: msg.ID, Result: result})
}

// withResponse finds the response under the requested position and applies fn.
// A position with nothing under it yields a null result.
func (s *Server) withResponse(msg RequestMessage, fn func(*query.Response) (interface{}, error)) (interface{}, error) {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	file, ok := s.gs.Files().Lookup(URIToPath(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	offset, err := OffsetOf(s.gs.Files(), file, params.Position)
	if err != nil {
		return nil, err
	}
	resp := ResponseAt(s.responses, file, offset)
	if resp == nil {
		return nil, nil
	}
	return fn(resp)
}

func (s *Server) send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}

// Package server exposes the validation engine to editor collaborators
// over HTTP and WebSocket. Each WebSocket text frame carries a document
// revision; the reply is the validation result for that revision, so an
// editor can decorate issues on every keystroke without re-posting.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/locale"
	"github.com/conneroisu/chordlint/internal/logging"
	"github.com/conneroisu/chordlint/internal/validator"
)

// Request is one validation request: the document text, an optional
// language tag, and optional configuration overrides.
type Request struct {
	Content  string            `json:"content"`
	Language string            `json:"language,omitempty"`
	Config   *validator.Config `json:"config,omitempty"`
}

// Server serves validation over HTTP and WebSocket.
type Server struct {
	cfg    *config.Config
	logger logging.Logger
	http   *http.Server
}

// New creates a server from the application configuration.
func New(cfg *config.Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.WithComponent("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe starts the server and blocks until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info(ctx, "live validation server listening", "addr", s.http.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}

// validate builds a per-request adapter so concurrent requests with
// different languages or overrides never share mutable state.
func (s *Server) validate(req Request) (validator.Result, error) {
	cfg := s.cfg.Validation
	if req.Config != nil {
		cfg = *req.Config
	}

	lang := req.Language
	if lang == "" {
		lang = s.cfg.Language
	}

	adapter := locale.NewAdapter(cfg, locale.WithLogger(s.logger))
	if lang != "" && lang != "en" {
		if err := adapter.SetLanguage(lang); err != nil {
			return validator.Result{}, err
		}
	}

	return adapter.Validate(req.Content), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	result, err := s.validate(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Warn(r.Context(), err, "failed to encode validation result")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Server.AllowedOrigins,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")

		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				s.logger.Debug(ctx, "websocket session ended", "reason", err.Error())
			}

			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			// Bare text frames are treated as raw document content.
			req = Request{Content: string(data)}
		}

		result, err := s.validate(req)
		if err != nil {
			conn.Close(websocket.StatusInvalidFramePayloadData, err.Error())

			return
		}

		reply, err := json.Marshal(result)
		if err != nil {
			s.logger.Warn(ctx, err, "failed to encode validation result")

			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, reply); err != nil {
			return
		}
	}
}

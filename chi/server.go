// Package chi implements the HTTP interface of the support service.
package chi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/cdpsupport"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Library statuses reported by /status.
const (
	StatusReady   = "ready"
	StatusLoading = "loading"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// maxRequestBody bounds the size of an /ask request.
const maxRequestBody = 64 << 10

//go:embed index.html
var indexHTML []byte

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Answer *cdpsupport.Answer `json:"answer"`
}

// StatusResponse is the body returned by GET /status.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Server serves the chat page, the ask and status endpoints, and optionally
// metrics.
type Server struct {
	answerer cdpsupport.Answerer
	library  cdpsupport.DocumentLibrary
	logger   *slog.Logger
	metrics  http.Handler

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server.
func NewServer(answerer cdpsupport.Answerer, library cdpsupport.DocumentLibrary, opts ...Option) *Server {
	s := &Server{
		answerer: answerer,
		library:  library,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Post("/ask", s.handleAsk)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{Status: StatusLoading}
	if s.library.Ready() {
		resp.Status = StatusReady
	}
	if err := s.library.Err(); err != nil {
		resp.Error = errorMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.logger.Warn("invalid ask request", "err", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusOK, AskResponse{Answer: &cdpsupport.Answer{
			Text:   "Invalid request: expected a JSON body with a question field.",
			Source: cdpsupport.SourceError,
		}})
		return
	}

	answer := s.answerer.Answer(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(begin),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorMessage(err error) string {
	var e *cdpsupport.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/mmif"
	"scribe/internal/pipeline"
	"scribe/internal/services"
)

// maxRequestBody bounds the accepted collection payload size.
const maxRequestBody = 64 << 20

// Server is the annotation HTTP API.
type Server struct {
	bind      string
	logger    *slog.Logger
	annotator *pipeline.Annotator
	defaults  metadata.Request
	store     *history.Store

	listener net.Listener
	server   *http.Server
}

// New constructs the API server. store may be nil when history is disabled.
func New(cfg *config.Config, annotator *pipeline.Annotator, store *history.Store, logger *slog.Logger) *Server {
	srv := &Server{
		bind:      strings.TrimSpace(cfg.Paths.APIBind),
		logger:    logging.WithComponent(logger, "api-server"),
		annotator: annotator,
		defaults:  pipeline.RequestDefaults(cfg),
		store:     store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleRoot)
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/history", srv.handleHistory)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Bind returns the configured listen address.
func (s *Server) Bind() string {
	return s.bind
}

// Start begins serving on the configured bind address. Shutdown is triggered
// by context cancellation or an explicit Stop.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, draining in-flight requests briefly.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// handleRoot serves the app metadata on GET and runs annotation on POST,
// matching the conventional wrapper endpoint shape.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleMetadata(w, r)
	case http.MethodPost:
		s.handleAnnotate(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, metadata.Declaration(s.defaults), wantsPretty(r))
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}

	req, err := metadata.ParseRequest(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	collection, err := mmif.Parse(body)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	if err := s.annotator.Annotate(r.Context(), collection, req); err != nil {
		s.logger.Error("annotation request failed", logging.Error(err))
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	var payload []byte
	if wantsPretty(r) {
		payload, err = collection.MarshalIndent()
	} else {
		payload, err = collection.Marshal()
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "serialize collection: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("failed to write response", logging.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, false)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, historyResponse{Records: []historyRecord{}}, wantsPretty(r))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]historyRecord, len(records))
	for i, rec := range records {
		out[i] = historyRecord{
			ID:            rec.ID,
			CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
			MediaID:       rec.MediaID,
			MediaLocation: rec.MediaLocation,
			Model:         rec.Model,
			Task:          rec.Task,
			Language:      rec.Language,
			TimeUnit:      rec.TimeUnit,
			Tokens:        rec.Tokens,
			Frames:        rec.Frames,
			Sentences:     rec.Sentences,
			DurationMS:    rec.Duration.Milliseconds(),
			Status:        rec.Status,
			Error:         rec.Error,
		}
	}
	s.writeJSON(w, http.StatusOK, historyResponse{Records: out}, wantsPretty(r))
}

type historyResponse struct {
	Records []historyRecord `json:"records"`
}

type historyRecord struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	MediaID       string `json:"media_id"`
	MediaLocation string `json:"media_location"`
	Model         string `json:"model"`
	Task          string `json:"task"`
	Language      string `json:"language,omitempty"`
	TimeUnit      string `json:"time_unit"`
	Tokens        int    `json:"tokens"`
	Frames        int    `json:"frames"`
	Sentences     int    `json:"sentences"`
	DurationMS    int64  `json:"duration_ms"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func wantsPretty(r *http.Request) bool {
	value := r.URL.Query().Get("pretty")
	return value == "1" || strings.EqualFold(value, "true")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any, pretty bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message}, false)
}

// Package server exposes pronunciation scoring over HTTP/JSON.
//
//   - POST /v1/score              score a recording pair (pronounce.Request)
//   - POST /v1/phonemes/compare   compare two phoneme strings
//   - POST /v1/text/compare       compare expected and recognized text
//   - GET  /v1/sentences          list practice sentences (?difficulty=)
//   - GET  /healthz               liveness
//   - GET  /metrics               Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	pronounce "github.com/ieee0824/pronounce-go"
	"github.com/ieee0824/pronounce-go/content"
	"github.com/ieee0824/pronounce-go/internal/observe"
	"github.com/ieee0824/pronounce-go/lexicon"
	"github.com/ieee0824/pronounce-go/score"
	"github.com/ieee0824/pronounce-go/sentence"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Scorer is the scoring pipeline. *pronounce.Scorer implements it.
type Scorer interface {
	Score(ctx context.Context, req pronounce.Request) (*pronounce.Result, error)
}

// Server serves the HTTP API.
type Server struct {
	scorer         Scorer
	catalog        *sentence.Catalog
	metrics        *observe.Metrics
	requestTimeout time.Duration
	metricsHandler http.Handler
	log            logrus.FieldLogger
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog sets the catalog served by /v1/sentences.
func WithCatalog(c *sentence.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithMetrics sets the metric instruments used by the request middleware.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithRequestTimeout bounds each scoring request. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithMetricsHandler replaces the /metrics handler.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New creates a Server around scorer.
func New(scorer Scorer, opts ...Option) *Server {
	s := &Server{
		scorer:         scorer,
		catalog:        sentence.Builtin(),
		metricsHandler: promhttp.Handler(),
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	return s
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("POST /v1/phonemes/compare", s.handlePhonemes)
	mux.HandleFunc("POST /v1/text/compare", s.handleText)
	mux.HandleFunc("GET /v1/sentences", s.handleSentences)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", s.metricsHandler)
	return observe.Middleware(s.metrics, s.log)(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req pronounce.Request
	if !decode(w, r, &req) {
		return
	}
	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}
	res, err := s.scorer.Score(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pronounce.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type phonemeRequest struct {
	Expected   string `json:"expected"`
	Recognized string `json:"recognized"`
}

type phonemeResponse struct {
	Score float64       `json:"score"`
	Trace lexicon.Trace `json:"trace"`
}

func (s *Server) handlePhonemes(w http.ResponseWriter, r *http.Request) {
	var req phonemeRequest
	if !decode(w, r, &req) {
		return
	}
	sc, tr := lexicon.ComparePhonemes(lexicon.Standardize(req.Expected), lexicon.Standardize(req.Recognized))
	if tr == nil {
		tr = lexicon.Trace{}
	}
	writeJSON(w, http.StatusOK, phonemeResponse{Score: sc, Trace: tr})
}

type textRequest struct {
	Expected   string `json:"expected"`
	Recognized string `json:"recognized"`
}

type textResponse struct {
	Score   float64  `json:"score"`
	Missing []string `json:"missing"`
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	missing := content.MissingWords(req.Expected, req.Recognized)
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, textResponse{
		Score:   content.Compare(req.Expected, req.Recognized),
		Missing: missing,
	})
}

func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	entries := s.catalog.All()
	if q := r.URL.Query().Get("difficulty"); q != "" {
		d, err := score.ParseDifficulty(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		entries = s.catalog.ByDifficulty(d)
	}
	if entries == nil {
		entries = []sentence.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
	}
}

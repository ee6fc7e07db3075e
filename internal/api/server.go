// Package api exposes the HTTP interface for the alert relay service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadforge/alertrelay/internal/alert"
	"github.com/leadforge/alertrelay/internal/metrics"
	"github.com/leadforge/alertrelay/internal/pipeline"
)

const statusPage = `<h1>Google Alerts Lead Relay</h1>
<p>Status: Running</p>
<p>Endpoint: POST /webhook</p>
`

// dateFormats is tried in order when parsing the inbound email date.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// AlertParser turns an email body into a batch of alert records.
type AlertParser interface {
	Parse(body string) []*alert.Record
}

// BatchProcessor enriches and submits one request's batch.
type BatchProcessor interface {
	Process(ctx context.Context, records []*alert.Record, date time.Time) []pipeline.Result
}

// Server wires HTTP handlers to the parser and pipeline.
type Server struct {
	router    chi.Router
	parser    AlertParser
	processor BatchProcessor
	now       func() time.Time
	log       *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(parser AlertParser, processor BatchProcessor, log *zap.Logger) *Server {
	metrics.Init()
	s := &Server{
		parser:    parser,
		processor: processor,
		now:       time.Now,
		log:       log,
	}

	// No deadline middleware: a slow batch must run to completion and
	// return its full per-alert response.
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoverMiddleware(log))

	r.Get("/", s.home)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/webhook", s.processWebhook)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(statusPage)); err != nil {
		s.log.Error("status page write failed", zap.Error(err))
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type webhookRequest struct {
	BodyHTML  string `json:"body_html"`
	BodyPlain string `json:"body_plain"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
}

type webhookResponse struct {
	Status           string            `json:"status"`
	Processed        int               `json:"processed"`
	SentToSmartSuite int               `json:"sent_to_smartsuite"`
	Results          []pipeline.Result `json:"results"`
}

// processWebhook handles one forwarded alert email end to end.
func (s *Server) processWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveWebhook("error")
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body := req.BodyHTML
	if body == "" {
		body = req.BodyPlain
	}
	if body == "" {
		metrics.ObserveWebhook("error")
		s.writeError(w, http.StatusBadRequest, "no email body provided")
		return
	}

	s.log.Info("webhook received",
		zap.String("subject", req.Subject),
		zap.Int("body_bytes", len(body)),
	)

	records := s.parser.Parse(body)
	metrics.ObserveAlertsExtracted(len(records))

	results := s.processor.Process(r.Context(), records, s.parseDate(req.Date))

	sent := 0
	for _, res := range results {
		if res.Success {
			sent++
		}
	}

	metrics.ObserveWebhook("success")
	s.writeJSON(w, http.StatusOK, webhookResponse{
		Status:           "success",
		Processed:        len(results),
		SentToSmartSuite: sent,
		Results:          results,
	})
}

// parseDate is lenient: an unparseable or absent date defaults to now.
func (s *Server) parseDate(raw string) time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return s.now()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

// recoverMiddleware is the last line of defense: an unexpected panic in
// request handling surfaces as a 500 with the failure text, never a crash.
func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					metrics.ObserveWebhook("panic")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status":  "error",
						"message": fmt.Sprint(rec),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Package server exposes the pronunciation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/songlingo/songlingo/internal/auth"
	"github.com/songlingo/songlingo/internal/config"
	"github.com/songlingo/songlingo/internal/pronunciation"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_server.go -package=mock_server

// ExercisePipeline generates and stores the exercises of one request.
type ExercisePipeline interface {
	Run(ctx context.Context, req pronunciation.ExerciseRequest) (pronunciation.Result, error)
}

// Transcriber transcribes one recorded audio submission.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, mimeType string) (pronunciation.TranscriptionResult, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Config struct {
	AllowedOrigins []string
	MaxAudioBytes  int64
}

// Handler serves the pronunciation API.
type Handler struct {
	cfg         Config
	pipeline    ExercisePipeline
	transcriber Transcriber
	verifier    TokenVerifier
	pinger      Pinger
	validate    *validator.Validate
	trans       ut.Translator
	now         func() time.Time
}

// NewHandler creates a Handler. pinger may be nil.
func NewHandler(cfg Config, pipeline ExercisePipeline, transcriber Transcriber, verifier TokenVerifier, pinger Pinger) (*Handler, error) {
	validate, trans, err := config.NewValidator("json")
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	return &Handler{
		cfg:         cfg,
		pipeline:    pipeline,
		transcriber: transcriber,
		verifier:    verifier,
		pinger:      pinger,
		validate:    validate,
		trans:       trans,
		now:         time.Now,
	}, nil
}

// Routes returns the HTTP handler of every endpoint with CORS applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/pronunciation/exercises", h.requireAuth(http.HandlerFunc(h.CreateExercises)))
	mux.Handle("POST /v1/pronunciation/transcriptions", h.requireAuth(http.HandlerFunc(h.CreateTranscription)))
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return corsMiddleware(logRequests(mux), h.cfg.AllowedOrigins)
}

// Health reports whether the server and its database are reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			h.writeError(w, http.StatusServiceUnavailable, "database is unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

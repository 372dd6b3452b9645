package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/provider"
	"github.com/songlingo/songlingo/internal/song"
)

type errorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Error:     message,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Status:    status,
	})
}

// exerciseErrorStatus maps a pipeline failure to its response status and message.
func exerciseErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, pronunciation.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, provider.ErrUnsupportedLanguage):
		return http.StatusBadRequest, "language is not supported"
	case errors.Is(err, song.ErrNotFound):
		return http.StatusNotFound, "song not found"
	case errors.Is(err, provider.ErrProviderAuthFailure):
		return http.StatusUnauthorized, "an upstream provider rejected its credentials"
	case provider.UpstreamStatus(err) == http.StatusTooManyRequests:
		return http.StatusTooManyRequests, "an upstream provider is rate limiting requests, retry later"
	case errors.Is(err, provider.ErrSchemaViolation):
		return http.StatusInternalServerError, "the generated exercises were not valid"
	case errors.Is(err, pronunciation.ErrPipelineExhausted):
		return http.StatusInternalServerError, "no exercise could be generated"
	}
	return http.StatusInternalServerError, "failed to generate exercises"
}

func transcriptionErrorStatus(err error) (int, string) {
	if errors.Is(err, provider.ErrInvalidAudio) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "failed to transcribe audio"
}

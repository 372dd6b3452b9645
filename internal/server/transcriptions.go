package server

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/songlingo/songlingo/internal/provider"
)

const (
	audioFormField    = "audio"
	defaultAudioType  = "audio/webm"
	multipartOverhead = 64 << 10
)

// CreateTranscription handles POST /v1/pronunciation/transcriptions.
func (h *Handler) CreateTranscription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxAudioBytes+multipartOverhead)
	file, header, err := r.FormFile(audioFormField)
	if err != nil {
		h.writeTranscriptionError(w, fmt.Errorf("read %q form file: %w: %w", audioFormField, err, provider.ErrInvalidAudio))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := h.transcriber.Transcribe(r.Context(), file, audioType(header))
	if err != nil {
		h.writeTranscriptionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeTranscriptionError(w http.ResponseWriter, err error) {
	status, message := transcriptionErrorStatus(err)
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		message = fmt.Sprintf("audio exceeds %d bytes", h.cfg.MaxAudioBytes)
	}
	slog.Default().Warn("failed to transcribe audio", "status", status, "error", err)
	h.writeError(w, status, message)
}

func audioType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		return defaultAudioType
	}
	return contentType
}

// Package provider wraps the external AI providers behind one gateway with a
// fixed timeout, a normalized error taxonomy and latency logging.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/songlingo/songlingo/internal/metrics"
)

//go:generate mockgen -source=gateway.go -destination=../mocks/provider/mock_provider.go -package=mock_provider

// Generator produces structured JSON from a prompt constrained by a JSON schema.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error)
}

// Synthesizer converts text to compressed audio with the given voice.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, mimeType string) (Transcription, error)
}

// Schema is a named JSON schema enforced by the generative model.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Transcription is the speech-to-text result.
type Transcription struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Config holds the gateway settings that do not belong to a single vendor.
type Config struct {
	Timeout       time.Duration
	Voices        map[string]string
	MaxAudioBytes int64
}

// Gateway is the single entry point for outbound provider calls. It never retries.
type Gateway struct {
	timeout       time.Duration
	voices        map[string]string
	maxAudioBytes int64

	generator   Generator
	synthesizer Synthesizer
	transcriber Transcriber
}

func NewGateway(cfg Config, generator Generator, synthesizer Synthesizer, transcriber Transcriber) *Gateway {
	voices := make(map[string]string, len(cfg.Voices))
	for language, voice := range cfg.Voices {
		voices[normalizeLanguage(language)] = voice
	}
	return &Gateway{
		timeout:       cfg.Timeout,
		voices:        voices,
		maxAudioBytes: cfg.MaxAudioBytes,
		generator:     generator,
		synthesizer:   synthesizer,
		transcriber:   transcriber,
	}
}

// MaxAudioBytes is the largest audio payload TranscribeSpeech accepts.
func (g *Gateway) MaxAudioBytes() int64 {
	return g.maxAudioBytes
}

// GenerateExercises asks the generative model for JSON conforming to schema.
func (g *Gateway) GenerateExercises(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	return call(ctx, g, g.generator.Name(), "generate_exercises", func(ctx context.Context) (json.RawMessage, error) {
		raw, err := g.generator.Generate(ctx, prompt, schema)
		if err != nil {
			return nil, err
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("response is not valid JSON: %s: %w", truncate(string(raw), maxErrorBodyBytes), ErrSchemaViolation)
		}
		return raw, nil
	})
}

// VoiceFor resolves the voice for a language from the injected voice table.
func (g *Gateway) VoiceFor(language string) (string, error) {
	voice, ok := g.voices[normalizeLanguage(language)]
	if !ok || voice == "" {
		return "", &Error{
			Kind:      ErrUnsupportedLanguage,
			Provider:  g.synthesizer.Name(),
			Operation: "synthesize_speech",
			Err:       fmt.Errorf("no voice configured for language %q", language),
		}
	}
	return voice, nil
}

// SynthesizeSpeech returns the reference audio for text spoken by voiceID.
func (g *Gateway) SynthesizeSpeech(ctx context.Context, text, voiceID string) ([]byte, error) {
	return call(ctx, g, g.synthesizer.Name(), "synthesize_speech", func(ctx context.Context) ([]byte, error) {
		audio, err := g.synthesizer.Synthesize(ctx, text, voiceID)
		if err != nil {
			return nil, err
		}
		if len(audio) == 0 {
			return nil, fmt.Errorf("empty audio for %q: %w", text, ErrProviderUnavailable)
		}
		return audio, nil
	})
}

// TranscribeSpeech forwards audio to the speech-to-text provider. Empty or
// oversized payloads fail with ErrInvalidAudio without an outbound call.
func (g *Gateway) TranscribeSpeech(ctx context.Context, audio []byte, mimeType string) (Transcription, error) {
	if err := g.checkAudio(audio, mimeType); err != nil {
		return Transcription{}, err
	}
	return call(ctx, g, g.transcriber.Name(), "transcribe_speech", func(ctx context.Context) (Transcription, error) {
		return g.transcriber.Transcribe(ctx, audio, mimeType)
	})
}

func (g *Gateway) checkAudio(audio []byte, mimeType string) error {
	var reason string
	switch {
	case len(audio) == 0:
		reason = "audio payload is empty"
	case g.maxAudioBytes > 0 && int64(len(audio)) > g.maxAudioBytes:
		reason = fmt.Sprintf("audio payload of %d bytes exceeds %d bytes", len(audio), g.maxAudioBytes)
	case !strings.HasPrefix(mimeType, "audio/") && !strings.HasPrefix(mimeType, "video/webm"):
		reason = fmt.Sprintf("unsupported mime type %q", mimeType)
	default:
		return nil
	}
	return &Error{
		Kind:      ErrInvalidAudio,
		Provider:  g.transcriber.Name(),
		Operation: "transcribe_speech",
		Err:       fmt.Errorf("%s", reason),
	}
}

func call[T any](ctx context.Context, g *Gateway, providerName, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := fn(ctx)
	latency := time.Since(start)
	err = Normalize(providerName, operation, err)

	status := kindLabel(err)
	metrics.ObserveProviderCall(providerName, operation, status, latency)
	if err != nil {
		slog.Default().Warn("provider call failed",
			"provider", providerName,
			"operation", operation,
			"latency_ms", latency.Milliseconds(),
			"status", status,
			"upstream_status", UpstreamStatus(err),
			"error", err)
		var zero T
		return zero, err
	}
	slog.Default().Info("provider call",
		"provider", providerName,
		"operation", operation,
		"latency_ms", latency.Milliseconds(),
		"status", status)
	return result, nil
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

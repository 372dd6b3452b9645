package pronunciation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/songlingo/songlingo/internal/metrics"
	"github.com/songlingo/songlingo/internal/storage"
)

const audioContentType = "audio/mpeg"

//go:generate mockgen -source=materializer.go -destination=../mocks/pronunciation/mock_materializer.go -package=mock_pronunciation

// SpeechSynthesizer is the text-to-speech part of the provider gateway.
type SpeechSynthesizer interface {
	VoiceFor(language string) (string, error)
	SynthesizeSpeech(ctx context.Context, text, voiceID string) ([]byte, error)
}

// AudioMaterializer synthesizes reference audio and stores it durably.
type AudioMaterializer struct {
	speech         SpeechSynthesizer
	store          storage.ObjectStore
	uploadAttempts uint
	uploadDelay    time.Duration
	newToken       func() string
}

type MaterializerOption func(*AudioMaterializer)

// WithUploadAttempts bounds the number of uploads tried per exercise.
func WithUploadAttempts(attempts uint) MaterializerOption {
	return func(m *AudioMaterializer) {
		if attempts > 0 {
			m.uploadAttempts = attempts
		}
	}
}

// WithUploadDelay sets the base backoff between upload attempts.
func WithUploadDelay(delay time.Duration) MaterializerOption {
	return func(m *AudioMaterializer) {
		m.uploadDelay = delay
	}
}

// WithTokenSource replaces the uniqueness token used in object names.
func WithTokenSource(newToken func() string) MaterializerOption {
	return func(m *AudioMaterializer) {
		m.newToken = newToken
	}
}

func NewAudioMaterializer(speech SpeechSynthesizer, store storage.ObjectStore, opts ...MaterializerOption) *AudioMaterializer {
	m := &AudioMaterializer{
		speech:         speech,
		store:          store,
		uploadAttempts: 1,
		uploadDelay:    200 * time.Millisecond,
		newToken:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckLanguage fails with provider.ErrUnsupportedLanguage when no voice is
// configured for language.
func (m *AudioMaterializer) CheckLanguage(language string) error {
	_, err := m.speech.VoiceFor(language)
	return err
}

// Materialize synthesizes the reference audio of one exercise and returns its
// public URL. The URL is only returned once the upload has completed.
func (m *AudioMaterializer) Materialize(ctx context.Context, req ExerciseRequest, index int, exercise GeneratedExercise) (string, error) {
	voice, err := m.speech.VoiceFor(req.Language)
	if err != nil {
		return "", fmt.Errorf("speech.VoiceFor > %w", err)
	}
	audio, err := m.speech.SynthesizeSpeech(ctx, exercise.WordOrPhrase, voice)
	if err != nil {
		return "", fmt.Errorf("speech.SynthesizeSpeech > %w", err)
	}

	var audioURL string
	err = retry.Do(
		func() error {
			// A fresh name per attempt so a half-written earlier attempt never collides.
			name := objectName(req.SongID, index, m.newToken())
			url, err := m.store.Upload(ctx, name, audioContentType, audio)
			metrics.RecordUploadAttempt(err == nil)
			if err != nil {
				return err
			}
			audioURL = url
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(m.uploadAttempts),
		retry.Delay(m.uploadDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying reference audio upload",
				"songId", req.SongID,
				"index", index,
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("store.Upload > %w", err)
	}
	return audioURL, nil
}

func objectName(songID string, index int, token string) string {
	return fmt.Sprintf("pronunciation/%s/%d-%s.mp3", songID, index, token)
}

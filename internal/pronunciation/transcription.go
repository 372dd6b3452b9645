package pronunciation

import (
	"context"
	"fmt"
	"io"

	"github.com/songlingo/songlingo/internal/provider"
)

//go:generate mockgen -source=transcription.go -destination=../mocks/pronunciation/mock_transcription.go -package=mock_pronunciation

// SpeechTranscriber is the speech-to-text part of the provider gateway.
type SpeechTranscriber interface {
	TranscribeSpeech(ctx context.Context, audio []byte, mimeType string) (provider.Transcription, error)
}

// TranscriptionService transcribes one learner recording. Scoring happens elsewhere.
type TranscriptionService struct {
	speech   SpeechTranscriber
	maxBytes int64
}

func NewTranscriptionService(speech SpeechTranscriber, maxBytes int64) *TranscriptionService {
	return &TranscriptionService{speech: speech, maxBytes: maxBytes}
}

// Transcribe reads at most maxBytes of audio and returns the transcript verbatim.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio io.Reader, mimeType string) (TranscriptionResult, error) {
	if audio == nil {
		return TranscriptionResult{}, fmt.Errorf("no audio submitted: %w", provider.ErrInvalidAudio)
	}
	data, err := io.ReadAll(io.LimitReader(audio, s.maxBytes+1))
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("read audio: %v: %w", err, provider.ErrInvalidAudio)
	}
	if len(data) == 0 {
		return TranscriptionResult{}, fmt.Errorf("audio is empty: %w", provider.ErrInvalidAudio)
	}
	if int64(len(data)) > s.maxBytes {
		return TranscriptionResult{}, fmt.Errorf("audio exceeds %d bytes: %w", s.maxBytes, provider.ErrInvalidAudio)
	}

	transcription, err := s.speech.TranscribeSpeech(ctx, data, mimeType)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("speech.TranscribeSpeech > %w", err)
	}
	return TranscriptionResult{Text: transcription.Text, Confidence: transcription.Confidence}, nil
}

package pronunciation_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_pronunciation "github.com/songlingo/songlingo/internal/mocks/pronunciation"
	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/provider"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("client disconnected")
}

func TestTranscriptionService_Transcribe(t *testing.T) {
	tests := []struct {
		name      string
		audio     io.Reader
		setupMock func(m *mock_pronunciation.MockSpeechTranscriber)
		want      pronunciation.TranscriptionResult
		wantErr   error
	}{
		{
			name:  "returns the transcript verbatim",
			audio: bytes.NewReader([]byte("webm-bytes")),
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {
				m.EXPECT().TranscribeSpeech(gomock.Any(), []byte("webm-bytes"), "audio/webm").
					Return(provider.Transcription{Text: "te quiero", Confidence: 0.93}, nil)
			},
			want: pronunciation.TranscriptionResult{Text: "te quiero", Confidence: 0.93},
		},
		{
			name:      "empty audio issues no call",
			audio:     bytes.NewReader(nil),
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {},
			wantErr:   provider.ErrInvalidAudio,
		},
		{
			name:      "missing audio issues no call",
			audio:     nil,
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {},
			wantErr:   provider.ErrInvalidAudio,
		},
		{
			name:      "oversized audio issues no call",
			audio:     strings.NewReader(strings.Repeat("x", 33)),
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {},
			wantErr:   provider.ErrInvalidAudio,
		},
		{
			name:      "unreadable audio issues no call",
			audio:     failingReader{},
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {},
			wantErr:   provider.ErrInvalidAudio,
		},
		{
			name:  "provider failure is returned",
			audio: strings.NewReader(strings.Repeat("x", 32)),
			setupMock: func(m *mock_pronunciation.MockSpeechTranscriber) {
				m.EXPECT().TranscribeSpeech(gomock.Any(), gomock.Any(), "audio/webm").
					Return(provider.Transcription{}, provider.ErrProviderUnavailable)
			},
			wantErr: provider.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			speech := mock_pronunciation.NewMockSpeechTranscriber(ctrl)
			tt.setupMock(speech)

			service := pronunciation.NewTranscriptionService(speech, 32)
			got, err := service.Transcribe(context.Background(), tt.audio, "audio/webm")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

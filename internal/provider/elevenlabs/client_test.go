package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songlingo/songlingo/internal/provider"
)

func TestClient_Synthesize(t *testing.T) {
	tests := []struct {
		name              string
		voiceID           string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want       []byte
		wantErr    error
		wantStatus int
	}{
		{
			name:    "returns audio bytes",
			voiceID: "voice-1",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
				assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
				assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))

				var reqBody SpeechRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "amor", reqBody.Text)
				assert.Equal(t, "eleven_multilingual_v2", reqBody.ModelID)

				w.Header().Set("Content-Type", "audio/mpeg")
				_, _ = w.Write([]byte("ID3-mp3-bytes"))
			},
			want: []byte("ID3-mp3-bytes"),
		},
		{
			name:    "forbidden response carries the status",
			voiceID: "voice-1",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"detail":{"status":"invalid_api_key"}}`))
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "empty voice fails before any request",
			voiceID: "",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				t.Error("HTTP request should not be made without a voice")
			},
			wantErr: provider.ErrUnsupportedLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient("el-key", "eleven_multilingual_v2", "mp3_44100_128", server.URL)
			defer func() {
				_ = client.Close()
			}()

			got, err := client.Synthesize(context.Background(), "amor", tt.voiceID)
			if tt.wantStatus != 0 {
				var statusErr *provider.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

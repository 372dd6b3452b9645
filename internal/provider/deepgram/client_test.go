package deepgram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songlingo/songlingo/internal/provider"
)

func TestClient_Transcribe(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want       provider.Transcription
		wantStatus int
	}{
		{
			name: "returns the best alternative",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/listen", r.URL.Path)
				assert.Equal(t, "nova-2", r.URL.Query().Get("model"))
				assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
				assert.Equal(t, "audio/webm", r.Header.Get("Content-Type"))
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, []byte("webm-bytes"), body)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[
					{"transcript":"te quiero","confidence":0.93},
					{"transcript":"te quiere","confidence":0.41}
				]}]}}`))
			},
			want: provider.Transcription{Text: "te quiero", Confidence: 0.93},
		},
		{
			name: "no alternatives is an empty transcript",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
			},
			want: provider.Transcription{},
		},
		{
			name: "server error carries the status",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient("dg-key", "nova-2", server.URL)
			defer func() {
				_ = client.Close()
			}()

			got, err := client.Transcribe(context.Background(), []byte("webm-bytes"), "audio/webm")
			if tt.wantStatus != 0 {
				var statusErr *provider.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

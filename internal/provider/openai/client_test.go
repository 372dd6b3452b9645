package openai

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

func TestClient_Generate(t *testing.T) {
	schema := provider.Schema{
		Name:       "pronunciation_exercises",
		Definition: map[string]any{"type": "object"},
	}

	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want       string
		wantErr    error
		wantStatus int
	}{
		{
			name: "returns message content with the schema enforced",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var reqBody ChatCompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "gpt-4o-mini", reqBody.Model)
				require.Len(t, reqBody.Messages, 2)
				assert.Equal(t, RoleSystem, reqBody.Messages[0].Role)
				assert.Equal(t, "make exercises", reqBody.Messages[1].Content)
				require.NotNil(t, reqBody.ResponseFormat)
				assert.Equal(t, "json_schema", reqBody.ResponseFormat.Type)
				assert.Equal(t, "pronunciation_exercises", reqBody.ResponseFormat.JSONSchema.Name)
				assert.True(t, reqBody.ResponseFormat.JSONSchema.Strict)

				writeJSON(t, w, http.StatusOK, ChatCompletionResponse{
					ID:    "chatcmpl-123",
					Model: "gpt-4o-mini",
					Choices: []Choice{
						{Message: ChoiceMessage{Role: RoleAssistant, Content: `{"exercises":[]}`}, FinishReason: "stop"},
					},
				})
			},
			want: `{"exercises":[]}`,
		},
		{
			name: "unauthorized response carries the status",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "rate limited response carries the status",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached"}}`))
			},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name: "no choices is a schema violation",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, ChatCompletionResponse{ID: "chatcmpl-456"})
			},
			wantErr: provider.ErrSchemaViolation,
		},
		{
			name: "refusal is a schema violation",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, ChatCompletionResponse{
					Choices: []Choice{{Message: ChoiceMessage{Role: RoleAssistant, Refusal: "I cannot help"}}},
				})
			},
			wantErr: provider.ErrSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient("test-key", "gpt-4o-mini", server.URL)
			defer func() {
				_ = client.Close()
			}()

			got, err := client.Generate(context.Background(), "make exercises", schema)
			if tt.wantStatus != 0 {
				var statusErr *provider.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				assert.Equal(t, "openai", statusErr.Provider)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

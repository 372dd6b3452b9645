// Package elevenlabs implements provider.Synthesizer on the ElevenLabs
// text-to-speech REST API.
package elevenlabs

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/songlingo/songlingo/internal/provider"
)

const providerName = "elevenlabs"

type Client struct {
	httpClient   *resty.Client
	model        string
	outputFormat string
}

func NewClient(apiKey, model, outputFormat, baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("xi-api-key", apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "audio/mpeg")

	return &Client{
		httpClient:   client,
		model:        model,
		outputFormat: outputFormat,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Name() string {
	return providerName
}

type SpeechRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize implements provider.Synthesizer. The returned bytes are in the
// configured compressed output format.
func (client *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("voiceID must not be empty: %w", provider.ErrUnsupportedLanguage)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("voiceID", voiceID).
		SetQueryParam("output_format", client.outputFormat).
		SetBody(SpeechRequest{
			Text:          text,
			ModelID:       client.model,
			VoiceSettings: &VoiceSettings{Stability: 0.75, SimilarityBoost: 0.75},
		}).
		Post("/v1/text-to-speech/{voiceID}")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, &provider.StatusError{
			Provider:   providerName,
			StatusCode: response.StatusCode(),
			Body:       response.String(),
		}
	}
	return response.Bytes(), nil
}

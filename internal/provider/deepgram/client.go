// Package deepgram implements provider.Transcriber on the Deepgram
// pre-recorded audio API.
package deepgram

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/songlingo/songlingo/internal/provider"
)

const providerName = "deepgram"

type Client struct {
	httpClient *resty.Client
	model      string
}

func NewClient(apiKey, model, baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Token "+apiKey)

	return &Client{
		httpClient: client,
		model:      model,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) Name() string {
	return providerName
}

type ListenResponse struct {
	Results Results `json:"results"`
}

type Results struct {
	Channels []Channel `json:"channels"`
}

type Channel struct {
	Alternatives     []Alternative `json:"alternatives"`
	DetectedLanguage string        `json:"detected_language,omitempty"`
}

type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Transcribe implements provider.Transcriber.
func (client *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (provider.Transcription, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", mimeType).
		SetQueryParams(map[string]string{
			"model":           client.model,
			"smart_format":    "true",
			"detect_language": "true",
		}).
		SetBody(audio).
		SetResult(&ListenResponse{}).
		Post("/v1/listen")
	if err != nil {
		return provider.Transcription{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return provider.Transcription{}, &provider.StatusError{
			Provider:   providerName,
			StatusCode: response.StatusCode(),
			Body:       response.String(),
		}
	}

	body, _ := response.Result().(*ListenResponse)
	if body == nil || len(body.Results.Channels) == 0 || len(body.Results.Channels[0].Alternatives) == 0 {
		// Silence yields no alternatives; that is an empty transcript, not a failure.
		return provider.Transcription{}, nil
	}
	best := body.Results.Channels[0].Alternatives[0]
	return provider.Transcription{
		Text:       best.Transcript,
		Confidence: best.Confidence,
	}, nil
}

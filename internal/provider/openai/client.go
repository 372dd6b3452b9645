// Package openai implements provider.Generator on the Chat Completions API
// with strict JSON schema output.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"resty.dev/v3"

	"github.com/songlingo/songlingo/internal/provider"
)

const providerName = "openai"

const systemPrompt = `You are a pronunciation coach for language learners who study with songs.
Return ONLY JSON that conforms to the supplied schema. No text outside the JSON.`

type Client struct {
	httpClient *resty.Client
	model      string
}

func NewClient(apiKey, model, baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

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

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Refusal string `json:"refusal,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Generate implements provider.Generator.
func (client *Client) Generate(ctx context.Context, prompt string, schema provider.Schema) (json.RawMessage, error) {
	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		Temperature: 0.7,
		ResponseFormat: &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   schema.Name,
				Strict: true,
				Schema: schema.Definition,
			},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
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

	responseBody, _ := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return nil, fmt.Errorf("empty response body or choices: %s: %w", response.String(), provider.ErrSchemaViolation)
	}

	message := responseBody.Choices[0].Message
	if message.Refusal != "" {
		return nil, fmt.Errorf("model refused: %s: %w", message.Refusal, provider.ErrSchemaViolation)
	}
	if message.Content == "" {
		return nil, fmt.Errorf("empty response content: %s: %w", response.String(), provider.ErrSchemaViolation)
	}
	slog.Default().Debug("openai response content",
		"model", responseBody.Model,
		"finishReason", responseBody.Choices[0].FinishReason,
		"totalTokens", responseBody.Usage.TotalTokens,
	)
	return json.RawMessage(message.Content), nil
}

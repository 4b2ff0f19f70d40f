package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// OpenAIPlatform implements the OpenAI chat completions API
type OpenAIPlatform struct {
	apiKey string
	model  string
	client *resty.Client
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIPlatform creates a new OpenAI platform client
func NewOpenAIPlatform(apiKey, model string) *OpenAIPlatform {
	return &OpenAIPlatform{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(60 * time.Second),
	}
}

func (o *OpenAIPlatform) GetName() string {
	return "openai"
}

func (o *OpenAIPlatform) IsEnabled() bool {
	return o.apiKey != ""
}

func (o *OpenAIPlatform) Ask(ctx context.Context, query string) (string, error) {
	body := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "user", Content: query},
		},
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+o.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("https://api.openai.com/v1/chat/completions")

	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse openai response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("openai API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("openai API returned status %d", resp.StatusCode())
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

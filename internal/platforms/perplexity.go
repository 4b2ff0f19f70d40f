package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// PerplexityPlatform implements the Perplexity chat completions API
type PerplexityPlatform struct {
	apiKey string
	model  string
	client *resty.Client
}

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Choices []struct {
		Message perplexityMessage `json:"message"`
	} `json:"choices"`
}

// NewPerplexityPlatform creates a new Perplexity platform client
func NewPerplexityPlatform(apiKey, model string) *PerplexityPlatform {
	return &PerplexityPlatform{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(60 * time.Second),
	}
}

func (p *PerplexityPlatform) GetName() string {
	return "perplexity"
}

func (p *PerplexityPlatform) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *PerplexityPlatform) Ask(ctx context.Context, query string) (string, error) {
	body := perplexityRequest{
		Model: p.model,
		Messages: []perplexityMessage{
			{Role: "user", Content: query},
		},
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("https://api.perplexity.ai/chat/completions")

	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("perplexity API returned status %d", resp.StatusCode())
	}

	var parsed perplexityResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse perplexity response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("perplexity response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

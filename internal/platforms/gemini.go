package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GeminiPlatform implements the Google Gemini generateContent API
type GeminiPlatform struct {
	apiKey string
	model  string
	client *resty.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiPlatform creates a new Gemini platform client
func NewGeminiPlatform(apiKey, model string) *GeminiPlatform {
	return &GeminiPlatform{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetTimeout(60 * time.Second),
	}
}

func (g *GeminiPlatform) GetName() string {
	return "gemini"
}

func (g *GeminiPlatform) IsEnabled() bool {
	return g.apiKey != ""
}

func (g *GeminiPlatform) Ask(ctx context.Context, query string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: query}}},
		},
	}

	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", g.model)

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		Post(endpoint)

	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gemini API returned status %d", resp.StatusCode())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package platforms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIPlatform_GetName(t *testing.T) {
	platform := NewOpenAIPlatform("api_key", "gpt-4o-mini")
	assert.Equal(t, "openai", platform.GetName())
}

func TestOpenAIPlatform_IsEnabled(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{
			name:     "API key provided",
			apiKey:   "api_key",
			expected: true,
		},
		{
			name:     "No API key",
			apiKey:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := NewOpenAIPlatform(tt.apiKey, "gpt-4o-mini")
			assert.Equal(t, tt.expected, platform.IsEnabled())
		})
	}
}

func TestOpenAIResponse_Parsing(t *testing.T) {
	body := `{"choices":[{"message":{"role":"assistant","content":"Slack is a popular choice."}}]}`

	var parsed openAIResponse
	err := json.Unmarshal([]byte(body), &parsed)

	assert.NoError(t, err)
	assert.Len(t, parsed.Choices, 1)
	assert.Equal(t, "Slack is a popular choice.", parsed.Choices[0].Message.Content)
	assert.Nil(t, parsed.Error)
}

func TestOpenAIResponse_ErrorParsing(t *testing.T) {
	body := `{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`

	var parsed openAIResponse
	err := json.Unmarshal([]byte(body), &parsed)

	assert.NoError(t, err)
	assert.NotNil(t, parsed.Error)
	assert.Equal(t, "Invalid API key", parsed.Error.Message)
}

func TestPerplexityPlatform_GetName(t *testing.T) {
	platform := NewPerplexityPlatform("api_key", "sonar")
	assert.Equal(t, "perplexity", platform.GetName())
}

func TestPerplexityPlatform_IsEnabled(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{
			name:     "API key provided",
			apiKey:   "api_key",
			expected: true,
		},
		{
			name:     "No API key",
			apiKey:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := NewPerplexityPlatform(tt.apiKey, "sonar")
			assert.Equal(t, tt.expected, platform.IsEnabled())
		})
	}
}

func TestGeminiPlatform_GetName(t *testing.T) {
	platform := NewGeminiPlatform("api_key", "gemini-1.5-flash")
	assert.Equal(t, "gemini", platform.GetName())
}

func TestGeminiPlatform_IsEnabled(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{
			name:     "API key provided",
			apiKey:   "api_key",
			expected: true,
		},
		{
			name:     "No API key",
			apiKey:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := NewGeminiPlatform(tt.apiKey, "gemini-1.5-flash")
			assert.Equal(t, tt.expected, platform.IsEnabled())
		})
	}
}

func TestGeminiResponse_Parsing(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"Notion works well for small teams."}]}}]}`

	var parsed geminiResponse
	err := json.Unmarshal([]byte(body), &parsed)

	assert.NoError(t, err)
	assert.Len(t, parsed.Candidates, 1)
	assert.Equal(t, "Notion works well for small teams.", parsed.Candidates[0].Content.Parts[0].Text)
}

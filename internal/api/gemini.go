package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gateway errors surfaced to callers. Provider and network failures are
// wrapped with %w so errors.Is still matches these sentinels.
var (
	ErrProvider          = errors.New("provider error")
	ErrTimeout           = errors.New("gateway timeout")
	ErrMalformedResponse = errors.New("malformed gateway response")
)

const geminiURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// GeminiClient calls the Google Generative Language API over plain HTTP.
type GeminiClient struct {
	apiKey      string
	model       string
	temperature float64
	timeout     time.Duration
	baseURL     string
	client      *http.Client
}

// Gemini API structures
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *apiError         `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiClient creates a Gemini text-generation client.
func NewGeminiClient(apiKey, model string, temperature float64, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		baseURL:     geminiURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends a prompt and returns the model's text completion.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	request := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature: c.temperature,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf(c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("calling Gemini API: %w", ErrTimeout)
		}
		return "", fmt.Errorf("calling Gemini API: %v: %w", err, ErrProvider)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API status %d, body: %s: %w", resp.StatusCode, string(body), ErrProvider)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s: %w", geminiResp.Error.Message, ErrProvider)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates returned: %w", ErrMalformedResponse)
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateJSON sends a prompt that requests structured output and decodes the
// result into out. The model may wrap JSON in a markdown code fence; that is
// stripped here so callers never see raw fenced text.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, out any) error {
	content, err := c.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	content = cleanJSONResponse(content)

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("parsing structured output: %w", ErrMalformedResponse)
	}

	return nil
}

// cleanJSONResponse removes markdown formatting from the response.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")

	return strings.TrimSpace(response)
}

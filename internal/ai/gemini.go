package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel  = "gemini-2.5-flash"
)

var ErrNoAPIKey = errors.New("gemini API key not set")

// Request is a single text-generation call
type Request struct {
	Prompt string
	// StringList constrains the response to a JSON array of strings
	StringList bool
}

// Generator turns a prompt into text. Implementations do not retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiClient calls the Gemini generateContent REST endpoint
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// GeminiOption configures a GeminiClient
type GeminiOption func(*GeminiClient)

// WithBaseURL points the client at another endpoint (tests, proxies)
func WithBaseURL(u string) GeminiOption {
	return func(c *GeminiClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel overrides the default model
func WithModel(m string) GeminiOption {
	return func(c *GeminiClient) {
		if m != "" {
			c.model = m
		}
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(c *GeminiClient) { c.client = hc }
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: geminiBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type  string        `json:"type"`
	Items *geminiSchema `json:"items,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one request. There is no retry; ctx bounds the call.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if req.StringList {
		body.GenerationConfig = &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &geminiSchema{
				Type:  "ARRAY",
				Items: &geminiSchema{Type: "STRING"},
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gErr geminiError
		if json.Unmarshal(respBody, &gErr) == nil && gErr.Error.Message != "" {
			return "", fmt.Errorf("Gemini API error (%d): %s", resp.StatusCode, gErr.Error.Message)
		}
		return "", fmt.Errorf("Gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var gResp geminiResponse
	if err := json.Unmarshal(respBody, &gResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	var b strings.Builder
	if len(gResp.Candidates) > 0 {
		for _, p := range gResp.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}

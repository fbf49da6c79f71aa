// Package enricher attaches AI-generated Russian descriptions to classified
// UI elements using the DeepSeek chat-completions API. Enrichment is
// all-or-nothing per batch: one completion request covers every element, and
// any failure along the way degrades the whole batch to deterministic
// template text instead of propagating the error to the caller's response.
package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hellenic-development/figma-docgen/pkg/extractor"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "deepseek-chat"

	// MaxPromptElements caps how many elements are enumerated in a single
	// completion request to keep the prompt within model input limits.
	// Elements beyond the cap receive the per-element fallback text.
	MaxPromptElements = 200

	temperature = 0.3
	maxTokens   = 2000
)

// Client calls the DeepSeek chat-completions API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a DeepSeek API client with the provided key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetModel overrides the chat model id.
func (c *Client) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}

// enrichment is one per-element entry in the model's JSON array reply.
type enrichment struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Logic       string `json:"logic"`
}

// Enrich populates Description and Logic on every element in place.
//
// One completion request is issued for the whole batch. When the call
// succeeds, each element takes the model's text for its id; elements the
// model skipped get the short per-element template. When the call or the
// reply parsing fails, every element gets the full deterministic fallback
// and the error is returned so the caller can log the degradation — the
// element list is always fully populated on return.
func (c *Client) Enrich(ctx context.Context, elements []extractor.UIElement, frameName string) error {
	if len(elements) == 0 {
		return nil
	}

	content, err := c.complete(ctx, buildPrompt(elements, frameName))
	if err != nil {
		ApplyFallback(elements)
		return fmt.Errorf("completion request: %w", err)
	}

	items, err := parseEnrichments(content)
	if err != nil {
		ApplyFallback(elements)
		return fmt.Errorf("parse model reply: %w", err)
	}

	byID := make(map[int]enrichment, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for i := range elements {
		item := byID[elements[i].ID]
		if item.Description != "" {
			elements[i].Description = item.Description
		} else {
			elements[i].Description = fmt.Sprintf("Элемент %s", elements[i].Type)
		}
		if item.Logic != "" {
			elements[i].Logic = item.Logic
		} else {
			elements[i].Logic = "Стандартное взаимодействие"
		}
	}

	return nil
}

// ApplyFallback fills every element with deterministic template text. This is
// the degraded output used when the model is unavailable or replies garbage.
func ApplyFallback(elements []extractor.UIElement) {
	for i := range elements {
		elements[i].Description = fmt.Sprintf("Элемент %s: %s", elements[i].Type, elements[i].RawName)
		elements[i].Logic = "Базовое взаимодействие с элементом"
	}
}

// buildPrompt enumerates the elements and instructs the model to return a bare
// JSON array of {id, description, logic} triples in Russian.
func buildPrompt(elements []extractor.UIElement, frameName string) string {
	var summary strings.Builder
	for i, e := range elements {
		if i >= MaxPromptElements {
			break
		}
		fmt.Fprintf(&summary, "%d. %s: %s\n", e.ID, e.Type, e.RawName)
	}

	return fmt.Sprintf(`Analyze this UI screen called "%s" with the following elements:

%s
For each element, provide:
1. A brief Russian description (what it is)
2. Its business logic (what happens when user interacts with it)

Return ONLY a JSON array with this exact structure:
[
  {"id": 1, "description": "Описание элемента", "logic": "Логика работы"},
  ...
]

Rules:
- Keep descriptions concise (max 50 chars)
- Keep logic concise (max 80 chars)
- Use Russian language
- Return valid JSON only, no markdown, no extra text`, frameName, summary.String())
}

// chat-completions wire structures, request side.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete issues a single chat-completions request and returns the raw
// content of the first choice.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %s - %s", resp.Status, string(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", err
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// parseEnrichments extracts the first array-bracketed JSON substring from the
// model reply and unmarshals it. Models sometimes wrap the array in prose or
// code fences despite instructions, so everything outside [ ... ] is ignored.
func parseEnrichments(content string) ([]enrichment, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in reply")
	}

	var items []enrichment
	if err := json.Unmarshal([]byte(content[start:end+1]), &items); err != nil {
		return nil, err
	}

	return items, nil
}

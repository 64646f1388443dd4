// Package openai implements llm.Provider for any API speaking the OpenAI
// Chat Completions dialect. DeepSeek and Ollama reuse it with their own
// base URLs.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lectorgo/pkg/llm"
	"lectorgo/pkg/request"
)

// Client implements llm.Provider for any OpenAI-compatible API.
type Client struct {
	rc      *request.Client
	apiKey  string
	baseURL string
	label   string
	history *llm.History
}

// Request follows the standard OpenAI Chat Completions format.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response follows the standard Chat Completions response format.
type Response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewClient creates a client for one OpenAI-compatible endpoint. The key
// may be empty for endpoints that need none (local Ollama).
func NewClient(label, apiKey, baseURL string, history *llm.History, rc *request.Client) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	return &Client{
		rc:      rc,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		label:   label,
		history: history,
	}, nil
}

// Summarize condenses text via the given model.
func (c *Client) Summarize(ctx context.Context, model, text, targetLang string) (string, error) {
	return c.generate(ctx, model, llm.SummarizePrompt(text, targetLang))
}

// Translate renders text into the target language via the given model.
func (c *Client) Translate(ctx context.Context, model, text, targetLang string) (string, error) {
	return c.generate(ctx, model, llm.TranslatePrompt(text, targetLang))
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	req := Request{
		Model: model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	text, err := c.execute(ctx, req)
	if err != nil {
		c.history.Log(c.label, model, prompt, fmt.Sprintf("ERROR: %v", err))
		return "", err
	}
	c.history.Log(c.label, model, prompt, text)
	return text, nil
}

func (c *Client) execute(ctx context.Context, oreq Request) (string, error) {
	body, err := json.Marshal(oreq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	u := c.baseURL + "/chat/completions"
	respBody, err := c.rc.PostWithHeaders(ctx, u, body, headers)
	if err != nil {
		return "", err
	}

	var oresp Response
	if err := json.Unmarshal(respBody, &oresp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if oresp.Error != nil {
		return "", fmt.Errorf("%s api error: %s (%s)", c.label, oresp.Error.Message, oresp.Error.Type)
	}

	if len(oresp.Choices) == 0 {
		return "", fmt.Errorf("api returned no choices")
	}

	content := strings.TrimSpace(oresp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("api returned empty content")
	}
	return content, nil
}

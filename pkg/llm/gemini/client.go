// Package gemini implements llm.Provider for Google Gemini via the genai
// SDK.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"lectorgo/pkg/llm"
	"lectorgo/pkg/tracker"
)

// Client implements llm.Provider for Google Gemini.
type Client struct {
	apiKey  string
	tracker *tracker.Tracker
	history *llm.History

	mu          sync.Mutex
	genaiClient *genai.Client
}

// NewClient creates a new Gemini client. The SDK client is initialized
// lazily on first use so an unused provider costs nothing at startup.
func NewClient(apiKey string, history *llm.History, t *tracker.Tracker) *Client {
	return &Client{apiKey: apiKey, history: history, tracker: t}
}

func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.genaiClient != nil {
		return c.genaiClient, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini client not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	c.genaiClient = client
	return client, nil
}

// Summarize condenses text via the given Gemini model.
func (c *Client) Summarize(ctx context.Context, model, text, targetLang string) (string, error) {
	return c.generate(ctx, model, llm.SummarizePrompt(text, targetLang))
}

// Translate renders text into the target language via the given model.
func (c *Client) Translate(ctx context.Context, model, text, targetLang string) (string, error) {
	return c.generate(ctx, model, llm.TranslatePrompt(text, targetLang))
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	client, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		c.history.Log("gemini", model, prompt, fmt.Sprintf("ERROR: %v", err))
		c.tracker.TrackFailure("gemini")
		c.listModelsOnMismatch(ctx, client, model, err)
		return "", fmt.Errorf("generate text error: %w", err)
	}

	text, err := getResponseText(resp)
	if err != nil {
		c.history.Log("gemini", model, prompt, fmt.Sprintf("EMPTY: %v", err))
		c.tracker.TrackFailure("gemini")
		return "", err
	}

	c.history.Log("gemini", model, prompt, text)
	c.tracker.TrackSuccess("gemini")
	return text, nil
}

// listModelsOnMismatch logs the models the key can actually use when a
// generation call fails with a not-found style error. Purely diagnostic.
func (c *Client) listModelsOnMismatch(ctx context.Context, client *genai.Client, model string, genErr error) {
	msg := strings.ToLower(genErr.Error())
	if !strings.Contains(msg, "not found") && !strings.Contains(msg, "404") {
		return
	}

	iter, err := client.Models.List(ctx, nil)
	if err != nil {
		return
	}
	var available []string
	for {
		m, nextErr := iter.Next(ctx)
		if nextErr == iterator.Done {
			break
		}
		if nextErr != nil {
			break
		}
		if strings.Contains(strings.ToLower(m.Name), "gemini") {
			available = append(available, strings.TrimPrefix(m.Name, "models/"))
		}
	}
	slog.Warn("configured gemini model not available for this key",
		"model", model, "available", strings.Join(available, ", "))
}

func getResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("empty response")
	}
	return sb.String(), nil
}

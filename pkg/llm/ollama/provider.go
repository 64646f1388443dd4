// Package ollama wires the generic OpenAI-compatible client to a local
// Ollama daemon, which exposes the same chat completions dialect under
// /v1 and needs no credentials.
package ollama

import (
	"strings"

	"lectorgo/pkg/llm"
	"lectorgo/pkg/llm/openai"
	"lectorgo/pkg/request"
)

const defaultBaseURL = "http://localhost:11434"

// NewClient creates a new Ollama client. An empty baseURL targets the
// default local daemon.
func NewClient(baseURL string, history *llm.History, rc *request.Client) (*openai.Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return openai.NewClient("ollama", "", baseURL, history, rc)
}

// Package deepseek wires the generic OpenAI-compatible client to the
// DeepSeek endpoint.
package deepseek

import (
	"lectorgo/pkg/llm"
	"lectorgo/pkg/llm/openai"
	"lectorgo/pkg/request"
)

const deepseekBaseURL = "https://api.deepseek.com"

// NewClient creates a new DeepSeek client using the generic OpenAI provider.
func NewClient(apiKey string, history *llm.History, rc *request.Client) (*openai.Client, error) {
	return openai.NewClient("deepseek", apiKey, deepseekBaseURL, history, rc)
}

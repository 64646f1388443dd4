// Package llm defines the interface the summarization providers implement
// and the prompts they share.
package llm

import (
	"context"
)

// Provider defines the interface for interacting with LLM services. The
// model is passed per call because the fallback layer walks a list of
// (provider, model) candidates.
type Provider interface {
	// Summarize condenses text into a short spoken-style summary in the
	// target language.
	Summarize(ctx context.Context, model, text, targetLang string) (string, error)

	// Translate renders text into the target language without condensing.
	Translate(ctx context.Context, model, text, targetLang string) (string, error)
}

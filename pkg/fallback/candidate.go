// Package fallback implements the multi-provider orchestration core: it
// enumerates (provider, model) candidates for a capability, gates them on
// credential presence, attempts them in order and remembers the winner in
// a session-scoped affinity store.
package fallback

import (
	"strings"
)

// Capability names an independent fallback domain. The two capabilities
// never share providers, ordering or affinity state.
type Capability string

// The supported capabilities.
const (
	CapabilitySummarize Capability = "summarize"
	CapabilitySpeak     Capability = "speak"
)

// DefaultModel is the serialized placeholder for providers that are not
// model-parameterized (e.g. a voice-less TTS endpoint).
const DefaultModel = "default"

// Candidate is one (provider, model) pair under consideration for a single
// capability invocation. An empty Model means the provider's implicit
// default. Candidates are constructed per request and never persisted
// individually; only the most recent winner is stored.
type Candidate struct {
	Provider string
	Model    string
}

// String renders the candidate in its serialized "provider:model" form.
func (c Candidate) String() string {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	return c.Provider + ":" + model
}

// ParseCandidate parses the serialized "provider:model" form. Malformed
// input yields ok=false, never an error or panic: a corrupt affinity
// record must only disable the optimization, not crash the caller.
func ParseCandidate(s string) (Candidate, bool) {
	s = strings.TrimSpace(s)
	provider, model, found := strings.Cut(s, ":")
	if !found {
		return Candidate{}, false
	}
	provider = strings.TrimSpace(provider)
	model = strings.TrimSpace(model)
	if provider == "" || model == "" {
		return Candidate{}, false
	}
	if model == DefaultModel {
		model = ""
	}
	return Candidate{Provider: provider, Model: model}, true
}

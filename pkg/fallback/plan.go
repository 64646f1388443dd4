package fallback

import "strings"

// ProviderSpec is the configured shape of one provider within a plan: its
// ordered model (or voice) list, the credential to gate on, and a hint the
// exhaustion error surfaces so the user knows which settings to fix.
// Providers with an empty Models list contribute a single implicit-default
// candidate.
type ProviderSpec struct {
	Name       string
	Models     []string
	Credential string
	NoAuth     bool // provider needs no credential; the gate always passes it
	ConfigHint string
}

// Plan is the immutable per-invocation snapshot of a capability's fallback
// configuration. Build it once from config, then hand it to the executor;
// nothing mutates it afterwards.
type Plan struct {
	Capability Capability
	Providers  []ProviderSpec
}

// provider returns the first spec with the given name. Duplicate names in
// the configured order are tolerated; the first occurrence wins.
func (p Plan) provider(name string) (ProviderSpec, bool) {
	for _, spec := range p.Providers {
		if strings.EqualFold(spec.Name, name) {
			return spec, true
		}
	}
	return ProviderSpec{}, false
}

package fallback

// Enumerate expands the plan into the ordered candidate list for one
// invocation. Without a cached winner the order is simply the configured
// provider order with each provider's models expanded in place. With one,
// the cached candidate is promoted to the front and the remaining
// providers follow in configured order.
//
// Enumeration is pure ordering: credentials are not consulted here, so the
// list is stable whether or not keys are set. A cached candidate whose
// provider no longer appears in the plan is ignored; a cached model that
// dropped out of the provider's list falls back to the provider's first
// configured model, still promoted.
func Enumerate(plan Plan, cached Candidate, haveCached bool) []Candidate {
	var out []Candidate
	seen := make(map[Candidate]struct{})
	seenProvider := make(map[string]struct{})

	add := func(c Candidate) {
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	promoted := ""
	if haveCached {
		if spec, ok := plan.provider(cached.Provider); ok {
			model := cached.Model
			if !modelInSpec(spec, model) {
				model = firstModel(spec)
			}
			add(Candidate{Provider: spec.Name, Model: model})
			promoted = spec.Name
		}
	}

	for _, spec := range plan.Providers {
		if _, dup := seenProvider[spec.Name]; dup {
			continue
		}
		seenProvider[spec.Name] = struct{}{}
		if spec.Name == promoted {
			continue
		}
		if len(spec.Models) == 0 {
			add(Candidate{Provider: spec.Name})
			continue
		}
		for _, model := range spec.Models {
			add(Candidate{Provider: spec.Name, Model: model})
		}
	}
	return out
}

func firstModel(spec ProviderSpec) string {
	if len(spec.Models) == 0 {
		return ""
	}
	return spec.Models[0]
}

func modelInSpec(spec ProviderSpec, model string) bool {
	if len(spec.Models) == 0 {
		return model == ""
	}
	for _, m := range spec.Models {
		if m == model {
			return true
		}
	}
	return false
}

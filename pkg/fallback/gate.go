package fallback

import "strings"

// Placeholder values that ship in example configs. A credential matching
// one of these is treated the same as a missing credential: the provider
// stays in the enumeration but is skipped at execution time.
var placeholderCredentials = map[string]struct{}{
	"":                  {},
	"your_api_key_here": {},
	"changeme":          {},
	"change_me":         {},
	"xxx":               {},
}

// CredentialUsable reports whether the provider's credential looks like a
// real value rather than an unset or template one. It inspects only the
// config snapshot; no network validation happens here, so a wrong key
// still surfaces as a recoverable attempt failure later.
func CredentialUsable(spec ProviderSpec) bool {
	if spec.NoAuth {
		return true
	}
	cred := strings.TrimSpace(spec.Credential)
	if _, bad := placeholderCredentials[strings.ToLower(cred)]; bad {
		return false
	}
	// Template keys like "Your_Gemini_API_Key" survive copy-paste setups.
	if strings.HasPrefix(strings.ToLower(cred), "your_") {
		return false
	}
	return true
}

package fallback

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testPlan() Plan {
	return Plan{
		Capability: CapabilitySummarize,
		Providers: []ProviderSpec{
			{Name: "gemini", Models: []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}, Credential: "real-key", ConfigHint: "GEMINI_API_KEY"},
			{Name: "openai", Models: []string{"gpt-4o-mini"}, Credential: "real-key", ConfigHint: "OPENAI_API_KEY"},
		},
	}
}

type memStore struct {
	cand   Candidate
	have   bool
	writes int
}

func (s *memStore) Read() (Candidate, bool) { return s.cand, s.have }
func (s *memStore) Write(c Candidate)       { s.cand, s.have = c, true; s.writes++ }

func TestParseCandidate(t *testing.T) {
	tests := []struct {
		input string
		want  Candidate
		ok    bool
	}{
		{"gemini:gemini-2.5-flash", Candidate{"gemini", "gemini-2.5-flash"}, true},
		{" openai : gpt-4o-mini \n", Candidate{"openai", "gpt-4o-mini"}, true},
		{"gtranslate:default", Candidate{"gtranslate", ""}, true},
		{"no-delimiter", Candidate{}, false},
		{":model-only", Candidate{}, false},
		{"provider:", Candidate{}, false},
		{"", Candidate{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCandidate(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCandidate(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCandidateRoundTrip(t *testing.T) {
	for _, c := range []Candidate{{"gemini", "gemini-2.5-flash"}, {"gtranslate", ""}} {
		got, ok := ParseCandidate(c.String())
		if !ok || got != c {
			t.Errorf("round trip of %v gave %v, %v", c, got, ok)
		}
	}
}

func TestCredentialUsable(t *testing.T) {
	tests := []struct {
		spec ProviderSpec
		want bool
	}{
		{ProviderSpec{Credential: "sk-abc123"}, true},
		{ProviderSpec{Credential: ""}, false},
		{ProviderSpec{Credential: "  "}, false},
		{ProviderSpec{Credential: "your_api_key_here"}, false},
		{ProviderSpec{Credential: "Your_Gemini_API_Key"}, false},
		{ProviderSpec{Credential: "CHANGEME"}, false},
		{ProviderSpec{Credential: "", NoAuth: true}, true},
	}
	for _, tt := range tests {
		if got := CredentialUsable(tt.spec); got != tt.want {
			t.Errorf("CredentialUsable(%q) = %v, want %v", tt.spec.Credential, got, tt.want)
		}
	}
}

func TestEnumerateNoCache(t *testing.T) {
	got := Enumerate(testPlan(), Candidate{}, false)
	want := []Candidate{
		{"gemini", "gemini-2.5-flash"},
		{"gemini", "gemini-2.5-flash-lite"},
		{"openai", "gpt-4o-mini"},
	}
	assertCandidates(t, got, want)
}

func TestEnumeratePromotesCached(t *testing.T) {
	got := Enumerate(testPlan(), Candidate{"openai", "gpt-4o-mini"}, true)
	want := []Candidate{
		{"openai", "gpt-4o-mini"},
		{"gemini", "gemini-2.5-flash"},
		{"gemini", "gemini-2.5-flash-lite"},
	}
	assertCandidates(t, got, want)
}

func TestEnumerateIgnoresStaleProvider(t *testing.T) {
	got := Enumerate(testPlan(), Candidate{"removed", "old-model"}, true)
	if len(got) != 3 || got[0].Provider != "gemini" {
		t.Errorf("stale cached provider must not change the order, got %v", got)
	}
}

func TestEnumerateStaleModelFallsBackToFirst(t *testing.T) {
	got := Enumerate(testPlan(), Candidate{"openai", "gpt-3.5-turbo"}, true)
	want := []Candidate{
		{"openai", "gpt-4o-mini"},
		{"gemini", "gemini-2.5-flash"},
		{"gemini", "gemini-2.5-flash-lite"},
	}
	assertCandidates(t, got, want)
}

func TestEnumerateModelLessProvider(t *testing.T) {
	plan := Plan{
		Capability: CapabilitySpeak,
		Providers:  []ProviderSpec{{Name: "gtranslate", NoAuth: true}},
	}
	got := Enumerate(plan, Candidate{}, false)
	assertCandidates(t, got, []Candidate{{"gtranslate", ""}})
}

func TestEnumerateDuplicateProviderFirstWins(t *testing.T) {
	plan := Plan{
		Capability: CapabilitySummarize,
		Providers: []ProviderSpec{
			{Name: "gemini", Models: []string{"a"}},
			{Name: "gemini", Models: []string{"b"}},
		},
	}
	got := Enumerate(plan, Candidate{}, false)
	assertCandidates(t, got, []Candidate{{"gemini", "a"}})
}

func assertCandidates(t *testing.T, got, want []Candidate) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d candidates %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExecuteFirstSucceeds(t *testing.T) {
	store := &memStore{}
	exec := NewExecutor(testPlan(), store)

	calls := 0
	result, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		calls++
		return "summary from " + c.String(), nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result != "summary from gemini:gemini-2.5-flash" {
		t.Errorf("unexpected result %v", result)
	}
	if calls != 1 {
		t.Errorf("expected short circuit after first success, got %d calls", calls)
	}
	if store.cand != (Candidate{"gemini", "gemini-2.5-flash"}) {
		t.Errorf("winner not persisted, store has %v", store.cand)
	}
}

func TestExecuteFallsThroughRecoverableFailures(t *testing.T) {
	store := &memStore{}
	exec := NewExecutor(testPlan(), store)

	var tried []string
	result, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		tried = append(tried, c.String())
		if c.Provider == "gemini" {
			return nil, errors.New("429 rate limited")
		}
		return "ok", nil
	})
	if err != nil || result != "ok" {
		t.Fatalf("Execute = %v, %v; want ok, nil", result, err)
	}
	if len(tried) != 3 || tried[2] != "openai:gpt-4o-mini" {
		t.Errorf("unexpected attempt order %v", tried)
	}
	if store.cand != (Candidate{"openai", "gpt-4o-mini"}) {
		t.Errorf("winner not persisted, store has %v", store.cand)
	}
}

func TestExecuteCachedWinnerTriedFirst(t *testing.T) {
	store := &memStore{cand: Candidate{"openai", "gpt-4o-mini"}, have: true}
	exec := NewExecutor(testPlan(), store)

	var first string
	_, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		if first == "" {
			first = c.String()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if first != "openai:gpt-4o-mini" {
		t.Errorf("cached winner must be attempted first, got %q", first)
	}
}

func TestExecuteFatalAborts(t *testing.T) {
	store := &memStore{}
	exec := NewExecutor(testPlan(), store)

	calls := 0
	_, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		calls++
		return nil, Fatalf("output directory does not exist")
	})
	if !IsFatal(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("fatal error must abort the chain, got %d calls", calls)
	}
	if store.writes != 0 {
		t.Error("no winner must be persisted on fatal failure")
	}
}

func TestExecuteExhaustion(t *testing.T) {
	exec := NewExecutor(testPlan(), nil)

	_, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		return nil, errors.New("503 unavailable")
	})
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if len(ex.Failures) != 3 {
		t.Errorf("expected 3 recorded failures, got %d", len(ex.Failures))
	}
	msg := err.Error()
	for _, want := range []string{"gemini:gemini-2.5-flash", "openai:gpt-4o-mini", "503 unavailable", "GEMINI_API_KEY"} {
		if !strings.Contains(msg, want) {
			t.Errorf("exhaustion message missing %q: %s", want, msg)
		}
	}
}

func TestExecuteSkipsUnusableCredentials(t *testing.T) {
	plan := testPlan()
	plan.Providers[0].Credential = "your_api_key_here"
	exec := NewExecutor(plan, &memStore{})

	var tried []string
	_, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		tried = append(tried, c.Provider)
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(tried) != 1 || tried[0] != "openai" {
		t.Errorf("gemini should be skipped on placeholder key, tried %v", tried)
	}
}

func TestExecuteNoneAttempted(t *testing.T) {
	plan := testPlan()
	plan.Providers[0].Credential = ""
	plan.Providers[1].Credential = ""
	exec := NewExecutor(plan, nil)

	_, err := exec.Execute(context.Background(), func(_ context.Context, c Candidate) (any, error) {
		t.Fatal("no attempt should run without credentials")
		return nil, nil
	})
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if !strings.Contains(err.Error(), "none attempted") {
		t.Errorf("message should say nothing was attempted: %s", err)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := NewExecutor(testPlan(), nil)

	_, err := exec.Execute(ctx, func(_ context.Context, c Candidate) (any, error) {
		t.Fatal("attempt must not run with a cancelled context")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

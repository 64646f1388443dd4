package fallback

import (
	"context"
	"log/slog"
)

// Store persists the winning candidate between invocations. Reads and
// writes are both best-effort: a broken store only disables the affinity
// optimization, it never fails an execution.
type Store interface {
	Read() (Candidate, bool)
	Write(Candidate)
}

// nopStore backs executors running without persistence (e.g. tests or
// --reset-cache).
type nopStore struct{}

func (nopStore) Read() (Candidate, bool) { return Candidate{}, false }
func (nopStore) Write(Candidate)         {}

// AttemptFunc performs the capability work for one candidate. A nil error
// short-circuits the chain; an error wrapped with Fatal aborts it; any
// other error lets the chain continue with the next candidate.
type AttemptFunc func(ctx context.Context, c Candidate) (any, error)

// Executor walks the candidate list for one capability. It is cheap to
// construct; build one per capability at startup and reuse it.
type Executor struct {
	plan  Plan
	store Store
}

// NewExecutor builds an executor over the given plan. A nil store disables
// affinity persistence.
func NewExecutor(plan Plan, store Store) *Executor {
	if store == nil {
		store = nopStore{}
	}
	return &Executor{plan: plan, store: store}
}

// Execute tries candidates in enumeration order until one succeeds. The
// winner is written back to the store before returning, so the next
// invocation in the same session starts with it. Candidates whose provider
// fails the credential gate are skipped without counting as failures.
func (e *Executor) Execute(ctx context.Context, attempt AttemptFunc) (any, error) {
	cached, haveCached := e.store.Read()
	candidates := Enumerate(e.plan, cached, haveCached)

	exhausted := &ExhaustedError{Capability: e.plan.Capability}
	hinted := make(map[string]struct{})
	skipped := make(map[string]struct{})
	hint := func(spec ProviderSpec) {
		if spec.ConfigHint == "" {
			return
		}
		if _, done := hinted[spec.ConfigHint]; done {
			return
		}
		hinted[spec.ConfigHint] = struct{}{}
		exhausted.Hints = append(exhausted.Hints, spec.ConfigHint)
	}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spec, ok := e.plan.provider(c.Provider)
		if !ok {
			continue
		}
		if !CredentialUsable(spec) {
			if _, done := skipped[spec.Name]; !done {
				skipped[spec.Name] = struct{}{}
				exhausted.Skipped = append(exhausted.Skipped, spec.Name)
				slog.Debug("skipping provider, no usable credential",
					"capability", e.plan.Capability, "provider", spec.Name)
				hint(spec)
			}
			continue
		}

		slog.Debug("attempting candidate", "capability", e.plan.Capability, "candidate", c.String())
		result, err := attempt(ctx, c)
		if err == nil {
			slog.Info("candidate succeeded", "capability", e.plan.Capability, "candidate", c.String())
			e.store.Write(c)
			return result, nil
		}
		if IsFatal(err) {
			slog.Error("fatal failure, aborting chain",
				"capability", e.plan.Capability, "candidate", c.String(), "error", err)
			return nil, err
		}
		slog.Warn("candidate failed, trying next",
			"capability", e.plan.Capability, "candidate", c.String(), "error", err)
		exhausted.Failures = append(exhausted.Failures, AttemptFailure{Candidate: c, Err: err})
		hint(spec)
	}
	return nil, exhausted
}

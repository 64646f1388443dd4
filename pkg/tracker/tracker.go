// Package tracker collects per-provider request statistics for the
// end-of-run diagnostics output.
package tracker

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Tracker tracks usage statistics per provider.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*ProviderStats
}

// ProviderStats holds metrics for a specific provider.
// Fields are accessed atomically.
type ProviderStats struct {
	Successes int64
	Failures  int64
	Retries   int64
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{
		stats: make(map[string]*ProviderStats),
	}
}

// getStats returns the stats object for a provider, creating it if needed.
func (t *Tracker) getStats(provider string) *ProviderStats {
	t.mu.RLock()
	s, ok := t.stats[provider]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double check
	if s, ok = t.stats[provider]; ok {
		return s
	}
	s = &ProviderStats{}
	t.stats[provider] = s
	return s
}

// TrackSuccess increments the success counter. A nil Tracker discards.
func (t *Tracker) TrackSuccess(provider string) {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.getStats(provider).Successes, 1)
}

func (t *Tracker) TrackFailure(provider string) {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.getStats(provider).Failures, 1)
}

func (t *Tracker) TrackRetry(provider string) {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.getStats(provider).Retries, 1)
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() map[string]ProviderStats {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]ProviderStats)
	for k, v := range t.stats {
		result[k] = ProviderStats{
			Successes: atomic.LoadInt64(&v.Successes),
			Failures:  atomic.LoadInt64(&v.Failures),
			Retries:   atomic.LoadInt64(&v.Retries),
		}
	}
	return result
}

// Summary renders one line per provider in name order, or "" when nothing
// was tracked.
func (t *Tracker) Summary() string {
	snap := t.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		s := snap[name]
		lines = append(lines, fmt.Sprintf("%s: %d ok, %d failed, %d retries", name, s.Successes, s.Failures, s.Retries))
	}
	return strings.Join(lines, "\n")
}

package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the default sliding window for call counting
const DefaultWindow = time.Minute

// Tracker counts API and model calls per service over a sliding window.
// It is safe for concurrent use and is passed explicitly to the components
// that issue calls, so tests can substitute a deterministic instance.
type Tracker struct {
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	calls map[string][]time.Time
}

// Option is a functional option for Tracker configuration
type Option func(*Tracker)

// WithWindow sets the sliding window duration
func WithWindow(window time.Duration) Option {
	return func(t *Tracker) {
		t.window = window
	}
}

// WithClock replaces the time source, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New creates a Tracker with a one-minute sliding window by default
func New(opts ...Option) *Tracker {
	t := &Tracker{
		window: DefaultWindow,
		now:    time.Now,
		calls:  map[string][]time.Time{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LogCall records one call for the given service
func (t *Tracker) LogCall(service string) {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls[service] = append(t.prune(service, now), now)
}

// Count returns the number of calls for the service within the window
func (t *Tracker) Count(service string) int {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls[service] = t.prune(service, now)
	return len(t.calls[service])
}

// Counts returns the per-service call counts within the window
func (t *Tracker) Counts() map[string]int {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int, len(t.calls))
	for service := range t.calls {
		t.calls[service] = t.prune(service, now)
		counts[service] = len(t.calls[service])
	}
	return counts
}

// prune drops timestamps outside the window. Caller must hold mu.
func (t *Tracker) prune(service string, now time.Time) []time.Time {
	kept := t.calls[service][:0]
	for _, ts := range t.calls[service] {
		if now.Sub(ts) < t.window {
			kept = append(kept, ts)
		}
	}
	return kept
}

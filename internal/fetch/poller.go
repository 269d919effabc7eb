// Package fetch provides request-lifecycle state machines for view data:
// a one-shot poller and an offset/limit pager. Both keep the last good
// value across background refresh failures and discard results from
// superseded request generations.
package fetch

import (
	"context"
	"sync"
	"time"
)

// State is the snapshot a view reads from a Poller.
type State[T any] struct {
	Data    *T
	Err     error
	Loading bool
}

// PollerConfig configures a Poller.
type PollerConfig struct {
	PollInterval time.Duration // 0 disables background polling
	Disabled     bool          // no fetches occur while set
}

// Poller wraps a single async producer with first-load/poll semantics:
// Loading is true only until the first result of the current generation
// settles; poll failures keep the last good Data and never surface an error.
type Poller[T any] struct {
	produce func(ctx context.Context) (T, error)
	cfg     PollerConfig

	mu      sync.Mutex
	data    *T
	err     error
	loading bool
	gen     uint64
	cancel  context.CancelFunc

	onChange func(State[T])
}

// NewPoller creates a Poller around the producer. Call Start to begin.
func NewPoller[T any](produce func(ctx context.Context) (T, error), cfg PollerConfig) *Poller[T] {
	return &Poller[T]{
		produce: produce,
		cfg:     cfg,
		loading: true,
	}
}

// OnChange registers a callback invoked after every applied state change.
// Must be set before Start.
func (p *Poller[T]) OnChange(fn func(State[T])) {
	p.onChange = fn
}

// Snapshot returns the current fetch state.
func (p *Poller[T]) Snapshot() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State[T]{Data: p.data, Err: p.err, Loading: p.loading}
}

// Start begins the first fetch and the poll loop. Equivalent to Reset on a
// fresh Poller.
func (p *Poller[T]) Start(ctx context.Context) {
	p.Reset(ctx)
}

// Reset invalidates the current generation: in-flight results are discarded
// on completion, state returns to loading with no data or error, and a new
// first fetch begins. Call it whenever an input the producer closes over
// changes.
func (p *Poller[T]) Reset(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.data = nil
	p.err = nil
	p.loading = true
	if p.cancel != nil {
		p.cancel()
	}
	if p.cfg.Disabled {
		p.cancel = nil
		p.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	go p.run(loopCtx, gen)
}

// Refetch triggers one out-of-band fetch on the current generation without
// re-entering the loading state.
func (p *Poller[T]) Refetch(ctx context.Context) {
	p.mu.Lock()
	if p.cfg.Disabled {
		p.mu.Unlock()
		return
	}
	gen := p.gen
	p.mu.Unlock()

	go p.fetchOnce(ctx, gen)
}

// Stop cancels the poll loop. State keeps its last value.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++ // in-flight results become stale
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller[T]) run(ctx context.Context, gen uint64) {
	p.fetchOnce(ctx, gen)

	if p.cfg.PollInterval <= 0 {
		return
	}

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchOnce(ctx, gen)
		}
	}
}

func (p *Poller[T]) fetchOnce(ctx context.Context, gen uint64) {
	result, err := p.produce(ctx)

	p.mu.Lock()
	if gen != p.gen {
		// A newer generation superseded this request; drop the result.
		p.mu.Unlock()
		return
	}

	first := p.loading
	if err != nil {
		// Only the very first failure of a generation is surfaced; later
		// failures keep the last good data untouched.
		if first {
			p.err = err
		}
	} else {
		p.data = &result
		p.err = nil
	}
	if first {
		p.loading = false
	}
	snap := State[T]{Data: p.data, Err: p.err, Loading: p.loading}
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

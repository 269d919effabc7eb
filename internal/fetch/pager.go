package fetch

import (
	"context"
	"sync"
)

// Page is one offset/limit slice of a listing. Total is set only when the
// backend reports an overall count; otherwise end-of-data is inferred from
// a short page.
type Page[T any] struct {
	Items []T
	Total *int
}

// PageState is the snapshot a view reads from a Pager.
type PageState[T any] struct {
	Items       []T
	Loading     bool
	LoadingMore bool
	HasMore     bool
	Err         error
}

// PagerConfig configures a Pager.
type PagerConfig struct {
	PageSize int  // defaults to 20
	Disabled bool // no fetches occur while set
}

// Pager accumulates pages from an offset/limit producer into an append-only
// item list. Page requests are strictly serialized: while one is in flight,
// further triggers are ignored.
type Pager[T any] struct {
	produce func(ctx context.Context, offset, limit int) (Page[T], error)
	cfg     PagerConfig

	mu          sync.Mutex
	items       []T
	loading     bool
	loadingMore bool
	hasMore     bool
	err         error
	offset      int
	busy        bool
	gen         uint64

	onChange func(PageState[T])
}

// NewPager creates a Pager around the producer. Call Start to load page one.
func NewPager[T any](produce func(ctx context.Context, offset, limit int) (Page[T], error), cfg PagerConfig) *Pager[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	return &Pager[T]{
		produce: produce,
		cfg:     cfg,
		loading: true,
		hasMore: true,
	}
}

// OnChange registers a callback invoked after every applied state change.
// Must be set before Start.
func (p *Pager[T]) OnChange(fn func(PageState[T])) {
	p.onChange = fn
}

// Snapshot returns the current page state. The returned item slice is shared;
// callers must not mutate it.
func (p *Pager[T]) Snapshot() PageState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pager[T]) snapshotLocked() PageState[T] {
	return PageState[T]{
		Items:       p.items,
		Loading:     p.loading,
		LoadingMore: p.loadingMore,
		HasMore:     p.hasMore,
		Err:         p.err,
	}
}

// Start loads the first page. Equivalent to Reset on a fresh Pager.
func (p *Pager[T]) Start(ctx context.Context) {
	p.Reset(ctx)
}

// Reset discards accumulated items, rewinds the offset and reloads page one
// under a new generation. In-flight results from the old generation are
// dropped on completion.
func (p *Pager[T]) Reset(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.items = nil
	p.offset = 0
	p.hasMore = true
	p.err = nil
	p.loading = true
	p.loadingMore = false
	p.busy = false
	if p.cfg.Disabled {
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.mu.Unlock()

	go p.loadPage(ctx, gen, true)
}

// LoadMore requests the next page. It is the sentinel trigger: views call it
// when the list viewport nears its end. No-op while a request is in flight,
// when the listing is exhausted, or before Start.
func (p *Pager[T]) LoadMore(ctx context.Context) {
	p.mu.Lock()
	if p.busy || !p.hasMore || p.cfg.Disabled || p.gen == 0 {
		p.mu.Unlock()
		return
	}
	gen := p.gen
	p.busy = true
	p.loadingMore = true
	snap := p.snapshotLocked()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	go p.loadPage(ctx, gen, false)
}

func (p *Pager[T]) loadPage(ctx context.Context, gen uint64, first bool) {
	p.mu.Lock()
	offset := p.offset
	p.mu.Unlock()

	page, err := p.produce(ctx, offset, p.cfg.PageSize)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}

	if err != nil {
		// First-page failures surface; later-page failures leave the
		// loaded items intact and the caller may trigger LoadMore again.
		if first {
			p.err = err
		}
	} else {
		p.items = append(p.items, page.Items...)
		p.offset = offset + len(page.Items)
		if page.Total != nil {
			p.hasMore = p.offset < *page.Total
		} else {
			p.hasMore = len(page.Items) >= p.cfg.PageSize
		}
		p.err = nil
	}

	if first {
		p.loading = false
	}
	p.loadingMore = false
	p.busy = false
	snap := p.snapshotLocked()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

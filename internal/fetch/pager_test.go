package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// pages produces deterministic items so tests can assert ordering.
func makeItems(offset, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%d", offset+i)
	}
	return out
}

func TestPager_FirstPageFills(t *testing.T) {
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		return Page[string]{Items: makeItems(offset, limit)}, nil
	}, PagerConfig{PageSize: 5})

	pg.Reset(context.Background())

	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	snap := pg.Snapshot()
	if len(snap.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(snap.Items))
	}
	if snap.Items[0] != "item-0" || snap.Items[4] != "item-4" {
		t.Errorf("unexpected items: %v", snap.Items)
	}
	if !snap.HasMore {
		t.Error("full page must keep HasMore true")
	}
	if snap.Err != nil {
		t.Errorf("unexpected error: %v", snap.Err)
	}
}

func TestPager_AccumulatesPages(t *testing.T) {
	const pageSize = 4
	const pages = 3

	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		return Page[string]{Items: makeItems(offset, limit)}, nil
	}, PagerConfig{PageSize: pageSize})

	ctx := context.Background()
	pg.Reset(ctx)
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	for i := 1; i < pages; i++ {
		pg.LoadMore(ctx)
		want := (i + 1) * pageSize
		waitFor(t, func() bool {
			snap := pg.Snapshot()
			return !snap.LoadingMore && len(snap.Items) == want
		}, fmt.Sprintf("page %d", i+1))
	}

	snap := pg.Snapshot()
	if len(snap.Items) != pages*pageSize {
		t.Fatalf("expected %d items, got %d", pages*pageSize, len(snap.Items))
	}
	for i, it := range snap.Items {
		if it != fmt.Sprintf("item-%d", i) {
			t.Fatalf("item %d out of order: %s", i, it)
		}
	}
	if !snap.HasMore {
		t.Error("every page was full, HasMore must stay true")
	}
}

func TestPager_ShortPageEndsListing(t *testing.T) {
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		return Page[string]{Items: makeItems(offset, 3)}, nil
	}, PagerConfig{PageSize: 10})

	pg.Reset(context.Background())
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	if snap := pg.Snapshot(); snap.HasMore {
		t.Error("short page must clear HasMore")
	}
}

func TestPager_TotalControlsHasMore(t *testing.T) {
	const total = 25
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		n := limit
		if offset+n > total {
			n = total - offset
		}
		tot := total
		return Page[string]{Items: makeItems(offset, n), Total: &tot}, nil
	}, PagerConfig{PageSize: 20})

	ctx := context.Background()
	pg.Reset(ctx)
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	if snap := pg.Snapshot(); !snap.HasMore {
		t.Fatal("20 of 25 loaded, HasMore must be true")
	}

	pg.LoadMore(ctx)
	waitFor(t, func() bool {
		snap := pg.Snapshot()
		return !snap.LoadingMore && len(snap.Items) == total
	}, "second page")

	if snap := pg.Snapshot(); snap.HasMore {
		t.Error("all 25 loaded, HasMore must be false")
	}
}

func TestPager_ConcurrentLoadMoreIssuesOneRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		if calls.Add(1) > 1 {
			<-release
		}
		return Page[string]{Items: makeItems(offset, limit)}, nil
	}, PagerConfig{PageSize: 5})

	ctx := context.Background()
	pg.Reset(ctx)
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	// Two triggers while the first is still in flight.
	pg.LoadMore(ctx)
	pg.LoadMore(ctx)

	close(release)
	waitFor(t, func() bool { return !pg.Snapshot().LoadingMore }, "page load")
	time.Sleep(50 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 requests total (initial + one more), got %d", got)
	}
	if got := len(pg.Snapshot().Items); got != 10 {
		t.Errorf("expected 10 items, got %d", got)
	}
}

func TestPager_ResetClearsItems(t *testing.T) {
	var gen atomic.Int32
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		g := gen.Load()
		return Page[string]{Items: []string{fmt.Sprintf("gen%d-%d", g, offset)}}, nil
	}, PagerConfig{PageSize: 1})

	ctx := context.Background()
	pg.Reset(ctx)
	waitFor(t, func() bool { return len(pg.Snapshot().Items) == 1 }, "first page")

	pg.LoadMore(ctx)
	waitFor(t, func() bool { return len(pg.Snapshot().Items) == 2 }, "second page")

	gen.Store(1)
	pg.Reset(ctx)

	waitFor(t, func() bool {
		snap := pg.Snapshot()
		return !snap.Loading && len(snap.Items) == 1
	}, "reset reload")

	snap := pg.Snapshot()
	if snap.Items[0] != "gen1-0" {
		t.Errorf("expected fresh first page, got %v", snap.Items)
	}
	if !snap.HasMore {
		t.Error("Reset must restore HasMore")
	}
}

func TestPager_FirstPageFailureSetsError(t *testing.T) {
	wantErr := errors.New("listing failed")
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		return Page[string]{}, wantErr
	}, PagerConfig{PageSize: 5})

	pg.Reset(context.Background())
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page settle")

	snap := pg.Snapshot()
	if !errors.Is(snap.Err, wantErr) {
		t.Errorf("expected first-page error, got %v", snap.Err)
	}
	if len(snap.Items) != 0 {
		t.Errorf("expected no items, got %v", snap.Items)
	}
}

func TestPager_LaterPageFailureKeepsItems(t *testing.T) {
	var calls atomic.Int32
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		if calls.Add(1) > 1 {
			return Page[string]{}, errors.New("transient")
		}
		return Page[string]{Items: makeItems(offset, limit)}, nil
	}, PagerConfig{PageSize: 5})

	ctx := context.Background()
	pg.Reset(ctx)
	waitFor(t, func() bool { return !pg.Snapshot().Loading }, "first page")

	pg.LoadMore(ctx)
	waitFor(t, func() bool { return !pg.Snapshot().LoadingMore }, "failed page settle")

	snap := pg.Snapshot()
	if len(snap.Items) != 5 {
		t.Errorf("later-page failure must not drop items, got %d", len(snap.Items))
	}
	if snap.Err != nil {
		t.Errorf("later-page failure must not set first-page error, got %v", snap.Err)
	}
}

func TestPager_DisabledNeverFetches(t *testing.T) {
	var calls atomic.Int32
	pg := NewPager(func(ctx context.Context, offset, limit int) (Page[string], error) {
		calls.Add(1)
		return Page[string]{}, nil
	}, PagerConfig{PageSize: 5, Disabled: true})

	ctx := context.Background()
	pg.Reset(ctx)
	pg.LoadMore(ctx)
	time.Sleep(50 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("disabled pager issued %d requests", calls.Load())
	}
}

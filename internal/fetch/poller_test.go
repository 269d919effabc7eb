package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls the condition until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timeout waiting for: " + msg)
}

func TestPoller_FirstLoadSuccess(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (int, error) {
		return 42, nil
	}, PollerConfig{})

	if snap := p.Snapshot(); !snap.Loading {
		t.Error("expected Loading before Start resolves")
	}

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return !p.Snapshot().Loading }, "first load to settle")

	snap := p.Snapshot()
	if snap.Data == nil || *snap.Data != 42 {
		t.Errorf("expected data 42, got %v", snap.Data)
	}
	if snap.Err != nil {
		t.Errorf("unexpected error: %v", snap.Err)
	}
}

func TestPoller_FirstLoadFailure(t *testing.T) {
	wantErr := errors.New("backend down")
	p := NewPoller(func(ctx context.Context) (int, error) {
		return 0, wantErr
	}, PollerConfig{})

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return !p.Snapshot().Loading }, "first load to settle")

	snap := p.Snapshot()
	if snap.Data != nil {
		t.Errorf("expected nil data, got %v", *snap.Data)
	}
	if !errors.Is(snap.Err, wantErr) {
		t.Errorf("expected first-load error, got %v", snap.Err)
	}
}

func TestPoller_PollFailureKeepsLastGoodData(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		n := calls.Add(1)
		if n == 1 {
			return 7, nil
		}
		return 0, errors.New("transient")
	}, PollerConfig{PollInterval: 10 * time.Millisecond})

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return calls.Load() >= 4 }, "several polls")

	snap := p.Snapshot()
	if snap.Data == nil || *snap.Data != 7 {
		t.Errorf("poll failures must not clear data, got %v", snap.Data)
	}
	if snap.Err != nil {
		t.Errorf("poll failures must not set error, got %v", snap.Err)
	}
	if snap.Loading {
		t.Error("loading must not re-enter after first settle")
	}
}

func TestPoller_PollSuccessClearsNothingButUpdatesData(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, PollerConfig{PollInterval: 10 * time.Millisecond})

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool {
		snap := p.Snapshot()
		return snap.Data != nil && *snap.Data >= 3
	}, "data to advance across polls")
}

func TestPoller_ResetDiscardsStaleResult(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-release
			return "stale", nil
		}
		return "fresh", nil
	}, PollerConfig{})

	ctx := context.Background()
	p.Start(ctx)
	defer p.Stop()

	waitFor(t, func() bool { return calls.Load() == 1 }, "first request to start")

	// A new dependency set supersedes the in-flight request.
	p.Reset(ctx)
	waitFor(t, func() bool {
		snap := p.Snapshot()
		return snap.Data != nil && *snap.Data == "fresh"
	}, "fresh result")

	// Let the superseded request complete; its result must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)

	snap := p.Snapshot()
	if snap.Data == nil || *snap.Data != "fresh" {
		t.Errorf("stale result overwrote state: %v", snap.Data)
	}
}

func TestPoller_ResetReentersLoading(t *testing.T) {
	block := make(chan struct{})
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		if calls.Add(1) > 1 {
			<-block
		}
		return 1, nil
	}, PollerConfig{})

	ctx := context.Background()
	p.Start(ctx)
	defer p.Stop()
	defer close(block)

	waitFor(t, func() bool { return !p.Snapshot().Loading }, "first settle")

	p.Reset(ctx)

	snap := p.Snapshot()
	if !snap.Loading {
		t.Error("Reset must re-enter loading")
	}
	if snap.Data != nil {
		t.Error("Reset must clear data")
	}
}

func TestPoller_RefetchDoesNotTouchLoading(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, PollerConfig{})

	ctx := context.Background()
	p.Start(ctx)
	defer p.Stop()

	waitFor(t, func() bool { return !p.Snapshot().Loading }, "first settle")

	p.Refetch(ctx)
	waitFor(t, func() bool {
		snap := p.Snapshot()
		return snap.Data != nil && *snap.Data == 2
	}, "refetch result")

	if p.Snapshot().Loading {
		t.Error("Refetch must not set loading")
	}
}

func TestPoller_DisabledNeverFetches(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	}, PollerConfig{Disabled: true, PollInterval: 5 * time.Millisecond})

	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("disabled poller issued %d fetches", calls.Load())
	}
}

func TestPoller_OnChangeNotified(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (int, error) {
		return 9, nil
	}, PollerConfig{})

	got := make(chan State[int], 4)
	p.OnChange(func(s State[int]) { got <- s })

	p.Start(context.Background())
	defer p.Stop()

	select {
	case snap := <-got:
		if snap.Data == nil || *snap.Data != 9 {
			t.Errorf("unexpected snapshot: %+v", snap)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for OnChange")
	}
}

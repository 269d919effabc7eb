package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agentarena/arena-terminal/business/bounty/domain"
	"github.com/agentarena/arena-terminal/internal/logger"
)

type stubBackend struct {
	mu        sync.Mutex
	filters   []domain.Filter
	announced []domain.BountyAnnouncement
	total     int
}

func (s *stubBackend) Bounties(ctx context.Context, filter domain.Filter, offset, limit int) (*domain.BountyPage, error) {
	s.mu.Lock()
	s.filters = append(s.filters, filter)
	s.mu.Unlock()

	n := limit
	if offset+n > s.total {
		n = s.total - offset
	}
	items := make([]domain.BountyResponse, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.BountyResponse{
			BountyID: offset + i,
			Phase:    filter.Phase,
			Category: fmt.Sprintf("cat-%s", filter.Category),
		})
	}
	return &domain.BountyPage{Bounties: items, Total: s.total, Limit: limit, Offset: offset}, nil
}

func (s *stubBackend) BountyDetail(ctx context.Context, bountyID int) (*domain.BountyDetail, error) {
	return &domain.BountyDetail{
		Bounty: domain.BountyResponse{BountyID: bountyID, Phase: domain.PhaseSettled},
		Answers: []domain.BountyAnswer{
			{AgentAddr: "0xabc", AnswerText: "42"},
		},
	}, nil
}

func (s *stubBackend) BountyStats(ctx context.Context) (*domain.BountyStats, error) {
	return &domain.BountyStats{TotalBounties: s.total, ActiveBounties: 3}, nil
}

func (s *stubBackend) AnnounceBounty(ctx context.Context, ann domain.BountyAnnouncement) error {
	s.mu.Lock()
	s.announced = append(s.announced, ann)
	s.mu.Unlock()
	return nil
}

func newTestService(total int) (*Service, *stubBackend) {
	backend := &stubBackend{total: total}
	log := logger.New(io.Discard, logger.LevelInfo, "test", nil)
	svc := NewService(backend, Config{PageSize: 10}, log)
	return svc, backend
}

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

func TestService_ListingPaginatesByTotal(t *testing.T) {
	svc, _ := newTestService(25)
	ctx := context.Background()

	svc.Start(ctx)
	defer svc.Stop()

	waitFor(t, func() bool { return !svc.Bounties().Snapshot().Loading }, "first page")

	snap := svc.Bounties().Snapshot()
	if len(snap.Items) != 10 {
		t.Fatalf("expected 10 bounties, got %d", len(snap.Items))
	}
	if !snap.HasMore {
		t.Fatal("10 of 25 loaded, HasMore must be true")
	}

	svc.Bounties().LoadMore(ctx)
	waitFor(t, func() bool { return len(svc.Bounties().Snapshot().Items) == 20 }, "second page")
	svc.Bounties().LoadMore(ctx)
	waitFor(t, func() bool { return len(svc.Bounties().Snapshot().Items) == 25 }, "final page")

	if svc.Bounties().Snapshot().HasMore {
		t.Error("all 25 loaded, HasMore must be false")
	}
}

func TestService_SetFilterResetsListing(t *testing.T) {
	svc, backend := newTestService(5)
	ctx := context.Background()

	svc.Start(ctx)
	defer svc.Stop()
	waitFor(t, func() bool { return !svc.Bounties().Snapshot().Loading }, "first page")

	svc.SetFilter(ctx, domain.Filter{Phase: domain.PhaseActive, Category: "science"})

	waitFor(t, func() bool {
		snap := svc.Bounties().Snapshot()
		return !snap.Loading && len(snap.Items) == 5 && snap.Items[0].Phase == domain.PhaseActive
	}, "filtered reload")

	backend.mu.Lock()
	last := backend.filters[len(backend.filters)-1]
	backend.mu.Unlock()
	if last.Category != "science" {
		t.Errorf("filter not forwarded to backend: %+v", last)
	}

	// Unchanged filter must not trigger a reload.
	before := len(backend.filters)
	svc.SetFilter(ctx, domain.Filter{Phase: domain.PhaseActive, Category: "science"})
	time.Sleep(50 * time.Millisecond)
	backend.mu.Lock()
	after := len(backend.filters)
	backend.mu.Unlock()
	if after != before {
		t.Errorf("no-op filter change issued %d extra requests", after-before)
	}
}

func TestService_AnnounceForwardsMetadata(t *testing.T) {
	svc, backend := newTestService(1)

	ann := domain.BountyAnnouncement{
		QuestionText: "What is entropy?",
		Category:     "Science",
		Difficulty:   4,
		RewardAmount: "100000000000000000000",
		TxHash:       "0xdeadbeef",
	}
	if err := svc.Announce(context.Background(), ann); err != nil {
		t.Fatalf("Announce failed: %v", err)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.announced) != 1 || backend.announced[0].TxHash != "0xdeadbeef" {
		t.Errorf("announcement not forwarded: %+v", backend.announced)
	}
}

func TestService_Detail(t *testing.T) {
	svc, _ := newTestService(1)

	detail, err := svc.Detail(context.Background(), 7)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if detail.Bounty.BountyID != 7 || len(detail.Answers) != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

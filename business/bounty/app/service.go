package app

import (
	"context"
	"sync"
	"time"

	"github.com/agentarena/arena-terminal/business/bounty/domain"
	"github.com/agentarena/arena-terminal/internal/fetch"
	"github.com/agentarena/arena-terminal/internal/logger"
)

// Config holds polling cadence and page sizing for the bounty service.
type Config struct {
	StatsPollInterval time.Duration
	PageSize          int
}

// Service composes the bounty backend into the pager and pollers the
// marketplace screens read.
type Service struct {
	backend Backend
	logger  logger.LoggerInterface
	cfg     Config

	stats    *fetch.Poller[domain.BountyStats]
	bounties *fetch.Pager[domain.BountyResponse]

	mu     sync.RWMutex
	filter domain.Filter
}

// NewService wires the pager and stats poller over the backend.
func NewService(backend Backend, cfg Config, log logger.LoggerInterface) *Service {
	s := &Service{
		backend: backend,
		logger:  log,
		cfg:     cfg,
	}

	s.stats = fetch.NewPoller(func(ctx context.Context) (domain.BountyStats, error) {
		out, err := backend.BountyStats(ctx)
		if err != nil {
			return domain.BountyStats{}, err
		}
		return *out, nil
	}, fetch.PollerConfig{PollInterval: cfg.StatsPollInterval})

	s.bounties = fetch.NewPager(func(ctx context.Context, offset, limit int) (fetch.Page[domain.BountyResponse], error) {
		s.mu.RLock()
		filter := s.filter
		s.mu.RUnlock()

		page, err := backend.Bounties(ctx, filter, offset, limit)
		if err != nil {
			return fetch.Page[domain.BountyResponse]{}, err
		}
		total := page.Total
		return fetch.Page[domain.BountyResponse]{Items: page.Bounties, Total: &total}, nil
	}, fetch.PagerConfig{PageSize: cfg.PageSize})

	return s
}

// Start begins the stats poll and loads the first bounty page.
func (s *Service) Start(ctx context.Context) {
	s.stats.Start(ctx)
	s.bounties.Start(ctx)
	s.logger.Info(ctx, "bounty service started")
}

// Stop halts background polling.
func (s *Service) Stop() {
	s.stats.Stop()
}

// Stats exposes the marketplace stats poller.
func (s *Service) Stats() *fetch.Poller[domain.BountyStats] { return s.stats }

// Bounties exposes the bounty listing pager.
func (s *Service) Bounties() *fetch.Pager[domain.BountyResponse] { return s.bounties }

// SetFilter replaces the listing filter and reloads from the first page.
// A no-op when the filter is unchanged.
func (s *Service) SetFilter(ctx context.Context, filter domain.Filter) {
	s.mu.Lock()
	if s.filter == filter {
		s.mu.Unlock()
		return
	}
	s.filter = filter
	s.mu.Unlock()

	s.bounties.Reset(ctx)
}

// Filter returns the active listing filter.
func (s *Service) Filter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Detail loads one bounty with its answers on demand.
func (s *Service) Detail(ctx context.Context, bountyID int) (*domain.BountyDetail, error) {
	return s.backend.BountyDetail(ctx, bountyID)
}

// Announce posts creation metadata for a bounty already submitted on chain.
func (s *Service) Announce(ctx context.Context, ann domain.BountyAnnouncement) error {
	return s.backend.AnnounceBounty(ctx, ann)
}

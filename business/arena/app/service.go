package app

import (
	"context"
	"sync"
	"time"

	"github.com/agentarena/arena-terminal/business/arena/domain"
	"github.com/agentarena/arena-terminal/internal/fetch"
	"github.com/agentarena/arena-terminal/internal/logger"
)

// Config holds polling cadence and page sizing for the arena service.
type Config struct {
	StatsPollInterval time.Duration
	MatchPollInterval time.Duration
	PageSize          int
}

// CurrentMatch wraps the newest active match; Match is nil when the arena
// is idle.
type CurrentMatch struct {
	Match *domain.MatchResponse
}

// MatchThread bundles the answers and commentary of a settled match.
type MatchThread struct {
	Answers    []domain.AnswerResponse
	Commentary []domain.CommentaryResponse
}

// Service composes the backend port into pollers and pagers the UI reads.
type Service struct {
	backend Backend
	logger  logger.LoggerInterface
	cfg     Config

	stats        *fetch.Poller[domain.GlobalStats]
	burnStats    *fetch.Poller[domain.BurnStats]
	currentMatch *fetch.Poller[CurrentMatch]

	leaderboard   *fetch.Pager[domain.LeaderboardEntry]
	recentMatches *fetch.Pager[domain.MatchResponse]

	mu     sync.RWMutex
	sortBy string
}

// NewService wires pollers and pagers over the backend.
func NewService(backend Backend, cfg Config, log logger.LoggerInterface) *Service {
	s := &Service{
		backend: backend,
		logger:  log,
		cfg:     cfg,
		sortBy:  domain.SortByEarnings,
	}

	s.stats = fetch.NewPoller(func(ctx context.Context) (domain.GlobalStats, error) {
		out, err := backend.Stats(ctx)
		if err != nil {
			return domain.GlobalStats{}, err
		}
		return *out, nil
	}, fetch.PollerConfig{PollInterval: cfg.StatsPollInterval})

	s.burnStats = fetch.NewPoller(func(ctx context.Context) (domain.BurnStats, error) {
		out, err := backend.BurnStats(ctx)
		if err != nil {
			return domain.BurnStats{}, err
		}
		return *out, nil
	}, fetch.PollerConfig{PollInterval: cfg.StatsPollInterval})

	s.currentMatch = fetch.NewPoller(func(ctx context.Context) (CurrentMatch, error) {
		page, err := backend.Matches(ctx, domain.MatchPhaseLive, 0, 1)
		if err != nil {
			return CurrentMatch{}, err
		}
		if len(page.Matches) == 0 {
			return CurrentMatch{}, nil
		}
		m := page.Matches[0]
		return CurrentMatch{Match: &m}, nil
	}, fetch.PollerConfig{PollInterval: cfg.MatchPollInterval})

	s.leaderboard = fetch.NewPager(func(ctx context.Context, offset, limit int) (fetch.Page[domain.LeaderboardEntry], error) {
		s.mu.RLock()
		sortBy := s.sortBy
		s.mu.RUnlock()

		page, err := backend.Leaderboard(ctx, sortBy, offset, limit)
		if err != nil {
			return fetch.Page[domain.LeaderboardEntry]{}, err
		}
		// The leaderboard endpoint reports no total; end-of-data comes
		// from the short-page heuristic.
		return fetch.Page[domain.LeaderboardEntry]{Items: page.Leaderboard}, nil
	}, fetch.PagerConfig{PageSize: cfg.PageSize})

	s.recentMatches = fetch.NewPager(func(ctx context.Context, offset, limit int) (fetch.Page[domain.MatchResponse], error) {
		page, err := backend.Matches(ctx, domain.MatchPhaseSettled, offset, limit)
		if err != nil {
			return fetch.Page[domain.MatchResponse]{}, err
		}
		total := page.Total
		return fetch.Page[domain.MatchResponse]{Items: page.Matches, Total: &total}, nil
	}, fetch.PagerConfig{PageSize: cfg.PageSize})

	return s
}

// Start begins all background polling and loads first pages.
func (s *Service) Start(ctx context.Context) {
	s.stats.Start(ctx)
	s.burnStats.Start(ctx)
	s.currentMatch.Start(ctx)
	s.leaderboard.Start(ctx)
	s.recentMatches.Start(ctx)
	s.logger.Info(ctx, "arena service started",
		"statsInterval", s.cfg.StatsPollInterval,
		"matchInterval", s.cfg.MatchPollInterval)
}

// Stop halts background polling.
func (s *Service) Stop() {
	s.stats.Stop()
	s.burnStats.Stop()
	s.currentMatch.Stop()
}

// Stats exposes the global stats poller.
func (s *Service) Stats() *fetch.Poller[domain.GlobalStats] { return s.stats }

// BurnStats exposes the burn stats poller.
func (s *Service) BurnStats() *fetch.Poller[domain.BurnStats] { return s.burnStats }

// CurrentMatch exposes the active match poller.
func (s *Service) CurrentMatch() *fetch.Poller[CurrentMatch] { return s.currentMatch }

// Leaderboard exposes the leaderboard pager.
func (s *Service) Leaderboard() *fetch.Pager[domain.LeaderboardEntry] { return s.leaderboard }

// RecentMatches exposes the settled matches pager.
func (s *Service) RecentMatches() *fetch.Pager[domain.MatchResponse] { return s.recentMatches }

// SetLeaderboardSort changes the sort key and reloads the leaderboard from
// the first page. A no-op when the key is unchanged.
func (s *Service) SetLeaderboardSort(ctx context.Context, sortBy string) {
	s.mu.Lock()
	if s.sortBy == sortBy {
		s.mu.Unlock()
		return
	}
	s.sortBy = sortBy
	s.mu.Unlock()

	s.leaderboard.Reset(ctx)
}

// LeaderboardSort returns the current sort key.
func (s *Service) LeaderboardSort() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBy
}

// MatchThread loads answers and commentary for one match.
func (s *Service) MatchThread(ctx context.Context, matchID int) (*MatchThread, error) {
	answers, err := s.backend.MatchAnswers(ctx, matchID)
	if err != nil {
		return nil, err
	}
	commentary, err := s.backend.MatchCommentary(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return &MatchThread{Answers: answers, Commentary: commentary}, nil
}

// AgentProfile loads an agent's profile on demand.
func (s *Service) AgentProfile(ctx context.Context, addr string) (*domain.AgentProfile, error) {
	return s.backend.AgentProfile(ctx, addr)
}

// AgentEconomics loads an agent's economics summary on demand.
func (s *Service) AgentEconomics(ctx context.Context, addr string) (*domain.AgentEconomics, error) {
	return s.backend.AgentEconomics(ctx, addr)
}

// AgentHistoryPager builds a pager over one agent's match history.
func (s *Service) AgentHistoryPager(addr string) *fetch.Pager[domain.MatchResponse] {
	return fetch.NewPager(func(ctx context.Context, offset, limit int) (fetch.Page[domain.MatchResponse], error) {
		page, err := s.backend.AgentHistory(ctx, addr, offset, limit)
		if err != nil {
			return fetch.Page[domain.MatchResponse]{}, err
		}
		total := page.Total
		return fetch.Page[domain.MatchResponse]{Items: page.Matches, Total: &total}, nil
	}, fetch.PagerConfig{PageSize: s.cfg.PageSize})
}

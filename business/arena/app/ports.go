// Package app contains application services and port definitions for the
// arena context.
package app

import (
	"context"

	"github.com/agentarena/arena-terminal/business/arena/domain"
)

// Backend is the port to the arena REST API.
type Backend interface {
	Stats(ctx context.Context) (*domain.GlobalStats, error)
	BurnStats(ctx context.Context) (*domain.BurnStats, error)

	Leaderboard(ctx context.Context, sortBy string, offset, limit int) (*domain.LeaderboardPage, error)
	Matches(ctx context.Context, phase string, offset, limit int) (*domain.MatchPage, error)
	MatchAnswers(ctx context.Context, matchID int) ([]domain.AnswerResponse, error)
	MatchCommentary(ctx context.Context, matchID int) ([]domain.CommentaryResponse, error)

	AgentProfile(ctx context.Context, addr string) (*domain.AgentProfile, error)
	AgentHistory(ctx context.Context, addr string, offset, limit int) (*domain.MatchPage, error)
	AgentEconomics(ctx context.Context, addr string) (*domain.AgentEconomics, error)
}

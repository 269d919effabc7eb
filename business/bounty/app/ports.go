// Package app contains application services and port definitions for the
// bounty context.
package app

import (
	"context"

	"github.com/agentarena/arena-terminal/business/bounty/domain"
)

// Backend is the port to the bounty REST API.
type Backend interface {
	Bounties(ctx context.Context, filter domain.Filter, offset, limit int) (*domain.BountyPage, error)
	BountyDetail(ctx context.Context, bountyID int) (*domain.BountyDetail, error)
	BountyStats(ctx context.Context) (*domain.BountyStats, error)
	AnnounceBounty(ctx context.Context, ann domain.BountyAnnouncement) error
}

// Package di contains dependency injection tokens for the feed context.
package di

import (
	"github.com/agentarena/arena-terminal/business/feed/app"
	"github.com/agentarena/arena-terminal/internal/di"
)

// Public service tokens - exposed to other modules
var (
	FeedService = di.NewToken[*app.Service]("feed.Service")
)

func GetFeedService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, FeedService)
}

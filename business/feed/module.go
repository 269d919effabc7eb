// Package feed implements the live event stream bounded context.
package feed

import (
	"context"

	"github.com/agentarena/arena-terminal/business/feed/app"
	feedDI "github.com/agentarena/arena-terminal/business/feed/di"
	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/di"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/monolith"
)

// Module implements the feed bounded context.
type Module struct{}

// RegisterServices registers the feed consumer with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, feedDI.FeedService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewService(app.Config{
			URL:               cfg.Feed.URL,
			MaxRetries:        cfg.Feed.MaxRetries,
			ConnectionTimeout: cfg.Feed.ConnectionTimeout,
			MaxEvents:         cfg.Feed.MaxEvents,
		}, log)
	})

	return nil
}

// Startup connects the feed.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := feedDI.GetFeedService(mono.Services())
	if err := svc.Start(ctx); err != nil {
		return err
	}
	mono.Logger().Info(ctx, "feed module started", "url", mono.Config().Feed.URL)
	return nil
}

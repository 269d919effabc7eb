// Package arena implements the arena bounded context: global stats, matches,
// leaderboard and agent profiles from the backend REST API.
package arena

import (
	"context"

	"github.com/agentarena/arena-terminal/business/arena/app"
	arenaDI "github.com/agentarena/arena-terminal/business/arena/di"
	"github.com/agentarena/arena-terminal/business/arena/infra/rest"
	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/di"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/monolith"
)

// Module implements the arena bounded context.
type Module struct{}

// RegisterServices registers arena services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arenaDI.Backend, func(sr di.ServiceRegistry) app.Backend {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := rest.New(rest.Config{
			BaseURL:           cfg.API.BaseURL,
			RequestTimeout:    cfg.API.RequestTimeout,
			RequestsPerMinute: cfg.API.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create arena rest client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, arenaDI.ArenaService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		backend := arenaDI.GetBackend(sr)

		return app.NewService(backend, app.Config{
			StatsPollInterval: cfg.API.StatsPollInterval,
			MatchPollInterval: cfg.API.MatchPollInterval,
			PageSize:          cfg.API.PageSize,
		}, log)
	})

	return nil
}

// Startup begins background polling.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := arenaDI.GetArenaService(mono.Services())
	svc.Start(ctx)
	mono.Logger().Info(ctx, "arena module started")
	return nil
}

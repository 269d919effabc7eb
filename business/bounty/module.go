// Package bounty implements the bounty marketplace bounded context.
package bounty

import (
	"context"

	"github.com/agentarena/arena-terminal/business/bounty/app"
	bountyDI "github.com/agentarena/arena-terminal/business/bounty/di"
	"github.com/agentarena/arena-terminal/business/bounty/infra/rest"
	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/di"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/monolith"
)

// Module implements the bounty bounded context.
type Module struct{}

// RegisterServices registers bounty services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, bountyDI.Backend, func(sr di.ServiceRegistry) app.Backend {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := rest.New(rest.Config{
			BaseURL:           cfg.API.BaseURL,
			RequestTimeout:    cfg.API.RequestTimeout,
			RequestsPerMinute: cfg.API.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create bounty rest client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, bountyDI.BountyService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		backend := bountyDI.GetBackend(sr)

		return app.NewService(backend, app.Config{
			StatsPollInterval: cfg.API.StatsPollInterval,
			PageSize:          cfg.API.PageSize,
		}, log)
	})

	return nil
}

// Startup begins background polling.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := bountyDI.GetBountyService(mono.Services())
	svc.Start(ctx)
	mono.Logger().Info(ctx, "bounty module started")
	return nil
}

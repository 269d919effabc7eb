// Package di contains dependency injection tokens for the bounty context.
package di

import (
	"github.com/agentarena/arena-terminal/business/bounty/app"
	"github.com/agentarena/arena-terminal/internal/di"
)

// Public service tokens - exposed to other modules
var (
	BountyService = di.NewToken[*app.Service]("bounty.Service")
)

// Private dependency tokens - internal to the bounty module
var (
	Backend = di.NewToken[app.Backend]("bounty:backend")
)

func GetBountyService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, BountyService)
}

func GetBackend(c di.ServiceRegistry) app.Backend {
	return di.GetToken(c, Backend)
}

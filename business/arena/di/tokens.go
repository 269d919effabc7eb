// Package di contains dependency injection tokens for the arena context.
package di

import (
	"github.com/agentarena/arena-terminal/business/arena/app"
	"github.com/agentarena/arena-terminal/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ArenaService = di.NewToken[*app.Service]("arena.Service")
)

// Private dependency tokens - internal to the arena module
var (
	Backend = di.NewToken[app.Backend]("arena:backend")
)

func GetArenaService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, ArenaService)
}

func GetBackend(c di.ServiceRegistry) app.Backend {
	return di.GetToken(c, Backend)
}

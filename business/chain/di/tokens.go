// Package di contains dependency injection tokens for the chain context.
package di

import (
	"github.com/agentarena/arena-terminal/business/chain/app"
	"github.com/agentarena/arena-terminal/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ChainService = di.NewToken[*app.Service]("chain.Service")
)

// Private dependency tokens - internal to the chain module
var (
	ContractClient = di.NewToken[app.ContractClient]("chain:contractClient")
)

func GetChainService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, ChainService)
}

func GetContractClient(c di.ServiceRegistry) app.ContractClient {
	return di.GetToken(c, ContractClient)
}

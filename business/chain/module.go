// Package chain implements the chain bounded context: NEURON allowance and
// approval plus BountyArena bounty creation and winner selection. The module
// is only registered when a BountyArena contract address is configured.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/agentarena/arena-terminal/business/chain/app"
	chainDI "github.com/agentarena/arena-terminal/business/chain/di"
	"github.com/agentarena/arena-terminal/business/chain/infra/ethereum"
	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/di"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/monolith"
)

// Module implements the chain bounded context.
type Module struct{}

// RegisterServices registers chain services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, chainDI.ContractClient, func(sr di.ServiceRegistry) app.ContractClient {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		eth := sr.Get("ethClient").(*ethclient.Client)

		client, err := ethereum.New(ethereum.Config{
			ChainID:             cfg.Chain.ChainID,
			NeuronToken:         cfg.Chain.NeuronTokenAddressHex(),
			BountyArena:         cfg.Chain.BountyArenaAddressHex(),
			PrivateKey:          cfg.Chain.PrivateKey,
			ReceiptPollInterval: cfg.Chain.ReceiptPollInterval,
			ReceiptTimeout:      cfg.Chain.ReceiptTimeout,
		}, eth, log)
		if err != nil {
			panic("failed to create chain client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, chainDI.ChainService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		client := chainDI.GetContractClient(sr)

		return app.NewService(client, app.Config{
			TokenDecimals: int32(cfg.Token.Decimals),
		}, log)
	})

	return nil
}

// Startup verifies the wallet mode and logs it.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := chainDI.GetChainService(mono.Services())
	if addr, ok := svc.Wallet(); ok {
		mono.Logger().Info(ctx, "chain module started", "wallet", addr.Hex())
	} else {
		mono.Logger().Info(ctx, "chain module started in read-only mode")
	}
	return nil
}

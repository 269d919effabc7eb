// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/di"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/prefs"
)

// Monolith is the application container giving modules access to shared
// infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	// EthClient is nil when no chain RPC URL is configured; wallet
	// operations are unavailable in that mode.
	EthClient() *ethclient.Client
	Prefs() *prefs.Store
	Services() di.ServiceRegistry
}

// Module is a bounded context that registers its services and starts up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

type app struct {
	config    *config.Config
	logger    logger.LoggerInterface
	ethClient *ethclient.Client
	prefs     *prefs.Store
	container di.Container
}

// New creates the container. The chain client is dialed only when wallet
// operations are configured.
func New(cfg *config.Config, log logger.LoggerInterface, store *prefs.Store) (*app, error) {
	var ethClient *ethclient.Client
	if cfg.Chain.WalletEnabled() {
		var err error
		ethClient, err = ethclient.Dial(cfg.Chain.RPCURL)
		if err != nil {
			return nil, err
		}
	}

	container := di.NewContainer()
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("prefs", store)
	if ethClient != nil {
		container.Register("ethClient", ethClient)
	}

	return &app{
		config:    cfg,
		logger:    log,
		ethClient: ethClient,
		prefs:     store,
		container: container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) EthClient() *ethclient.Client {
	return a.ethClient
}

func (a *app) Prefs() *prefs.Store {
	return a.prefs
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close releases shared resources.
func (a *app) Close() error {
	if a.ethClient != nil {
		a.ethClient.Close()
	}
	return nil
}

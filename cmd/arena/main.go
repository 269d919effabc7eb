// Package main is the entry point for the Agent Arena terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/agentarena/arena-terminal/business/arena"
	arenaApp "github.com/agentarena/arena-terminal/business/arena/app"
	arenaDI "github.com/agentarena/arena-terminal/business/arena/di"
	arenaDomain "github.com/agentarena/arena-terminal/business/arena/domain"
	"github.com/agentarena/arena-terminal/business/bounty"
	bountyDI "github.com/agentarena/arena-terminal/business/bounty/di"
	bountyDomain "github.com/agentarena/arena-terminal/business/bounty/domain"
	"github.com/agentarena/arena-terminal/business/chain"
	chainDI "github.com/agentarena/arena-terminal/business/chain/di"
	"github.com/agentarena/arena-terminal/business/feed"
	feedDI "github.com/agentarena/arena-terminal/business/feed/di"
	feedDomain "github.com/agentarena/arena-terminal/business/feed/domain"
	"github.com/agentarena/arena-terminal/internal/apm"
	"github.com/agentarena/arena-terminal/internal/config"
	"github.com/agentarena/arena-terminal/internal/fetch"
	"github.com/agentarena/arena-terminal/internal/health"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/metrics"
	"github.com/agentarena/arena-terminal/internal/monolith"
	"github.com/agentarena/arena-terminal/internal/prefs"
	"github.com/agentarena/arena-terminal/internal/wsconn"
	"github.com/agentarena/arena-terminal/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("arena-terminal %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.UI.TUIMode = tuiMode

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	// In TUI mode logs would corrupt the screen, so they are discarded.
	var log *logger.Logger
	if tuiMode {
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting arena terminal",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	if cfg.Telemetry.Enabled {
		traceProvider := apm.NewTraceProvider(log, apm.Config{
			Provider:     apm.OTLPProvider,
			ServiceName:  cfg.Telemetry.ServiceName,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		})
		defer traceProvider.Stop()

		meterProvider, err := metrics.NewMeterProvider(ctx, metrics.Config{
			ServiceName: cfg.Telemetry.ServiceName,
			Prometheus:  true,
		})
		if err != nil {
			log.Warn(ctx, "metrics disabled", "error", err)
		} else {
			defer meterProvider.Shutdown(context.Background())
			port := cfg.Telemetry.PrometheusPort
			if port == 0 {
				port = 9090
			}
			go metrics.ServePrometheus(port)
			log.Info(ctx, "prometheus metrics server started", "port", port)
		}

		healthServer := health.NewServer(8081, version)
		if err := healthServer.Start(); err != nil {
			log.Warn(ctx, "failed to start health server", "error", err)
		}
		defer healthServer.Stop(context.Background())
	}

	store, err := prefs.Open()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	mono, err := monolith.New(cfg, log, store)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Chain is optional: without a contract address the terminal is read-only.
	modules := []monolith.Module{
		&arena.Module{},
		&bounty.Module{},
		&feed.Module{},
	}
	walletMode := cfg.Chain.WalletEnabled()
	if walletMode {
		modules = append(modules, &chain.Module{})
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	deps := ui.Deps{
		Arena:  arenaDI.GetArenaService(mono.Services()),
		Bounty: bountyDI.GetBountyService(mono.Services()),
		Feed:   feedDI.GetFeedService(mono.Services()),
		Prefs:  store,
	}
	if walletMode {
		deps.Chain = chainDI.GetChainService(mono.Services())
	}

	if tuiMode {
		return runTUI(ctx, deps)
	}
	return runCLI(ctx, deps, log)
}

// runTUI wires service change notifications into the Bubble Tea program
// and blocks until the user quits.
func runTUI(ctx context.Context, deps ui.Deps) error {
	deps.Arena.Stats().OnChange(func(fetch.State[arenaDomain.GlobalStats]) {
		ui.Send(ui.SnapshotMsg{})
	})
	deps.Arena.CurrentMatch().OnChange(func(fetch.State[arenaApp.CurrentMatch]) {
		ui.Send(ui.SnapshotMsg{})
	})
	deps.Bounty.Stats().OnChange(func(fetch.State[bountyDomain.BountyStats]) {
		ui.Send(ui.SnapshotMsg{})
	})
	deps.Feed.OnEvent(func(ev feedDomain.Event) {
		ui.Send(ui.FeedEventMsg{Event: ev})
	})

	// Quit the TUI when the surrounding context is cancelled.
	go func() {
		<-ctx.Done()
		ui.Quit()
	}()

	return ui.Run(deps)
}

// runCLI streams feed events and stats to the log until shutdown.
func runCLI(ctx context.Context, deps ui.Deps, log *logger.Logger) error {
	deps.Feed.OnEvent(func(ev feedDomain.Event) {
		log.Info(ctx, "feed event",
			"kind", string(ev.Kind), "match", ev.MatchID, "agent", ev.Agent)
	})

	log.Info(ctx, "all modules started; streaming feed (ctrl+c to stop)")

	<-ctx.Done()

	log.Info(ctx, "shutting down")
	if err := deps.Feed.Stop(); err != nil && !errors.Is(err, wsconn.ErrClosed) {
		log.Error(ctx, "error stopping feed", "error", err)
	}
	deps.Arena.Stop()
	deps.Bounty.Stop()

	return nil
}

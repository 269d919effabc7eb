// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Token     TokenConfig     `mapstructure:"token"`
	Chain     ChainConfig     `mapstructure:"chain"`
	UI        UIConfig        `mapstructure:"ui"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// APIConfig holds arena backend REST API settings.
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	StatsPollInterval time.Duration `mapstructure:"stats_poll_interval"`
	MatchPollInterval time.Duration `mapstructure:"match_poll_interval"`
	PageSize          int           `mapstructure:"page_size"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// FeedConfig holds live feed WebSocket settings.
type FeedConfig struct {
	URL               string        `mapstructure:"url"`
	MaxRetries        int           `mapstructure:"max_retries"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout"`
	MaxEvents         int           `mapstructure:"max_events"`
}

// TokenConfig describes the game token denomination.
type TokenConfig struct {
	Decimals int    `mapstructure:"decimals"`
	Symbol   string `mapstructure:"symbol"`
}

// ChainConfig holds RPC node and contract addresses for wallet operations.
type ChainConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             uint64        `mapstructure:"chain_id"`
	NeuronTokenAddress  string        `mapstructure:"neuron_token_address"`
	BountyArenaAddress  string        `mapstructure:"bounty_arena_address"`
	PrivateKey          string        `mapstructure:"private_key"` // hex, optional; read-only mode without it
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
	ReceiptTimeout      time.Duration `mapstructure:"receipt_timeout"`
}

// WalletEnabled reports whether chain operations can be wired at all. The
// RPC URL has a default, so the deciding factor is the contract address.
func (c *ChainConfig) WalletEnabled() bool {
	return c.RPCURL != "" && c.BountyArenaAddress != ""
}

// NeuronTokenAddressHex returns the NEURON token address as common.Address.
func (c *ChainConfig) NeuronTokenAddressHex() common.Address {
	return common.HexToAddress(c.NeuronTokenAddress)
}

// BountyArenaAddressHex returns the BountyArena contract address as common.Address.
func (c *ChainConfig) BountyArenaAddressHex() common.Address {
	return common.HexToAddress(c.BountyArenaAddress)
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	TUIMode bool `mapstructure:"-"` // Set at runtime, not from config file
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ARENA")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ARENA_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ARENA_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ARENA_LOG_LEVEL", "LOG_LEVEL")

	// API
	v.BindEnv("api.base_url", "ARENA_API_URL", "API_URL")

	// Feed
	v.BindEnv("feed.url", "ARENA_WS_URL", "WS_URL")

	// Chain
	v.BindEnv("chain.rpc_url", "ARENA_RPC_URL", "RPC_URL")
	v.BindEnv("chain.chain_id", "ARENA_CHAIN_ID", "CHAIN_ID")
	v.BindEnv("chain.neuron_token_address", "ARENA_NEURON_TOKEN", "NEURON_TOKEN")
	v.BindEnv("chain.bounty_arena_address", "ARENA_BOUNTY_ARENA", "BOUNTY_ARENA")
	v.BindEnv("chain.private_key", "ARENA_PRIVATE_KEY", "PRIVATE_KEY")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ARENA_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ARENA_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ARENA_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "arena-terminal")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// API defaults
	v.SetDefault("api.request_timeout", "10s")
	v.SetDefault("api.stats_poll_interval", "10s")
	v.SetDefault("api.match_poll_interval", "5s")
	v.SetDefault("api.page_size", 20)
	v.SetDefault("api.requests_per_minute", 120)

	// Feed defaults
	v.SetDefault("feed.max_retries", 10)
	v.SetDefault("feed.connection_timeout", "5s")
	v.SetDefault("feed.max_events", 50)

	// Token defaults
	v.SetDefault("token.decimals", 18)
	v.SetDefault("token.symbol", "NEURON")

	// Chain defaults (Monad)
	v.SetDefault("chain.rpc_url", "https://rpc.monad.xyz")
	v.SetDefault("chain.chain_id", 143)
	v.SetDefault("chain.receipt_poll_interval", "2s")
	v.SetDefault("chain.receipt_timeout", "2m")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "arena-terminal")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Token.Decimals <= 0 || c.Token.Decimals > 30 {
		return fmt.Errorf("token.decimals out of range: %d", c.Token.Decimals)
	}
	if c.Chain.NeuronTokenAddress != "" && !common.IsHexAddress(c.Chain.NeuronTokenAddress) {
		return fmt.Errorf("invalid chain.neuron_token_address: %s", c.Chain.NeuronTokenAddress)
	}
	if c.Chain.BountyArenaAddress != "" && !common.IsHexAddress(c.Chain.BountyArenaAddress) {
		return fmt.Errorf("invalid chain.bounty_arena_address: %s", c.Chain.BountyArenaAddress)
	}
	if c.Feed.MaxEvents <= 0 {
		return fmt.Errorf("feed.max_events must be positive")
	}
	return nil
}

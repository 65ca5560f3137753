// Package config loads and validates the engine's runtime configuration:
// category weights (retained for documentation and any future
// display/report surface), decision thresholds, and the transport/storage
// settings the ambient service needs around the core pipeline. Loading is a
// YAML file plus environment-variable overrides pulled in with godotenv,
// then validated with go-playground/validator before anything else runs.
package config

import (
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/perpsignal/signal-engine/pkg/model"
)

var validate = validator.New()

// CategoryWeights describes the relative emphasis an operator places on each
// category, retained for documentation and for any future display/report
// surface. The aggregator itself always uses the fixed integer scoring
// scheme, never these weights.
type CategoryWeights struct {
	Momentum   float64 `yaml:"momentum" validate:"gte=0,lte=1"`
	Trend      float64 `yaml:"trend" validate:"gte=0,lte=1"`
	Volatility float64 `yaml:"volatility" validate:"gte=0,lte=1"`
	Volume     float64 `yaml:"volume" validate:"gte=0,lte=1"`
	Perp       float64 `yaml:"perp" validate:"gte=0,lte=1"`
}

// Sum adds the five weights; used by the cross-field check validator can't
// express.
func (w CategoryWeights) Sum() float64 {
	return w.Momentum + w.Trend + w.Volatility + w.Volume + w.Perp
}

// ExchangeConfig configures the HTTP market-data/perp-metrics collaborator.
type ExchangeConfig struct {
	BaseURL               string        `yaml:"base_url" validate:"required,url"`
	APIKey                string        `yaml:"api_key"`
	SecretKey             string        `yaml:"secret_key"`
	PollInterval          time.Duration `yaml:"poll_interval" validate:"required,gt=0"`
	RequestsPerMinute     int           `yaml:"requests_per_minute" validate:"required,gt=0"`
	Symbols               []string      `yaml:"symbols" validate:"required,min=1,dive,required"`
	CandleLimit           int           `yaml:"candle_limit" validate:"required,gt=0"`
	FundingWindow         int           `yaml:"funding_window" validate:"required,gt=0"`
	OpenInterestWindow    int           `yaml:"open_interest_window" validate:"required,gt=0"`
}

// StorageConfig configures the persistence collaborators.
type StorageConfig struct {
	PostgresDSN string `yaml:"postgres_dsn" validate:"required"`
	RedisAddr   string `yaml:"redis_addr" validate:"required"`
}

// LoggingConfig configures the rotating logger.
type LoggingConfig struct {
	FilePath   string `yaml:"file_path" validate:"required"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"required,gt=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// HTTPConfig configures the read-only query surface.
type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr" validate:"required"`
}

// DecisionConfig holds the decision layer's tunable thresholds and the
// indicator family's configurable window sizes.
type DecisionConfig struct {
	LongThresholdInt   int     `yaml:"long_threshold_int" validate:"required"`
	ShortThresholdInt  int     `yaml:"short_threshold_int" validate:"required"`
	SLATRMultiplier    float64 `yaml:"sl_atr_multiplier" validate:"required,gt=0"`
	TPATRMultiplier    float64 `yaml:"tp_atr_multiplier" validate:"required,gt=0"`
	VolumeProfileWindow int    `yaml:"volume_profile_window" validate:"required,gt=0"`
	DivergenceWindow   int     `yaml:"divergence_window" validate:"required,gt=0"`
}

// EngineConfig is the top-level, validated configuration object.
type EngineConfig struct {
	CategoryWeights CategoryWeights `yaml:"category_weights" validate:"required"`
	Decision        DecisionConfig  `yaml:"decision" validate:"required"`
	Exchange        ExchangeConfig  `yaml:"exchange" validate:"required"`
	Storage         StorageConfig   `yaml:"storage" validate:"required"`
	Logging         LoggingConfig   `yaml:"logging" validate:"required"`
	HTTP            HTTPConfig      `yaml:"http" validate:"required"`
}

// Load reads configPath as YAML, overrides select fields from environment
// variables (a .env file loaded via godotenv, plus direct os.Getenv
// lookups), and validates the result. Every failure is surfaced as a
// model.ConfigError, never a bare error or panic.
func Load(configPath string) (*EngineConfig, error) {
	if err := godotenv.Load(); err != nil {
		// Absence of a .env file is not fatal; env vars may be set directly
		// by the process's environment (container, systemd unit, etc).
		_ = err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, model.NewConfigError("failed to read config file %q: %v", configPath, err)
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, model.NewConfigError("failed to parse config file %q: %v", configPath, err)
	}

	applyEnvOverrides(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, model.NewConfigError("config validation failed: %v", err)
	}

	if math.Abs(cfg.CategoryWeights.Sum()-1.0) > 1e-3 {
		return nil, model.NewConfigError(
			"category_weights must sum to 1.0 (±0.001), got %.6f", cfg.CategoryWeights.Sum(),
		)
	}

	if cfg.Decision.LongThresholdInt <= cfg.Decision.ShortThresholdInt {
		return nil, model.NewConfigError(
			"long_threshold_int (%d) must be greater than short_threshold_int (%d)",
			cfg.Decision.LongThresholdInt, cfg.Decision.ShortThresholdInt,
		)
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *EngineConfig) {
	if apiKey := os.Getenv("EXCHANGE_API_KEY"); apiKey != "" {
		cfg.Exchange.APIKey = apiKey
	}
	if secretKey := os.Getenv("EXCHANGE_SECRET_KEY"); secretKey != "" {
		cfg.Exchange.SecretKey = secretKey
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Storage.RedisAddr = addr
	}
	if addr := os.Getenv("HTTP_LISTEN_ADDR"); addr != "" {
		cfg.HTTP.ListenAddr = addr
	}
}

// Default returns the engine's documented defaults for the decision
// thresholds and indicator windows. Load does not apply them: a config file
// must set every decision field. runtime.New uses them for a zero-valued
// DecisionConfig, orchestrator.Evaluate for zero window sizes, and the chart
// tool passes them directly.
func Default() DecisionConfig {
	return DecisionConfig{
		LongThresholdInt:    3,
		ShortThresholdInt:   -3,
		SLATRMultiplier:     1.2,
		TPATRMultiplier:     2.0,
		VolumeProfileWindow: 100,
		DivergenceWindow:    14,
	}
}

// Command signalengine runs the perpetual-futures signal evaluation service:
// it loads configuration, wires the market-data and storage collaborators,
// starts the per-symbol evaluation loop, and serves the read-only HTTP
// surface.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/perpsignal/signal-engine/internal/api"
	"github.com/perpsignal/signal-engine/internal/config"
	"github.com/perpsignal/signal-engine/internal/logging"
	"github.com/perpsignal/signal-engine/internal/market"
	"github.com/perpsignal/signal-engine/internal/runtime"
	"github.com/perpsignal/signal-engine/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the engine configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer logger.Close()

	logger.Infof("🚀 Perpetual-futures signal engine starting")
	logger.Infof("⚙️  Tracking %d symbols, poll interval %s", len(cfg.Exchange.Symbols), cfg.Exchange.PollInterval)

	db, err := gorm.Open(postgres.Open(cfg.Storage.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Errorf("connect to postgres: %v", err)
		os.Exit(1)
	}
	postgresSink, err := store.NewPostgresSink(db)
	if err != nil {
		logger.Errorf("prepare signals table: %v", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
	sink := store.NewCachedSink(postgresSink, redisClient)

	provider := market.NewHTTPProvider(
		cfg.Exchange.BaseURL, cfg.Exchange.APIKey, cfg.Exchange.SecretKey,
		cfg.Exchange.RequestsPerMinute,
	)

	engine := runtime.New(runtime.Params{
		Symbols:       cfg.Exchange.Symbols,
		Interval:      "1m",
		CandleLimit:   cfg.Exchange.CandleLimit,
		FundingWindow: cfg.Exchange.FundingWindow,
		OIWindow:      cfg.Exchange.OpenInterestWindow,
		Decision:      cfg.Decision,
		PollInterval:  cfg.Exchange.PollInterval,
		MarketData:    provider,
		PerpData:      provider,
		Sink:          sink,
		Logger:        logger,
	})

	server := api.NewServer(sink)
	httpServer := &http.Server{Addr: cfg.HTTP.ListenAddr, Handler: server.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("🌐 HTTP surface listening on %s", cfg.HTTP.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server: %v", err)
		}
	}()

	go engine.Run(ctx)

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Exchange.PollInterval)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

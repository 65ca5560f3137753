// Package runtime implements the evaluation scheduler: one goroutine per
// tracked symbol, each polling its collaborators on a time.Ticker and
// invoking the core pipeline.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/perpsignal/signal-engine/internal/config"
	"github.com/perpsignal/signal-engine/internal/logging"
	"github.com/perpsignal/signal-engine/internal/market"
	"github.com/perpsignal/signal-engine/internal/orchestrator"
	"github.com/perpsignal/signal-engine/internal/store"
	"github.com/perpsignal/signal-engine/pkg/model"
)

// Engine owns one evaluation loop per tracked symbol. No state is shared
// between symbols' loops — every poll constructs a fresh indicator family
// inside orchestrator.Evaluate.
type Engine struct {
	symbols       []string
	interval      string
	candleLimit   int
	fundingWindow int
	oiWindow      int
	decision      config.DecisionConfig

	marketData market.MarketDataProvider
	perpData   market.PerpMetricsProvider
	sink       store.SignalSink
	logger     *logging.Logger

	pollInterval time.Duration

	wg sync.WaitGroup
}

// Params configures one Engine.
type Params struct {
	Symbols       []string
	Interval      string
	CandleLimit   int
	FundingWindow int
	OIWindow      int
	Decision      config.DecisionConfig
	PollInterval  time.Duration
	MarketData    market.MarketDataProvider
	PerpData      market.PerpMetricsProvider
	Sink          store.SignalSink
	Logger        *logging.Logger
}

func New(p Params) *Engine {
	decision := p.Decision
	if decision == (config.DecisionConfig{}) {
		decision = config.Default()
	}
	return &Engine{
		symbols:       p.Symbols,
		interval:      p.Interval,
		candleLimit:   p.CandleLimit,
		fundingWindow: p.FundingWindow,
		oiWindow:      p.OIWindow,
		decision:      decision,
		marketData:    p.MarketData,
		perpData:      p.PerpData,
		sink:          p.Sink,
		logger:        p.Logger,
		pollInterval:  p.PollInterval,
	}
}

// Run starts one polling goroutine per symbol and blocks until ctx is
// cancelled.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Infof("Signal engine started tracking %d symbols", len(e.symbols))

	for _, symbol := range e.symbols {
		e.wg.Add(1)
		go e.runSymbol(ctx, symbol)
	}
	e.wg.Wait()
}

func (e *Engine) runSymbol(ctx context.Context, symbol string) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	e.pollOnce(ctx, symbol)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.pollOnce(ctx, symbol)
		}
	}
}

func (e *Engine) pollOnce(ctx context.Context, symbol string) {
	candles, err := e.marketData.Fetch(ctx, symbol, e.interval, e.candleLimit)
	if err != nil {
		e.logger.Errorf("fetch candles for %s: %v", symbol, err)
		return
	}

	funding, err := e.perpData.FundingHistory(ctx, symbol, e.fundingWindow)
	if err != nil {
		e.logger.Warnf("fetch funding history for %s: %v", symbol, err)
	}
	openInterest, err := e.perpData.OpenInterestHistory(ctx, symbol, e.oiWindow)
	if err != nil {
		e.logger.Warnf("fetch open interest history for %s: %v", symbol, err)
	}

	out, err := orchestrator.Evaluate(candles, symbol, funding, openInterest, e.decision)
	if err != nil {
		// Ordering/invalid-candle errors are local to this symbol and must
		// not abort the sweep of other symbols.
		e.logger.Errorf("evaluate %s: %v", symbol, err)
		return
	}
	if out == nil {
		e.logger.Infof("%s: insufficient data (%d candles)", symbol, len(candles))
		return
	}

	if err := e.sink.Store(ctx, out); err != nil {
		e.logger.Errorf("store signal for %s: %v", symbol, err)
		return
	}

	if out.Direction != model.DirectionNeutral {
		e.logger.Signalf(symbol, "%s bias=%s confidence=%.2f risk=%s sl=%.4f%% tp=%.4f%%",
			out.Direction, out.MarketBias, out.Confidence, out.RiskLevel,
			out.RecommendedSLPct*100, out.RecommendedTPPct*100)
	}
}

package market

import (
	"context"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// FakeProvider replays a literal in-memory candle and Perp-series seed. It
// implements both MarketDataProvider and PerpMetricsProvider and is used by
// tests that should not depend on network access.
type FakeProvider struct {
	Candles             map[string][]model.Candle
	FundingSeries       map[string][]float64
	OpenInterestSeries  map[string][]float64
}

// NewFakeProvider constructs an empty fake; populate the maps directly or
// via Seed.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Candles:            make(map[string][]model.Candle),
		FundingSeries:      make(map[string][]float64),
		OpenInterestSeries: make(map[string][]float64),
	}
}

// Seed registers a symbol's candle history and Perp series in one call.
func (f *FakeProvider) Seed(symbol string, candles []model.Candle, funding, openInterest []float64) {
	f.Candles[symbol] = candles
	f.FundingSeries[symbol] = funding
	f.OpenInterestSeries[symbol] = openInterest
}

// Fetch implements MarketDataProvider: returns up to the last `limit`
// candles for symbol, in ascending order.
func (f *FakeProvider) Fetch(_ context.Context, symbol, _ string, limit int) ([]model.Candle, error) {
	all, ok := f.Candles[symbol]
	if !ok {
		return nil, &PermanentError{Err: errSymbolNotSeeded(symbol)}
	}
	if limit > 0 && len(all) > limit {
		return all[len(all)-limit:], nil
	}
	return all, nil
}

// FundingHistory implements PerpMetricsProvider.
func (f *FakeProvider) FundingHistory(_ context.Context, symbol string, window int) ([]float64, error) {
	return tailFloats(f.FundingSeries[symbol], window), nil
}

// OpenInterestHistory implements PerpMetricsProvider.
func (f *FakeProvider) OpenInterestHistory(_ context.Context, symbol string, window int) ([]float64, error) {
	return tailFloats(f.OpenInterestSeries[symbol], window), nil
}

func tailFloats(series []float64, window int) []float64 {
	if window > 0 && len(series) > window {
		return series[len(series)-window:]
	}
	return series
}

type symbolNotSeededError struct{ symbol string }

func (e symbolNotSeededError) Error() string { return "no seed data for symbol " + e.symbol }

func errSymbolNotSeeded(symbol string) error { return symbolNotSeededError{symbol: symbol} }

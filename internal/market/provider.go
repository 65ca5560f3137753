// Package market implements the collaborator contracts the core pipeline
// consumes but never constructs itself: candle history and Perp exogenous
// series. HTTPProvider talks to a real exchange-style REST API; FakeProvider
// replays literal seeds for tests.
package market

import (
	"context"
	"fmt"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// TransientError wraps a retryable provider failure (network timeout, 5xx,
// rate limit). PermanentError wraps a non-retryable one (bad symbol, 4xx
// other than rate-limit). The core is oblivious to either; internal/runtime
// logs both the same way and does not retry, leaving the next poll to the
// ticker.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return fmt.Sprintf("transient: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return fmt.Sprintf("permanent: %v", e.Err) }
func (e *PermanentError) Unwrap() error { return e.Err }

// MarketDataProvider fetches candle history for a symbol.
type MarketDataProvider interface {
	Fetch(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error)
}

// PerpMetricsProvider fetches the exogenous Perp-category series.
type PerpMetricsProvider interface {
	FundingHistory(ctx context.Context, symbol string, window int) ([]float64, error)
	OpenInterestHistory(ctx context.Context, symbol string, window int) ([]float64, error)
}

// Package indicator implements the ten stateful technical/perp indicators
// that make up the indicator family. Each indicator is an opaque state
// machine: it holds its own rolling buffers and running scalars, is fed one
// Tick at a time in ascending timestamp order, and returns at most one
// IndicatorSignal per tick. Indicators never share state and never reach
// into one another; SuperTrend computes its own ATR rather than reading
// another indicator's CurrentValue.
package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

// Tick is one step of the fold the orchestrator drives indicators with. It
// carries the candle plus, for the Perp category, the exogenous funding-rate
// and open-interest observations aligned to this bar (absent when the
// exogenous series is shorter than the candle history).
type Tick struct {
	Candle          model.Candle
	FundingRate     float64
	HasFunding      bool
	OpenInterest    float64
	HasOpenInterest bool
}

// Indicator is the common interface every member of the family implements.
type Indicator interface {
	// Name is the value stored in IndicatorSignal.IndicatorName.
	Name() string
	// Category is the fixed aggregation category this indicator belongs to.
	Category() model.Category
	// WarmupPeriod is the minimum number of ticks required before this
	// indicator is permitted to emit a non-neutral signal.
	WarmupPeriod() int
	// Update advances state with one new tick and returns the signal that
	// changed this step, or nil if nothing changed (including: warmup not
	// yet satisfied).
	Update(t Tick) *model.IndicatorSignal
	// CurrentValue exposes the latest scalar reading for observability
	// (e.g. the RSI value, the ATR value). Indicators with no single
	// natural scalar return 0.
	CurrentValue() float64
}

// New constructs one instance of each of the ten indicators, in category
// declaration order (this order drives the aggregator's reason ordering).
// The registry is compile-time static; there is no runtime plugin table.
// volumeProfileWindow sizes the Volume Profile's bucket history;
// divergenceWindow sizes the RSI and OBV divergence lookback.
func New(volumeProfileWindow, divergenceWindow int) []Indicator {
	return []Indicator{
		NewRSI(divergenceWindow),
		NewMACD(),
		NewEMACrossover(),
		NewSuperTrend(),
		NewBollinger(),
		NewATR(),
		NewOBV(divergenceWindow),
		NewVolumeProfile(volumeProfileWindow),
		NewFundingRate(),
		NewOpenInterest(),
	}
}

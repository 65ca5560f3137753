package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

// fundingWindow is the number of exogenous funding-rate observations the
// rolling mean is computed over. PerpMetricsProvider.FundingHistory is
// expected to hand back samples already bucketed to this cadence, so a "24h
// rolling mean" is expressed at the sampling rate the provider uses, not
// literally 1440 one-minute ticks.
const fundingWindow = 24

const (
	fundingCrowdThreshold  = 0.0001 // 0.01%
	fundingExtremeThreshold = 0.0005 // 0.05%
)

// FundingRate tracks the rolling mean of the funding-rate series and emits
// crowding/fade signals.
type FundingRate struct {
	rates []float64
	mean  float64
	ticks int
}

func NewFundingRate() *FundingRate {
	return &FundingRate{}
}

func (f *FundingRate) Name() string             { return "FundingRate" }
func (f *FundingRate) Category() model.Category { return model.CategoryPerp }
func (f *FundingRate) WarmupPeriod() int         { return fundingWindow }
func (f *FundingRate) CurrentValue() float64     { return f.mean }

// Mean returns the current rolling mean funding rate as a signed fraction
// (e.g. 0.0008 = 0.08%). Used by the aggregator's risk escalation and by the
// decision layer's funding-crowding override.
func (f *FundingRate) Mean() float64 { return f.mean }

func (f *FundingRate) Update(t Tick) *model.IndicatorSignal {
	if !t.HasFunding {
		return nil
	}
	f.ticks++
	f.rates = append(f.rates, t.FundingRate)
	if len(f.rates) > fundingWindow {
		f.rates = f.rates[len(f.rates)-fundingWindow:]
	}
	if len(f.rates) < fundingWindow {
		return nil
	}

	sum := 0.0
	for _, r := range f.rates {
		sum += r
	}
	f.mean = sum / float64(len(f.rates))

	if f.ticks < f.WarmupPeriod() {
		return nil
	}

	switch {
	case f.mean > fundingExtremeThreshold:
		return &model.IndicatorSignal{
			IndicatorName: f.Name(), Category: f.Category(), Kind: model.KindBearish,
			Strength: -2, Reason: "Extreme bias (long crowding)",
		}
	case f.mean < -fundingExtremeThreshold:
		return &model.IndicatorSignal{
			IndicatorName: f.Name(), Category: f.Category(), Kind: model.KindBullish,
			Strength: 2, Reason: "Extreme bias (short crowding)",
		}
	case f.mean > fundingCrowdThreshold:
		return &model.IndicatorSignal{
			IndicatorName: f.Name(), Category: f.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "Long crowding",
		}
	case f.mean < -fundingCrowdThreshold:
		return &model.IndicatorSignal{
			IndicatorName: f.Name(), Category: f.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "Short crowding",
		}
	}
	return nil
}

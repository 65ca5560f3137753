package orchestrator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perpsignal/signal-engine/internal/config"
	"github.com/perpsignal/signal-engine/pkg/model"
)

func genCandles(n int, priceAt func(i int) float64) []model.Candle {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, n)
	for i := 0; i < n; i++ {
		close := priceAt(i)
		candles[i] = model.Candle{
			Open: close, High: close * 1.001, Low: close * 0.999, Close: close,
			Volume: 1000, Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return candles
}

func TestEvaluate_InsufficientDataReturnsNilNil(t *testing.T) {
	candles := genCandles(minCandles-1, func(i int) float64 { return 100 })
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestEvaluate_OrderingViolationReturnsError(t *testing.T) {
	candles := genCandles(minCandles, func(i int) float64 { return 100 })
	candles[10].Timestamp = candles[9].Timestamp
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &model.CoreError{Kind: model.KindOrderingViolation}))
}

func TestEvaluate_InvalidCandleReturnsError(t *testing.T) {
	candles := genCandles(minCandles, func(i int) float64 { return 100 })
	candles[5].High = candles[5].Low - 1
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &model.CoreError{Kind: model.KindInvalidCandle}))
}

func TestEvaluate_StrongUptrendYieldsLong(t *testing.T) {
	candles := genCandles(200, func(i int) float64 { return 100 * math.Pow(1.002, float64(i)) })
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, model.DirectionLong, out.Direction)
	assert.GreaterOrEqual(t, out.TotalScore, 3)
}

func TestEvaluate_StrongDowntrendYieldsShort(t *testing.T) {
	candles := genCandles(200, func(i int) float64 { return 100 * math.Pow(0.998, float64(i)) })
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, model.DirectionShort, out.Direction)
	assert.LessOrEqual(t, out.TotalScore, -3)
}

func TestEvaluate_RangingMarketTendsNeutral(t *testing.T) {
	candles := genCandles(200, func(i int) float64 { return 100 + 2*math.Sin(float64(i)/5) })
	out, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.InDelta(t, 0, out.TotalScore, 6) // ranging markets should not reach a strong directional score
}

func TestEvaluate_ReversalFlipsDirection(t *testing.T) {
	down := genCandles(70, func(i int) float64 { return 200 - float64(i) })
	up := make([]model.Candle, 0, 130)
	last := down[len(down)-1]
	for i := 1; i <= 70; i++ {
		close := last.Close + float64(i)*1.5
		up = append(up, model.Candle{
			Open: close, High: close * 1.001, Low: close * 0.999, Close: close,
			Volume: 1000, Timestamp: last.Timestamp.Add(time.Duration(i) * time.Minute),
		})
	}
	all := append(down, up...)

	outAfterDown, err := Evaluate(all[:70], "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, outAfterDown)

	outAfterUp, err := Evaluate(all, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, outAfterUp)

	assert.NotEqual(t, outAfterDown.Direction, outAfterUp.Direction)
}

func TestEvaluate_FundingExtremeLongCrowdingWidensLongSLTP(t *testing.T) {
	priceAt := func(i int) float64 { return 100 * math.Pow(1.002, float64(i)) }
	candles := genCandles(200, priceAt)

	baseline, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, baseline)
	require.Equal(t, model.DirectionLong, baseline.Direction)

	funding := make([]float64, 200)
	for i := range funding {
		funding[i] = 0.001 // extreme long-crowding funding throughout
	}
	crowded, err := Evaluate(candles, "BTCUSDT", funding, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, crowded)
	require.Equal(t, model.DirectionLong, crowded.Direction)

	assert.Greater(t, crowded.RecommendedSLPct, baseline.RecommendedSLPct)
	assert.Greater(t, crowded.RecommendedTPPct, baseline.RecommendedTPPct)
}

func TestEvaluate_DeterministicOnReevaluation(t *testing.T) {
	candles := genCandles(150, func(i int) float64 { return 100 * math.Pow(1.001, float64(i)) })
	first, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	second, err := Evaluate(candles, "BTCUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluate_AlignsExogenousSeriesToTail(t *testing.T) {
	candles := genCandles(100, func(i int) float64 { return 100 })
	shortFunding := []float64{0.0001, 0.0001, 0.0001}
	out, err := Evaluate(candles, "BTCUSDT", shortFunding, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, out)
}

func TestEvaluate_TimestampAndSymbolAreStamped(t *testing.T) {
	candles := genCandles(minCandles, func(i int) float64 { return 100 })
	out, err := Evaluate(candles, "ETHUSDT", nil, nil, config.Default())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "ETHUSDT", out.Symbol)
	assert.Equal(t, candles[len(candles)-1].Timestamp, out.Timestamp)
}

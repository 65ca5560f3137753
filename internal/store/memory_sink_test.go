package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perpsignal/signal-engine/pkg/model"
)

func TestMemorySink_LatestReturnsNilForUnknownSymbol(t *testing.T) {
	sink := NewMemorySink()
	out, err := sink.Latest(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMemorySink_StoreThenLatestReturnsMostRecent(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	first := sampleOutput()
	first.TotalScore = 2
	require.NoError(t, sink.Store(ctx, first))

	second := sampleOutput()
	second.TotalScore = 7
	require.NoError(t, sink.Store(ctx, second))

	out, err := sink.Latest(ctx, "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 7, out.TotalScore)
}

func TestMemorySink_TracksSymbolsIndependently(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	btc := sampleOutput()
	btc.Symbol = "BTCUSDT"
	eth := sampleOutput()
	eth.Symbol = "ETHUSDT"
	eth.Direction = model.DirectionShort

	require.NoError(t, sink.Store(ctx, btc))
	require.NoError(t, sink.Store(ctx, eth))

	gotBTC, err := sink.Latest(ctx, "BTCUSDT")
	require.NoError(t, err)
	gotETH, err := sink.Latest(ctx, "ETHUSDT")
	require.NoError(t, err)

	assert.Equal(t, model.DirectionLong, gotBTC.Direction)
	assert.Equal(t, model.DirectionShort, gotETH.Direction)
}

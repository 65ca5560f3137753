package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMA(t *testing.T) {
	t.Run("undefined when too short", func(t *testing.T) {
		_, ok := SMA([]float64{1, 2}, 3)
		assert.False(t, ok)
	})

	t.Run("undefined when n <= 0", func(t *testing.T) {
		_, ok := SMA([]float64{1, 2, 3}, 0)
		assert.False(t, ok)
	})

	t.Run("averages the trailing n values", func(t *testing.T) {
		v, ok := SMA([]float64{10, 1, 2, 3}, 3)
		assert.True(t, ok)
		assert.InDelta(t, 2.0, v, 1e-9)
	})
}

func TestEMA(t *testing.T) {
	t.Run("undefined when too short", func(t *testing.T) {
		_, ok := EMA([]float64{1, 2}, 3)
		assert.False(t, ok)
	})

	t.Run("seeds from SMA then smooths forward", func(t *testing.T) {
		seq := []float64{1, 2, 3, 4, 5}
		v, ok := EMA(seq, 3)
		assert.True(t, ok)

		// seed = SMA(1,2,3) = 2; alpha = 2/4 = 0.5
		// step 4: 0.5*4 + 0.5*2 = 3
		// step 5: 0.5*5 + 0.5*3 = 4
		assert.InDelta(t, 4.0, v, 1e-9)
	})

	t.Run("exactly n values equals the seed SMA", func(t *testing.T) {
		v, ok := EMA([]float64{1, 2, 3}, 3)
		assert.True(t, ok)
		assert.InDelta(t, 2.0, v, 1e-9)
	})
}

func TestStdDev(t *testing.T) {
	t.Run("undefined when too short", func(t *testing.T) {
		_, ok := StdDev([]float64{1, 2}, 3)
		assert.False(t, ok)
	})

	t.Run("population stddev of trailing n values", func(t *testing.T) {
		v, ok := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
		assert.True(t, ok)
		assert.InDelta(t, 2.0, v, 1e-9)
	})

	t.Run("zero for constant series", func(t *testing.T) {
		v, ok := StdDev([]float64{5, 5, 5, 5}, 4)
		assert.True(t, ok)
		assert.InDelta(t, 0.0, v, 1e-9)
	})
}

func TestTrueRange(t *testing.T) {
	t.Run("first candle falls back to high-low", func(t *testing.T) {
		tr := TrueRange(110, 100, 0, false)
		assert.InDelta(t, 10.0, tr, 1e-9)
	})

	t.Run("gap up dominated by high-prevClose", func(t *testing.T) {
		tr := TrueRange(110, 105, 90, true)
		assert.InDelta(t, 20.0, tr, 1e-9)
	})

	t.Run("gap down dominated by prevClose-low", func(t *testing.T) {
		tr := TrueRange(95, 90, 120, true)
		assert.InDelta(t, 30.0, tr, 1e-9)
	})

	t.Run("no gap uses high-low", func(t *testing.T) {
		tr := TrueRange(105, 100, 102, true)
		assert.InDelta(t, 5.0, tr, 1e-9)
	})
}

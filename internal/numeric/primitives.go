// Package numeric holds the pure numeric primitives the indicator family is
// built on: SMA, EMA, population standard deviation and true range. Every
// function here propagates "undefined" (ok=false) instead of panicking or
// returning a sentinel zero value, so callers can treat undefined as "no
// signal yet" per spec.
package numeric

import "math"

// SMA returns the arithmetic mean of the last n values of seq. Undefined
// when len(seq) < n or n <= 0.
func SMA(seq []float64, n int) (float64, bool) {
	if n <= 0 || len(seq) < n {
		return 0, false
	}
	sum := 0.0
	for _, v := range seq[len(seq)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

// EMA returns the exponential moving average of seq with period n, seeded by
// the SMA of the first n values and smoothed forward with alpha = 2/(n+1).
// Undefined when len(seq) < n or n <= 0.
func EMA(seq []float64, n int) (float64, bool) {
	if n <= 0 || len(seq) < n {
		return 0, false
	}
	seed, ok := SMA(seq[:n], n)
	if !ok {
		return 0, false
	}
	alpha := 2.0 / float64(n+1)
	ema := seed
	for _, x := range seq[n:] {
		ema = alpha*x + (1-alpha)*ema
	}
	return ema, true
}

// StdDev returns the population standard deviation of the last n values of
// seq. Undefined when len(seq) < n or n <= 0.
func StdDev(seq []float64, n int) (float64, bool) {
	mean, ok := SMA(seq, n)
	if !ok {
		return 0, false
	}
	window := seq[len(seq)-n:]
	variance := 0.0
	for _, v := range window {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance), true
}

// TrueRange computes max(high-low, |high-prevClose|, |low-prevClose|). When
// hasPrevClose is false (the first candle in a stream), it returns high-low.
func TrueRange(high, low, prevClose float64, hasPrevClose bool) float64 {
	if !hasPrevClose {
		return high - low
	}
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}

// Command chart renders a generated synthetic close-price series plus
// EMA20/EMA50 overlays and emitted Long/Short markers to a PNG, for manual
// inspection of the evaluation pipeline's behavior. It fetches no market
// data; the symbol flag only labels the chart.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/perpsignal/signal-engine/internal/config"
	"github.com/perpsignal/signal-engine/internal/numeric"
	"github.com/perpsignal/signal-engine/internal/orchestrator"
	"github.com/perpsignal/signal-engine/pkg/model"
)

func main() {
	symbol := flag.String("symbol", "BTCUSDT", "symbol label for the chart title")
	out := flag.String("out", "chart.png", "output PNG path")
	count := flag.Int("candles", 180, "number of synthetic candles to generate for preview")
	step := flag.Float64("step", 1.002, "per-candle close multiplier (>1 uptrend, <1 downtrend)")
	flag.Parse()

	candles := syntheticCandles(*count, *step)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s preview (%d candles)", *symbol, len(candles))
	p.X.Label.Text = "Bar index"
	p.Y.Label.Text = "Close"

	closeLine := closeLinePlotter(candles)
	closeLine.Color = color.RGBA{R: 0, G: 0, B: 255, A: 180}
	closeLine.Width = vg.Points(1)
	p.Add(closeLine)

	if ema20 := emaOverlayPlotter(candles, 20); ema20 != nil {
		ema20.Color = color.RGBA{R: 255, G: 165, B: 0, A: 255}
		p.Add(ema20)
		p.Legend.Add("EMA20", ema20)
	}
	if ema50 := emaOverlayPlotter(candles, 50); ema50 != nil {
		ema50.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		p.Add(ema50)
		p.Legend.Add("EMA50", ema50)
	}

	longs, shorts := signalMarkers(candles, *symbol)
	if len(longs) > 0 {
		scatter, err := plotter.NewScatter(longs)
		if err == nil {
			scatter.Color = color.RGBA{R: 0, G: 200, B: 0, A: 255}
			scatter.Shape = draw.TriangleGlyph{}
			p.Add(scatter)
			p.Legend.Add("Long", scatter)
		}
	}
	if len(shorts) > 0 {
		scatter, err := plotter.NewScatter(shorts)
		if err == nil {
			scatter.Color = color.RGBA{R: 200, G: 0, B: 0, A: 255}
			scatter.Shape = draw.PyramidGlyph{}
			p.Add(scatter)
			p.Legend.Add("Short", scatter)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true

	writer, err := p.WriterTo(12*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		log.Fatalf("render plot: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %v", err)
	}
	defer f.Close()

	if _, err := writer.WriteTo(f); err != nil {
		log.Fatalf("write PNG: %v", err)
	}
	log.Printf("📈 wrote %s", *out)
}

func closeLinePlotter(candles []model.Candle) *plotter.Line {
	pts := make(plotter.XYs, len(candles))
	for i, c := range candles {
		pts[i] = plotter.XY{X: float64(i), Y: c.Close}
	}
	line, _ := plotter.NewLine(pts)
	return line
}

func emaOverlayPlotter(candles []model.Candle, period int) *plotter.Line {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	pts := make(plotter.XYs, 0, len(candles))
	for i := period; i <= len(closes); i++ {
		if v, ok := numeric.EMA(closes[:i], period); ok {
			pts = append(pts, plotter.XY{X: float64(i - 1), Y: v})
		}
	}
	if len(pts) == 0 {
		return nil
	}
	line, _ := plotter.NewLine(pts)
	return line
}

// signalMarkers replays the full evaluation pipeline over growing windows
// of the candle history and marks bar indices where direction is Long/Short.
func signalMarkers(candles []model.Candle, symbol string) (longs, shorts plotter.XYs) {
	decisionCfg := config.Default()
	for i := 60; i <= len(candles); i++ {
		out, err := orchestrator.Evaluate(candles[:i], symbol, nil, nil, decisionCfg)
		if err != nil || out == nil {
			continue
		}
		switch out.Direction {
		case model.DirectionLong:
			longs = append(longs, plotter.XY{X: float64(i - 1), Y: candles[i-1].Close})
		case model.DirectionShort:
			shorts = append(shorts, plotter.XY{X: float64(i - 1), Y: candles[i-1].Close})
		}
	}
	return longs, shorts
}

func syntheticCandles(n int, step float64) []model.Candle {
	candles := make([]model.Candle, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		open := price / step
		close := price
		high := close * 1.001
		low := close * 0.999
		candles = append(candles, model.Candle{
			Open: open, High: high, Low: low, Close: close,
			Volume: 1000, Timestamp: baseTime.Add(time.Duration(i) * time.Minute),
		})
		price *= step
	}
	return candles
}

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

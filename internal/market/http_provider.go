package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// HTTPProvider polls an exchange-style REST API for klines, funding-rate
// history, and open-interest history. It is rate-limited with
// golang.org/x/time/rate so a sweep across many tracked symbols never
// exceeds the configured requests-per-minute budget.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPProvider constructs a provider rate-limited to requestsPerMinute.
func NewHTTPProvider(baseURL, apiKey, secretKey string, requestsPerMinute int) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

func (p *HTTPProvider) do(ctx context.Context, path string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &TransientError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, &PermanentError{Err: err}
	}
	req.Header.Set("X-API-KEY", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &TransientError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	case resp.StatusCode >= 400:
		return nil, &PermanentError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}
	return body, nil
}

type rawKline struct {
	OpenTime  int64  `json:"open_time"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// Fetch implements MarketDataProvider by calling the exchange's klines
// endpoint, returning candles in ascending time order.
func (p *HTTPProvider) Fetch(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	path := fmt.Sprintf("/api/v1/klines?symbol=%s&interval=%s&limit=%d", symbol, interval, limit)
	body, err := p.do(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw []rawKline
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &TransientError{Err: fmt.Errorf("decode klines: %w", err)}
	}

	candles := make([]model.Candle, 0, len(raw))
	for _, k := range raw {
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		closeP, _ := strconv.ParseFloat(k.Close, 64)
		volume, _ := strconv.ParseFloat(k.Volume, 64)
		candles = append(candles, model.Candle{
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closeP,
			Volume:    volume,
			Timestamp: time.UnixMilli(k.OpenTime),
		})
	}
	return candles, nil
}

type rawSeries struct {
	Values []string `json:"values"`
}

// FundingHistory implements PerpMetricsProvider.
func (p *HTTPProvider) FundingHistory(ctx context.Context, symbol string, window int) ([]float64, error) {
	return p.fetchSeries(ctx, fmt.Sprintf("/api/v1/fundingRate?symbol=%s&limit=%d", symbol, window))
}

// OpenInterestHistory implements PerpMetricsProvider.
func (p *HTTPProvider) OpenInterestHistory(ctx context.Context, symbol string, window int) ([]float64, error) {
	return p.fetchSeries(ctx, fmt.Sprintf("/api/v1/openInterestHist?symbol=%s&limit=%d", symbol, window))
}

func (p *HTTPProvider) fetchSeries(ctx context.Context, path string) ([]float64, error) {
	body, err := p.do(ctx, path)
	if err != nil {
		return nil, err
	}
	var raw rawSeries
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &TransientError{Err: fmt.Errorf("decode series: %w", err)}
	}
	values := make([]float64, 0, len(raw.Values))
	for _, v := range raw.Values {
		f, _ := strconv.ParseFloat(v, 64)
		values = append(values, f)
	}
	return values, nil
}

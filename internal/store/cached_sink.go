package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perpsignal/signal-engine/pkg/model"
)

const latestSignalTTL = 5 * time.Minute

// CachedSink decorates any SignalSink with a Redis read-through cache of the
// latest signal per symbol. Writes go to both the cache and the underlying
// sink; reads try the cache first and fall through on a miss.
type CachedSink struct {
	underlying SignalSink
	client     *redis.Client
}

func NewCachedSink(underlying SignalSink, client *redis.Client) *CachedSink {
	return &CachedSink{underlying: underlying, client: client}
}

func (c *CachedSink) Store(ctx context.Context, out *model.SignalOutput) error {
	if err := c.underlying.Store(ctx, out); err != nil {
		return err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal signal for cache: %w", err)
	}
	return c.client.Set(ctx, cacheKey(out.Symbol), data, latestSignalTTL).Err()
}

func (c *CachedSink) Latest(ctx context.Context, symbol string) (*model.SignalOutput, error) {
	data, err := c.client.Get(ctx, cacheKey(symbol)).Result()
	if err == nil {
		var out model.SignalOutput
		if jsonErr := json.Unmarshal([]byte(data), &out); jsonErr == nil {
			return &out, nil
		}
		// corrupted cache entry; fall through to the underlying sink
		c.client.Del(ctx, cacheKey(symbol))
	} else if err != redis.Nil {
		// treat a Redis failure as a cache miss rather than failing the read
	}

	out, err := c.underlying.Latest(ctx, symbol)
	if err != nil || out == nil {
		return out, err
	}
	if data, marshalErr := json.Marshal(out); marshalErr == nil {
		c.client.Set(ctx, cacheKey(symbol), data, latestSignalTTL)
	}
	return out, nil
}

func cacheKey(symbol string) string {
	return "signal:latest:" + symbol
}

// Package pricing keeps a live fiat price per network with a
// last-known-good fallback.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/metrics"
	"github.com/vitwit/boostpay/types"
)

const DefaultRefreshInterval = 30 * time.Second

// Cache polls a Feed and serves the latest complete snapshot. A failed
// batch never replaces the snapshot in part.
type Cache struct {
	feed     Feed
	networks types.NetworkTable
	currency string
	interval time.Duration
	logger   logger.Logger
	metrics  metrics.Recorder
	now      func() time.Time

	mu        sync.RWMutex
	snapshot  types.PriceSnapshot
	succeeded bool
	lastErr   error
}

type Option func(*Cache)

func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		c.logger = logger.OrNoop(l)
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Cache) {
		c.metrics = metrics.OrNoop(r)
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithCurrency(currency string) Option {
	return func(c *Cache) {
		if currency != "" {
			c.currency = currency
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache returns a cache seeded from each network's fallback price.
func NewCache(feed Feed, networks types.NetworkTable, opts ...Option) *Cache {
	c := &Cache{
		feed:     feed,
		networks: networks,
		currency: "usd",
		interval: DefaultRefreshInterval,
		logger:   logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snapshot = c.fallbackSnapshot()
	return c
}

func (c *Cache) fallbackSnapshot() types.PriceSnapshot {
	prices := make(map[types.NetworkID]decimal.Decimal, len(c.networks))
	for _, p := range c.networks {
		prices[p.ID] = p.Fallback()
	}
	return types.PriceSnapshot{Prices: prices, FetchedAt: c.now(), Stale: true}
}

// Refresh fetches every network price in one batch. On success the
// snapshot is replaced atomically; on failure the previous snapshot is
// kept and marked stale.
func (c *Cache) Refresh(ctx context.Context) error {
	start := c.now()
	next, err := c.fetch(ctx)
	c.metrics.ObserveLatency(metrics.OpPriceRefresh, c.now().Sub(start), nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.snapshot.Stale = true
		c.lastErr = err
		c.metrics.IncCounter(metrics.PriceRefreshFailed, nil)
		c.logger.Warn("price refresh failed, serving last snapshot", map[string]any{
			"error":            err,
			"ever_succeeded":   c.succeeded,
			"snapshot_age_sec": int64(c.now().Sub(c.snapshot.FetchedAt).Seconds()),
		})
		return types.NewError(types.ErrPriceFetchFailed, "price refresh failed", err)
	}

	c.snapshot = next
	c.succeeded = true
	c.lastErr = nil
	c.metrics.IncCounter(metrics.PriceRefreshOK, nil)
	for id, p := range next.Prices {
		f, _ := p.Float64()
		c.metrics.SetGauge(c.currency, f, map[string]string{"network": string(id)})
	}
	c.logger.Debug("prices refreshed", map[string]any{"networks": len(next.Prices)})
	return nil
}

func (c *Cache) fetch(ctx context.Context) (types.PriceSnapshot, error) {
	if c.feed == nil {
		return types.PriceSnapshot{}, fmt.Errorf("no price feed configured")
	}
	raw, err := c.feed.FetchPrices(ctx, c.networks.FeedIDs(), c.currency)
	if err != nil {
		return types.PriceSnapshot{}, err
	}

	prices := make(map[types.NetworkID]decimal.Decimal, len(c.networks))
	for _, p := range c.networks {
		price, ok := raw[p.PriceFeedID]
		if !ok {
			return types.PriceSnapshot{}, fmt.Errorf("price missing for %s (%s)", p.ID, p.PriceFeedID)
		}
		if !price.IsPositive() {
			return types.PriceSnapshot{}, fmt.Errorf("non-positive price %s for %s", price, p.ID)
		}
		prices[p.ID] = price
	}
	return types.PriceSnapshot{Prices: prices, FetchedAt: c.now()}, nil
}

// Run refreshes immediately and then on every interval until ctx is done.
// Failures are logged and do not stop the loop.
func (c *Cache) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Price returns the current price for id, never zero or negative.
func (c *Cache) Price(id types.NetworkID) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.snapshot.Price(id)
	if !ok {
		return decimal.Zero, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no price for network %s", id),
		}
	}
	return p, nil
}

// Snapshot returns a copy of the current snapshot.
func (c *Cache) Snapshot() types.PriceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Clone()
}

// LastError returns the error of the most recent refresh, if it failed.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Cache) Interval() time.Duration {
	return c.interval
}

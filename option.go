package boostpay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vitwit/boostpay/clients"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/metrics"
	"github.com/vitwit/boostpay/pricing"
	"github.com/vitwit/boostpay/wallet"
)

type Option func(*Engine)

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// WithPrometheusRegisterer is where collectors are registered when
// EnableMetrics is set and no Recorder was given.
func WithPrometheusRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

func WithTimeout(t time.Duration) Option {
	return func(e *Engine) {
		e.timeout = t
	}
}

// WithPriceFeed replaces the CoinGecko feed.
func WithPriceFeed(f pricing.Feed) Option {
	return func(e *Engine) {
		e.feed = f
	}
}

// WithSolanaLedger replaces the JSON-RPC client used for blockhashes and
// broadcast.
func WithSolanaLedger(l clients.SolanaLedger) Option {
	return func(e *Engine) {
		e.ledger = l
	}
}

func WithRegistry(r *wallet.Registry) Option {
	return func(e *Engine) {
		e.wallets = r
	}
}

// Package boostpay sells listing boosts and donations for native coins on
// Solana and EVM chains. An Engine owns the price cache, the wallet
// registry and the per-family submitters; each checkout runs as a
// flow.Flow created by the Engine.
package boostpay

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/vitwit/boostpay/clients"
	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/flow"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/metrics"
	"github.com/vitwit/boostpay/payreq"
	"github.com/vitwit/boostpay/pricing"
	"github.com/vitwit/boostpay/settlement"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/utils"
	"github.com/vitwit/boostpay/wallet"
)

// Engine is the main entry point of the payment engine.
type Engine struct {
	config *types.Config

	logger     logger.Logger
	metrics    metrics.Recorder
	registerer prometheus.Registerer
	timeout    time.Duration
	feed       pricing.Feed
	ledger     clients.SolanaLedger
	wallets    *wallet.Registry

	prices  *pricing.Cache
	settler *settlement.Service

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Quote is a priced payment request for one network.
type Quote struct {
	Intent       types.PaymentIntent
	NativeAmount string
	SmallestUnit *big.Int
	Request      string
}

// New validates cfg and wires the engine. A nil cfg uses
// types.DefaultConfig.
func New(cfg *types.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	e := &Engine{config: cfg, timeout: cfg.DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	if e.timeout <= 0 {
		e.timeout = 30 * time.Second
	}
	if e.logger == nil {
		e.logger = logger.NewZapLogger(cfg.LogLevel)
	}
	if e.metrics == nil {
		if cfg.EnableMetrics {
			e.metrics = metrics.NewPrometheusRecorder(e.registerer)
		} else {
			e.metrics = metrics.NoopRecorder{}
		}
	}
	if e.feed == nil {
		e.feed = pricing.NewCoinGeckoFeed(resty.New().SetTimeout(e.timeout), cfg.PriceFeedURL)
	}
	if e.wallets == nil {
		e.wallets = wallet.NewRegistry(e.logger)
	}

	e.prices = pricing.NewCache(e.feed, cfg.Networks,
		pricing.WithLogger(e.logger),
		pricing.WithMetrics(e.metrics),
		pricing.WithInterval(cfg.RefreshInterval),
		pricing.WithCurrency(cfg.FiatCurrency),
	)

	clientOpts := []clients.Option{clients.WithLogger(e.logger), clients.WithMetrics(e.metrics)}
	var sol *clients.SolanaClient
	if e.ledger != nil {
		sol = clients.NewSolanaClient(e.ledger, cfg.AdvisoryNote, clientOpts...)
	} else {
		sol = clients.NewSolanaRPCClient(cfg.SolanaRPCURL, cfg.AdvisoryNote, clientOpts...)
	}

	e.settler = settlement.NewService(clients.NewEVMClient(clientOpts...), sol,
		settlement.WithLogger(e.logger),
		settlement.WithMetrics(e.metrics),
		settlement.WithAdvisoryNote(cfg.AdvisoryNote),
		settlement.WithAdvisoryPolicy(cfg.AdvisoryPolicy, cfg.AdvisoryMaxAttempts, cfg.AdvisoryRetryDelay),
	)

	e.logger.Info("boostpay engine ready", map[string]any{
		"networks": len(cfg.Networks),
		"policy":   string(cfg.AdvisoryPolicy),
	})
	return e, nil
}

// NewWithDefaults creates an engine with the production configuration.
func NewWithDefaults(opts ...Option) (*Engine, error) {
	return New(types.DefaultConfig(), opts...)
}

// Start launches the background price refresh. Calling it again while it
// runs is a no-op.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		e.prices.Run(runCtx)
	}(e.done)
}

// Refresh fetches prices once, bounded by the engine timeout.
func (e *Engine) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.prices.Refresh(ctx)
}

func (e *Engine) Prices() types.PriceSnapshot {
	return e.prices.Snapshot()
}

func (e *Engine) Networks() types.NetworkTable {
	return e.config.Networks
}

// Wallets is the registry connectors bind to.
func (e *Engine) Wallets() *wallet.Registry {
	return e.wallets
}

// IsNetworkSupported reports whether id is configured and has a submitter.
func (e *Engine) IsNetworkSupported(id types.NetworkID) bool {
	p, ok := e.config.Networks.Lookup(id)
	return ok && e.settler.Supports(p)
}

// NewFlow starts a boost checkout. The caller must Close it.
func (e *Engine) NewFlow(opts ...flow.Option) *flow.Flow {
	base := []flow.Option{
		flow.WithLogger(e.logger),
		flow.WithRequestOptions(e.boostOptions()),
	}
	return flow.New(e.config.Networks, e.prices, e.settler, e.wallets, append(base, opts...)...)
}

// Quote prices fiat on network id and encodes the boost payment request.
func (e *Engine) Quote(id types.NetworkID, fiat decimal.Decimal) (*Quote, error) {
	return e.quote(id, fiat, e.boostOptions())
}

// DonationRequest prices a charity donation on network id.
func (e *Engine) DonationRequest(id types.NetworkID, fiat decimal.Decimal) (*Quote, error) {
	return e.quote(id, fiat, payreq.DonationOptions())
}

func (e *Engine) quote(id types.NetworkID, fiat decimal.Decimal, opts payreq.Options) (*Quote, error) {
	profile, ok := e.config.Networks.Lookup(id)
	if !ok {
		return nil, &types.BoostError{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unknown network %q", id),
		}
	}
	if !fiat.IsPositive() {
		return nil, types.NewError(types.ErrConversionFailed, fmt.Sprintf("fiat amount must be positive, got %s", fiat), nil)
	}

	price, err := e.prices.Price(id)
	if err != nil {
		return nil, err
	}
	intent := conversion.NewIntent(fiat, profile, price, time.Now())
	native := conversion.NativeAmount(intent)

	units, err := conversion.SmallestUnit(intent)
	if err != nil {
		return nil, err
	}
	if units.Sign() == 0 {
		return nil, types.NewError(types.ErrConversionFailed,
			fmt.Sprintf("%s converts to zero %s", fiat, profile.NativeSymbol), nil)
	}

	uri, err := payreq.Encode(profile, native, opts)
	if err != nil {
		return nil, err
	}
	return &Quote{Intent: intent, NativeAmount: native, SmallestUnit: units, Request: uri}, nil
}

func (e *Engine) boostOptions() payreq.Options {
	return payreq.BoostOptions(e.config.RequestLabel, e.config.RequestMessage, e.config.AdvisoryNote)
}

// Close stops the background refresh and waits for it to exit.
func (e *Engine) Close() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if z, ok := e.logger.(*logger.ZapLogger); ok {
		_ = z.Sync()
	}
}

// Version information
const Version = "1.0.0"

// GetVersion returns version information.
func GetVersion() map[string]interface{} {
	return map[string]interface{}{
		"library_version":    Version,
		"supported_networks": types.DefaultNetworks().IDs(),
		"supported_families": []string{types.ChainEVM.String(), types.ChainSolana.String()},
		"boost_packs":        len(types.BoostPacks),
	}
}

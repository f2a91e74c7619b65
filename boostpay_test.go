package boostpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/boostpay"
	"github.com/vitwit/boostpay/logger"
	"github.com/vitwit/boostpay/types"
	"github.com/vitwit/boostpay/wallet"
	"github.com/vitwit/boostpay/wallet/wallettest"
)

func priceServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		_ = json.NewEncoder(w).Encode(map[string]map[string]float64{
			"solana":                  {"usd": 100},
			"ethereum":                {"usd": 3300},
			"polygon-ecosystem-token": {"usd": 0.2},
			"binancecoin":             {"usd": 550},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newEngine(t *testing.T, mutate func(*types.Config), opts ...boostpay.Option) *boostpay.Engine {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.PriceFeedURL = priceServer(t, nil).URL
	if mutate != nil {
		mutate(cfg)
	}
	base := []boostpay.Option{
		boostpay.WithLogger(logger.NoopLogger{}),
		boostpay.WithSolanaLedger(&wallettest.Ledger{}),
	}
	e, err := boostpay.New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEngineQuote(t *testing.T) {
	e := newEngine(t, nil)

	assert.True(t, e.Prices().Stale)
	require.NoError(t, e.Refresh(context.Background()))
	assert.False(t, e.Prices().Stale)

	q, err := e.Quote(types.NetworkSolana, decimal.NewFromInt(99))
	require.NoError(t, err)
	assert.Equal(t, "0.990000", q.NativeAmount)
	assert.Equal(t, "990000000", q.SmallestUnit.String())
	assert.Equal(t,
		"solana:z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD?amount=0.990000&label=Boost%20Payment&message=Boost%20payment&memo=I%20confirm%20this%20boost%20payment.",
		q.Request)
	assert.True(t, q.Intent.PriceAtCreation.Equal(decimal.NewFromInt(100)))
}

func TestEngineDonationRequest(t *testing.T) {
	e := newEngine(t, nil)
	require.NoError(t, e.Refresh(context.Background()))

	q, err := e.DonationRequest(types.NetworkEthereum, decimal.NewFromInt(types.DefaultDonationAmount))
	require.NoError(t, err)
	assert.Equal(t, "0.003030", q.NativeAmount)
	assert.Equal(t, "ethereum:0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095@1?value=3030000000000000", q.Request)

	q, err = e.DonationRequest(types.NetworkSolana, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Contains(t, q.Request, "label=Charity%20Donation&message=Donation%20to%20charity")
	assert.NotContains(t, q.Request, "memo=")
}

func TestEngineQuoteErrors(t *testing.T) {
	e := newEngine(t, nil)

	_, err := e.Quote("cosmoshub-4", decimal.NewFromInt(99))
	assert.Equal(t, types.ErrUnsupportedNetwork, types.ErrorCode(err))

	_, err = e.Quote(types.NetworkBase, decimal.Zero)
	assert.Equal(t, types.ErrConversionFailed, types.ErrorCode(err))

	_, err = e.Quote(types.NetworkEthereum, decimal.RequireFromString("0.0001"))
	assert.Equal(t, types.ErrConversionFailed, types.ErrorCode(err))
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Networks[0].RecipientAddress = cfg.Networks[1].RecipientAddress

	_, err := boostpay.New(cfg, boostpay.WithLogger(logger.NoopLogger{}))
	assert.Equal(t, types.ErrConfigError, types.ErrorCode(err))
}

func TestEngineFlowEndToEnd(t *testing.T) {
	e := newEngine(t, nil)
	require.NoError(t, e.Refresh(context.Background()))

	evm, err := wallettest.NewEVMWallet()
	require.NoError(t, err)
	require.NoError(t, e.Wallets().Bind(wallet.Binding{Family: types.ChainEVM, Connector: evm}))

	f := e.NewFlow()
	defer f.Close()
	require.NoError(t, f.SelectNetwork(types.NetworkBase))
	require.NoError(t, f.SetFiatAmount(decimal.NewFromInt(99)))

	res, err := f.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.030000", res.NativeAmount)
	assert.Equal(t, "30000000000000000", res.SmallestUnit)
	assert.True(t, res.AdvisorySigned)
	assert.Equal(t, uint64(8453), evm.ChainID())
}

func TestEngineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newEngine(t, func(c *types.Config) { c.EnableMetrics = true }, boostpay.WithPrometheusRegisterer(reg))
	require.NoError(t, e.Refresh(context.Background()))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "boostpay_events_total")
	assert.Contains(t, names, "boostpay_fiat_price")
}

func TestEngineStartClose(t *testing.T) {
	var hits atomic.Int32
	server := priceServer(t, &hits)
	e := newEngine(t, func(c *types.Config) {
		c.PriceFeedURL = server.URL
		c.RefreshInterval = 10 * time.Millisecond
	})

	e.Start(context.Background())
	e.Start(context.Background())
	require.Eventually(t, func() bool { return hits.Load() >= 2 }, time.Second, 5*time.Millisecond)

	e.Close()
	e.Close()

	assert.True(t, e.IsNetworkSupported(types.NetworkSolana))
	assert.False(t, e.IsNetworkSupported("cosmoshub-4"))
}

package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vitwit/boostpay/conversion"
	"github.com/vitwit/boostpay/mocks"
	"github.com/vitwit/boostpay/pricing"
	"github.com/vitwit/boostpay/types"
)

func livePrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"solana":                  decimal.RequireFromString("9.9"),
		"ethereum":                decimal.RequireFromString("3021.77"),
		"polygon-ecosystem-token": decimal.RequireFromString("0.2517"),
		"binancecoin":             decimal.RequireFromString("601.3"),
	}
}

func TestCache_SeededFromFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := pricing.NewCache(mocks.NewMockFeed(ctrl), types.DefaultNetworks())

	snap := cache.Snapshot()
	assert.True(t, snap.Stale)
	for _, p := range types.DefaultNetworks() {
		price, err := cache.Price(p.ID)
		require.NoError(t, err)
		assert.True(t, price.Equal(p.Fallback()), p.ID)
	}
}

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeed(ctrl)
	feed.EXPECT().
		FetchPrices(gomock.Any(), types.DefaultNetworks().FeedIDs(), "usd").
		Return(livePrices(), nil)

	cache := pricing.NewCache(feed, types.DefaultNetworks())
	require.NoError(t, cache.Refresh(context.Background()))

	snap := cache.Snapshot()
	assert.False(t, snap.Stale)
	assert.Equal(t, "9.9", snap.Prices[types.NetworkSolana].String())
	assert.Equal(t, "3021.77", snap.Prices[types.NetworkBase].String())
	assert.Equal(t, "3021.77", snap.Prices[types.NetworkEthereum].String())
}

func TestCache_FailureKeepsLastGoodSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeed(ctrl)
	gomock.InOrder(
		feed.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(livePrices(), nil),
		feed.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("503")),
	)

	cache := pricing.NewCache(feed, types.DefaultNetworks())
	require.NoError(t, cache.Refresh(context.Background()))

	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.ErrPriceFetchFailed, types.ErrorCode(err))
	assert.Error(t, cache.LastError())

	snap := cache.Snapshot()
	assert.True(t, snap.Stale)
	assert.Equal(t, "9.9", snap.Prices[types.NetworkSolana].String())
}

func TestCache_PartialBatchIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeed(ctrl)

	partial := livePrices()
	delete(partial, "binancecoin")
	zero := livePrices()
	zero["solana"] = decimal.Zero

	gomock.InOrder(
		feed.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(partial, nil),
		feed.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(zero, nil),
	)

	cache := pricing.NewCache(feed, types.DefaultNetworks())
	require.Error(t, cache.Refresh(context.Background()))
	require.Error(t, cache.Refresh(context.Background()))

	eth, err := cache.Price(types.NetworkEthereum)
	require.NoError(t, err)
	assert.Equal(t, "3000", eth.String())
	sol, err := cache.Price(types.NetworkSolana)
	require.NoError(t, err)
	assert.Equal(t, "125", sol.String())
}

func TestCache_FirstLoadFailureStillConverts(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeed(ctrl)
	feed.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("dns failure"))

	cache := pricing.NewCache(feed, types.DefaultNetworks())
	require.Error(t, cache.Refresh(context.Background()))

	price, err := cache.Price(types.NetworkSolana)
	require.NoError(t, err)
	assert.Equal(t, "0.792000", conversion.ToNativeAmount(decimal.NewFromInt(99), price))
}

func TestCache_UnknownNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := pricing.NewCache(mocks.NewMockFeed(ctrl), types.DefaultNetworks())

	_, err := cache.Price("dogechain")
	require.Error(t, err)
	assert.Equal(t, types.ErrUnsupportedNetwork, types.ErrorCode(err))
}

func TestCache_RunKeepsFiringAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockFeed(ctrl)

	calls := make(chan struct{}, 8)
	feed.EXPECT().
		FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []string, string) (map[string]decimal.Decimal, error) {
			calls <- struct{}{}
			return nil, errors.New("down")
		}).
		MinTimes(3)

	cache := pricing.NewCache(feed, types.DefaultNetworks(), pricing.WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh loop stopped firing")
		}
	}
	cancel()
	<-done
}

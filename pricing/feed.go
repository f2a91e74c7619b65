package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Feed fetches fiat prices for a batch of upstream identifiers in a
// single call.
type Feed interface {
	FetchPrices(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error)
}

const defaultCoinGeckoEndpoint = "https://api.coingecko.com/api/v3/simple/price"

// CoinGeckoFeed reads the CoinGecko simple price API.
type CoinGeckoFeed struct {
	client   *resty.Client
	endpoint string
}

var _ Feed = (*CoinGeckoFeed)(nil)

// NewCoinGeckoFeed builds a feed against endpoint, or the public API when
// endpoint is empty. A nil client gets a resty client with a 10s timeout.
func NewCoinGeckoFeed(client *resty.Client, endpoint string) *CoinGeckoFeed {
	ep := strings.TrimSpace(endpoint)
	if ep == "" {
		ep = defaultCoinGeckoEndpoint
	}
	if client == nil {
		client = resty.New().SetTimeout(10 * time.Second)
	}
	return &CoinGeckoFeed{client: client, endpoint: ep}
}

func (f *CoinGeckoFeed) FetchPrices(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("coingecko: no ids requested")
	}
	vs := strings.ToLower(strings.TrimSpace(currency))

	var payload map[string]map[string]decimal.Decimal
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("vs_currencies", vs).
		SetResult(&payload).
		ForceContentType("application/json").
		Get(f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("coingecko: request: %w", err)
	}
	if resp.IsError() {
		body := strings.TrimSpace(string(resp.Body()))
		if len(body) > 512 {
			body = body[:512]
		}
		return nil, fmt.Errorf("coingecko: status %d: %s", resp.StatusCode(), body)
	}

	prices := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		entry, ok := payload[id]
		if !ok {
			continue
		}
		if p, ok := entry[vs]; ok {
			prices[id] = p
		}
	}
	return prices, nil
}

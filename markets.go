package sxcclient

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
)

// ListMarkets lists all markets.
func (c *Client) ListMarkets(ctx context.Context) ([]Market, error) {
	var markets []Market
	err := c.call(ctx, c.params(http.MethodGet, c.endpoint("/markets"), nil, false), &markets)
	if err != nil {
		return nil, err
	}
	return markets, nil
}

// GetPrice gets the price snapshot of a given market. A market unknown to the
// exchange fails with an ErrCategoryInvalidMarket error.
func (c *Client) GetPrice(ctx context.Context, listingCurrency, referenceCurrency string) (*PriceTicker, error) {
	url := c.endpoint("/price/%s/%s", listingCurrency, referenceCurrency)

	body, err := c.sendRequest(ctx, c.params(http.MethodGet, url, nil, false))
	if err != nil {
		return nil, err
	}
	if emptyResponse(body) {
		return nil, errInvalidMarket()
	}

	var ticker PriceTicker
	if err := json.Unmarshal(body, &ticker); err != nil {
		return nil, err
	}
	return &ticker, nil
}

// ListPrices lists the price snapshots of all markets.
func (c *Client) ListPrices(ctx context.Context) ([]PriceTicker, error) {
	var tickers []PriceTicker
	err := c.call(ctx, c.params(http.MethodGet, c.endpoint("/prices"), nil, true), &tickers)
	if err != nil {
		return nil, err
	}
	return tickers, nil
}

// ListOrderBook lists the order book of a given market. A market unknown to
// the exchange fails with an ErrCategoryInvalidMarket error.
func (c *Client) ListOrderBook(ctx context.Context, listingCurrency, referenceCurrency string) (*OrderBook, error) {
	url := c.endpoint("/book/%s/%s", listingCurrency, referenceCurrency)

	body, err := c.sendRequest(ctx, c.params(http.MethodGet, url, nil, false))
	if err != nil {
		return nil, err
	}
	if emptyResponse(body) {
		return nil, errInvalidMarket()
	}

	var book OrderBook
	if err := json.Unmarshal(body, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListTrades lists the latest trades in a given market.
func (c *Client) ListTrades(ctx context.Context, listingCurrency, referenceCurrency string) ([]Trade, error) {
	url := c.endpoint("/trades/%s/%s", listingCurrency, referenceCurrency)

	var trades []Trade
	if err := c.call(ctx, c.params(http.MethodGet, url, nil, false), &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// ListFees gets general information about currencies, markets, trader levels
// and their fees. Use together with Client.GetUserInfo to resolve the fees
// applicable to the authenticated user.
func (c *Client) ListFees(ctx context.Context) (*FeesInfo, error) {
	var fees FeesInfo
	err := c.call(ctx, c.params(http.MethodGet, c.endpoint("/fees"), nil, false), &fees)
	if err != nil {
		return nil, err
	}
	return &fees, nil
}

// errInvalidMarket builds the error used when the exchange answers a market
// query with an empty body instead of a proper error response.
func errInvalidMarket() error {
	return &APIError{
		Category: ErrCategoryInvalidMarket,
		Message:  "Market does not exist",
	}
}

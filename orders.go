package sxcclient

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// PlaceOrder places an order in a given market and returns the order code.
// When limitPrice is nil the order executes at market price. When
// amountInReferenceCurrency is true the amount is interpreted in the
// reference currency instead of the listing currency.
func (c *Client) PlaceOrder(ctx context.Context, listingCurrency, referenceCurrency string, orderType OrderType,
	amount decimal.Decimal, limitPrice *decimal.Decimal, amountInReferenceCurrency bool) (string, error) {
	// The exchange expects plain JSON numbers in request payloads, so
	// decimals are converted at the boundary.
	payload := map[string]any{
		"listingCurrency":           listingCurrency,
		"referenceCurrency":         referenceCurrency,
		"type":                      orderType,
		"amount":                    amount.InexactFloat64(),
		"amountInReferenceCurrency": amountInReferenceCurrency,
	}
	if limitPrice != nil {
		payload["limitPrice"] = limitPrice.InexactFloat64()
	}

	var code string
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/placeOrder"), payload, true), &code)
	if err != nil {
		return "", err
	}
	return code, nil
}

// CancelOrder cancels a given order.
func (c *Client) CancelOrder(ctx context.Context, orderCode string) error {
	payload := map[string]any{
		"orderCode": orderCode,
	}
	return c.call(ctx, c.params(http.MethodPost, c.endpoint("/cancelOrder"), payload, true), nil)
}

// CancelMarketOrders cancels all orders in a given market.
func (c *Client) CancelMarketOrders(ctx context.Context, listingCurrency, referenceCurrency string) error {
	payload := map[string]any{
		"listingCurrency":   listingCurrency,
		"referenceCurrency": referenceCurrency,
	}
	return c.call(ctx, c.params(http.MethodPost, c.endpoint("/cancelMarketOrders"), payload, true), nil)
}

// ListPendingOrders lists all pending orders of the authenticated user.
func (c *Client) ListPendingOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/listOrders"), nil, true), &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder gets a given order. An unknown code yields a nil order.
func (c *Client) GetOrder(ctx context.Context, code string) (*Order, error) {
	payload := map[string]any{
		"code": code,
	}

	body, err := c.sendRequest(ctx, c.params(http.MethodPost, c.endpoint("/getOrder"), payload, true))
	if err != nil {
		return nil, err
	}
	if emptyResponse(body) {
		return nil, nil
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByCodes lists orders by their codes, one page at a time. pageSize
// is capped at MaxPageSize by the exchange.
func (c *Client) ListOrdersByCodes(ctx context.Context, codes []string, pageIndex, pageSize int) ([]Order, error) {
	if err := c.validatePage(pageIndex, pageSize); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"code":      codes,
		"pageIndex": pageIndex,
		"pageSize":  pageSize,
	}

	var orders []Order
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/getOrders"), payload, true), &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// pageParams carries the validated paging inputs of list endpoints.
type pageParams struct {
	PageIndex int `validate:"gte=0"`
	PageSize  int `validate:"gte=1,lte=50"`
}

// validatePage rejects out-of-range paging arguments before they reach the
// exchange, which would otherwise silently clamp them.
func (c *Client) validatePage(pageIndex, pageSize int) error {
	params := pageParams{PageIndex: pageIndex, PageSize: pageSize}
	if err := c.validate.Struct(&params); err != nil {
		return fmt.Errorf("invalid paging: %w", err)
	}
	return nil
}

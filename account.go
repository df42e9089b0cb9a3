package sxcclient

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// GetUserInfo gets the trader level of the authenticated user. Use
// Client.ListFees to resolve the actual fees applicable to that level.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/getUserInfo"), nil, true), &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListWallets retrieves the status of all exchange-side wallets.
func (c *Client) ListWallets(ctx context.Context) ([]Wallet, error) {
	var wallets []Wallet
	err := c.call(ctx, c.params(http.MethodGet, c.endpoint("/wallets"), nil, true), &wallets)
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

// ListBalances lists the non-zero balances of all currencies. Permission
// required: "List Balances".
func (c *Client) ListBalances(ctx context.Context) ([]Balance, error) {
	var balances []Balance
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/listBalances"), nil, true), &balances)
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// GenerateNewAddress generates a new deposit address for a given
// cryptocurrency. Permission required: "Generate New Address".
func (c *Client) GenerateNewAddress(ctx context.Context, currency string) (*NewAddress, error) {
	payload := map[string]any{
		"currency": currency,
	}

	var addr NewAddress
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/generateNewAddress"), payload, true), &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// ListAddresses lists deposit addresses of a given currency, one page at a
// time. pageSize is capped at MaxPageSize by the exchange.
func (c *Client) ListAddresses(ctx context.Context, currency string, pageIndex, pageSize int) (*AddressPage, error) {
	if err := c.validatePage(pageIndex, pageSize); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"currency":  currency,
		"pageIndex": pageIndex,
		"pageSize":  pageSize,
	}

	var page AddressPage
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/listAddresses"), payload, true), &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GenerateLnInvoice generates a new Lightning Network invoice for a given
// cryptocurrency and returns the payment request. Permission required:
// "Generate New Address".
func (c *Client) GenerateLnInvoice(ctx context.Context, currency string, amount decimal.Decimal) (string, error) {
	payload := map[string]any{
		"currency": currency,
		"amount":   amount.InexactFloat64(),
	}

	var invoice string
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/getLNInvoice"), payload, true), &invoice)
	if err != nil {
		return "", err
	}
	return invoice, nil
}

// Withdraw withdraws to a given destination. The destination receives the
// amount minus fees. Permission required: "Withdraw".
func (c *Client) Withdraw(ctx context.Context, currency, destination string,
	destinationType WithdrawalDestinationType, amount decimal.Decimal) (*WithdrawResult, error) {
	payload := map[string]any{
		"currency":        currency,
		"destination":     destination,
		"destinationType": destinationType,
		"amount":          amount.InexactFloat64(),
	}

	var result WithdrawResult
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/withdraw"), payload, true), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TransactionFilter narrows down what Client.ListTransactions returns.
//
// OptionalFilter is interpreted according to the transaction type: the order
// code for TransactionTypeTradesByOrderCode, the address id for
// TransactionTypeDepositsByAddressID. It is ignored for other types.
type TransactionFilter struct {
	// Currency restricts results to one currency code. Empty means all.
	Currency string

	// Type selects the ledger entry kind. Empty defaults to
	// TransactionTypeTransactions.
	//
	// Note: "transactions" returns trade transactions and buy fees; to get
	// the fee of a sell order query again with Currency set to the reference
	// currency and match on TradeID. TransactionTypeTradesByOrderCode
	// returns the matching trades along with both buy and sell fees.
	Type TransactionType

	// OptionalFilter qualifies types that need one, see above.
	OptionalFilter int64
}

// ListTransactions lists account ledger entries, one page at a time, sorted
// by date descending. pageSize is capped at MaxPageSize by the exchange.
// Permission required: "List Balances".
func (c *Client) ListTransactions(ctx context.Context, filter *TransactionFilter,
	pageIndex, pageSize int) (*TransactionPage, error) {
	if err := c.validatePage(pageIndex, pageSize); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &TransactionFilter{}
	}

	transactionType := filter.Type
	if transactionType == "" {
		transactionType = TransactionTypeTransactions
	}

	payload := map[string]any{
		"transactionType": transactionType,
		"pageIndex":       pageIndex,
		"pageSize":        pageSize,
		"sortField":       "Date",
		"descending":      true,
	}
	if filter.Currency != "" {
		payload["currency"] = filter.Currency
	}
	if transactionType == TransactionTypeTradesByOrderCode || transactionType == TransactionTypeDepositsByAddressID {
		payload["optionalFilter"] = filter.OptionalFilter
	}

	var page TransactionPage
	err := c.call(ctx, c.params(http.MethodPost, c.endpoint("/listTransactions"), payload, true), &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

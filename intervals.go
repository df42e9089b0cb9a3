package sxcclient

import "time"

// Market history granularities known to be served natively by the exchange.
// Other granularities may be requested, but the exchange is liable to return
// data at a different cadence without warning; see Client.ScrollMarketHistory.
const (
	Interval1m  = time.Minute
	Interval5m  = 5 * time.Minute
	Interval30m = 30 * time.Minute
	Interval1h  = time.Hour
	Interval6h  = 6 * time.Hour
	Interval12h = 12 * time.Hour
	Interval1d  = 24 * time.Hour
	Interval3d  = 3 * 24 * time.Hour
	Interval7d  = 7 * 24 * time.Hour
)

// OrderType is the side of an order.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// TransactionType selects which ledger entries the transactions endpoint
// returns.
type TransactionType string

const (
	TransactionTypeTransactions        TransactionType = "transactions"
	TransactionTypeDeposits            TransactionType = "deposits"
	TransactionTypeWithdrawals         TransactionType = "withdrawals"
	TransactionTypeDepositsWithdrawals TransactionType = "depositswithdrawals"
	TransactionTypeTradesByOrderCode   TransactionType = "tradesbyordercode"
	TransactionTypeDepositsByAddressID TransactionType = "depositsbyaddressid"
)

// WithdrawalDestinationType selects how a withdrawal destination is
// interpreted.
type WithdrawalDestinationType int

const (
	DestinationCryptoAddress    WithdrawalDestinationType = 0
	DestinationLightningInvoice WithdrawalDestinationType = 1
	DestinationUserEmailAddress WithdrawalDestinationType = 2
)

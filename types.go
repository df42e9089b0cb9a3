package sxcclient

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const (
	// responseTimeFormat is the zone-less timestamp layout used by the
	// exchange in response bodies. Timestamps are UTC by contract.
	responseTimeFormat = "2006-01-02T15:04:05"

	// responseTimeFormatFrac additionally accepts a fractional-seconds
	// component of up to microsecond resolution.
	responseTimeFormatFrac = "2006-01-02T15:04:05.999999"
)

// Time wraps time.Time to decode the exchange's zone-less timestamp strings
// into UTC-aware instants. Fractional seconds beyond microsecond resolution
// are truncated, matching what the exchange actually emits versus what it
// documents.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := parseResponseTime(s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// parseResponseTime converts a response timestamp string to a UTC instant.
// Strings with a fractional-seconds component have it truncated to six
// digits before parsing; strings without one use the whole-second layout.
func parseResponseTime(s string) (time.Time, error) {
	base, frac, found := strings.Cut(s, ".")
	if !found {
		t, err := time.ParseInLocation(responseTimeFormat, s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return t, nil
	}

	if len(frac) > 6 {
		frac = frac[:6]
	}

	t, err := time.ParseInLocation(responseTimeFormatFrac, base+"."+frac, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// Market identifies one listed market. The exchange returns markets as
// heterogeneous JSON arrays of the form ["DASH", "BTC", 5].
type Market struct {
	ListingCurrency   string // Listing (target) currency code
	ReferenceCurrency string // Reference currency code
	ID                int64  // Market identifier
}

// UnmarshalJSON implements json.Unmarshaler for the array form the exchange
// uses on the markets endpoint.
func (m *Market) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw) < 2 {
		return fmt.Errorf("market entry has %d elements, expected at least 2", len(raw))
	}

	listing, ok := raw[0].(string)
	if !ok {
		return fmt.Errorf("market listing currency is not a string (%+v)", raw[0])
	}
	m.ListingCurrency = listing

	reference, ok := raw[1].(string)
	if !ok {
		return fmt.Errorf("market reference currency is not a string (%+v)", raw[1])
	}
	m.ReferenceCurrency = reference

	if len(raw) > 2 {
		id, ok := raw[2].(float64)
		if !ok {
			return fmt.Errorf("market id is not a number (%+v)", raw[2])
		}
		m.ID = int64(id)
	}

	return nil
}

// PriceTicker is the current price snapshot of one market. Bid and Ask may be
// absent on markets with an empty book.
type PriceTicker struct {
	Market        string              `json:"Market,omitempty"` // "LISTING/REFERENCE", set on the list endpoint only
	Bid           decimal.NullDecimal `json:"Bid"`
	Ask           decimal.NullDecimal `json:"Ask"`
	Last          decimal.Decimal     `json:"Last"`
	Variation24Hr decimal.Decimal     `json:"Variation24Hr"`
	Volume24Hr    decimal.Decimal     `json:"Volume24Hr"`
	LastUpdate    Time                `json:"LastUpdate"` // Set on the list endpoint only
}

// HistoryPoint is one OHLCV bucket of market history.
type HistoryPoint struct {
	Date       Time            `json:"Date"` // Bucket timestamp, UTC
	PriceOpen  decimal.Decimal `json:"PriceOpen"`
	PriceHigh  decimal.Decimal `json:"PriceHigh"`
	PriceLow   decimal.Decimal `json:"PriceLow"`
	PriceClose decimal.Decimal `json:"PriceClose"`
	Volume     decimal.Decimal `json:"Volume"`
}

// OrderBookEntry is one price level of an order book side.
type OrderBookEntry struct {
	Index  int             `json:"Index"`
	Amount decimal.Decimal `json:"Amount"`
	Price  decimal.Decimal `json:"Price"`
}

// OrderBook is the current order book of one market.
type OrderBook struct {
	BuyOrders  []OrderBookEntry `json:"BuyOrders"`
	SellOrders []OrderBookEntry `json:"SellOrders"`
}

// Trade is one executed trade reported by the public trades endpoint.
type Trade struct {
	At     int64           `json:"At"` // Unix timestamp, seconds
	Amount decimal.Decimal `json:"Amount"`
	Price  decimal.Decimal `json:"Price"`
	Type   OrderType       `json:"Type"`
}

// CurrencyFees describes deposit/withdrawal limits and fees of one currency.
type CurrencyFees struct {
	Code           string          `json:"Code"`
	Name           string          `json:"Name"`
	Precision      int             `json:"Precision"`
	MinDeposit     decimal.Decimal `json:"MinDeposit"`
	DepositFeeMin  decimal.Decimal `json:"DepositFeeMin"`
	MinWithdraw    decimal.Decimal `json:"MinWithdraw"`
	WithdrawFee    decimal.Decimal `json:"WithdrawFee"`
	WithdrawFeeMin decimal.Decimal `json:"WithdrawFeeMin"`
	MinAmount      decimal.Decimal `json:"MinAmount"`
}

// MarketFees describes trading fees of one market.
type MarketFees struct {
	ListingCurrencyCode     string              `json:"ListingCurrencyCode"`
	ReferenceCurrencyCode   string              `json:"ReferenceCurrencyCode"`
	MakerFee                decimal.Decimal     `json:"MakerFee"`
	TakerFee                decimal.Decimal     `json:"TakerFee"`
	MinOrderListingCurrency decimal.NullDecimal `json:"MinOrderListingCurrency"`
	PricePrecision          *int                `json:"PricePrecision"`
}

// TraderLevel describes one volume-based fee rebate level.
type TraderLevel struct {
	Name              string          `json:"Name"`
	MinVolumeAmount   decimal.Decimal `json:"MinVolumeAmount"`
	MinVolumeCurrency string          `json:"MinVolumeCurrency"`
	MakerFeeRebate    decimal.Decimal `json:"MakerFeeRebate"`
	TakerFeeRebate    decimal.Decimal `json:"TakerFeeRebate"`
}

// FeesInfo aggregates general information about currencies, markets, trader
// levels and their fees.
type FeesInfo struct {
	Currencies   []CurrencyFees `json:"Currencies"`
	Markets      []MarketFees   `json:"Markets"`
	TraderLevels []TraderLevel  `json:"TraderLevels"`
}

// UserInfo is the account-level information of the authenticated user.
type UserInfo struct {
	TraderLevel string `json:"TraderLevel"`
}

// Wallet is the status of one exchange-side currency wallet.
type Wallet struct {
	Currency              string `json:"Currency"`
	CurrencyName          string `json:"CurrencyName"`
	LastUpdate            Time   `json:"LastUpdate"`
	Status                string `json:"Status"`
	Type                  string `json:"Type"`
	LastBlock             int64  `json:"LastBlock"`
	Version               string `json:"Version"`
	Connections           int    `json:"Connections"`
	RequiredConfirmations int    `json:"RequiredConfirmations"`
}

// Balance is the non-zero balance of one currency.
type Balance struct {
	Currency    string          `json:"Currency"`
	Deposited   decimal.Decimal `json:"Deposited"`
	Available   decimal.Decimal `json:"Available"`
	Unconfirmed decimal.Decimal `json:"Unconfirmed"`
}

// Order is one exchange order. PendingAmount and Status are populated by the
// order query endpoints; OriginalAmount by the pending-orders listing.
type Order struct {
	Code              string              `json:"Code"`
	Type              OrderType           `json:"Type"`
	Amount            decimal.Decimal     `json:"Amount"`
	OriginalAmount    decimal.Decimal     `json:"OriginalAmount"`
	PendingAmount     decimal.Decimal     `json:"PendingAmount"`
	LimitPrice        decimal.NullDecimal `json:"LimitPrice"`
	ListingCurrency   string              `json:"ListingCurrency"`
	ReferenceCurrency string              `json:"ReferenceCurrency"`
	Status            string              `json:"Status"`
	DateAdded         Time                `json:"DateAdded"`
}

// Address is one deposit address.
type Address struct {
	ID      int64  `json:"Id"`
	Address string `json:"Address"`
}

// AddressPage is one page of deposit addresses.
type AddressPage struct {
	TotalElements int       `json:"TotalElements"`
	Result        []Address `json:"Result"`
}

// WithdrawResult is the outcome of a withdrawal request.
type WithdrawResult struct {
	Status     string          `json:"Status"`
	Max        decimal.Decimal `json:"Max"`
	MaxDaily   decimal.Decimal `json:"MaxDaily"`
	MovementID int64           `json:"MovementId"`
}

// Transaction is one account ledger entry.
type Transaction struct {
	Date          Time            `json:"Date"`
	CurrencyCode  string          `json:"CurrencyCode"`
	Amount        decimal.Decimal `json:"Amount"`
	TotalBalance  decimal.Decimal `json:"TotalBalance"`
	Type          string          `json:"Type"`
	Status        string          `json:"Status"`
	Address       *string         `json:"Address"`
	Hash          *string         `json:"Hash"`
	Price         decimal.Decimal `json:"Price"`
	OtherAmount   decimal.Decimal `json:"OtherAmount"`
	OtherCurrency *string         `json:"OtherCurrency"`
	OrderCode     *string         `json:"OrderCode"`
	TradeID       *int64          `json:"TradeId"`
	MovementID    *int64          `json:"MovementId"`
	TransactionID int64           `json:"TransactionId"`
}

// TransactionPage is one page of account ledger entries.
type TransactionPage struct {
	TotalElements int           `json:"TotalElements"`
	Result        []Transaction `json:"Result"`
}

// NewAddress is the result of generating a deposit address.
type NewAddress struct {
	ID      int64  `json:"Id"`
	Address string `json:"Address"`
}

package sxcclient

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrorCategory identifies the kind of failure reported by the exchange.
//
// Categories form a closed set: every failed API call maps to exactly one of
// them. Responses whose body does not match any known error message fall back
// to ErrCategoryGeneric, preserving the raw message and status code for
// diagnosis.
type ErrorCategory int

const (
	// ErrCategoryGeneric is the fallback for unrecognized error responses.
	ErrCategoryGeneric ErrorCategory = iota

	// ErrCategoryAuthDataMissing indicates an authenticated operation was
	// attempted without both API access and secret keys configured. It is
	// raised before any network call is made.
	ErrCategoryAuthDataMissing

	// ErrCategoryInvalidKeyOrNonce indicates the API rejected the access key
	// or the request nonce.
	ErrCategoryInvalidKeyOrNonce

	// ErrCategoryInvalidHash indicates the request signature did not verify.
	ErrCategoryInvalidHash

	// ErrCategoryAnotherOrderInProcess indicates an order is already being
	// processed in the target market.
	ErrCategoryAnotherOrderInProcess

	// ErrCategoryNotEnoughBalance indicates insufficient funds for the
	// requested operation.
	ErrCategoryNotEnoughBalance

	// ErrCategoryNotEnoughPermission indicates the API key lacks the
	// permission required by the endpoint.
	ErrCategoryNotEnoughPermission

	// ErrCategoryTooManyOrders indicates the per-market open order limit was
	// reached.
	ErrCategoryTooManyOrders

	// ErrCategoryUnsupportedCurrency indicates the currency does not support
	// the requested feature (e.g. lightning invoices).
	ErrCategoryUnsupportedCurrency

	// ErrCategoryInvalidDestinationType indicates an unknown withdrawal
	// destination type.
	ErrCategoryInvalidDestinationType

	// ErrCategoryInvalidMarket indicates the requested market does not exist.
	ErrCategoryInvalidMarket

	// ErrCategoryMarketHistoryMismatch indicates market history came back
	// with a different granularity than requested. See
	// Client.ScrollMarketHistory for the conditions under which the exchange
	// silently does this.
	ErrCategoryMarketHistoryMismatch

	// ErrCategoryOrderAmountBelowMinimum indicates the order amount is below
	// the market minimum.
	ErrCategoryOrderAmountBelowMinimum
)

// String returns a human-readable name for the category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryAuthDataMissing:
		return "auth data missing"
	case ErrCategoryInvalidKeyOrNonce:
		return "invalid key or nonce"
	case ErrCategoryInvalidHash:
		return "invalid hash"
	case ErrCategoryAnotherOrderInProcess:
		return "another order in process"
	case ErrCategoryNotEnoughBalance:
		return "not enough balance"
	case ErrCategoryNotEnoughPermission:
		return "not enough permission"
	case ErrCategoryTooManyOrders:
		return "too many orders"
	case ErrCategoryUnsupportedCurrency:
		return "unsupported currency"
	case ErrCategoryInvalidDestinationType:
		return "invalid destination type"
	case ErrCategoryInvalidMarket:
		return "invalid market"
	case ErrCategoryMarketHistoryMismatch:
		return "market history mismatch"
	case ErrCategoryOrderAmountBelowMinimum:
		return "order amount below minimum"
	default:
		return "generic"
	}
}

// APIError carries a classified API failure: the matched category, the raw
// response body and the HTTP status code of the response that produced it.
// Precondition failures (missing auth data) and granularity-mismatch errors
// are reported with a zero status code since no response is involved.
type APIError struct {
	Category   ErrorCategory // Classified failure kind
	Message    string        // Raw response body (or synthesized message)
	StatusCode int           // HTTP status code, 0 when not response-driven
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("sxc: %s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("sxc: %s (status %d): %s", e.Category, e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCategory reports whether err is an *APIError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Category == category
}

// classificationRule pairs a message pattern with the category it implies.
type classificationRule struct {
	pattern  *regexp.Regexp
	category ErrorCategory
}

// classificationRules is the ordered rule table for mapping error response
// bodies to categories. Rules are evaluated in order and the first match
// wins. Patterns search the body, they do not need to match it entirely;
// the exchange wraps error messages in quotes, so the quotes are part of
// each pattern.
var classificationRules = []classificationRule{
	{regexp.MustCompile(`"Invalid API key or nonce"`), ErrCategoryInvalidKeyOrNonce},
	{regexp.MustCompile(`"Invalid API hash"`), ErrCategoryInvalidHash},
	{regexp.MustCompile(`"There is another order currently being processed in this market\. Please wait\."`), ErrCategoryAnotherOrderInProcess},
	{regexp.MustCompile(`"Not enough balance"`), ErrCategoryNotEnoughBalance},
	{regexp.MustCompile(`"API key with not enough permission"`), ErrCategoryNotEnoughPermission},
	{regexp.MustCompile(`"You cannot have more than \d+ orders in this market"`), ErrCategoryTooManyOrders},
	{regexp.MustCompile(`"Currency \w+ does not support lightning invoice"`), ErrCategoryUnsupportedCurrency},
	{regexp.MustCompile(`"Destination Type invalid"`), ErrCategoryInvalidDestinationType},
	{regexp.MustCompile(`"Market does not exist\."`), ErrCategoryInvalidMarket},
	{regexp.MustCompile(`"Amount below minimum"`), ErrCategoryOrderAmountBelowMinimum},
}

// classifyResponse decides success or failure for a completed API call.
//
// Status codes 200 and 204 are successes and yield nil. Any other status
// produces an *APIError whose category is selected by scanning the rule
// table against the UTF-8 decoded body, first match wins, with
// ErrCategoryGeneric as the fallback.
func classifyResponse(statusCode int, body []byte) error {
	if statusCode == 200 || statusCode == 204 {
		return nil
	}

	msg := string(body)
	category := ErrCategoryGeneric
	for _, rule := range classificationRules {
		if rule.pattern.MatchString(msg) {
			category = rule.category
			break
		}
	}

	return &APIError{
		Category:   category,
		Message:    msg,
		StatusCode: statusCode,
	}
}

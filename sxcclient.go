// Package sxcclient provides a typed Go client for the SouthXchange REST API (v4).
//
// The client covers public market data (markets, prices, order book, trades,
// market history) as well as authenticated account, order and wallet
// operations. Failed API calls are classified into a closed set of error
// categories by matching the response body against the error messages the
// exchange is known to return, so callers can branch on the failure kind
// instead of parsing message strings themselves.
//
// Key features:
//   - Chunked market-history scrolling that transparently honors the
//     exchange's 500-periods-per-request limit
//   - Financial precision using decimal.Decimal for price/amount data
//   - HMAC-SHA512 request signing with monotonically increasing nonces
//   - Structured logging with zerolog (disabled by default)
//   - Comprehensive input validation using struct tags and validator
package sxcclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// MaxMarketHistoryPeriods is the maximum number of periods the exchange
	// returns per market-history request. Larger values are silently reset
	// to this limit on the server side.
	MaxMarketHistoryPeriods = 500

	// MaxPageSize is the maximum page size accepted by paged endpoints.
	MaxPageSize = 50
)

var (
	// ErrInvalidConfig indicates that the provided Config contains invalid values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// defaultConfig provides sensible default configuration values for the client.
var defaultConfig = Config{
	BaseURL: "https://www.southxchange.com/api/v4",
	Timeout: 30 * time.Second,
}

// Config provides configuration parameters for the Client.
//
// Only credentials are required, and only when authenticated endpoints are
// used; a zero Config yields a working client for public market data.
type Config struct {
	// BaseURL is the root of the exchange REST API.
	BaseURL string

	// AccessKey is the API access key. Required for authenticated endpoints.
	AccessKey string

	// SecretKey is the API secret key. Required for authenticated endpoints.
	SecretKey string

	// HTTPClient overrides the HTTP client used for requests. When nil a
	// client with Timeout is used.
	HTTPClient *http.Client

	// Timeout is the per-request timeout applied when HTTPClient is nil.
	Timeout time.Duration

	// Logger receives structured request/response logs. When nil logging is
	// disabled.
	Logger *zerolog.Logger
}

// validateConfig ensures all required configuration fields are present and
// valid, applying defaults for optional fields when possible.
func validateConfig(cfg *Config, defaultCfg *Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCfg.BaseURL
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCfg.Timeout
	}

	return nil
}

// Client is a SouthXchange REST API client.
//
// A Client is stateless between calls and safe for concurrent use: it holds
// read-only credentials and configuration, every request is computed from its
// arguments alone.
type Client struct {
	config   Config              // Configuration parameters for the client
	http     *http.Client        // Underlying HTTP transport
	validate *validator.Validate // Validator instance for request parameters
	log      zerolog.Logger      // Structured logger, Nop unless configured
}

// NewClient creates a new SouthXchange API client with the specified
// configuration.
//
// If no configuration is provided (cfg is nil), the client will use default
// configuration values and can only call public endpoints.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &defaultConfig
	}

	if err := validateConfig(cfg, &defaultConfig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		config:   *cfg,
		http:     httpClient,
		validate: validator.New(),
		log:      log,
	}, nil
}

// endpoint builds a full URL for the given path segments.
func (c *Client) endpoint(format string, args ...any) string {
	return c.config.BaseURL + fmt.Sprintf(format, args...)
}

// params assembles requestParams for one call, attaching credentials so that
// authenticated requests can be signed.
func (c *Client) params(method, url string, payload map[string]any, authRequired bool) requestParams {
	return requestParams{
		method:       method,
		url:          url,
		payload:      payload,
		authRequired: authRequired,
		accessKey:    c.config.AccessKey,
		secretKey:    c.config.SecretKey,
	}
}

// sendRequest executes one API call end to end: auth precondition check,
// request building and signing, transport, and response classification.
//
// On success it returns the raw response body for the caller to decode; a 204
// response yields a nil body. On failure the returned error is an *APIError
// carrying the classified category, raw message and status code.
func (c *Client) sendRequest(ctx context.Context, p requestParams) (json.RawMessage, error) {
	if p.authRequired && (p.accessKey == "" || p.secretKey == "") {
		return nil, &APIError{
			Category: ErrCategoryAuthDataMissing,
			Message:  "request requires authentication, please provide API access and secret keys",
		}
	}

	req, err := p.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	c.log.Debug().
		Str("request_id", requestID).
		Str("method", p.method).
		Str("url", p.url).
		Bool("authenticated", p.authRequired).
		Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", requestID).Err(err).Msg("transport error")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(body)).
		Msg("received response")

	if err := classifyResponse(resp.StatusCode, body); err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	return body, nil
}

// call is a convenience wrapper around sendRequest that decodes the response
// body into out. A nil or empty body leaves out untouched.
func (c *Client) call(ctx context.Context, p requestParams, out any) error {
	body, err := c.sendRequest(ctx, p)
	if err != nil {
		return err
	}

	if out == nil || emptyResponse(body) {
		return nil
	}
	return json.Unmarshal(body, out)
}

// emptyResponse reports whether the body carries no decodable payload.
func emptyResponse(body json.RawMessage) bool {
	return len(body) == 0 || string(body) == "null"
}

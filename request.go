package sxcclient

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// requestParams describes one logical API call: where it goes, what it
// carries and whether it has to be signed. Instances are built per call and
// never reused.
type requestParams struct {
	method       string         // HTTP method
	url          string         // Fully built endpoint URL
	payload      map[string]any // Request payload, nil means empty
	authRequired bool           // Whether the endpoint needs a signed payload
	accessKey    string         // API access key, used only when authRequired
	secretKey    string         // API secret key, used only when authRequired
}

// lastNonce tracks the most recently issued nonce so that nonces are strictly
// increasing even when requests are issued within the same microsecond.
var lastNonce atomic.Int64

// nextNonce returns a strictly increasing nonce based on the current time in
// microseconds.
func nextNonce() int64 {
	for {
		last := lastNonce.Load()
		nonce := time.Now().UnixMicro()
		if nonce <= last {
			nonce = last + 1
		}
		if lastNonce.CompareAndSwap(last, nonce) {
			return nonce
		}
	}
}

// signedPayload returns the payload to send on the wire. For authenticated
// requests the access key and a fresh nonce are injected alongside the
// caller's payload, which is what the exchange verifies the signature
// against.
func (p *requestParams) signedPayload() map[string]any {
	if !p.authRequired {
		if p.payload == nil {
			return map[string]any{}
		}
		return p.payload
	}

	payload := map[string]any{
		"key":   p.accessKey,
		"nonce": nextNonce(),
	}
	for k, v := range p.payload {
		payload[k] = v
	}
	return payload
}

// sign computes the hex-encoded HMAC-SHA512 of the serialized payload using
// the secret key. The signature must be computed over the exact bytes sent as
// the request body.
func (p *requestParams) sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(p.secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// buildRequest serializes the payload and assembles the HTTP request,
// including the Hash signature header for authenticated calls. The exchange
// expects a JSON body on every request, GET included.
func (p *requestParams) buildRequest(ctx context.Context) (*http.Request, error) {
	body, err := json.Marshal(p.signedPayload())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, p.method, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if p.authRequired {
		req.Header.Set("Hash", p.sign(body))
	}

	return req, nil
}

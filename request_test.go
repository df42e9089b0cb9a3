package sxcclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NextNonce checks that nonces are strictly increasing even when drawn
// faster than the clock ticks.
func Test_NextNonce(t *testing.T) {
	const draws = 10000

	prev := nextNonce()
	for i := 0; i < draws; i++ {
		next := nextNonce()
		require.Greater(t, next, prev, "nonces must be strictly increasing")
		prev = next
	}
}

// Test_RequestParams_SignedPayload tests credential injection into the wire
// payload.
func Test_RequestParams_SignedPayload(t *testing.T) {
	t.Run("Public request passes payload through", func(t *testing.T) {
		p := requestParams{
			payload: map[string]any{"currency": "BTC"},
		}

		payload := p.signedPayload()
		assert.Equal(t, map[string]any{"currency": "BTC"}, payload)
	})

	t.Run("Public request with nil payload yields empty object", func(t *testing.T) {
		p := requestParams{}

		payload := p.signedPayload()
		assert.Empty(t, payload)
		assert.NotNil(t, payload, "the exchange expects a JSON object body, not null")
	})

	t.Run("Authenticated request injects key and nonce", func(t *testing.T) {
		p := requestParams{
			payload:      map[string]any{"orderCode": "60000000"},
			authRequired: true,
			accessKey:    "access",
			secretKey:    "secret",
		}

		payload := p.signedPayload()
		assert.Equal(t, "access", payload["key"])
		assert.Equal(t, "60000000", payload["orderCode"])

		nonce, ok := payload["nonce"].(int64)
		require.True(t, ok, "nonce should be an integer")
		assert.Positive(t, nonce)
	})

	t.Run("Caller payload is not mutated", func(t *testing.T) {
		original := map[string]any{"currency": "LTC"}
		p := requestParams{
			payload:      original,
			authRequired: true,
			accessKey:    "access",
			secretKey:    "secret",
		}

		_ = p.signedPayload()
		assert.NotContains(t, original, "key", "injection must not leak into the caller's map")
		assert.NotContains(t, original, "nonce")
	})
}

// Test_RequestParams_BuildRequest tests header assembly and signature
// computation on the assembled HTTP request.
func Test_RequestParams_BuildRequest(t *testing.T) {
	t.Run("Public request carries no signature", func(t *testing.T) {
		p := requestParams{
			method: "GET",
			url:    "https://example.test/api/v4/markets",
		}

		req, err := p.buildRequest(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", req.Header.Get("Pragma"))
		assert.Empty(t, req.Header.Get("Hash"))
	})

	t.Run("Signature verifies against the exact body bytes", func(t *testing.T) {
		p := requestParams{
			method:       "POST",
			url:          "https://example.test/api/v4/listBalances",
			authRequired: true,
			accessKey:    "access",
			secretKey:    "terces",
		}

		req, err := p.buildRequest(context.Background())
		require.NoError(t, err)

		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)

		mac := hmac.New(sha512.New, []byte("terces"))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		assert.Equal(t, expected, req.Header.Get("Hash"),
			"the Hash header must be the HMAC-SHA512 of the body as sent")

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "access", payload["key"])
		assert.Contains(t, payload, "nonce")
	})
}

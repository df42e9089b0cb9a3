package sxcclient

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_ParseResponseTime tests normalization of the exchange's timestamp
// strings, including fractional-second truncation.
func Test_ParseResponseTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    time.Time
		description string
	}{
		{
			name:        "Whole seconds",
			input:       "2022-01-01T00:00:00",
			expected:    time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			description: "Strings without a fraction should use the whole-second layout",
		},
		{
			name:        "Millisecond fraction",
			input:       "2022-11-06T16:50:23.277000",
			expected:    time.Date(2022, 11, 6, 16, 50, 23, 277000000, time.UTC),
			description: "Six-digit fractions should parse as microseconds",
		},
		{
			name:        "Short fraction",
			input:       "2022-11-06T16:50:23.2",
			expected:    time.Date(2022, 11, 6, 16, 50, 23, 200000000, time.UTC),
			description: "Fractions shorter than six digits should be accepted",
		},
		{
			name:        "Nine-digit fraction is truncated",
			input:       "2022-11-06T16:50:23.277123999",
			expected:    time.Date(2022, 11, 6, 16, 50, 23, 277123000, time.UTC),
			description: "Digits beyond microsecond resolution should be dropped",
		},
		{
			name:        "Garbage",
			input:       "not-a-timestamp",
			expectError: true,
			description: "Unparseable strings should error",
		},
		{
			name:        "Trailing dot",
			input:       "2022-01-01T00:00:00.",
			expectError: true,
			description: "A fraction separator without digits should error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponseTime(tt.input)

			if tt.expectError {
				assert.Error(t, err, tt.description)
				return
			}

			require.NoError(t, err, tt.description)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location(), "normalized instants should be UTC-tagged")
		})
	}
}

// Test_ParseResponseTime_TruncationEquivalence checks that a 9-digit fraction
// normalizes to the same instant as the same string pre-truncated to 6
// digits.
func Test_ParseResponseTime_TruncationEquivalence(t *testing.T) {
	long, err := parseResponseTime("2022-11-06T16:50:23.123456789")
	require.NoError(t, err)

	short, err := parseResponseTime("2022-11-06T16:50:23.123456")
	require.NoError(t, err)

	assert.True(t, long.Equal(short), "truncated and full-precision strings should agree")
}

// Test_Time_UnmarshalJSON tests decoding of timestamp fields embedded in
// response payloads.
func Test_Time_UnmarshalJSON(t *testing.T) {
	var point HistoryPoint
	raw := `{"Date": "2022-01-02T00:00:00", "PriceOpen": 0.077232438, "PriceHigh": 0.080658164,
		"PriceLow": 0.077179415, "PriceClose": 0.079098818, "Volume": 0.59452678}`

	require.NoError(t, json.Unmarshal([]byte(raw), &point))
	assert.Equal(t, time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), point.Date.Time)
	assert.Equal(t, "0.077232438", point.PriceOpen.String())
	assert.Equal(t, "0.59452678", point.Volume.String())

	var bad Time
	assert.Error(t, json.Unmarshal([]byte(`12345`), &bad), "non-string timestamps should error")
}

// Test_Market_UnmarshalJSON tests decoding of the heterogeneous market
// arrays.
func Test_Market_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    Market
		description string
	}{
		{
			name:        "Full entry",
			input:       `["DASH", "BTC", 5]`,
			expected:    Market{ListingCurrency: "DASH", ReferenceCurrency: "BTC", ID: 5},
			description: "Should decode listing, reference and id",
		},
		{
			name:        "Entry without id",
			input:       `["LTC", "BTC"]`,
			expected:    Market{ListingCurrency: "LTC", ReferenceCurrency: "BTC"},
			description: "The id element is optional",
		},
		{
			name:        "Too short",
			input:       `["LTC"]`,
			expectError: true,
			description: "Entries need at least two elements",
		},
		{
			name:        "Wrong element type",
			input:       `[1, "BTC", 5]`,
			expectError: true,
			description: "Currency codes must be strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Market
			err := json.Unmarshal([]byte(tt.input), &m)

			if tt.expectError {
				assert.Error(t, err, tt.description)
				return
			}

			require.NoError(t, err, tt.description)
			assert.Equal(t, tt.expected, m, tt.description)
		})
	}
}

// Test_PriceTicker_NullFields checks that markets with an empty book decode
// with absent bid/ask.
func Test_PriceTicker_NullFields(t *testing.T) {
	raw := `{"Bid": null, "Ask": 0.067808474, "Last": 0.068148556, "Variation24Hr": -8.38, "Volume24Hr": 2.63}`

	var ticker PriceTicker
	require.NoError(t, json.Unmarshal([]byte(raw), &ticker))

	assert.False(t, ticker.Bid.Valid, "null bid should decode as absent")
	assert.True(t, ticker.Ask.Valid)
	assert.Equal(t, "0.067808474", ticker.Ask.Decimal.String())
	assert.Equal(t, "0.068148556", ticker.Last.String())
}

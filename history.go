package sxcclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ScrollConfig tunes the behavior of Client.ScrollMarketHistory. The zero
// value enables strict granularity checking, which is what almost every
// caller wants.
type ScrollConfig struct {
	// AllowGranularityMismatch disables the per-batch granularity check.
	// Callers requesting non-canonical granularities need this, since the
	// exchange answers such requests with whatever cadence it sees fit.
	AllowGranularityMismatch bool
}

// MarketHistoryScroll walks a market-history time range one bounded window at
// a time. It is a forward-only, lazily evaluated sequence: each call to Next
// issues exactly one underlying API request and returns its batch. A scroll
// cannot be restarted; create a new one to retry from the beginning.
//
// A scroll is not safe for concurrent use.
type MarketHistoryScroll struct {
	client            *Client
	listingCurrency   string
	referenceCurrency string
	granularity       time.Duration
	strict            bool

	reqStart  time.Time // Start of the next window to request
	remaining int64     // Periods left to cover, scroll is done at <= 0
}

// scrollParams carries the validated inputs of a scroll request.
type scrollParams struct {
	ListingCurrency   string        `validate:"required"`
	ReferenceCurrency string        `validate:"required"`
	Start             time.Time     `validate:"required"`
	End               time.Time     `validate:"required,gtefield=Start"`
	Granularity       time.Duration `validate:"required,gt=0"`
}

// ScrollMarketHistory lists market history between two instants with the
// given granularity, transparently splitting the range into windows of at
// most MaxMarketHistoryPeriods periods. It is the chunked companion of
// Client.ListMarketHistory.
//
// The exchange treats a history range as inclusive on both ends, so
// consecutive windows are advanced one extra granularity step to avoid
// fetching boundary points twice. Batches therefore concatenate into gapless,
// duplicate-free coverage of [start, end].
//
// Unless cfg allows it, every batch with at least two points is checked
// against the requested granularity and a mismatch fails the scroll with an
// ErrCategoryMarketHistoryMismatch error. The exchange is known to silently
// return wrong-cadence data when (1) an arbitrary granularity outside the
// Interval constants is requested, (2) the pair was listed after start, or
// (3) end is relatively far in the future.
func (c *Client) ScrollMarketHistory(listingCurrency, referenceCurrency string, start, end time.Time,
	granularity time.Duration, cfg *ScrollConfig) (*MarketHistoryScroll, error) {
	if cfg == nil {
		cfg = &ScrollConfig{}
	}

	params := scrollParams{
		ListingCurrency:   listingCurrency,
		ReferenceCurrency: referenceCurrency,
		Start:             start,
		End:               end,
		Granularity:       granularity,
	}
	if err := c.validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid market history request: %w", err)
	}

	return &MarketHistoryScroll{
		client:            c,
		listingCurrency:   listingCurrency,
		referenceCurrency: referenceCurrency,
		granularity:       granularity,
		strict:            !cfg.AllowGranularityMismatch,
		reqStart:          start,
		remaining:         totalPeriods(start, end, granularity),
	}, nil
}

// totalPeriods computes ceil((end-start)/granularity).
func totalPeriods(start, end time.Time, granularity time.Duration) int64 {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return int64((span + granularity - 1) / granularity)
}

// More reports whether the scroll has windows left to fetch. It performs no
// I/O.
func (s *MarketHistoryScroll) More() bool {
	return s.remaining > 0
}

// Next fetches the next window and returns its batch of points, ordered by
// date ascending. It blocks for the duration of one underlying API call.
// After the scroll is exhausted Next returns (nil, nil).
//
// In strict mode a batch whose actual point spacing differs from the
// requested granularity fails with an ErrCategoryMarketHistoryMismatch error
// and the batch is not returned. Errors are not recoverable: the scroll
// should be discarded.
func (s *MarketHistoryScroll) Next(ctx context.Context) ([]HistoryPoint, error) {
	if s.remaining <= 0 {
		return nil, nil
	}

	reqPeriods := s.remaining
	if reqPeriods > MaxMarketHistoryPeriods {
		reqPeriods = MaxMarketHistoryPeriods
	}
	reqEnd := s.reqStart.Add(time.Duration(reqPeriods) * s.granularity)

	batch, err := s.client.ListMarketHistory(ctx, s.listingCurrency, s.referenceCurrency,
		s.reqStart, reqEnd, int(reqPeriods))
	if err != nil {
		return nil, err
	}

	if s.strict {
		if err := validateGranularity(batch, s.granularity); err != nil {
			return nil, err
		}
	}

	// The listing range is inclusive on both ends: shift the next window one
	// period past the end of this one so the boundary point is not fetched
	// twice, and account for the skipped period in the remaining count.
	s.reqStart = reqEnd.Add(s.granularity)
	s.remaining -= reqPeriods + 1

	return batch, nil
}

// validateGranularity checks the spacing of the first two points of a batch
// against the requested granularity. Batches with fewer than two points
// cannot be checked and pass.
func validateGranularity(batch []HistoryPoint, granularity time.Duration) error {
	if len(batch) < 2 {
		return nil
	}

	actual := batch[1].Date.Sub(batch[0].Date.Time)
	if actual != granularity {
		return &APIError{
			Category: ErrCategoryMarketHistoryMismatch,
			Message: fmt.Sprintf("granularity in the response does not match the requested one: %s vs %s",
				actual, granularity),
		}
	}
	return nil
}

// historyParams carries the validated inputs of a bounded history request.
type historyParams struct {
	ListingCurrency   string    `validate:"required"`
	ReferenceCurrency string    `validate:"required"`
	Start             time.Time `validate:"required"`
	End               time.Time `validate:"required,gtefield=Start"`
	Periods           int       `validate:"gte=1,lte=500"`
}

// ListMarketHistory lists market history between two instants as a single
// bounded request of at most MaxMarketHistoryPeriods periods. Dates are
// normalized to UTC instants; an empty response yields an empty slice.
//
// The difference between start and end should be aliquot to periods,
// otherwise the exchange may return unexpected data without any warning. As
// a rule of thumb (end-start)/periods should equal one of the Interval
// constants. Use Client.ScrollMarketHistory for ranges longer than the
// per-request limit.
func (c *Client) ListMarketHistory(ctx context.Context, listingCurrency, referenceCurrency string,
	start, end time.Time, periods int) ([]HistoryPoint, error) {
	params := historyParams{
		ListingCurrency:   listingCurrency,
		ReferenceCurrency: referenceCurrency,
		Start:             start,
		End:               end,
		Periods:           periods,
	}
	if err := c.validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid market history request: %w", err)
	}

	url := c.endpoint("/history/%s/%s/%d/%d/%d",
		listingCurrency, referenceCurrency, start.UnixMilli(), end.UnixMilli(), periods)

	var points []HistoryPoint
	if err := c.call(ctx, c.params(http.MethodGet, url, nil, false), &points); err != nil {
		return nil, err
	}

	if points == nil {
		points = []HistoryPoint{}
	}
	return points, nil
}

/*
Package main implements a command-line tool for fetching market history from
SouthXchange.

The tool scrolls OHLCV history for a market over an arbitrary time range,
transparently splitting it into windows the exchange accepts, and logs each
batch of points as it arrives.

Usage:

	go run main.go -listing=ETH -reference=BTC -days=30 -granularity=1h

The range end is always "now"; -days controls how far back the range starts.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	sxcclient "github.com/amid-flice/sxc-api-client"
)

// Command-line flags for selecting the market and time range
var (
	// listing is the listing (target) currency code of the market
	listing = flag.String("listing", "ETH", "Listing currency code")
	// reference is the reference currency code of the market
	reference = flag.String("reference", "BTC", "Reference currency code")
	// days controls how many days back from now the range starts
	days = flag.Int("days", 30, "Number of days of history to fetch")
	// granularity is the history bucket width
	granularity = flag.Duration("granularity", sxcclient.Interval1h, "History granularity (e.g. 1h, 30m, 24h)")
	// lenient disables the strict granularity check on responses
	lenient = flag.Bool("lenient", false, "Accept batches whose cadence differs from the requested granularity")
)

// main fetches and logs market history until the range is exhausted or the
// process is interrupted.
func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	if *days <= 0 {
		log.Fatal().Int("days", *days).Msg("days must be positive")
	}

	// Cancel the scroll on Ctrl+C / SIGTERM so a long fetch can be stopped
	// cleanly mid-range.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	client, err := sxcclient.NewClient(&sxcclient.Config{Logger: &log})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	end := time.Now().UTC().Truncate(*granularity)
	start := end.AddDate(0, 0, -*days)

	scroll, err := client.ScrollMarketHistory(*listing, *reference, start, end, *granularity,
		&sxcclient.ScrollConfig{AllowGranularityMismatch: *lenient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start history scroll")
	}

	batches := 0
	points := 0
	for scroll.More() {
		batch, err := scroll.Next(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("history scroll failed")
		}

		batches++
		points += len(batch)
		for _, p := range batch {
			fmt.Printf("%s  open=%s high=%s low=%s close=%s volume=%s\n",
				p.Date.Format(time.RFC3339), p.PriceOpen, p.PriceHigh, p.PriceLow, p.PriceClose, p.Volume)
		}
	}

	log.Info().
		Int("batches", batches).
		Int("points", points).
		Str("market", *listing+"/"+*reference).
		Msg("history fetch complete")
}

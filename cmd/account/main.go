/*
Package main implements a command-line tool for inspecting a SouthXchange
account.

The tool loads API credentials from the environment (optionally via a .env
file), then prints the account's trader level, non-zero balances and the
status of the exchange wallets backing them.

Usage:

	SXC_ACCESS_KEY=... SXC_SECRET_KEY=... go run main.go
*/
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	sxcclient "github.com/amid-flice/sxc-api-client"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	// A missing .env file is fine, credentials may come from the process
	// environment directly.
	_ = godotenv.Load()

	accessKey := os.Getenv("SXC_ACCESS_KEY")
	secretKey := os.Getenv("SXC_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		log.Fatal().Msg("SXC_ACCESS_KEY and SXC_SECRET_KEY must be set")
	}

	client, err := sxcclient.NewClient(&sxcclient.Config{
		AccessKey: accessKey,
		SecretKey: secretKey,
		Logger:    &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := client.GetUserInfo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get user info")
	}
	log.Info().Str("trader_level", info.TraderLevel).Msg("account")

	balances, err := client.ListBalances(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list balances")
	}
	for _, b := range balances {
		log.Info().
			Str("currency", b.Currency).
			Str("available", b.Available.String()).
			Str("deposited", b.Deposited.String()).
			Str("unconfirmed", b.Unconfirmed.String()).
			Msg("balance")
	}

	wallets, err := client.ListWallets(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list wallets")
	}
	for _, w := range wallets {
		log.Info().
			Str("currency", w.Currency).
			Str("status", w.Status).
			Int64("last_block", w.LastBlock).
			Time("last_update", w.LastUpdate.Time).
			Msg("wallet")
	}
}

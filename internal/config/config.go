// Package config loads runtime configuration the same way the teacher
// does: a Default() baseline, a FromEnv() overlay reading os.Getenv, now
// fronted by godotenv so a local .env file populates the process
// environment before FromEnv reads it. Fields are adapted from the
// teacher's BTC/ETH/TRX fee-and-poll-interval set down to the single
// Ethereum RPC endpoint, chain id, and EIP-1559 fee defaults this repo
// needs.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ethcore-go/ethcore/pkg/u256"
	"github.com/joho/godotenv"
)

// Config holds all configurable parameters for the ethcore CLI and its
// provider/wallet/txbuilder layers.
type Config struct {
	// RPCEndpoint is the JSON-RPC HTTP/WS URL the Provider dials.
	RPCEndpoint string

	// ChainID identifies the target network for EIP-155/1559 signing.
	ChainID uint64

	// BroadcastMaxRetries and ContextTimeout govern the transaction
	// builder's retry loop, unchanged in spirit from the teacher's.
	BroadcastMaxRetries int
	ContextTimeout      time.Duration

	// PollInterval is how often the block listener polls for new blocks.
	PollInterval time.Duration

	// GasTipCapDefault and GasFeeCapDefault are the EIP-1559 fee
	// defaults used when the caller doesn't specify its own, taking the
	// place of the teacher's flat ETHDefaultFee.
	GasTipCapDefault u256.U256
	GasFeeCapDefault u256.U256
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		RPCEndpoint: "http://localhost:8545",
		ChainID:     1,

		BroadcastMaxRetries: 3,
		ContextTimeout:      15 * time.Second,
		PollInterval:        1 * time.Second,

		GasTipCapDefault: u256.FromUint64(1_000_000_000),  // 1 gwei
		GasFeeCapDefault: u256.FromUint64(20_000_000_000), // 20 gwei
	}
}

// FromEnv returns a Config populated from environment variables, loading a
// ".env" file first (if present) so local development doesn't require
// exporting variables by hand, then falling back to defaults for unset
// values.
func FromEnv() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Default().Warn("config: .env load failed", "error", err)
	}

	cfg := Default()

	if v := os.Getenv("RPC_ENDPOINT"); v != "" {
		cfg.RPCEndpoint = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.ChainID = n
		}
	}
	if v := os.Getenv("BROADCAST_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BroadcastMaxRetries = n
		}
	}
	if v := os.Getenv("CONTEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ContextTimeout = d
		}
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PollInterval = d
		}
	}
	if v := os.Getenv("GAS_TIP_CAP_WEI"); v != "" {
		if u, err := u256.ParseDecimal(v); err == nil {
			cfg.GasTipCapDefault = u
		}
	}
	if v := os.Getenv("GAS_FEE_CAP_WEI"); v != "" {
		if u, err := u256.ParseDecimal(v); err == nil {
			cfg.GasFeeCapDefault = u
		}
	}

	return cfg
}

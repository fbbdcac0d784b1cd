// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration types for the GOLDX VM.
package config

import (
	"errors"
	"time"

	"github.com/CREESTL/FuseG/utils/wrappers"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
)

var (
	ErrNoCooldown         = errors.New("referral cooldown must be positive")
	ErrNoAPIAddress       = errors.New("api address is required")
	ErrNoMetricsNamespace = errors.New("metrics namespace is required")
	ErrNoDatabasePrefix   = errors.New("database prefix is required")
	ErrNoShutdownTimeout  = errors.New("shutdown timeout must be positive")
)

// Config contains the runtime parameters of the GOLDX VM.
type Config struct {
	// Fees applied when the genesis does not set any
	Fees ledger.FeeConfig `json:"fees"`
	// ReferralCooldown is how long a referral must wait between referrer changes
	ReferralCooldown time.Duration `json:"referralCooldown"`

	// APIAddress is where the JSON-RPC service and /metrics are served
	APIAddress string `json:"apiAddress"`
	// MetricsNamespace prefixes every exported metric
	MetricsNamespace string `json:"metricsNamespace"`
	// DatabasePrefix scopes the VM's keys inside the database
	DatabasePrefix string `json:"databasePrefix"`

	// ShutdownTimeout bounds how long the API server may take to stop
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// DefaultConfig returns the default configuration for the GOLDX VM.
func DefaultConfig() Config {
	return Config{
		Fees: ledger.FeeConfig{
			RateBps: 1000, // 10%
			Distribution: ledger.FeeDistribution{
				Holders:  70,
				Treasury: 10,
				Burn:     10,
				Referral: 10,
			},
		},
		ReferralCooldown: ledger.DefaultReferralCooldown,

		APIAddress:       "127.0.0.1:9660",
		MetricsNamespace: "goldxvm",
		DatabasePrefix:   "goldx",

		ShutdownTimeout: 10 * time.Second,
	}
}

// Verify returns the first invalid parameter.
func (c Config) Verify() error {
	errs := wrappers.Errs{}
	errs.Add(c.Fees.Verify())
	errs.Check(c.ReferralCooldown > 0, ErrNoCooldown)
	errs.Check(c.APIAddress != "", ErrNoAPIAddress)
	errs.Check(c.MetricsNamespace != "", ErrNoMetricsNamespace)
	errs.Check(c.DatabasePrefix != "", ErrNoDatabasePrefix)
	errs.Check(c.ShutdownTimeout > 0, ErrNoShutdownTimeout)
	return errs.Err
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require := require.New(t)

	cfg := DefaultConfig()
	require.NoError(cfg.Verify())
	require.Equal(uint16(1000), cfg.Fees.RateBps)
	require.Equal(ledger.DefaultReferralCooldown, cfg.ReferralCooldown)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr error
	}{
		{
			name:        "fee rate",
			mutate:      func(c *Config) { c.Fees.RateBps = 1501 },
			expectedErr: ledger.ErrRateOutOfRange,
		},
		{
			name:        "fee split",
			mutate:      func(c *Config) { c.Fees.Distribution.Burn++ },
			expectedErr: ledger.ErrBadSplit,
		},
		{
			name:        "cooldown",
			mutate:      func(c *Config) { c.ReferralCooldown = 0 },
			expectedErr: ErrNoCooldown,
		},
		{
			name:        "api address",
			mutate:      func(c *Config) { c.APIAddress = "" },
			expectedErr: ErrNoAPIAddress,
		},
		{
			name:        "shutdown timeout",
			mutate:      func(c *Config) { c.ShutdownTimeout = 0 },
			expectedErr: ErrNoShutdownTimeout,
		},
		{
			name: "first error wins",
			mutate: func(c *Config) {
				c.MetricsNamespace = ""
				c.DatabasePrefix = ""
			},
			expectedErr: ErrNoMetricsNamespace,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(&cfg)
			require.ErrorIs(t, cfg.Verify(), test.expectedErr)
		})
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/CREESTL/FuseG/utils/json"
	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"
)

var testFees = ledger.FeeConfig{
	RateBps: 1000,
	Distribution: ledger.FeeDistribution{
		Holders:  70,
		Treasury: 10,
		Burn:     10,
		Referral: 10,
	},
}

func newTestGenesis() *Genesis {
	return Default(
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		[]ids.ShortID{ids.GenerateTestShortID(), ids.GenerateTestShortID(), ids.GenerateTestShortID()},
	)
}

func TestDefault(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	require.NoError(g.Verify())
	require.Equal(units.Tokens(1_000_000).String(), g.TotalSupply().String())
}

func TestParseRoundTrip(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	b, err := g.Bytes()
	require.NoError(err)

	parsed, err := Parse(b)
	require.NoError(err)
	parsedBytes, err := parsed.Bytes()
	require.NoError(err)
	require.Equal(string(b), string(parsedBytes))
	require.Equal(g.TotalSupply().String(), parsed.TotalSupply().String())
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{"))
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Genesis)
		expectedErr error
	}{
		{
			name:        "no owner",
			mutate:      func(g *Genesis) { g.Owner = ids.ShortEmpty },
			expectedErr: ErrNoOwner,
		},
		{
			name:        "no miner",
			mutate:      func(g *Genesis) { g.Emission.Miner = ids.ShortEmpty },
			expectedErr: ErrNoMiner,
		},
		{
			name:        "no fee treasury",
			mutate:      func(g *Genesis) { g.FeeTreasury = ids.ShortEmpty },
			expectedErr: ErrNoFeeTreasury,
		},
		{
			name:        "no signers",
			mutate:      func(g *Genesis) { g.Treasury.Signers = nil },
			expectedErr: treasury.ErrNoSigners,
		},
		{
			name: "bad fees",
			mutate: func(g *Genesis) {
				fees := testFees
				fees.RateBps = 1501
				g.Fees = &fees
			},
			expectedErr: ledger.ErrRateOutOfRange,
		},
		{
			name: "vault allocated twice",
			mutate: func(g *Genesis) {
				g.Allocations[0].Address = g.Treasury.Address
			},
			expectedErr: ErrDuplicateAccount,
		},
		{
			name: "negative balance",
			mutate: func(g *Genesis) {
				g.Allocations[1].Balance = json.NewBigInt(units.Tokens(-1))
			},
			expectedErr: ErrNegativeBalance,
		},
		{
			name: "empty allocation",
			mutate: func(g *Genesis) {
				g.Allocations[1].Address = ids.ShortEmpty
			},
			expectedErr: ledger.ErrEmptyAddress,
		},
		{
			name: "no supply",
			mutate: func(g *Genesis) {
				g.Allocations = nil
				g.Emission.Balance = nil
				g.Treasury.Balance = json.NewBigInt(nil)
			},
			expectedErr: ErrNoSupply,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := newTestGenesis()
			test.mutate(g)
			require.ErrorIs(t, g.Verify(), test.expectedErr)
		})
	}
}

func TestLedgerConfig(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	cfg := g.LedgerConfig(testFees, ledger.DefaultReferralCooldown)
	require.Equal(testFees, cfg.Fees)
	require.Equal(g.FeeTreasury, cfg.Treasury)
	require.NotEqual(g.Treasury.Address, cfg.Treasury)
	require.Len(cfg.Allocations, 4)

	l, err := ledger.New(cfg, nil, nil)
	require.NoError(err)
	require.Equal(g.TotalSupply().String(), l.TotalSupply().String())
	for _, vault := range []ids.ShortID{g.Emission.Address, g.Treasury.Address} {
		require.True(l.IsExcluded(vault))
		require.True(l.IsWhitelisted(vault))
	}
	require.Equal(units.Tokens(600_000).String(), l.BalanceOf(g.Emission.Address).String())
}

func TestLedgerConfigFeeOverride(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	override := ledger.FeeConfig{
		RateBps: 500,
		Distribution: ledger.FeeDistribution{
			Holders: 100,
		},
	}
	g.Fees = &override
	require.NoError(g.Verify())
	require.Equal(override, g.LedgerConfig(testFees, ledger.DefaultReferralCooldown).Fees)
}

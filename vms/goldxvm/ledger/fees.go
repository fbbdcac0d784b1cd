// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "math/big"

const (
	// MaxFeeRateBps caps the transfer fee at 15%.
	MaxFeeRateBps uint16 = 1500
	// BasisPoints is the fee rate denominator.
	BasisPoints = 10_000
	// SplitTotal is what the four fee shares must sum to.
	SplitTotal = 100
)

var (
	basisPointDenom = big.NewInt(BasisPoints)
	splitDenom      = big.NewInt(SplitTotal)
)

// FeeDistribution is how a transfer fee is divided, in percent.
type FeeDistribution struct {
	Holders  uint8 `json:"holders"`
	Treasury uint8 `json:"treasury"`
	Burn     uint8 `json:"burn"`
	Referral uint8 `json:"referral"`
}

// Verify returns ErrBadSplit unless the four shares sum to exactly 100.
func (d FeeDistribution) Verify() error {
	if int(d.Holders)+int(d.Treasury)+int(d.Burn)+int(d.Referral) != SplitTotal {
		return ErrBadSplit
	}
	return nil
}

// FeeConfig is the fee charged on non-whitelisted transfers.
type FeeConfig struct {
	RateBps      uint16          `json:"rateBps"`
	Distribution FeeDistribution `json:"distribution"`
}

// Verify checks the rate range and the split.
func (c FeeConfig) Verify() error {
	if c.RateBps > MaxFeeRateBps {
		return ErrRateOutOfRange
	}
	return c.Distribution.Verify()
}

// feeSplit is one transfer's fee broken into its destinations. The shares sum
// to fee exactly; integer division dust goes to the holders share.
type feeSplit struct {
	fee      *big.Int
	net      *big.Int
	holders  *big.Int
	treasury *big.Int
	burn     *big.Int
	referral *big.Int
}

func (c FeeConfig) split(amount *big.Int) feeSplit {
	fee := new(big.Int).Mul(amount, big.NewInt(int64(c.RateBps)))
	fee.Quo(fee, basisPointDenom)

	share := func(pct uint8) *big.Int {
		s := new(big.Int).Mul(fee, big.NewInt(int64(pct)))
		return s.Quo(s, splitDenom)
	}
	s := feeSplit{
		fee:      fee,
		net:      new(big.Int).Sub(amount, fee),
		treasury: share(c.Distribution.Treasury),
		burn:     share(c.Distribution.Burn),
		referral: share(c.Distribution.Referral),
	}
	s.holders = new(big.Int).Sub(fee, s.treasury)
	s.holders.Sub(s.holders, s.burn)
	s.holders.Sub(s.holders, s.referral)
	return s
}

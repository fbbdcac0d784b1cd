// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

import "math/big"

// Decimals is the number of decimal places of the GOLDX token.
const Decimals = 18

// Denominations of value, in base units.
var (
	Wei       = big.NewInt(1)
	GWei      = big.NewInt(1_000_000_000)
	GoldX     = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)
	KiloGoldX = new(big.Int).Mul(GoldX, big.NewInt(1_000))
	MegaGoldX = new(big.Int).Mul(GoldX, big.NewInt(1_000_000))
)

// Tokens returns n whole tokens expressed in base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), GoldX)
}

// Fraction returns num/den of a whole token expressed in base units,
// truncated towards zero.
func Fraction(num, den int64) *big.Int {
	out := new(big.Int).Mul(big.NewInt(num), GoldX)
	return out.Quo(out, big.NewInt(den))
}

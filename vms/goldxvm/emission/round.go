// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"math/big"

	safemath "github.com/CREESTL/FuseG/utils/math"
)

// CoefficientScale is the fixed-point denominator of phase coefficients: a
// coefficient of CoefficientScale converts input one to one.
var CoefficientScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// round is one emission round. phase == len(coefficients) once every phase
// has been sold out.
type round struct {
	phaseSupply  *big.Int
	coefficients []*big.Int

	phase     uint64
	remaining *big.Int
	mined     *big.Int
	depleted  bool
}

func newRound(phaseSupply *big.Int, coefficients []*big.Int) *round {
	coeffs := make([]*big.Int, len(coefficients))
	for i, k := range coefficients {
		coeffs[i] = new(big.Int).Set(k)
	}
	return &round{
		phaseSupply:  new(big.Int).Set(phaseSupply),
		coefficients: coeffs,
		remaining:    new(big.Int).Set(phaseSupply),
		mined:        new(big.Int),
	}
}

func (r *round) phaseCount() uint64 {
	return uint64(len(r.coefficients))
}

// totalSupply is what the round releases if it is sold out.
func (r *round) totalSupply() *big.Int {
	return new(big.Int).Mul(r.phaseSupply, new(big.Int).SetUint64(r.phaseCount()))
}

// conversion is the outcome of converting one input against a round. It is
// computed without touching the round and applied only once the credit has
// been paid out.
type conversion struct {
	credited  *big.Int
	phase     uint64
	remaining *big.Int
	depleted  bool
}

// convert walks the phases starting at the current one. Each phase converts as
// much of the input as its remaining supply allows at its own coefficient; the
// input it consumed is rounded up so the remainder carried into the next phase
// is never overstated. Input left over after the last phase is dropped.
func (r *round) convert(input *big.Int) (conversion, error) {
	c := conversion{
		credited:  new(big.Int),
		phase:     r.phase,
		remaining: new(big.Int).Set(r.remaining),
	}
	left := new(big.Int).Set(input)
	for left.Sign() > 0 && c.phase < r.phaseCount() {
		k := r.coefficients[c.phase]
		out, err := safemath.MulDiv(left, k, CoefficientScale)
		if err != nil {
			return conversion{}, err
		}

		if out.Cmp(c.remaining) <= 0 {
			c.credited.Add(c.credited, out)
			c.remaining.Sub(c.remaining, out)
			if c.remaining.Sign() == 0 {
				c.advance(r)
			}
			return c, nil
		}

		consumed, err := safemath.MulDivRoundUp(c.remaining, CoefficientScale, k)
		if err != nil {
			return conversion{}, err
		}
		c.credited.Add(c.credited, c.remaining)
		left.Sub(left, safemath.MinBig(consumed, left))
		c.advance(r)
	}
	return c, nil
}

func (c *conversion) advance(r *round) {
	c.phase++
	c.remaining = new(big.Int).Set(r.phaseSupply)
	if c.phase == r.phaseCount() {
		c.depleted = true
	}
}

func (r *round) apply(c conversion) {
	r.mined.Add(r.mined, c.credited)
	r.phase = c.phase
	r.remaining = c.remaining
	r.depleted = r.depleted || c.depleted
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"math/big"
)

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("divide by zero")
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// MulDiv returns floor(a * b / d). The inputs are not modified.
func MulDiv(a, b, d *big.Int) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	out := new(big.Int).Mul(a, b)
	return out.Quo(out, d), nil
}

// MulDivRoundUp returns ceil(a * b / d) for non-negative inputs.
func MulDivRoundUp(a, b, d *big.Int) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	out := new(big.Int).Mul(a, b)
	rem := new(big.Int)
	out.QuoRem(out, d, rem)
	if rem.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return out, nil
}

// SubBig returns a - b, or ErrUnderflow if b > a.
func SubBig(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

// MinBig returns a copy of the smaller of a and b.
func MinBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// IsPositive reports whether x is non-nil and strictly greater than zero.
func IsPositive(x *big.Int) bool {
	return x != nil && x.Sign() > 0
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json provides JSON serialization utilities for numeric types.
package json

import (
	"errors"
	"math/big"
	"strconv"
)

const Null = "null"

var errInvalidBigInt = errors.New("invalid big integer")

// Uint64 is a uint64 that can be JSON marshaled as a string.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(u), 10) + `"`), nil
}

func (u *Uint64) UnmarshalJSON(b []byte) error {
	str := unquote(string(b))
	if str == Null {
		return nil
	}
	val, err := strconv.ParseUint(str, 10, 64)
	*u = Uint64(val)
	return err
}

// BigInt is an arbitrary precision integer that is JSON marshaled as a
// base-10 string. The zero value marshals as "0".
type BigInt struct {
	big.Int
}

// NewBigInt returns a BigInt holding a copy of x. A nil x yields zero.
func NewBigInt(x *big.Int) *BigInt {
	b := &BigInt{}
	if x != nil {
		b.Set(x)
	}
	return b
}

// Big returns a copy of the value as a *big.Int.
func (b *BigInt) Big() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(&b.Int)
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Int.String() + `"`), nil
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	str := unquote(string(data))
	if str == Null {
		return nil
	}
	if _, ok := b.Int.SetString(str, 10); !ok {
		return errInvalidBigInt
	}
	return nil
}

func unquote(str string) string {
	if len(str) >= 2 {
		if lastIndex := len(str) - 1; str[0] == '"' && str[lastIndex] == '"' {
			return str[1:lastIndex]
		}
	}
	return str
}

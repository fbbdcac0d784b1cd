// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	require := require.New(t)

	sum, err := Add[uint64](1, 2)
	require.NoError(err)
	require.Equal(uint64(3), sum)

	_, err = Add[uint64](math.MaxUint64, 1)
	require.ErrorIs(err, ErrOverflow)
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b, d  int64
		floor    int64
		ceil     int64
		expected error
	}{
		{name: "exact", a: 10, b: 6, d: 3, floor: 20, ceil: 20},
		{name: "rounds", a: 10, b: 1, d: 3, floor: 3, ceil: 4},
		{name: "zero numerator", a: 0, b: 7, d: 3, floor: 0, ceil: 0},
		{name: "divide by zero", a: 1, b: 1, d: 0, expected: ErrDivideByZero},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			a, b, d := big.NewInt(test.a), big.NewInt(test.b), big.NewInt(test.d)
			floor, err := MulDiv(a, b, d)
			require.ErrorIs(err, test.expected)
			ceil, err := MulDivRoundUp(a, b, d)
			require.ErrorIs(err, test.expected)
			if test.expected != nil {
				return
			}
			require.Zero(big.NewInt(test.floor).Cmp(floor))
			require.Zero(big.NewInt(test.ceil).Cmp(ceil))
			require.Equal(int64(test.a), a.Int64())
		})
	}
}

func TestSubBig(t *testing.T) {
	require := require.New(t)

	diff, err := SubBig(big.NewInt(5), big.NewInt(3))
	require.NoError(err)
	require.Equal(int64(2), diff.Int64())

	_, err = SubBig(big.NewInt(3), big.NewInt(5))
	require.ErrorIs(err, ErrUnderflow)
}

func TestMinBig(t *testing.T) {
	require := require.New(t)

	a, b := big.NewInt(4), big.NewInt(9)
	m := MinBig(a, b)
	require.Equal(int64(4), m.Int64())
	m.SetInt64(100)
	require.Equal(int64(4), a.Int64())
	require.True(IsPositive(b))
	require.False(IsPositive(new(big.Int)))
	require.False(IsPositive(nil))
}

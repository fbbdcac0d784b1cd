// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	stdjson "encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBigIntJSON(t *testing.T) {
	require := require.New(t)

	amount, ok := new(big.Int).SetString("1000000000000000000000000", 10)
	require.True(ok)

	type payload struct {
		Amount *BigInt `json:"amount"`
		Phase  Uint64  `json:"phase"`
	}
	bytes, err := stdjson.Marshal(payload{Amount: NewBigInt(amount), Phase: 3})
	require.NoError(err)
	require.JSONEq(`{"amount":"1000000000000000000000000","phase":"3"}`, string(bytes))

	var decoded payload
	require.NoError(stdjson.Unmarshal([]byte(`{"amount":12345,"phase":7}`), &decoded))
	require.Equal(int64(12345), decoded.Amount.Big().Int64())
	require.Equal(Uint64(7), decoded.Phase)

	require.Error(stdjson.Unmarshal([]byte(`{"amount":"12x"}`), &decoded))
}

func TestBigIntNil(t *testing.T) {
	require := require.New(t)

	var b *BigInt
	require.Zero(b.Big().Sign())
	require.Zero(NewBigInt(nil).Big().Sign())
}

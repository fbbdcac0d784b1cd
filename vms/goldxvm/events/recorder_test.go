// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"math/big"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	require := require.New(t)

	r := &Recorder{}
	require.Nil(r.Last())

	recipient := ids.GenerateTestShortID()
	r.Emit(
		&Mined{Recipient: recipient, Amount: big.NewInt(10)},
		&VaultDepleted{},
	)
	r.Emit(&Mined{Recipient: recipient, Amount: big.NewInt(5)})

	require.Len(r.Events(), 3)
	require.Len(r.Named(MinedName), 2)
	require.Len(r.Named(VaultDepletedName), 1)
	require.Equal(&Mined{Recipient: recipient, Amount: big.NewInt(5)}, r.Last())

	r.Reset()
	require.Empty(r.Events())
	NoOp.Emit(&VaultDepleted{})
}

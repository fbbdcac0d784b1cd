// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"math/big"
	"testing"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/stretchr/testify/require"

	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/vms/goldxvm/emission"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

type testVault struct {
	*Vault
	ledger   *ledger.Ledger
	emission *emission.Vault
	events   *events.Recorder

	alice, bob, charlie ids.ShortID
	marketing           ids.ShortID
}

// newTestVault creates a treasury vault holding 100000 tokens with three
// signers, next to an emission vault holding another 1000.
func newTestVault(t *testing.T) *testVault {
	t.Helper()

	var (
		owner        = ids.GenerateTestShortID()
		address      = ids.GenerateTestShortID()
		emissionAddr = ids.GenerateTestShortID()
		recorder     = &events.Recorder{}
	)
	l, err := ledger.New(ledger.Config{
		Owner:    owner,
		Treasury: address,
		Fees: ledger.FeeConfig{
			RateBps:      1000,
			Distribution: ledger.FeeDistribution{Holders: 70, Treasury: 10, Burn: 10, Referral: 10},
		},
		Allocations: []ledger.Allocation{
			{Address: address, Amount: units.Tokens(100_000)},
			{Address: emissionAddr, Amount: units.Tokens(1000)},
		},
		Excluded:    []ids.ShortID{address, emissionAddr},
		Whitelisted: []ids.ShortID{address, emissionAddr},
	}, nil, nil)
	require.NoError(t, err)

	e, err := emission.New(emission.Config{
		Address:  emissionAddr,
		Owner:    owner,
		Treasury: address,
	}, l, recorder)
	require.NoError(t, err)

	tv := &testVault{
		ledger:    l,
		emission:  e,
		events:    recorder,
		alice:     ids.GenerateTestShortID(),
		bob:       ids.GenerateTestShortID(),
		charlie:   ids.GenerateTestShortID(),
		marketing: ids.GenerateTestShortID(),
	}
	tv.Vault, err = New(Config{
		Address: address,
		Signers: []ids.ShortID{tv.alice, tv.bob, tv.charlie},
	}, l, e, recorder)
	require.NoError(t, err)
	return tv
}

// approved submits a proposal and confirms it by alice and bob.
func (v *testVault) approved(t *testing.T, kind Kind, target ids.ShortID, amount *big.Int) uint64 {
	t.Helper()

	id, err := v.SubmitProposal(v.alice, kind, target, amount)
	require.NoError(t, err)
	require.NoError(t, v.ConfirmProposal(v.alice, id))
	require.NoError(t, v.ConfirmProposal(v.bob, id))
	return id
}

func TestConfigVerify(t *testing.T) {
	signer := ids.GenerateTestShortID()
	tests := []struct {
		name        string
		config      Config
		expectedErr error
	}{
		{
			name:        "no address",
			config:      Config{Signers: []ids.ShortID{signer}},
			expectedErr: ErrEmptyAddress,
		},
		{
			name:        "no signers",
			config:      Config{Address: signer},
			expectedErr: ErrNoSigners,
		},
		{
			name:        "duplicate signer",
			config:      Config{Address: signer, Signers: []ids.ShortID{signer, signer}},
			expectedErr: ErrDuplicateSigner,
		},
		{
			name:   "valid",
			config: Config{Address: signer, Signers: []ids.ShortID{signer}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, test.config.Verify(), test.expectedErr)
		})
	}
}

func TestSubmitProposal(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.Zero(v.GetProposalCount())

	amount := units.Tokens(10_000)
	id, err := v.SubmitProposal(v.alice, KindTransfer, v.marketing, amount)
	require.NoError(err)
	require.Zero(id)
	require.Equal(uint64(1), v.GetProposalCount())

	p, err := v.GetProposal(id)
	require.NoError(err)
	require.Equal(KindTransfer, p.Kind)
	require.Equal(v.marketing, p.Target)
	require.Zero(amount.Cmp(p.Amount))
	require.Zero(p.NumConfirmations)
	require.False(p.Executed)

	submitted := v.events.Named(events.ProposalSubmittedName)
	require.Len(submitted, 1)
	event := submitted[0].(*events.ProposalSubmitted)
	require.Equal(v.alice, event.Signer)
	require.Zero(event.ID)
	require.Equal(uint8(KindTransfer), event.Kind)
	require.Equal(v.marketing, event.Target)
	require.Zero(amount.Cmp(event.Amount))

	_, err = v.SubmitProposal(v.marketing, KindTransfer, v.marketing, amount)
	require.ErrorIs(err, ErrNotSigner)
	require.Equal(vmerrs.ClassUnauthorized, vmerrs.Classify(err))
	_, err = v.SubmitProposal(v.alice, Kind(7), v.marketing, amount)
	require.ErrorIs(err, ErrUnknownKind)
	_, err = v.SubmitProposal(v.alice, KindTransfer, v.marketing, nil)
	require.ErrorIs(err, ErrZeroAmount)
	_, err = v.SubmitProposal(v.alice, KindAddSigner, ids.ShortEmpty, nil)
	require.ErrorIs(err, ErrEmptyAddress)
}

func TestConfirmAndRevoke(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	id, err := v.SubmitProposal(v.alice, KindTransfer, v.marketing, units.Tokens(1))
	require.NoError(err)

	require.ErrorIs(v.RevokeConfirmation(v.alice, id), ErrNotConfirmed)
	require.ErrorIs(v.ConfirmProposal(v.marketing, id), ErrNotSigner)
	require.ErrorIs(v.ConfirmProposal(v.alice, id+1), ErrProposalNotFound)

	require.NoError(v.ConfirmProposal(v.alice, id))
	require.True(v.IsConfirmed(id, v.alice))
	require.ErrorIs(v.ConfirmProposal(v.alice, id), ErrAlreadyConfirmed)
	p, err := v.GetProposal(id)
	require.NoError(err)
	require.Equal(1, p.NumConfirmations)

	require.NoError(v.RevokeConfirmation(v.alice, id))
	require.False(v.IsConfirmed(id, v.alice))
	p, err = v.GetProposal(id)
	require.NoError(err)
	require.Zero(p.NumConfirmations)

	require.Len(v.events.Named(events.ProposalConfirmedName), 1)
	require.Len(v.events.Named(events.ConfirmationRevokedName), 1)
}

func TestQuorum(t *testing.T) {
	signers := []ids.ShortID{
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
	}
	outsider := ids.GenerateTestShortID()
	tests := []struct {
		name      string
		confirmed []ids.ShortID
		expected  bool
	}{
		{
			name:      "one of three",
			confirmed: signers[:1],
			expected:  false,
		},
		{
			name:      "two of three",
			confirmed: signers[:2],
			expected:  true,
		},
		{
			name:      "non-signer confirmations do not count",
			confirmed: []ids.ShortID{signers[0], outsider},
			expected:  false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			confirmations := set.Of(test.confirmed...)
			require.Equal(t, test.expected, hasQuorum(confirmations, signers))
		})
	}
}

func TestExecuteTransfer(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	amount := units.Tokens(10_000)

	id, err := v.SubmitProposal(v.alice, KindTransfer, v.marketing, amount)
	require.NoError(err)
	require.NoError(v.ConfirmProposal(v.alice, id))
	require.ErrorIs(v.ExecuteProposal(v.alice, id), ErrNotEnoughConfirmations)

	require.NoError(v.ConfirmProposal(v.bob, id))
	require.ErrorIs(v.ExecuteProposal(v.marketing, id), ErrNotSigner)
	require.NoError(v.ExecuteProposal(v.alice, id))

	// The vault is fee exempt.
	require.Zero(amount.Cmp(v.ledger.BalanceOf(v.marketing)))
	p, err := v.GetProposal(id)
	require.NoError(err)
	require.True(p.Executed)

	executed := v.events.Named(events.ProposalExecutedName)
	require.Len(executed, 1)
	require.Equal(&events.ProposalExecuted{Signer: v.alice, ID: id}, executed[0])

	require.ErrorIs(v.ExecuteProposal(v.charlie, id), ErrAlreadyExecuted)
	require.ErrorIs(v.ConfirmProposal(v.charlie, id), ErrAlreadyExecuted)
	require.ErrorIs(v.RevokeConfirmation(v.alice, id), ErrAlreadyExecuted)
	require.ErrorIs(v.ExecuteProposal(v.alice, id+1), ErrProposalNotFound)
}

func TestExecuteTransferIgnoresWhitelist(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.ledger.RemoveFromWhitelist(v.ledger.Owner(), v.Address()))
	amount := units.Tokens(10_000)

	id := v.approved(t, KindTransfer, v.marketing, amount)
	require.NoError(v.ExecuteProposal(v.alice, id))
	require.Equal(amount.String(), v.ledger.BalanceOf(v.marketing).String())
	require.Equal(units.Tokens(90_000).String(), v.ledger.BalanceOf(v.Address()).String())
	require.Zero(v.ledger.TotalFees().Sign())
}

func TestExecuteFailureKeepsProposalPending(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	id := v.approved(t, KindTransfer, v.marketing, units.Tokens(1_000_000))

	err := v.ExecuteProposal(v.alice, id)
	require.ErrorIs(err, ledger.ErrInsufficientBalance)
	p, err := v.GetProposal(id)
	require.NoError(err)
	require.False(p.Executed)
	require.Empty(v.events.Named(events.ProposalExecutedName))
}

func TestExecuteAddSigner(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	eva := ids.GenerateTestShortID()
	require.NotContains(v.GetSigners(), eva)

	id := v.approved(t, KindAddSigner, eva, nil)
	require.NoError(v.ExecuteProposal(v.alice, id))
	require.Equal([]ids.ShortID{v.alice, v.bob, v.charlie, eva}, v.GetSigners())
	require.True(v.IsSigner(eva))

	// With four signers two confirmations are no longer a majority.
	id = v.approved(t, KindAddSigner, eva, nil)
	require.ErrorIs(v.ExecuteProposal(v.alice, id), ErrNotEnoughConfirmations)
	require.NoError(v.ConfirmProposal(eva, id))
	require.NoError(v.ExecuteProposal(eva, id))
	require.Len(v.GetSigners(), 4)
}

func TestExecuteRemoveSigner(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.Contains(v.GetSigners(), v.bob)

	id := v.approved(t, KindRemoveSigner, v.bob, nil)
	require.NoError(v.ExecuteProposal(v.alice, id))
	require.Equal([]ids.ShortID{v.alice, v.charlie}, v.GetSigners())
	require.False(v.IsSigner(v.bob))

	_, err := v.SubmitProposal(v.bob, KindTransfer, v.marketing, units.Tokens(1))
	require.ErrorIs(err, ErrNotSigner)

	id, err = v.SubmitProposal(v.alice, KindRemoveSigner, v.marketing, nil)
	require.NoError(err)
	require.NoError(v.ConfirmProposal(v.alice, id))
	require.NoError(v.ConfirmProposal(v.charlie, id))
	require.ErrorIs(v.ExecuteProposal(v.alice, id), ErrUnknownSigner)
}

func TestRemovedSignerConfirmationsDoNotCount(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	transfer, err := v.SubmitProposal(v.alice, KindTransfer, v.marketing, units.Tokens(1))
	require.NoError(err)
	require.NoError(v.ConfirmProposal(v.alice, transfer))
	require.NoError(v.ConfirmProposal(v.bob, transfer))

	remove := v.approved(t, KindRemoveSigner, v.bob, nil)
	require.NoError(v.ExecuteProposal(v.alice, remove))

	// alice alone is one of two signers.
	require.ErrorIs(v.ExecuteProposal(v.alice, transfer), ErrNotEnoughConfirmations)
	require.NoError(v.ConfirmProposal(v.charlie, transfer))
	require.NoError(v.ExecuteProposal(v.charlie, transfer))
}

func TestCannotRemoveLastSigner(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	for _, signer := range []ids.ShortID{v.bob, v.charlie} {
		id, err := v.SubmitProposal(v.alice, KindRemoveSigner, signer, nil)
		require.NoError(err)
		for _, s := range v.GetSigners() {
			require.NoError(v.ConfirmProposal(s, id))
		}
		require.NoError(v.ExecuteProposal(v.alice, id))
	}
	require.Equal([]ids.ShortID{v.alice}, v.GetSigners())

	id, err := v.SubmitProposal(v.alice, KindRemoveSigner, v.alice, nil)
	require.NoError(err)
	require.NoError(v.ConfirmProposal(v.alice, id))
	err = v.ExecuteProposal(v.alice, id)
	require.ErrorIs(err, ErrLastSigner)
	require.Equal(vmerrs.ClassInvalid, vmerrs.Classify(err))
	require.Equal([]ids.ShortID{v.alice}, v.GetSigners())
}

func TestSetNewRound(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	coeffs := []*big.Int{
		units.Fraction(11, 10),
		units.Fraction(12, 10),
		units.Fraction(13, 10),
		units.Fraction(14, 10),
		units.Fraction(15, 10),
	}
	require.ErrorIs(v.SetNewRound(v.marketing, units.Tokens(100), 5, coeffs), ErrNotSigner)
	require.NoError(v.SetNewRound(v.alice, units.Tokens(100), 5, coeffs))

	started := v.events.Named(events.RoundStartedName)
	require.Len(started, 1)
	event := started[0].(*events.RoundStarted)
	require.Zero(units.Tokens(500).Cmp(event.TotalSupply))
	require.Zero(units.Tokens(100).Cmp(event.PhaseSupply))
	require.Equal(uint64(5), event.PhaseCount)
	require.False(v.emission.Depleted())

	require.ErrorIs(v.SetNewRound(v.bob, units.Tokens(100), 5, coeffs), emission.ErrRoundInProgress)
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	executed := v.approved(t, KindAddSigner, v.marketing, nil)
	require.NoError(v.ExecuteProposal(v.alice, executed))
	pending, err := v.SubmitProposal(v.charlie, KindTransfer, v.marketing, units.Tokens(5))
	require.NoError(err)
	require.NoError(v.ConfirmProposal(v.charlie, pending))

	snapshot := v.Snapshot()
	restored, err := Restore(snapshot, v.ledger, v.emission, nil)
	require.NoError(err)
	require.Equal(snapshot, restored.Snapshot())
	require.Equal(v.GetSigners(), restored.GetSigners())
	require.True(restored.IsConfirmed(pending, v.charlie))

	require.NoError(restored.ConfirmProposal(v.alice, pending))
	require.NoError(restored.ConfirmProposal(v.marketing, pending))
	require.NoError(restored.ExecuteProposal(v.alice, pending))
	require.Zero(units.Tokens(5).Cmp(v.ledger.BalanceOf(v.marketing)))
}

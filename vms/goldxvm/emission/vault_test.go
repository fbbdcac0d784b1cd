// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"math/big"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

type testVault struct {
	*Vault
	ledger    *ledger.Ledger
	events    *events.Recorder
	owner     ids.ShortID
	miner     ids.ShortID
	recipient ids.ShortID
}

// newTestVault funds a vault with 1000 tokens on a ledger charging a 10% fee.
func newTestVault(t *testing.T) *testVault {
	t.Helper()

	var (
		owner    = ids.GenerateTestShortID()
		treasury = ids.GenerateTestShortID()
		address  = ids.GenerateTestShortID()
		miner    = ids.GenerateTestShortID()
		recorder = &events.Recorder{}
	)
	l, err := ledger.New(ledger.Config{
		Owner:    owner,
		Treasury: treasury,
		Fees: ledger.FeeConfig{
			RateBps:      1000,
			Distribution: ledger.FeeDistribution{Holders: 70, Treasury: 10, Burn: 10, Referral: 10},
		},
		Allocations: []ledger.Allocation{
			{Address: owner, Amount: units.Tokens(1000)},
			{Address: address, Amount: units.Tokens(1000)},
		},
		Excluded:    []ids.ShortID{owner, treasury, address},
		Whitelisted: []ids.ShortID{address},
	}, nil, nil)
	require.NoError(t, err)

	v, err := New(Config{
		Address:  address,
		Owner:    owner,
		Treasury: treasury,
		Miner:    miner,
	}, l, recorder)
	require.NoError(t, err)

	return &testVault{
		Vault:     v,
		ledger:    l,
		events:    recorder,
		owner:     owner,
		miner:     miner,
		recipient: ids.GenerateTestShortID(),
	}
}

func coefficients(ks ...int64) []*big.Int {
	out := make([]*big.Int, len(ks))
	for i, k := range ks {
		out[i] = units.Tokens(k)
	}
	return out
}

func requireBig(t *testing.T, expected, actual *big.Int) {
	t.Helper()
	require.Equal(t, expected.String(), actual.String())
}

func requirePhase(t *testing.T, v *testVault, phase uint64, remaining *big.Int) {
	t.Helper()
	gotPhase, gotRemaining := v.MiningPhase()
	require.Equal(t, phase, gotPhase)
	requireBig(t, remaining, gotRemaining)
}

func TestSetNewRound(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.True(v.Depleted())

	coeffs := []*big.Int{
		units.Fraction(11, 10),
		units.Fraction(12, 10),
		units.Fraction(13, 10),
		units.Fraction(14, 10),
		units.Fraction(15, 10),
	}
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 5, coeffs))
	require.False(v.Depleted())
	requireBig(t, units.Tokens(500), v.RoundSupply())
	require.Equal(uint64(5), v.PhaseCount())
	for i, k := range coeffs {
		got, err := v.CoeffTable(uint64(i))
		require.NoError(err)
		requireBig(t, k, got)
	}
	_, err := v.CoeffTable(5)
	require.ErrorIs(err, ErrPhaseOutOfBounds)
	requirePhase(t, v, 0, units.Tokens(100))

	started := v.events.Named(events.RoundStartedName)
	require.Len(started, 1)
	event := started[0].(*events.RoundStarted)
	requireBig(t, units.Tokens(500), event.TotalSupply)
	requireBig(t, units.Tokens(100), event.PhaseSupply)
	require.Equal(uint64(5), event.PhaseCount)

	require.ErrorIs(v.SetNewRound(v.owner, units.Tokens(100), 5, coeffs), ErrRoundInProgress)
}

func TestSetNewRoundFailures(t *testing.T) {
	tests := []struct {
		name        string
		caller      func(*testVault) ids.ShortID
		phaseSupply *big.Int
		phaseCount  uint64
		coeffs      []*big.Int
		expectedErr error
	}{
		{
			name:        "stranger",
			caller:      func(*testVault) ids.ShortID { return ids.GenerateTestShortID() },
			phaseSupply: units.Tokens(100),
			phaseCount:  1,
			coeffs:      coefficients(1),
			expectedErr: ErrNotSupplier,
		},
		{
			name:        "not enough funds",
			phaseSupply: units.Tokens(100_000_000),
			phaseCount:  5,
			coeffs:      coefficients(1, 1, 1, 1, 1),
			expectedErr: ErrInsufficientBalance,
		},
		{
			name:        "coefficient count mismatch",
			phaseSupply: units.Tokens(100),
			phaseCount:  10,
			coeffs:      coefficients(1, 1, 1, 1, 1),
			expectedErr: ErrPhaseMismatch,
		},
		{
			name:        "zero coefficient",
			phaseSupply: units.Tokens(100),
			phaseCount:  2,
			coeffs:      coefficients(1, 0),
			expectedErr: ErrZeroCoefficient,
		},
		{
			name:        "zero supply",
			phaseSupply: new(big.Int),
			phaseCount:  1,
			coeffs:      coefficients(1),
			expectedErr: ErrZeroPhaseSupply,
		},
		{
			name:        "zero phases",
			phaseSupply: units.Tokens(100),
			expectedErr: ErrZeroPhaseCount,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			v := newTestVault(t)
			caller := v.owner
			if test.caller != nil {
				caller = test.caller(v)
			}
			err := v.SetNewRound(caller, test.phaseSupply, test.phaseCount, test.coeffs)
			require.ErrorIs(err, test.expectedErr)
			require.True(v.Depleted())
			require.Empty(v.events.Events())
		})
	}
}

func TestTreasuryMayStartRound(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.Config().Treasury, units.Tokens(100), 1, coefficients(1)))
}

func TestMineSimple(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 5, coefficients(1, 1, 1, 1, 1)))

	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(10))
	require.NoError(err)
	requireBig(t, units.Tokens(10), credited)
	// The vault is fee exempt, so the recipient gets exactly what was mined.
	requireBig(t, units.Tokens(10), v.ledger.BalanceOf(v.recipient))
	requireBig(t, units.Tokens(10), v.MinedAmount())
	requirePhase(t, v, 0, units.Tokens(90))

	mined := v.events.Named(events.MinedName)
	require.Len(mined, 1)
	event := mined[0].(*events.Mined)
	require.Equal(v.recipient, event.Recipient)
	requireBig(t, units.Tokens(10), event.Amount)
}

func TestMineIgnoresWhitelist(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.ledger.RemoveFromWhitelist(v.owner, v.Address()))
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 1, coefficients(1)))

	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(40))
	require.NoError(err)
	requireBig(t, units.Tokens(40), credited)
	requireBig(t, units.Tokens(40), v.ledger.BalanceOf(v.recipient))
	requireBig(t, units.Tokens(960), v.ledger.BalanceOf(v.Address()))
	require.Zero(v.ledger.TotalFees().Sign())
}

func TestMineFractionalCoefficient(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 1, []*big.Int{units.Fraction(3, 2)}))

	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(10))
	require.NoError(err)
	requireBig(t, units.Tokens(15), credited)
	requirePhase(t, v, 0, units.Tokens(85))
}

func TestMineIntoNextPhase(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 5, coefficients(1, 1, 1, 1, 1)))

	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(101))
	require.NoError(err)
	requireBig(t, units.Tokens(101), credited)
	requireBig(t, units.Tokens(101), v.ledger.BalanceOf(v.recipient))
	requireBig(t, units.Tokens(101), v.MinedAmount())
	requirePhase(t, v, 1, units.Tokens(99))
}

func TestMineWithoutOverlap(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 5, coefficients(1, 2, 4, 5, 8)))

	// Every input converts to exactly 25 tokens at its phase's coefficient.
	inputs := []*big.Int{
		units.Tokens(25),
		units.Fraction(25, 2),
		units.Fraction(25, 4),
		units.Tokens(5),
		units.Fraction(25, 8),
	}
	mined := new(big.Int)
	for phase, input := range inputs {
		for i := 1; i <= 4; i++ {
			credited, err := v.Mine(v.miner, v.recipient, input)
			require.NoError(err)
			requireBig(t, units.Tokens(25), credited)
			mined.Add(mined, credited)
			requireBig(t, mined, v.MinedAmount())

			if i < 4 {
				requirePhase(t, v, uint64(phase), units.Tokens(100-25*int64(i)))
			} else {
				requirePhase(t, v, uint64(phase+1), units.Tokens(100))
			}
		}
	}
	require.True(v.Depleted())
	requireBig(t, units.Tokens(500), v.ledger.BalanceOf(v.recipient))
	require.Len(v.events.Named(events.VaultDepletedName), 1)
}

func TestMineWithOverlap(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 5, coefficients(1, 2, 4, 5, 8)))

	type step struct {
		credited  int64
		phase     uint64
		remaining int64
	}
	tests := []struct {
		input int64
		steps [4]step
	}{
		{
			input: 30,
			steps: [4]step{{30, 0, 70}, {30, 0, 40}, {30, 0, 10}, {10 + 20*2, 1, 60}},
		},
		{
			input: 8,
			steps: [4]step{{16, 1, 44}, {16, 1, 28}, {16, 1, 12}, {12 + 2*4, 2, 92}},
		},
		{
			input: 6,
			steps: [4]step{{24, 2, 68}, {24, 2, 44}, {24, 2, 20}, {20 + 1*5, 3, 95}},
		},
		{
			input: 5,
			steps: [4]step{{25, 3, 70}, {25, 3, 45}, {25, 3, 20}, {20 + 1*8, 4, 92}},
		},
		{
			input: 2,
			steps: [4]step{{16, 4, 76}, {16, 4, 60}, {16, 4, 44}, {16, 4, 28}},
		},
	}
	mined := new(big.Int)
	for _, test := range tests {
		for _, s := range test.steps {
			credited, err := v.Mine(v.miner, v.recipient, units.Tokens(test.input))
			require.NoError(err)
			requireBig(t, units.Tokens(s.credited), credited)
			mined.Add(mined, credited)
			requireBig(t, mined, v.MinedAmount())
			requirePhase(t, v, s.phase, units.Tokens(s.remaining))
		}
	}
	require.False(v.Depleted())
	requireBig(t, mined, v.ledger.BalanceOf(v.recipient))
}

func TestMineAcrossSeveralPhases(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(10), 3, coefficients(1, 2, 4)))

	// 10 at 1x, then 5 at 2x, then the last 2 at 4x.
	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(17))
	require.NoError(err)
	requireBig(t, units.Tokens(28), credited)
	requirePhase(t, v, 2, units.Tokens(2))
}

func TestMineDepletesVault(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 2, coefficients(1, 1)))

	_, err := v.Mine(v.miner, v.recipient, units.Tokens(150))
	require.NoError(err)
	credited, err := v.Mine(v.miner, v.recipient, units.Tokens(150))
	require.NoError(err)
	requireBig(t, units.Tokens(50), credited)

	requireBig(t, units.Tokens(200), v.ledger.BalanceOf(v.recipient))
	requireBig(t, units.Tokens(200), v.MinedAmount())
	require.True(v.Depleted())

	_, err = v.Mine(v.miner, v.recipient, units.Tokens(1))
	require.ErrorIs(err, ErrNoActiveRound)

	// A depleted round may be replaced.
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 1, coefficients(1)))
	require.Zero(v.MinedAmount().Sign())
}

func TestMineEmitsDepleted(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 2, coefficients(1, 1)))

	_, err := v.Mine(v.miner, v.recipient, units.Tokens(101))
	require.NoError(err)
	require.Empty(v.events.Named(events.VaultDepletedName))

	_, err = v.Mine(v.miner, v.recipient, units.Tokens(101))
	require.NoError(err)
	require.Len(v.events.Named(events.VaultDepletedName), 1)
	require.Equal(events.VaultDepletedName, v.events.Last().Name())
}

func TestMineFailures(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	_, err := v.Mine(v.miner, v.recipient, units.Tokens(1))
	require.ErrorIs(err, ErrNoActiveRound)
	require.Equal(vmerrs.ClassState, vmerrs.Classify(err))

	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 1, coefficients(1)))

	_, err = v.Mine(ids.GenerateTestShortID(), v.recipient, units.Tokens(1))
	require.ErrorIs(err, ErrNotMiner)
	_, err = v.Mine(v.miner, v.recipient, new(big.Int))
	require.ErrorIs(err, ErrZeroInput)

	// A ledger rejection leaves the round untouched.
	require.NoError(v.ledger.AddToBlacklist(v.owner, v.recipient))
	_, err = v.Mine(v.miner, v.recipient, units.Tokens(1))
	require.ErrorIs(err, ledger.ErrBlacklisted)
	require.Zero(v.MinedAmount().Sign())
	requirePhase(t, v, 0, units.Tokens(100))
	require.Empty(v.events.Named(events.MinedName))
}

func TestSnapshotRestore(t *testing.T) {
	require := require.New(t)

	v := newTestVault(t)
	before, err := Restore(v.Snapshot(), v.ledger, nil)
	require.NoError(err)
	require.True(before.Depleted())

	require.NoError(v.SetNewRound(v.owner, units.Tokens(100), 2, coefficients(1, 3)))
	_, err = v.Mine(v.miner, v.recipient, units.Tokens(110))
	require.NoError(err)

	snapshot := v.Snapshot()
	restored, err := Restore(snapshot, v.ledger, nil)
	require.NoError(err)
	require.Equal(snapshot, restored.Snapshot())

	phase, remaining := restored.MiningPhase()
	require.Equal(uint64(1), phase)
	requireBig(t, units.Tokens(70), remaining)
	requireBig(t, units.Tokens(130), restored.MinedAmount())
}

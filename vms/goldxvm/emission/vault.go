// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package emission releases pre-funded ledger credit in phased rounds, each
// phase converting input at its own coefficient.
package emission

import (
	"math/big"
	"sync"

	"github.com/luxfi/ids"

	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

// Ledger is the part of the ledger the vault pays out through. Payouts are
// never charged a fee.
type Ledger interface {
	BalanceOf(addr ids.ShortID) *big.Int
	Payout(from, to ids.ShortID, amount *big.Int) error
}

// Config names the accounts the vault works with.
type Config struct {
	// Address is the ledger account holding the emission supply.
	Address ids.ShortID `json:"address"`
	// Owner may start rounds.
	Owner ids.ShortID `json:"owner"`
	// Treasury is the treasury vault, which may also start rounds.
	Treasury ids.ShortID `json:"treasury"`
	// Miner is the only caller allowed to mine. Empty allows anyone.
	Miner ids.ShortID `json:"miner"`
}

func (c Config) Verify() error {
	if c.Address == ids.ShortEmpty || c.Owner == ids.ShortEmpty {
		return ErrEmptyAddress
	}
	return nil
}

// Vault runs emission rounds against the ledger balance held at its address.
type Vault struct {
	mu sync.RWMutex

	config  Config
	ledger  Ledger
	emitter events.Emitter

	// nil until the first round starts
	round *round
}

func New(config Config, ledger Ledger, emitter events.Emitter) (*Vault, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	if emitter == nil {
		emitter = events.NoOp
	}
	return &Vault{
		config:  config,
		ledger:  ledger,
		emitter: emitter,
	}, nil
}

// SetNewRound starts a round of phaseCount phases, each releasing phaseSupply
// at coefficients[i]. The previous round must be depleted and the vault must
// already hold the whole round.
func (v *Vault) SetNewRound(caller ids.ShortID, phaseSupply *big.Int, phaseCount uint64, coefficients []*big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if caller != v.config.Owner && caller != v.config.Treasury {
		return ErrNotSupplier
	}
	if v.round != nil && !v.round.depleted {
		return ErrRoundInProgress
	}
	if phaseSupply == nil || phaseSupply.Sign() <= 0 {
		return ErrZeroPhaseSupply
	}
	if phaseCount == 0 {
		return ErrZeroPhaseCount
	}
	if uint64(len(coefficients)) != phaseCount {
		return ErrPhaseMismatch
	}
	for _, k := range coefficients {
		if k == nil || k.Sign() <= 0 {
			return ErrZeroCoefficient
		}
	}

	r := newRound(phaseSupply, coefficients)
	total := r.totalSupply()
	if v.ledger.BalanceOf(v.config.Address).Cmp(total) < 0 {
		return ErrInsufficientBalance
	}

	v.round = r
	v.emitter.Emit(&events.RoundStarted{
		TotalSupply: total,
		PhaseSupply: new(big.Int).Set(r.phaseSupply),
		PhaseCount:  phaseCount,
	})
	return nil
}

// Mine converts input into ledger credit for recipient and returns what was
// credited.
func (v *Vault) Mine(caller, recipient ids.ShortID, input *big.Int) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.config.Miner != ids.ShortEmpty && caller != v.config.Miner {
		return nil, ErrNotMiner
	}
	if v.round == nil || v.round.depleted {
		return nil, ErrNoActiveRound
	}
	if recipient == ids.ShortEmpty {
		return nil, ErrEmptyAddress
	}
	if input == nil || input.Sign() <= 0 {
		return nil, ErrZeroInput
	}

	c, err := v.round.convert(input)
	if err != nil {
		return nil, err
	}
	if c.credited.Sign() > 0 {
		if err := v.ledger.Payout(v.config.Address, recipient, c.credited); err != nil {
			return nil, err
		}
	}
	v.round.apply(c)

	evs := []events.Event{&events.Mined{Recipient: recipient, Amount: new(big.Int).Set(c.credited)}}
	if c.depleted {
		evs = append(evs, &events.VaultDepleted{})
	}
	v.emitter.Emit(evs...)
	return new(big.Int).Set(c.credited), nil
}

// MiningPhase returns the current phase and what is left in it.
func (v *Vault) MiningPhase() (uint64, *big.Int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.round == nil {
		return 0, new(big.Int)
	}
	return v.round.phase, new(big.Int).Set(v.round.remaining)
}

// Depleted reports whether no round is active, including before the first.
func (v *Vault) Depleted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.round == nil || v.round.depleted
}

// MinedAmount is what the current round has credited so far.
func (v *Vault) MinedAmount() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.round == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.round.mined)
}

// RoundSupply is the total the current round releases when sold out.
func (v *Vault) RoundSupply() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.round == nil {
		return new(big.Int)
	}
	return v.round.totalSupply()
}

// CoeffTable returns the coefficient of phase i in the current round.
func (v *Vault) CoeffTable(i uint64) (*big.Int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.round == nil || i >= v.round.phaseCount() {
		return nil, ErrPhaseOutOfBounds
	}
	return new(big.Int).Set(v.round.coefficients[i]), nil
}

func (v *Vault) PhaseCount() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.round == nil {
		return 0
	}
	return v.round.phaseCount()
}

func (v *Vault) Address() ids.ShortID {
	return v.config.Address
}

func (v *Vault) Config() Config {
	return v.config
}

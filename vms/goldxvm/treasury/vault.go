// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package treasury implements a multi-signature vault: signers submit
// proposals that execute once a strict majority of current signers confirmed
// them.
package treasury

import (
	"bytes"
	"math/big"
	"slices"
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

// Ledger moves funds held at the vault address without charging a fee.
type Ledger interface {
	Payout(from, to ids.ShortID, amount *big.Int) error
}

// RoundStarter starts emission rounds on behalf of the vault.
type RoundStarter interface {
	SetNewRound(caller ids.ShortID, phaseSupply *big.Int, phaseCount uint64, coefficients []*big.Int) error
}

type Config struct {
	// Address is the ledger account holding the treasury funds.
	Address ids.ShortID   `json:"address"`
	Signers []ids.ShortID `json:"signers"`
}

func (c Config) Verify() error {
	switch {
	case c.Address == ids.ShortEmpty:
		return ErrEmptyAddress
	case len(c.Signers) == 0:
		return ErrNoSigners
	}
	seen := set.NewSet[ids.ShortID](len(c.Signers))
	for _, signer := range c.Signers {
		if signer == ids.ShortEmpty {
			return ErrEmptyAddress
		}
		if seen.Contains(signer) {
			return ErrDuplicateSigner
		}
		seen.Add(signer)
	}
	return nil
}

type Vault struct {
	mu sync.RWMutex

	address  ids.ShortID
	ledger   Ledger
	emission RoundStarter
	emitter  events.Emitter

	// in the order they were added
	signers   []ids.ShortID
	proposals []*proposal
}

func New(config Config, ledger Ledger, emission RoundStarter, emitter events.Emitter) (*Vault, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	if emitter == nil {
		emitter = events.NoOp
	}
	return &Vault{
		address:  config.Address,
		ledger:   ledger,
		emission: emission,
		emitter:  emitter,
		signers:  slices.Clone(config.Signers),
	}, nil
}

// SubmitProposal records a new proposal with no confirmations and returns its
// id.
func (v *Vault) SubmitProposal(caller ids.ShortID, kind Kind, target ids.ShortID, amount *big.Int) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isSigner(caller) {
		return 0, ErrNotSigner
	}
	if err := verifyProposal(kind, target, amount); err != nil {
		return 0, err
	}

	p := &proposal{
		kind:          kind,
		target:        target,
		amount:        new(big.Int),
		confirmations: set.NewSet[ids.ShortID](len(v.signers)),
	}
	if amount != nil {
		p.amount.Set(amount)
	}
	id := uint64(len(v.proposals))
	v.proposals = append(v.proposals, p)
	v.emitter.Emit(&events.ProposalSubmitted{
		Signer: caller,
		ID:     id,
		Kind:   uint8(kind),
		Target: target,
		Amount: new(big.Int).Set(p.amount),
	})
	return id, nil
}

func (v *Vault) ConfirmProposal(caller ids.ShortID, id uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, err := v.pending(caller, id)
	if err != nil {
		return err
	}
	if p.confirmations.Contains(caller) {
		return ErrAlreadyConfirmed
	}
	p.confirmations.Add(caller)
	v.emitter.Emit(&events.ProposalConfirmed{Signer: caller, ID: id})
	return nil
}

func (v *Vault) RevokeConfirmation(caller ids.ShortID, id uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, err := v.pending(caller, id)
	if err != nil {
		return err
	}
	if !p.confirmations.Contains(caller) {
		return ErrNotConfirmed
	}
	p.confirmations.Remove(caller)
	v.emitter.Emit(&events.ConfirmationRevoked{Signer: caller, ID: id})
	return nil
}

// ExecuteProposal performs a confirmed proposal. If the action fails the
// proposal stays unexecuted.
func (v *Vault) ExecuteProposal(caller ids.ShortID, id uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, err := v.pending(caller, id)
	if err != nil {
		return err
	}
	if !hasQuorum(p.confirmations, v.signers) {
		return ErrNotEnoughConfirmations
	}

	switch p.kind {
	case KindTransfer:
		if err := v.ledger.Payout(v.address, p.target, p.amount); err != nil {
			return err
		}
	case KindAddSigner:
		if !v.isSigner(p.target) {
			v.signers = append(v.signers, p.target)
		}
	case KindRemoveSigner:
		i := slices.Index(v.signers, p.target)
		switch {
		case i < 0:
			return ErrUnknownSigner
		case len(v.signers) == 1:
			return ErrLastSigner
		}
		v.signers = slices.Delete(v.signers, i, i+1)
	default:
		return ErrUnknownKind
	}

	p.executed = true
	v.emitter.Emit(&events.ProposalExecuted{Signer: caller, ID: id})
	return nil
}

// SetNewRound starts an emission round with the vault as the caller. Any
// signer may trigger it without a proposal.
func (v *Vault) SetNewRound(caller ids.ShortID, phaseSupply *big.Int, phaseCount uint64, coefficients []*big.Int) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.isSigner(caller) {
		return ErrNotSigner
	}
	return v.emission.SetNewRound(v.address, phaseSupply, phaseCount, coefficients)
}

// pending returns proposal id if caller may act on it.
func (v *Vault) pending(caller ids.ShortID, id uint64) (*proposal, error) {
	switch {
	case !v.isSigner(caller):
		return nil, ErrNotSigner
	case id >= uint64(len(v.proposals)):
		return nil, ErrProposalNotFound
	case v.proposals[id].executed:
		return nil, ErrAlreadyExecuted
	default:
		return v.proposals[id], nil
	}
}

func (v *Vault) isSigner(addr ids.ShortID) bool {
	return slices.Contains(v.signers, addr)
}

func (v *Vault) GetProposal(id uint64) (Proposal, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if id >= uint64(len(v.proposals)) {
		return Proposal{}, ErrProposalNotFound
	}
	p := v.proposals[id]
	confirmations := sortedConfirmations(p.confirmations)
	return Proposal{
		ID:               id,
		Kind:             p.kind,
		Target:           p.target,
		Amount:           new(big.Int).Set(p.amount),
		NumConfirmations: len(confirmations),
		Confirmations:    confirmations,
		Executed:         p.executed,
	}, nil
}

func sortedConfirmations(confirmations set.Set[ids.ShortID]) []ids.ShortID {
	out := confirmations.List()
	slices.SortFunc(out, func(a, b ids.ShortID) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}

func (v *Vault) GetProposalCount() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return uint64(len(v.proposals))
}

func (v *Vault) IsConfirmed(id uint64, signer ids.ShortID) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return id < uint64(len(v.proposals)) && v.proposals[id].confirmations.Contains(signer)
}

func (v *Vault) GetSigners() []ids.ShortID {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return slices.Clone(v.signers)
}

func (v *Vault) IsSigner(addr ids.ShortID) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.isSigner(addr)
}

func (v *Vault) Address() ids.ShortID {
	return v.address
}

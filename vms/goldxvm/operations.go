// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package goldxvm

import (
	"math/big"

	"github.com/luxfi/ids"

	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"
)

func (vm *VM) Transfer(from, to ids.ShortID, amount *big.Int) (uint64, error) {
	return vm.execute("transfer", func() error {
		return vm.ledger.Transfer(from, to, amount)
	})
}

func (vm *VM) TransferFrom(spender, from, to ids.ShortID, amount *big.Int) (uint64, error) {
	return vm.execute("transferFrom", func() error {
		return vm.ledger.TransferFrom(spender, from, to, amount)
	})
}

func (vm *VM) Approve(owner, spender ids.ShortID, amount *big.Int) (uint64, error) {
	return vm.execute("approve", func() error {
		return vm.ledger.Approve(owner, spender, amount)
	})
}

func (vm *VM) Burn(from ids.ShortID, amount *big.Int) (uint64, error) {
	return vm.execute("burn", func() error {
		return vm.ledger.Burn(from, amount)
	})
}

func (vm *VM) SetFees(caller ids.ShortID, rateBps uint16) (uint64, error) {
	return vm.execute("setFees", func() error {
		return vm.ledger.SetFees(caller, rateBps)
	})
}

func (vm *VM) SetFeeDistribution(caller ids.ShortID, dist ledger.FeeDistribution) (uint64, error) {
	return vm.execute("setFeeDistribution", func() error {
		return vm.ledger.SetFeeDistribution(caller, dist)
	})
}

func (vm *VM) ExcludeAccount(caller, addr ids.ShortID) (uint64, error) {
	return vm.execute("excludeAccount", func() error {
		return vm.ledger.ExcludeAccount(caller, addr)
	})
}

func (vm *VM) IncludeAccount(caller, addr ids.ShortID) (uint64, error) {
	return vm.execute("includeAccount", func() error {
		return vm.ledger.IncludeAccount(caller, addr)
	})
}

func (vm *VM) AddToWhitelist(caller ids.ShortID, addrs ...ids.ShortID) (uint64, error) {
	return vm.execute("addToWhitelist", func() error {
		return vm.ledger.AddToWhitelist(caller, addrs...)
	})
}

func (vm *VM) RemoveFromWhitelist(caller ids.ShortID, addrs ...ids.ShortID) (uint64, error) {
	return vm.execute("removeFromWhitelist", func() error {
		return vm.ledger.RemoveFromWhitelist(caller, addrs...)
	})
}

func (vm *VM) AddToBlacklist(caller ids.ShortID, addrs ...ids.ShortID) (uint64, error) {
	return vm.execute("addToBlacklist", func() error {
		return vm.ledger.AddToBlacklist(caller, addrs...)
	})
}

func (vm *VM) RemoveFromBlacklist(caller ids.ShortID, addrs ...ids.ShortID) (uint64, error) {
	return vm.execute("removeFromBlacklist", func() error {
		return vm.ledger.RemoveFromBlacklist(caller, addrs...)
	})
}

func (vm *VM) Pause(caller ids.ShortID) (uint64, error) {
	return vm.execute("pause", func() error {
		return vm.ledger.Pause(caller)
	})
}

func (vm *VM) Unpause(caller ids.ShortID) (uint64, error) {
	return vm.execute("unpause", func() error {
		return vm.ledger.Unpause(caller)
	})
}

func (vm *VM) GrantSuperAdmin(caller, addr ids.ShortID) (uint64, error) {
	return vm.execute("grantSuperAdmin", func() error {
		return vm.ledger.GrantSuperAdmin(caller, addr)
	})
}

func (vm *VM) RevokeSuperAdmin(caller, addr ids.ShortID) (uint64, error) {
	return vm.execute("revokeSuperAdmin", func() error {
		return vm.ledger.RevokeSuperAdmin(caller, addr)
	})
}

func (vm *VM) SetTreasury(caller, addr ids.ShortID) (uint64, error) {
	return vm.execute("setTreasury", func() error {
		return vm.ledger.SetTreasury(caller, addr)
	})
}

func (vm *VM) AddReferrers(caller ids.ShortID, addrs ...ids.ShortID) (uint64, error) {
	return vm.execute("addReferrers", func() error {
		return vm.ledger.AddReferrers(caller, addrs...)
	})
}

func (vm *VM) SetReferrer(referral, referrer ids.ShortID) (uint64, error) {
	return vm.execute("setReferrer", func() error {
		return vm.ledger.SetReferrer(referral, referrer)
	})
}

// SetNewRound starts an emission round directly. caller must be the
// emission owner or the treasury vault address.
func (vm *VM) SetNewRound(caller ids.ShortID, phaseSupply *big.Int, phaseCount uint64, coefficients []*big.Int) (uint64, error) {
	return vm.execute("setNewRound", func() error {
		return vm.emission.SetNewRound(caller, phaseSupply, phaseCount, coefficients)
	})
}

// Mine converts input and credits the result to recipient.
func (vm *VM) Mine(caller, recipient ids.ShortID, input *big.Int) (*big.Int, uint64, error) {
	var mined *big.Int
	height, err := vm.execute("mine", func() error {
		var err error
		mined, err = vm.emission.Mine(caller, recipient, input)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	vm.metrics.AddMined(mined)
	return mined, height, nil
}

// SubmitProposal returns the id of the new proposal and the height it was
// committed at.
func (vm *VM) SubmitProposal(caller ids.ShortID, kind treasury.Kind, target ids.ShortID, amount *big.Int) (uint64, uint64, error) {
	var id uint64
	height, err := vm.execute("submitProposal", func() error {
		var err error
		id, err = vm.treasury.SubmitProposal(caller, kind, target, amount)
		return err
	})
	return id, height, err
}

func (vm *VM) ConfirmProposal(caller ids.ShortID, id uint64) (uint64, error) {
	return vm.execute("confirmProposal", func() error {
		return vm.treasury.ConfirmProposal(caller, id)
	})
}

func (vm *VM) RevokeConfirmation(caller ids.ShortID, id uint64) (uint64, error) {
	return vm.execute("revokeConfirmation", func() error {
		return vm.treasury.RevokeConfirmation(caller, id)
	})
}

func (vm *VM) ExecuteProposal(caller ids.ShortID, id uint64) (uint64, error) {
	return vm.execute("executeProposal", func() error {
		return vm.treasury.ExecuteProposal(caller, id)
	})
}

// TreasurySetNewRound starts an emission round on behalf of the treasury
// vault. caller must be a treasury signer.
func (vm *VM) TreasurySetNewRound(caller ids.ShortID, phaseSupply *big.Int, phaseCount uint64, coefficients []*big.Int) (uint64, error) {
	return vm.execute("treasurySetNewRound", func() error {
		return vm.treasury.SetNewRound(caller, phaseSupply, phaseCount, coefficients)
	})
}

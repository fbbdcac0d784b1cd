// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package events defines the observable signals emitted by the GOLDX VM
// components.
package events

import (
	"math/big"

	"github.com/luxfi/ids"
)

// Event is a signal emitted by a component after an operation succeeds.
type Event interface {
	// Name is the stable identifier of the event kind.
	Name() string
}

// Emitter receives the events of successful operations.
type Emitter interface {
	Emit(events ...Event)
}

// NoOp discards every event.
var NoOp Emitter = noOp{}

type noOp struct{}

func (noOp) Emit(...Event) {}

const (
	TransferName               = "Transfer"
	BurnName                   = "Burn"
	ApprovalName               = "Approval"
	FeesUpdatedName            = "FeesUpdated"
	FeeDistributionUpdatedName = "FeeDistributionUpdated"
	AccountExcludedName        = "AccountExcluded"
	AccountIncludedName        = "AccountIncluded"
	ListUpdatedName            = "ListUpdated"
	RoleUpdatedName            = "RoleUpdated"
	TreasuryUpdatedName        = "TreasuryUpdated"
	ReferrerRegisteredName     = "ReferrerRegistered"
	ReferrerSetName            = "ReferrerSet"
	ReferralRewardName         = "ReferralReward"
	PausedName                 = "Paused"
	UnpausedName               = "Unpaused"
	RoundStartedName           = "RoundStarted"
	MinedName                  = "Mined"
	VaultDepletedName          = "VaultDepleted"
	ProposalSubmittedName      = "ProposalSubmitted"
	ProposalConfirmedName      = "ProposalConfirmed"
	ConfirmationRevokedName    = "ConfirmationRevoked"
	ProposalExecutedName       = "ProposalExecuted"
)

// Transfer is emitted for every balance movement between two accounts.
// Amount is what the recipient was credited, Fee what was withheld.
type Transfer struct {
	From   ids.ShortID `json:"from"`
	To     ids.ShortID `json:"to"`
	Amount *big.Int    `json:"amount"`
	Fee    *big.Int    `json:"fee"`
}

type Burn struct {
	From   ids.ShortID `json:"from"`
	Amount *big.Int    `json:"amount"`
}

type Approval struct {
	Owner   ids.ShortID `json:"owner"`
	Spender ids.ShortID `json:"spender"`
	Amount  *big.Int    `json:"amount"`
}

type FeesUpdated struct {
	RateBps uint16 `json:"rateBps"`
}

type FeeDistributionUpdated struct {
	Holders  uint8 `json:"holders"`
	Treasury uint8 `json:"treasury"`
	Burn     uint8 `json:"burn"`
	Referral uint8 `json:"referral"`
}

type AccountExcluded struct {
	Account ids.ShortID `json:"account"`
}

type AccountIncluded struct {
	Account ids.ShortID `json:"account"`
}

// ListUpdated is emitted when an account enters or leaves the whitelist or
// the blacklist.
type ListUpdated struct {
	List    string      `json:"list"`
	Account ids.ShortID `json:"account"`
	Added   bool        `json:"added"`
}

type RoleUpdated struct {
	Role    string      `json:"role"`
	Account ids.ShortID `json:"account"`
	Granted bool        `json:"granted"`
}

type TreasuryUpdated struct {
	Treasury ids.ShortID `json:"treasury"`
}

type ReferrerRegistered struct {
	Referrer ids.ShortID `json:"referrer"`
}

type ReferrerSet struct {
	Referral ids.ShortID `json:"referral"`
	Referrer ids.ShortID `json:"referrer"`
}

// ReferralReward is emitted for every account credited from a referral share.
type ReferralReward struct {
	Recipient ids.ShortID `json:"recipient"`
	Amount    *big.Int    `json:"amount"`
}

type Paused struct {
	By ids.ShortID `json:"by"`
}

type Unpaused struct {
	By ids.ShortID `json:"by"`
}

type RoundStarted struct {
	TotalSupply *big.Int `json:"totalSupply"`
	PhaseSupply *big.Int `json:"phaseSupply"`
	PhaseCount  uint64   `json:"phaseCount"`
}

type Mined struct {
	Recipient ids.ShortID `json:"recipient"`
	Amount    *big.Int    `json:"amount"`
}

type VaultDepleted struct{}

type ProposalSubmitted struct {
	Signer ids.ShortID `json:"signer"`
	ID     uint64      `json:"id"`
	Kind   uint8       `json:"kind"`
	Target ids.ShortID `json:"target"`
	Amount *big.Int    `json:"amount"`
}

type ProposalConfirmed struct {
	Signer ids.ShortID `json:"signer"`
	ID     uint64      `json:"id"`
}

type ConfirmationRevoked struct {
	Signer ids.ShortID `json:"signer"`
	ID     uint64      `json:"id"`
}

type ProposalExecuted struct {
	Signer ids.ShortID `json:"signer"`
	ID     uint64      `json:"id"`
}

func (*Transfer) Name() string               { return TransferName }
func (*Burn) Name() string                   { return BurnName }
func (*Approval) Name() string               { return ApprovalName }
func (*FeesUpdated) Name() string            { return FeesUpdatedName }
func (*FeeDistributionUpdated) Name() string { return FeeDistributionUpdatedName }
func (*AccountExcluded) Name() string        { return AccountExcludedName }
func (*AccountIncluded) Name() string        { return AccountIncludedName }
func (*ListUpdated) Name() string            { return ListUpdatedName }
func (*RoleUpdated) Name() string            { return RoleUpdatedName }
func (*TreasuryUpdated) Name() string        { return TreasuryUpdatedName }
func (*ReferrerRegistered) Name() string     { return ReferrerRegisteredName }
func (*ReferrerSet) Name() string            { return ReferrerSetName }
func (*ReferralReward) Name() string         { return ReferralRewardName }
func (*Paused) Name() string                 { return PausedName }
func (*Unpaused) Name() string               { return UnpausedName }
func (*RoundStarted) Name() string           { return RoundStartedName }
func (*Mined) Name() string                  { return MinedName }
func (*VaultDepleted) Name() string          { return VaultDepletedName }
func (*ProposalSubmitted) Name() string      { return ProposalSubmittedName }
func (*ProposalConfirmed) Name() string      { return ProposalConfirmedName }
func (*ConfirmationRevoked) Name() string    { return ConfirmationRevokedName }
func (*ProposalExecuted) Name() string       { return ProposalExecutedName }

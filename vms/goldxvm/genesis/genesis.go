// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial state of a GOLDX chain.
package genesis

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/utils/json"
	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/utils/wrappers"
	"github.com/CREESTL/FuseG/vms/goldxvm/emission"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"
)

var (
	ErrNoOwner          = errors.New("genesis owner is required")
	ErrNoMiner          = errors.New("genesis miner is required")
	ErrNoFeeTreasury    = errors.New("genesis fee treasury is required")
	ErrNegativeBalance  = errors.New("genesis balance is negative")
	ErrDuplicateAccount = errors.New("genesis account allocated twice")
	ErrNoSupply         = errors.New("genesis allocates no supply")
)

// Allocation is an initial balance.
type Allocation struct {
	Address ids.ShortID  `json:"address"`
	Balance *json.BigInt `json:"balance"`
}

// Vault is a vault account and what it starts with.
type Vault struct {
	Address ids.ShortID  `json:"address"`
	Balance *json.BigInt `json:"balance"`
}

type EmissionVault struct {
	Vault
	// Miner is the only account allowed to mine.
	Miner ids.ShortID `json:"miner"`
}

type TreasuryVault struct {
	Vault
	Signers []ids.ShortID `json:"signers"`
}

// Genesis is the JSON document a chain is created from. Both vaults are
// whitelisted and excluded from reflection.
type Genesis struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`

	Owner ids.ShortID `json:"owner"`
	// FeeTreasury receives the treasury share of every fee. It is an ordinary
	// account, separate from the treasury vault.
	FeeTreasury ids.ShortID `json:"feeTreasury"`
	// Fees overrides the configured default when set.
	Fees *ledger.FeeConfig `json:"fees,omitempty"`

	Allocations []Allocation  `json:"allocations"`
	Excluded    []ids.ShortID `json:"excluded,omitempty"`
	Whitelisted []ids.ShortID `json:"whitelisted,omitempty"`

	Emission EmissionVault `json:"emission"`
	Treasury TreasuryVault `json:"treasury"`
}

// Default returns a genesis minting one million tokens: 60% to the emission
// vault, 20% to the treasury vault and 10% each to team and marketing. Fee
// income goes to feeTreasury.
func Default(owner, miner, team, marketing, feeTreasury, emissionAddr, treasuryAddr ids.ShortID, signers []ids.ShortID) *Genesis {
	return &Genesis{
		Name:        "GOLDX",
		Symbol:      "GLDX",
		Decimals:    units.Decimals,
		Owner:       owner,
		FeeTreasury: feeTreasury,
		Allocations: []Allocation{
			{Address: team, Balance: json.NewBigInt(units.Tokens(100_000))},
			{Address: marketing, Balance: json.NewBigInt(units.Tokens(100_000))},
		},
		Emission: EmissionVault{
			Vault: Vault{Address: emissionAddr, Balance: json.NewBigInt(units.Tokens(600_000))},
			Miner: miner,
		},
		Treasury: TreasuryVault{
			Vault:   Vault{Address: treasuryAddr, Balance: json.NewBigInt(units.Tokens(200_000))},
			Signers: signers,
		},
	}
}

func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := stdjson.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return g, g.Verify()
}

func (g *Genesis) Bytes() ([]byte, error) {
	return stdjson.MarshalIndent(g, "", "  ")
}

func (g *Genesis) Verify() error {
	errs := wrappers.Errs{}
	errs.Check(g.Owner != ids.ShortEmpty, ErrNoOwner)
	errs.Check(g.Emission.Miner != ids.ShortEmpty, ErrNoMiner)
	errs.Check(g.FeeTreasury != ids.ShortEmpty, ErrNoFeeTreasury)
	errs.Add(g.EmissionConfig().Verify())
	errs.Add(g.TreasuryConfig().Verify())
	if g.Fees != nil {
		errs.Add(g.Fees.Verify())
	}
	if errs.Errored() {
		return errs.Err
	}

	seen := set.NewSet[ids.ShortID](len(g.Allocations) + 2)
	for _, alloc := range g.accounts() {
		switch {
		case alloc.Address == ids.ShortEmpty:
			return ledger.ErrEmptyAddress
		case seen.Contains(alloc.Address):
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, alloc.Address)
		case alloc.Balance.Big().Sign() < 0:
			return fmt.Errorf("%w: %s", ErrNegativeBalance, alloc.Address)
		}
		seen.Add(alloc.Address)
	}
	if g.TotalSupply().Sign() == 0 {
		return ErrNoSupply
	}
	return nil
}

// TotalSupply is everything the genesis allocates, vaults included.
func (g *Genesis) TotalSupply() *big.Int {
	total := new(big.Int)
	for _, alloc := range g.accounts() {
		total.Add(total, alloc.Balance.Big())
	}
	return total
}

// LedgerConfig returns the ledger described by the genesis. Fees and the
// referral cooldown fall back to the given defaults.
func (g *Genesis) LedgerConfig(defaultFees ledger.FeeConfig, cooldown time.Duration) ledger.Config {
	fees := defaultFees
	if g.Fees != nil {
		fees = *g.Fees
	}
	vaults := []ids.ShortID{g.Emission.Address, g.Treasury.Address}

	cfg := ledger.Config{
		Name:             g.Name,
		Symbol:           g.Symbol,
		Decimals:         g.Decimals,
		Owner:            g.Owner,
		Treasury:         g.FeeTreasury,
		Fees:             fees,
		ReferralCooldown: cooldown,
		Excluded:         append(vaults, g.Excluded...),
		Whitelisted:      append(append([]ids.ShortID(nil), vaults...), g.Whitelisted...),
	}
	for _, alloc := range g.accounts() {
		cfg.Allocations = append(cfg.Allocations, ledger.Allocation{
			Address: alloc.Address,
			Amount:  alloc.Balance.Big(),
		})
	}
	return cfg
}

func (g *Genesis) EmissionConfig() emission.Config {
	return emission.Config{
		Address:  g.Emission.Address,
		Owner:    g.Owner,
		Treasury: g.Treasury.Address,
		Miner:    g.Emission.Miner,
	}
}

func (g *Genesis) TreasuryConfig() treasury.Config {
	return treasury.Config{
		Address: g.Treasury.Address,
		Signers: g.Treasury.Signers,
	}
}

// accounts lists every allocation with the two vaults last.
func (g *Genesis) accounts() []Allocation {
	out := make([]Allocation, 0, len(g.Allocations)+2)
	out = append(out, g.Allocations...)
	return append(out,
		Allocation{Address: g.Emission.Address, Balance: g.Emission.Balance},
		Allocation{Address: g.Treasury.Address, Balance: g.Treasury.Balance},
	)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math/big"

	"github.com/luxfi/ids"
)

var _ Reader = (*Ledger)(nil)

// Reader is the read-only view of a Ledger.
type Reader interface {
	Name() string
	Symbol() string
	Decimals() uint8

	BalanceOf(addr ids.ShortID) *big.Int
	Allowance(owner, spender ids.ShortID) *big.Int
	TotalSupply() *big.Int
	InitialSupply() *big.Int
	TotalBurned() *big.Int
	TotalFees() *big.Int
	ReferralReward() *big.Int
	Dust() *big.Int

	ReferrerOf(addr ids.ShortID) (ids.ShortID, bool)
	ReferralsOf(addr ids.ShortID) []ids.ShortID
	Referrers() []ids.ShortID
	IsReferrer(addr ids.ShortID) bool

	IsExcluded(addr ids.ShortID) bool
	IsWhitelisted(addr ids.ShortID) bool
	IsBlacklisted(addr ids.ShortID) bool
	Paused() bool
	Fees() FeeConfig
	Treasury() ids.ShortID
	Owner() ids.ShortID
	IsSuperAdmin(addr ids.ShortID) bool
	SuperAdmins() []ids.ShortID

	Snapshot() Snapshot
}

func (l *Ledger) Name() string {
	return l.name
}

func (l *Ledger) Symbol() string {
	return l.symbol
}

func (l *Ledger) Decimals() uint8 {
	return l.decimals
}

// BalanceOf returns the actual balance of addr, including every reflection it
// has received.
func (l *Ledger) BalanceOf(addr ids.ShortID) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances.balanceOf(addr)
}

// TotalSupply is the initial supply minus everything burned.
func (l *Ledger) TotalSupply() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.totalSupply)
}

func (l *Ledger) InitialSupply() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.initialSupply)
}

func (l *Ledger) TotalBurned() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.burned)
}

// TotalFees is the sum of every fee charged so far.
func (l *Ledger) TotalFees() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.totalFees)
}

// Dust is the part of the supply that no balance shows because included
// balances round down to whole base units. Each included account contributes
// less than one base unit, and
//
//	sum of every BalanceOf + Dust + ReferralReward + TotalBurned == InitialSupply
//
// holds exactly. Computing it walks every included account.
func (l *Ledger) Dust() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances.dust()
}

// ReferralReward returns the undistributed referral pool.
func (l *Ledger) ReferralReward() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.referralPool)
}

func (l *Ledger) Allowance(owner, spender ids.ShortID) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.allowance(owner, spender))
}

// ReferrerOf returns the immediate referrer of addr, if any.
func (l *Ledger) ReferrerOf(addr ids.ShortID) (ids.ShortID, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.referrals.referrerOf(addr)
}

// ReferralsOf returns the addresses referred by addr.
func (l *Ledger) ReferralsOf(addr ids.ShortID) []ids.ShortID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.referrals.referralsOf(addr)
}

// Referrers returns every registered referrer.
func (l *Ledger) Referrers() []ids.ShortID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.referrals.referrers()
}

func (l *Ledger) IsReferrer(addr ids.ShortID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.referrals.isEligible(addr)
}

func (l *Ledger) IsExcluded(addr ids.ShortID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances.excluded.Contains(addr)
}

func (l *Ledger) IsWhitelisted(addr ids.ShortID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.whitelist.Contains(addr)
}

func (l *Ledger) IsBlacklisted(addr ids.ShortID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.blacklist.Contains(addr)
}

func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.paused
}

func (l *Ledger) Fees() FeeConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.fees
}

func (l *Ledger) Treasury() ids.ShortID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.treasury
}

func (l *Ledger) Owner() ids.ShortID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.roles.Owner()
}

func (l *Ledger) IsSuperAdmin(addr ids.ShortID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.roles.Has(addr, RoleSuperAdmin)
}

// SuperAdmins returns the explicit superadmin holders, sorted. The owner is
// not listed.
func (l *Ledger) SuperAdmins() []ids.ShortID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.roles.SuperAdmins()
}

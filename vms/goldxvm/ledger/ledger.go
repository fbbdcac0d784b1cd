// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the GOLDX fungible ledger: fee-on-transfer with
// reflection to holders, a treasury and burn share, and a referral reward
// overlay.
package ledger

import (
	"math/big"
	"slices"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/utils/timer/mockable"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"

	safemath "github.com/CREESTL/FuseG/utils/math"
)

// DefaultReferralCooldown is how long a referral must wait before changing
// its referrer again.
const DefaultReferralCooldown = 90 * 24 * time.Hour

// Allocation is an initial balance.
type Allocation struct {
	Address ids.ShortID `json:"address"`
	Amount  *big.Int    `json:"amount"`
}

// Config holds everything needed to create a Ledger.
type Config struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`

	Owner    ids.ShortID `json:"owner"`
	Treasury ids.ShortID `json:"treasury"`

	Fees             FeeConfig     `json:"fees"`
	ReferralCooldown time.Duration `json:"referralCooldown"`

	Allocations []Allocation  `json:"allocations"`
	Excluded    []ids.ShortID `json:"excluded"`
	Whitelisted []ids.ShortID `json:"whitelisted"`
}

// Ledger holds every account balance of the token together with the fee
// configuration, access lists and referral graph. It is safe for concurrent
// use; every mutating call is applied atomically.
type Ledger struct {
	mu sync.RWMutex

	name     string
	symbol   string
	decimals uint8

	clock    *mockable.Clock
	emitter  events.Emitter
	roles    Roles
	treasury ids.ShortID

	fees     FeeConfig
	cooldown time.Duration
	paused   bool

	balances   *balances
	allowances map[ids.ShortID]map[ids.ShortID]*big.Int

	whitelist set.Set[ids.ShortID]
	blacklist set.Set[ids.ShortID]

	referrals    *referralGraph
	referralPool *big.Int

	initialSupply *big.Int
	totalSupply   *big.Int
	burned        *big.Int
	totalFees     *big.Int
}

// New creates a ledger holding cfg's allocations. Excluded accounts are
// excluded before any balance is assigned.
func New(cfg Config, clock *mockable.Clock, emitter events.Emitter) (*Ledger, error) {
	if cfg.Owner == ids.ShortEmpty || cfg.Treasury == ids.ShortEmpty {
		return nil, ErrEmptyAddress
	}
	if err := cfg.Fees.Verify(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = &mockable.Clock{}
	}
	if emitter == nil {
		emitter = events.NoOp
	}
	cooldown := cfg.ReferralCooldown
	if cooldown == 0 {
		cooldown = DefaultReferralCooldown
	}

	l := &Ledger{
		name:          cfg.Name,
		symbol:        cfg.Symbol,
		decimals:      cfg.Decimals,
		clock:         clock,
		emitter:       emitter,
		roles:         NewRoles(cfg.Owner),
		treasury:      cfg.Treasury,
		fees:          cfg.Fees,
		cooldown:      cooldown,
		balances:      newBalances(),
		allowances:    make(map[ids.ShortID]map[ids.ShortID]*big.Int),
		whitelist:     set.Of(cfg.Whitelisted...),
		blacklist:     set.NewSet[ids.ShortID](0),
		referrals:     newReferralGraph(),
		referralPool:  new(big.Int),
		initialSupply: new(big.Int),
		burned:        new(big.Int),
		totalFees:     new(big.Int),
	}
	for _, addr := range cfg.Excluded {
		l.balances.excluded.Add(addr)
	}
	l.balances.modified.Add(cfg.Excluded...)
	l.balances.modified.Add(cfg.Whitelisted...)
	for _, alloc := range cfg.Allocations {
		if alloc.Amount == nil || alloc.Amount.Sign() < 0 {
			return nil, ErrZeroAmount
		}
		l.balances.credit(alloc.Address, alloc.Amount)
		l.initialSupply.Add(l.initialSupply, alloc.Amount)
	}
	if l.initialSupply.Sign() == 0 {
		return nil, ErrNoSupply
	}
	l.totalSupply = new(big.Int).Set(l.initialSupply)
	return l, nil
}

// Transfer moves amount from from to to, charging the configured fee unless
// either side is whitelisted.
func (l *Ledger) Transfer(from, to ids.ShortID, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	evs, err := l.transfer(from, to, amount)
	if err != nil {
		return err
	}
	l.emitter.Emit(evs...)
	return nil
}

// TransferFrom moves amount from from to to on behalf of spender, consuming
// spender's allowance.
func (l *Ledger) TransferFrom(spender, from, to ids.ShortID, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !safemath.IsPositive(amount) {
		return ErrZeroAmount
	}
	remaining, err := safemath.SubBig(l.allowance(from, spender), amount)
	if err != nil {
		return ErrInsufficientAllowance
	}
	evs, err := l.transfer(from, to, amount)
	if err != nil {
		return err
	}
	l.setAllowance(from, spender, remaining)
	l.emitter.Emit(evs...)
	return nil
}

// Payout moves amount from from to to without charging a fee, whether or not
// either side is whitelisted. The vaults disburse through it; it is not exposed
// to token holders.
func (l *Ledger) Payout(from, to ids.ShortID, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkTransfer(from, to, amount); err != nil {
		return err
	}
	l.emitter.Emit(l.move(from, to, amount))
	return nil
}

// Approve sets the amount spender may move out of owner's balance.
func (l *Ledger) Approve(owner, spender ids.ShortID, amount *big.Int) error {
	if spender == ids.ShortEmpty {
		return ErrEmptyAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.setAllowance(owner, spender, new(big.Int).Set(amount))
	l.emitter.Emit(&events.Approval{Owner: owner, Spender: spender, Amount: new(big.Int).Set(amount)})
	return nil
}

// Burn permanently removes amount from from's balance and the total supply.
func (l *Ledger) Burn(from ids.ShortID, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkMovable(from, amount); err != nil {
		return err
	}
	l.balances.debit(from, amount)
	l.burn(amount)
	l.emitter.Emit(&events.Burn{From: from, Amount: new(big.Int).Set(amount)})
	return nil
}

// transfer validates everything first and only then mutates, so a returned
// error guarantees nothing changed. Callers hold the write lock.
func (l *Ledger) transfer(from, to ids.ShortID, amount *big.Int) ([]events.Event, error) {
	if err := l.checkTransfer(from, to, amount); err != nil {
		return nil, err
	}
	if l.whitelist.Contains(from) || l.whitelist.Contains(to) {
		return []events.Event{l.move(from, to, amount)}, nil
	}

	split := l.fees.split(amount)
	l.balances.debit(from, amount)
	l.balances.credit(to, split.net)
	l.balances.credit(l.treasury, split.treasury)
	l.burn(split.burn)
	evs := []events.Event{&events.Transfer{
		From:   from,
		To:     to,
		Amount: split.net,
		Fee:    split.fee,
	}}
	evs = append(evs, l.rewardReferrals(from, split.referral)...)

	// Reflect last so the recipient already shares in this transfer's fee.
	if l.balances.rate.actualSupply.Sign() > 0 {
		l.balances.rate.distribute(split.holders)
	} else {
		l.balances.credit(l.treasury, split.holders)
	}
	l.totalFees.Add(l.totalFees, split.fee)
	return evs, nil
}

// move is a fee-free transfer of an already checked amount.
func (l *Ledger) move(from, to ids.ShortID, amount *big.Int) events.Event {
	l.balances.debit(from, amount)
	l.balances.credit(to, amount)
	return &events.Transfer{
		From:   from,
		To:     to,
		Amount: new(big.Int).Set(amount),
		Fee:    new(big.Int),
	}
}

// rewardReferrals pays out a transfer's referral share. A sender with a
// referrer splits it in half with that referrer; otherwise the share joins the
// pool, which is then divided equally over the sender's reward set. Blacklisted
// addresses are never paid: their part stays pooled, as does whatever cannot be
// divided.
func (l *Ledger) rewardReferrals(sender ids.ShortID, share *big.Int) []events.Event {
	if share.Sign() == 0 {
		return nil
	}
	if referrer, ok := l.referrals.referrerOf(sender); ok {
		half := new(big.Int).Rsh(share, 1)
		rest := new(big.Int).Sub(share, half)
		l.balances.credit(sender, half)
		evs := []events.Event{&events.ReferralReward{Recipient: sender, Amount: half}}
		if l.blacklist.Contains(referrer) {
			l.referralPool.Add(l.referralPool, rest)
			return evs
		}
		l.balances.credit(referrer, rest)
		return append(evs, &events.ReferralReward{Recipient: referrer, Amount: rest})
	}

	l.referralPool.Add(l.referralPool, share)
	recipients := slices.DeleteFunc(l.referrals.rewardSet(sender), l.blacklist.Contains)
	if len(recipients) == 0 {
		return nil
	}
	each := new(big.Int).Quo(l.referralPool, big.NewInt(int64(len(recipients))))
	if each.Sign() == 0 {
		return nil
	}
	evs := make([]events.Event, 0, len(recipients))
	for _, addr := range recipients {
		l.balances.credit(addr, each)
		l.referralPool.Sub(l.referralPool, each)
		evs = append(evs, &events.ReferralReward{Recipient: addr, Amount: new(big.Int).Set(each)})
	}
	return evs
}

func (l *Ledger) checkTransfer(from, to ids.ShortID, amount *big.Int) error {
	if to == ids.ShortEmpty {
		return ErrEmptyAddress
	}
	if err := l.checkMovable(from, amount); err != nil {
		return err
	}
	if l.blacklist.Contains(to) {
		return ErrBlacklisted
	}
	return nil
}

func (l *Ledger) checkMovable(from ids.ShortID, amount *big.Int) error {
	switch {
	case l.paused:
		return ErrPaused
	case !safemath.IsPositive(amount):
		return ErrZeroAmount
	case l.blacklist.Contains(from):
		return ErrBlacklisted
	case l.balances.balanceOf(from).Cmp(amount) < 0:
		return ErrInsufficientBalance
	default:
		return nil
	}
}

func (l *Ledger) burn(amount *big.Int) {
	l.totalSupply.Sub(l.totalSupply, amount)
	l.burned.Add(l.burned, amount)
}

func (l *Ledger) allowance(owner, spender ids.ShortID) *big.Int {
	if byOwner, ok := l.allowances[owner]; ok {
		if amount, ok := byOwner[spender]; ok {
			return amount
		}
	}
	return new(big.Int)
}

func (l *Ledger) setAllowance(owner, spender ids.ShortID, amount *big.Int) {
	l.balances.modified.Add(owner)
	byOwner, ok := l.allowances[owner]
	if !ok {
		byOwner = make(map[ids.ShortID]*big.Int)
		l.allowances[owner] = byOwner
	}
	if amount.Sign() == 0 {
		delete(byOwner, spender)
		if len(byOwner) == 0 {
			delete(l.allowances, owner)
		}
		return
	}
	byOwner[spender] = amount
}

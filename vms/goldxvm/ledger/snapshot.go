// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"bytes"
	"maps"
	"math/big"
	"slices"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/utils/json"
	"github.com/CREESTL/FuseG/utils/timer/mockable"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

// Globals is the ledger state that does not belong to a single account.
type Globals struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`

	Owner    ids.ShortID `json:"owner"`
	Treasury ids.ShortID `json:"treasury"`

	Fees             FeeConfig     `json:"fees"`
	ReferralCooldown time.Duration `json:"referralCooldown"`
	Paused           bool          `json:"paused"`

	ReflectedSupply *json.BigInt `json:"reflectedSupply"`
	ActualSupply    *json.BigInt `json:"actualSupply"`
	ReferralPool    *json.BigInt `json:"referralPool"`

	InitialSupply *json.BigInt `json:"initialSupply"`
	TotalSupply   *json.BigInt `json:"totalSupply"`
	Burned        *json.BigInt `json:"burned"`
	TotalFees     *json.BigInt `json:"totalFees"`
}

type Allowance struct {
	Spender ids.ShortID  `json:"spender"`
	Amount  *json.BigInt `json:"amount"`
}

type ReferralLink struct {
	Referrer   ids.ShortID `json:"referrer"`
	LastChange time.Time   `json:"lastChange"`
}

// Account is everything the ledger stores about one address. Included
// accounts hold reflected units, excluded accounts actual units.
type Account struct {
	Address ids.ShortID `json:"address"`

	Reflected *json.BigInt `json:"reflected,omitempty"`
	Owned     *json.BigInt `json:"owned,omitempty"`
	Excluded  bool         `json:"excluded,omitempty"`

	Whitelisted bool `json:"whitelisted,omitempty"`
	Blacklisted bool `json:"blacklisted,omitempty"`
	SuperAdmin  bool `json:"superAdmin,omitempty"`

	Referrer   bool          `json:"referrer,omitempty"`
	ReferredBy *ReferralLink `json:"referredBy,omitempty"`

	Allowances []Allowance `json:"allowances,omitempty"`
}

// Empty reports whether the account carries no state and need not be stored.
func (a *Account) Empty() bool {
	return a.Reflected == nil &&
		a.Owned == nil &&
		!a.Excluded &&
		!a.Whitelisted &&
		!a.Blacklisted &&
		!a.SuperAdmin &&
		!a.Referrer &&
		a.ReferredBy == nil &&
		len(a.Allowances) == 0
}

// Snapshot is serializable ledger state. Accounts are sorted by address and
// never empty.
type Snapshot struct {
	Globals
	Accounts []Account `json:"accounts"`
}

// Snapshot returns a deep copy of the whole ledger.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	addrs := set.NewSet[ids.ShortID](len(l.balances.reflected) + len(l.balances.owned))
	addrs.Add(slices.Collect(maps.Keys(l.balances.reflected))...)
	addrs.Add(slices.Collect(maps.Keys(l.balances.owned))...)
	addrs.Add(slices.Collect(maps.Keys(l.allowances))...)
	addrs.Union(l.balances.excluded)
	addrs.Union(l.whitelist)
	addrs.Union(l.blacklist)
	addrs.Union(l.roles.superAdmins)
	addrs.Add(l.referrals.referrers()...)
	addrs.Add(l.referrals.participants()...)

	s := Snapshot{Globals: l.globals()}
	for _, addr := range sortedIDs(addrs) {
		if a := l.account(addr); !a.Empty() {
			s.Accounts = append(s.Accounts, a)
		}
	}
	return s
}

// Changes returns the globals and every account modified since the previous
// call, then forgets those modifications. Accounts that became empty are
// returned empty so they can be deleted.
func (l *Ledger) Changes() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	modified := l.balances.modified
	l.balances.modified = set.NewSet[ids.ShortID](0)

	s := Snapshot{
		Globals:  l.globals(),
		Accounts: make([]Account, 0, modified.Len()),
	}
	for _, addr := range sortedIDs(modified) {
		s.Accounts = append(s.Accounts, l.account(addr))
	}
	return s
}

func (l *Ledger) globals() Globals {
	return Globals{
		Name:             l.name,
		Symbol:           l.symbol,
		Decimals:         l.decimals,
		Owner:            l.roles.Owner(),
		Treasury:         l.treasury,
		Fees:             l.fees,
		ReferralCooldown: l.cooldown,
		Paused:           l.paused,
		ReflectedSupply:  json.NewBigInt(l.balances.rate.reflectedSupply),
		ActualSupply:     json.NewBigInt(l.balances.rate.actualSupply),
		ReferralPool:     json.NewBigInt(l.referralPool),
		InitialSupply:    json.NewBigInt(l.initialSupply),
		TotalSupply:      json.NewBigInt(l.totalSupply),
		Burned:           json.NewBigInt(l.burned),
		TotalFees:        json.NewBigInt(l.totalFees),
	}
}

func (l *Ledger) account(addr ids.ShortID) Account {
	a := Account{
		Address:     addr,
		Excluded:    l.balances.excluded.Contains(addr),
		Whitelisted: l.whitelist.Contains(addr),
		Blacklisted: l.blacklist.Contains(addr),
		SuperAdmin:  l.roles.superAdmins.Contains(addr),
		Referrer:    l.referrals.isEligible(addr),
	}
	if reflected, ok := l.balances.reflected[addr]; ok {
		a.Reflected = json.NewBigInt(reflected)
	}
	if owned, ok := l.balances.owned[addr]; ok {
		a.Owned = json.NewBigInt(owned)
	}
	if referrer, ok := l.referrals.referrerOf(addr); ok {
		i, _ := l.referrals.lookup(addr)
		a.ReferredBy = &ReferralLink{
			Referrer:   referrer,
			LastChange: l.referrals.lastChange[i],
		}
	}
	byOwner := l.allowances[addr]
	for _, spender := range sortIDs(slices.Collect(maps.Keys(byOwner))) {
		a.Allowances = append(a.Allowances, Allowance{
			Spender: spender,
			Amount:  json.NewBigInt(byOwner[spender]),
		})
	}
	return a
}

// Restore rebuilds a ledger from a snapshot. The restored ledger reports no
// changes.
func Restore(s Snapshot, clock *mockable.Clock, emitter events.Emitter) (*Ledger, error) {
	if s.Owner == ids.ShortEmpty || s.Treasury == ids.ShortEmpty {
		return nil, ErrEmptyAddress
	}
	if err := s.Fees.Verify(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = &mockable.Clock{}
	}
	if emitter == nil {
		emitter = events.NoOp
	}

	l := &Ledger{
		name:          s.Name,
		symbol:        s.Symbol,
		decimals:      s.Decimals,
		clock:         clock,
		emitter:       emitter,
		roles:         NewRoles(s.Owner),
		treasury:      s.Treasury,
		fees:          s.Fees,
		cooldown:      s.ReferralCooldown,
		paused:        s.Paused,
		balances:      newBalances(),
		allowances:    make(map[ids.ShortID]map[ids.ShortID]*big.Int),
		whitelist:     set.NewSet[ids.ShortID](0),
		blacklist:     set.NewSet[ids.ShortID](0),
		referrals:     newReferralGraph(),
		referralPool:  s.ReferralPool.Big(),
		initialSupply: s.InitialSupply.Big(),
		totalSupply:   s.TotalSupply.Big(),
		burned:        s.Burned.Big(),
		totalFees:     s.TotalFees.Big(),
	}
	if l.cooldown == 0 {
		l.cooldown = DefaultReferralCooldown
	}
	l.balances.rate.reflectedSupply = s.ReflectedSupply.Big()
	l.balances.rate.actualSupply = s.ActualSupply.Big()

	for _, a := range s.Accounts {
		if a.Reflected != nil {
			l.balances.setReflected(a.Address, a.Reflected.Big())
		}
		if a.Owned != nil {
			l.balances.setOwned(a.Address, a.Owned.Big())
		}
		if a.Excluded {
			l.balances.excluded.Add(a.Address)
		}
		if a.Whitelisted {
			l.whitelist.Add(a.Address)
		}
		if a.Blacklisted {
			l.blacklist.Add(a.Address)
		}
		if a.SuperAdmin {
			l.roles.superAdmins.Add(a.Address)
		}
		if a.Referrer {
			l.referrals.register(a.Address)
		}
		if a.ReferredBy != nil {
			l.referrals.setReferrer(a.Address, a.ReferredBy.Referrer, a.ReferredBy.LastChange)
		}
		for _, allowance := range a.Allowances {
			l.setAllowance(a.Address, allowance.Spender, allowance.Amount.Big())
		}
	}
	l.balances.modified = set.NewSet[ids.ShortID](0)
	return l, nil
}

func sortedIDs(s set.Set[ids.ShortID]) []ids.ShortID {
	return sortIDs(s.List())
}

func sortIDs(addrs []ids.ShortID) []ids.ShortID {
	slices.SortFunc(addrs, func(a, b ids.ShortID) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

const (
	WhitelistName = "whitelist"
	BlacklistName = "blacklist"
)

// SetFees sets the fee rate in basis points for every later transfer.
func (l *Ledger) SetFees(caller ids.ShortID, rateBps uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	if rateBps > MaxFeeRateBps {
		return ErrRateOutOfRange
	}
	l.fees.RateBps = rateBps
	l.emitter.Emit(&events.FeesUpdated{RateBps: rateBps})
	return nil
}

// SetFeeDistribution sets how later fees are divided.
func (l *Ledger) SetFeeDistribution(caller ids.ShortID, dist FeeDistribution) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	if err := dist.Verify(); err != nil {
		return err
	}
	l.fees.Distribution = dist
	l.emitter.Emit(&events.FeeDistributionUpdated{
		Holders:  dist.Holders,
		Treasury: dist.Treasury,
		Burn:     dist.Burn,
		Referral: dist.Referral,
	})
	return nil
}

// ExcludeAccount stops addr from receiving holder reflections. Its balance is
// unchanged.
func (l *Ledger) ExcludeAccount(caller, addr ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	if l.balances.excluded.Contains(addr) {
		return ErrAlreadyExcluded
	}
	l.balances.exclude(addr)
	l.emitter.Emit(&events.AccountExcluded{Account: addr})
	return nil
}

// IncludeAccount makes addr receive holder reflections again. Its balance is
// unchanged.
func (l *Ledger) IncludeAccount(caller, addr ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	if !l.balances.excluded.Contains(addr) {
		return ErrNotExcluded
	}
	l.balances.include(addr)
	l.emitter.Emit(&events.AccountIncluded{Account: addr})
	return nil
}

func (l *Ledger) AddToWhitelist(caller ids.ShortID, addrs ...ids.ShortID) error {
	return l.updateList(caller, WhitelistName, &l.whitelist, true, addrs)
}

func (l *Ledger) RemoveFromWhitelist(caller ids.ShortID, addrs ...ids.ShortID) error {
	return l.updateList(caller, WhitelistName, &l.whitelist, false, addrs)
}

func (l *Ledger) AddToBlacklist(caller ids.ShortID, addrs ...ids.ShortID) error {
	return l.updateList(caller, BlacklistName, &l.blacklist, true, addrs)
}

func (l *Ledger) RemoveFromBlacklist(caller ids.ShortID, addrs ...ids.ShortID) error {
	return l.updateList(caller, BlacklistName, &l.blacklist, false, addrs)
}

// updateList adds or removes addrs from list. Adding a present address or
// removing an absent one is a no-op.
func (l *Ledger) updateList(caller ids.ShortID, name string, list *set.Set[ids.ShortID], add bool, addrs []ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner, RoleSuperAdmin); err != nil {
		return err
	}
	if l.paused {
		return ErrPaused
	}
	for _, addr := range addrs {
		if addr == ids.ShortEmpty {
			return ErrEmptyAddress
		}
	}

	evs := make([]events.Event, 0, len(addrs))
	for _, addr := range addrs {
		if list.Contains(addr) == add {
			continue
		}
		if add {
			list.Add(addr)
		} else {
			list.Remove(addr)
		}
		l.balances.modified.Add(addr)
		evs = append(evs, &events.ListUpdated{List: name, Account: addr, Added: add})
	}
	l.emitter.Emit(evs...)
	return nil
}

// Pause stops every transfer, burn and list update until Unpause.
func (l *Ledger) Pause(caller ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner, RoleSuperAdmin); err != nil {
		return err
	}
	if l.paused {
		return ErrPaused
	}
	l.paused = true
	l.emitter.Emit(&events.Paused{By: caller})
	return nil
}

func (l *Ledger) Unpause(caller ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner, RoleSuperAdmin); err != nil {
		return err
	}
	if !l.paused {
		return ErrNotPaused
	}
	l.paused = false
	l.emitter.Emit(&events.Unpaused{By: caller})
	return nil
}

// GrantSuperAdmin gives addr the superadmin role.
func (l *Ledger) GrantSuperAdmin(caller, addr ids.ShortID) error {
	return l.setSuperAdmin(caller, addr, true)
}

// RevokeSuperAdmin takes the superadmin role away from addr.
func (l *Ledger) RevokeSuperAdmin(caller, addr ids.ShortID) error {
	return l.setSuperAdmin(caller, addr, false)
}

func (l *Ledger) setSuperAdmin(caller, addr ids.ShortID, granted bool) error {
	if addr == ids.ShortEmpty {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	l.roles = l.roles.withSuperAdmin(addr, granted)
	l.balances.modified.Add(addr)
	l.emitter.Emit(&events.RoleUpdated{
		Role:    RoleSuperAdmin.String(),
		Account: addr,
		Granted: granted,
	})
	return nil
}

// SetTreasury changes where the treasury share of later fees is credited.
func (l *Ledger) SetTreasury(caller, treasury ids.ShortID) error {
	if treasury == ids.ShortEmpty {
		return ErrEmptyAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner); err != nil {
		return err
	}
	l.treasury = treasury
	l.emitter.Emit(&events.TreasuryUpdated{Treasury: treasury})
	return nil
}

// AddReferrers registers addrs as eligible referrers. Registering twice is a
// no-op.
func (l *Ledger) AddReferrers(caller ids.ShortID, addrs ...ids.ShortID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := Authorize(l.roles, caller, RoleOwner, RoleSuperAdmin); err != nil {
		return err
	}
	for _, addr := range addrs {
		if addr == ids.ShortEmpty {
			return ErrEmptyAddress
		}
	}

	evs := make([]events.Event, 0, len(addrs))
	for _, addr := range addrs {
		if l.referrals.isEligible(addr) {
			continue
		}
		l.referrals.register(addr)
		l.balances.modified.Add(addr)
		evs = append(evs, &events.ReferrerRegistered{Referrer: addr})
	}
	l.emitter.Emit(evs...)
	return nil
}

// AddReferrer registers a single referrer.
func (l *Ledger) AddReferrer(caller, addr ids.ShortID) error {
	return l.AddReferrers(caller, addr)
}

// SetReferrer makes referrer the referrer of referral. The first assignment is
// always allowed; a change must wait out the referral cooldown.
func (l *Ledger) SetReferrer(referral, referrer ids.ShortID) error {
	if referral == ids.ShortEmpty || referrer == ids.ShortEmpty {
		return ErrEmptyAddress
	}
	if referral == referrer {
		return ErrSelfReferral
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.referrals.isEligible(referrer) {
		return ErrReferrerNotRegistered
	}
	now := l.clock.Time()
	if !l.referrals.canChange(referral, now, l.cooldown) {
		return ErrReferrerCooldown
	}
	l.referrals.setReferrer(referral, referrer, now)
	l.balances.modified.Add(referral)
	l.emitter.Emit(&events.ReferrerSet{Referral: referral, Referrer: referrer})
	return nil
}

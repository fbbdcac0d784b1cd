// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math/big"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	safemath "github.com/CREESTL/FuseG/utils/math"
)

// initialRate is the number of reflected units per base unit used whenever no
// included account holds value.
var initialRate = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// reflection is the global conversion between reflected and actual units for
// accounts that are not excluded:
//
//	rate = reflectedSupply / actualSupply
//
// Distributing a fee to every included holder only grows actualSupply, which
// lowers the rate and so raises every included balance without touching any
// stored per-account value.
type reflection struct {
	reflectedSupply *big.Int
	actualSupply    *big.Int
}

func newReflection() reflection {
	return reflection{
		reflectedSupply: new(big.Int),
		actualSupply:    new(big.Int),
	}
}

func (r *reflection) empty() bool {
	return r.reflectedSupply.Sign() == 0 || r.actualSupply.Sign() == 0
}

// toReflected converts an actual amount at the current rate, rounding down.
func (r *reflection) toReflected(amount *big.Int) *big.Int {
	if r.empty() {
		return new(big.Int).Mul(amount, initialRate)
	}
	out, _ := safemath.MulDiv(amount, r.reflectedSupply, r.actualSupply)
	return out
}

// toActual converts a reflected amount at the current rate, rounding down.
func (r *reflection) toActual(reflected *big.Int) *big.Int {
	if r.reflectedSupply.Sign() == 0 {
		return new(big.Int)
	}
	out, _ := safemath.MulDiv(reflected, r.actualSupply, r.reflectedSupply)
	return out
}

// distribute spreads amount over every included holder.
func (r *reflection) distribute(amount *big.Int) {
	r.actualSupply.Add(r.actualSupply, amount)
}

// balances holds the two account representations: included accounts store
// reflected units, excluded accounts store actual units.
type balances struct {
	rate      reflection
	reflected map[ids.ShortID]*big.Int
	owned     map[ids.ShortID]*big.Int
	excluded  set.Set[ids.ShortID]

	// accounts whose stored record changed since the last Changes
	modified set.Set[ids.ShortID]
}

func newBalances() *balances {
	return &balances{
		rate:      newReflection(),
		reflected: make(map[ids.ShortID]*big.Int),
		owned:     make(map[ids.ShortID]*big.Int),
		excluded:  set.NewSet[ids.ShortID](0),
		modified:  set.NewSet[ids.ShortID](0),
	}
}

func (b *balances) balanceOf(addr ids.ShortID) *big.Int {
	if b.excluded.Contains(addr) {
		if owned, ok := b.owned[addr]; ok {
			return new(big.Int).Set(owned)
		}
		return new(big.Int)
	}
	reflected, ok := b.reflected[addr]
	if !ok {
		return new(big.Int)
	}
	return b.rate.toActual(reflected)
}

// credit adds amount to addr. It never fails.
func (b *balances) credit(addr ids.ShortID, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	if b.excluded.Contains(addr) {
		b.setOwned(addr, new(big.Int).Add(b.ownedOf(addr), amount))
		return
	}
	r := b.rate.toReflected(amount)
	b.setReflected(addr, new(big.Int).Add(b.reflectedOf(addr), r))
	b.rate.reflectedSupply.Add(b.rate.reflectedSupply, r)
	b.rate.actualSupply.Add(b.rate.actualSupply, amount)
}

// debit removes amount from addr. The caller must have checked that addr holds
// at least amount.
func (b *balances) debit(addr ids.ShortID, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	if b.excluded.Contains(addr) {
		b.setOwned(addr, new(big.Int).Sub(b.ownedOf(addr), amount))
		return
	}

	held := b.reflectedOf(addr)
	r := held
	if b.rate.toActual(held).Cmp(amount) != 0 {
		// Round the reflected debit up so rounding never favors the sender.
		r, _ = safemath.MulDivRoundUp(amount, b.rate.reflectedSupply, b.rate.actualSupply)
		r = safemath.MinBig(r, held)
	}
	b.setReflected(addr, new(big.Int).Sub(held, r))
	b.rate.reflectedSupply.Sub(b.rate.reflectedSupply, r)
	b.rate.actualSupply.Sub(b.rate.actualSupply, amount)
}

// exclude switches addr to actual-unit accounting, snapshotting its balance.
func (b *balances) exclude(addr ids.ShortID) {
	actual := b.balanceOf(addr)
	held := b.reflectedOf(addr)
	b.rate.reflectedSupply.Sub(b.rate.reflectedSupply, held)
	b.rate.actualSupply.Sub(b.rate.actualSupply, actual)
	delete(b.reflected, addr)
	b.excluded.Add(addr)
	b.modified.Add(addr)
	b.setOwned(addr, actual)
}

// include switches addr back to reflected accounting at the current rate.
func (b *balances) include(addr ids.ShortID) {
	actual := b.ownedOf(addr)
	delete(b.owned, addr)
	b.excluded.Remove(addr)
	b.modified.Add(addr)
	b.credit(addr, actual)
}

// dust returns the part of actualSupply that no included balance shows
// because every balance is rounded down. It is below the number of included
// accounts.
func (b *balances) dust() *big.Int {
	shown := new(big.Int)
	for _, reflected := range b.reflected {
		shown.Add(shown, b.rate.toActual(reflected))
	}
	return shown.Sub(b.rate.actualSupply, shown)
}

func (b *balances) ownedOf(addr ids.ShortID) *big.Int {
	if owned, ok := b.owned[addr]; ok {
		return owned
	}
	return new(big.Int)
}

func (b *balances) reflectedOf(addr ids.ShortID) *big.Int {
	if reflected, ok := b.reflected[addr]; ok {
		return reflected
	}
	return new(big.Int)
}

func (b *balances) setOwned(addr ids.ShortID, amount *big.Int) {
	b.modified.Add(addr)
	if amount.Sign() == 0 {
		delete(b.owned, addr)
		return
	}
	b.owned[addr] = amount
}

func (b *balances) setReflected(addr ids.ShortID, amount *big.Int) {
	b.modified.Add(addr)
	if amount.Sign() == 0 {
		delete(b.reflected, addr)
		return
	}
	b.reflected[addr] = amount
}

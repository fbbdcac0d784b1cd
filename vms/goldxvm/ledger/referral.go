// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"slices"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

const noParent = -1

// referralGraph stores the referral relation over an arena of addresses.
// Edges are integer indices kept in explicit forward (parent) and reverse
// (children) maps, so cycles between addresses are representable.
type referralGraph struct {
	index map[ids.ShortID]int
	nodes []ids.ShortID

	parent     map[int]int
	children   map[int]set.Set[int]
	lastChange map[int]time.Time
	eligible   set.Set[int]
}

func newReferralGraph() *referralGraph {
	return &referralGraph{
		index:      make(map[ids.ShortID]int),
		parent:     make(map[int]int),
		children:   make(map[int]set.Set[int]),
		lastChange: make(map[int]time.Time),
		eligible:   set.NewSet[int](0),
	}
}

// node returns the arena index of addr, allocating one if needed.
func (g *referralGraph) node(addr ids.ShortID) int {
	if i, ok := g.index[addr]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, addr)
	g.index[addr] = i
	return i
}

func (g *referralGraph) lookup(addr ids.ShortID) (int, bool) {
	i, ok := g.index[addr]
	return i, ok
}

func (g *referralGraph) register(addr ids.ShortID) {
	g.eligible.Add(g.node(addr))
}

func (g *referralGraph) isEligible(addr ids.ShortID) bool {
	i, ok := g.lookup(addr)
	return ok && g.eligible.Contains(i)
}

// referrerOf returns the immediate referrer of addr.
func (g *referralGraph) referrerOf(addr ids.ShortID) (ids.ShortID, bool) {
	i, ok := g.lookup(addr)
	if !ok {
		return ids.ShortEmpty, false
	}
	p, ok := g.parent[i]
	if !ok || p == noParent {
		return ids.ShortEmpty, false
	}
	return g.nodes[p], true
}

// canChange reports whether addr may (re)assign its referrer at now.
func (g *referralGraph) canChange(addr ids.ShortID, now time.Time, cooldown time.Duration) bool {
	i, ok := g.lookup(addr)
	if !ok {
		return true
	}
	last, ok := g.lastChange[i]
	return !ok || !now.Before(last.Add(cooldown))
}

func (g *referralGraph) setReferrer(referral, referrer ids.ShortID, now time.Time) {
	c := g.node(referral)
	p := g.node(referrer)
	if old, ok := g.parent[c]; ok && old != noParent {
		kids := g.children[old]
		kids.Remove(c)
		if kids.Len() == 0 {
			delete(g.children, old)
		}
	}
	g.parent[c] = p
	kids, ok := g.children[p]
	if !ok {
		kids = set.NewSet[int](1)
		g.children[p] = kids
	}
	kids.Add(c)
	g.lastChange[c] = now
}

// referralsOf returns the addresses whose immediate referrer is addr, sorted.
func (g *referralGraph) referralsOf(addr ids.ShortID) []ids.ShortID {
	i, ok := g.lookup(addr)
	if !ok {
		return nil
	}
	return g.addresses(g.children[i])
}

// participants returns every address that currently has a referrer, sorted.
func (g *referralGraph) participants() []ids.ShortID {
	all := set.NewSet[int](len(g.parent))
	for c, p := range g.parent {
		if p != noParent {
			all.Add(c)
		}
	}
	return g.addresses(all)
}

// rewardSet returns who shares a referral reward pooled from sender: the
// sender's own referrals if it has any, otherwise every referral participant
// other than the sender.
func (g *referralGraph) rewardSet(sender ids.ShortID) []ids.ShortID {
	if own := g.referralsOf(sender); len(own) > 0 {
		return own
	}
	all := g.participants()
	return slices.DeleteFunc(all, func(addr ids.ShortID) bool {
		return addr == sender
	})
}

func (g *referralGraph) referrers() []ids.ShortID {
	return g.addresses(g.eligible)
}

func (g *referralGraph) addresses(nodes set.Set[int]) []ids.ShortID {
	out := make([]ids.ShortID, 0, nodes.Len())
	for i := range nodes {
		out = append(out, g.nodes[i])
	}
	return sortIDs(out)
}

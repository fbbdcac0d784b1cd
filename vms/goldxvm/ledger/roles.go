// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

// Role is a permission held by an address on the ledger.
type Role uint8

const (
	RoleOwner Role = iota + 1
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleSuperAdmin:
		return "superadmin"
	default:
		return "unknown"
	}
}

// Roles is an immutable snapshot of the role assignments. Mutations return a
// new snapshot and leave the receiver untouched.
type Roles struct {
	owner       ids.ShortID
	superAdmins set.Set[ids.ShortID]
}

// NewRoles returns assignments with owner as the only role holder.
func NewRoles(owner ids.ShortID) Roles {
	return Roles{owner: owner}
}

func (r Roles) Owner() ids.ShortID {
	return r.owner
}

// Has reports whether addr holds role. The owner implicitly holds every role.
func (r Roles) Has(addr ids.ShortID, role Role) bool {
	if addr == r.owner {
		return true
	}
	return role == RoleSuperAdmin && r.superAdmins.Contains(addr)
}

// SuperAdmins returns the explicit superadmin holders, sorted.
func (r Roles) SuperAdmins() []ids.ShortID {
	return sortedIDs(r.superAdmins)
}

func (r Roles) withSuperAdmin(addr ids.ShortID, granted bool) Roles {
	next := Roles{
		owner:       r.owner,
		superAdmins: set.NewSet[ids.ShortID](r.superAdmins.Len() + 1),
	}
	next.superAdmins.Union(r.superAdmins)
	if granted {
		next.superAdmins.Add(addr)
	} else {
		next.superAdmins.Remove(addr)
	}
	return next
}

// Authorize returns nil if caller holds any of the allowed roles under roles.
func Authorize(roles Roles, caller ids.ShortID, allowed ...Role) error {
	for _, role := range allowed {
		if roles.Has(caller, role) {
			return nil
		}
	}
	if len(allowed) == 1 && allowed[0] == RoleOwner {
		return ErrNotOwner
	}
	return ErrMissingRole
}

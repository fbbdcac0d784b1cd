// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

var (
	ErrNotOwner    = fmt.Errorf("%w: not owner", vmerrs.ErrUnauthorized)
	ErrMissingRole = fmt.Errorf("%w: missing role", vmerrs.ErrUnauthorized)

	ErrRateOutOfRange = fmt.Errorf("%w: rate out of range", vmerrs.ErrInvalid)
	ErrBadSplit       = fmt.Errorf("%w: split must sum to 100", vmerrs.ErrInvalid)
	ErrZeroAmount     = fmt.Errorf("%w: amount must be positive", vmerrs.ErrInvalid)
	ErrEmptyAddress   = fmt.Errorf("%w: empty address", vmerrs.ErrInvalid)
	ErrSelfReferral   = fmt.Errorf("%w: cannot refer yourself", vmerrs.ErrInvalid)
	ErrNoSupply       = fmt.Errorf("%w: initial supply must be positive", vmerrs.ErrInvalid)

	ErrPaused                = fmt.Errorf("%w: paused", vmerrs.ErrState)
	ErrNotPaused             = fmt.Errorf("%w: not paused", vmerrs.ErrState)
	ErrBlacklisted           = fmt.Errorf("%w: blacklisted", vmerrs.ErrState)
	ErrAlreadyExcluded       = fmt.Errorf("%w: account already excluded", vmerrs.ErrState)
	ErrNotExcluded           = fmt.Errorf("%w: account not excluded", vmerrs.ErrState)
	ErrReferrerNotRegistered = fmt.Errorf("%w: referrer not registered", vmerrs.ErrState)
	ErrReferrerCooldown      = fmt.Errorf("%w: referrer change cooldown not elapsed", vmerrs.ErrState)

	ErrInsufficientBalance   = fmt.Errorf("%w: insufficient balance", vmerrs.ErrResource)
	ErrInsufficientAllowance = fmt.Errorf("%w: insufficient allowance", vmerrs.ErrResource)
)

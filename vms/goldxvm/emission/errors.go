// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"fmt"

	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

var (
	ErrNotSupplier = fmt.Errorf("%w: caller may not start a round", vmerrs.ErrUnauthorized)
	ErrNotMiner    = fmt.Errorf("%w: caller may not mine", vmerrs.ErrUnauthorized)

	ErrEmptyAddress     = fmt.Errorf("%w: empty address", vmerrs.ErrInvalid)
	ErrZeroPhaseSupply  = fmt.Errorf("%w: phase supply must be positive", vmerrs.ErrInvalid)
	ErrZeroPhaseCount   = fmt.Errorf("%w: phase count must be positive", vmerrs.ErrInvalid)
	ErrPhaseMismatch    = fmt.Errorf("%w: coeff/phase mismatch", vmerrs.ErrInvalid)
	ErrZeroCoefficient  = fmt.Errorf("%w: coefficient must be positive", vmerrs.ErrInvalid)
	ErrZeroInput        = fmt.Errorf("%w: input amount must be positive", vmerrs.ErrInvalid)
	ErrPhaseOutOfBounds = fmt.Errorf("%w: phase out of bounds", vmerrs.ErrInvalid)

	ErrRoundInProgress = fmt.Errorf("%w: round in progress", vmerrs.ErrState)
	ErrNoActiveRound   = fmt.Errorf("%w: no active round", vmerrs.ErrState)

	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", vmerrs.ErrResource)
)

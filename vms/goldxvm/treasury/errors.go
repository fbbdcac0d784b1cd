// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"fmt"

	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

var (
	ErrNotSigner = fmt.Errorf("%w: not a signer", vmerrs.ErrUnauthorized)

	ErrEmptyAddress    = fmt.Errorf("%w: empty address", vmerrs.ErrInvalid)
	ErrNoSigners       = fmt.Errorf("%w: at least one signer is required", vmerrs.ErrInvalid)
	ErrDuplicateSigner = fmt.Errorf("%w: duplicate signer", vmerrs.ErrInvalid)
	ErrUnknownKind     = fmt.Errorf("%w: unknown proposal kind", vmerrs.ErrInvalid)
	ErrZeroAmount      = fmt.Errorf("%w: amount must be positive", vmerrs.ErrInvalid)
	ErrUnknownSigner   = fmt.Errorf("%w: target is not a signer", vmerrs.ErrInvalid)
	ErrLastSigner      = fmt.Errorf("%w: cannot remove the last signer", vmerrs.ErrInvalid)

	ErrProposalNotFound       = fmt.Errorf("%w: proposal doesn't exist", vmerrs.ErrState)
	ErrAlreadyExecuted        = fmt.Errorf("%w: proposal already executed", vmerrs.ErrState)
	ErrAlreadyConfirmed       = fmt.Errorf("%w: proposal already confirmed", vmerrs.ErrState)
	ErrNotConfirmed           = fmt.Errorf("%w: proposal not confirmed", vmerrs.ErrState)
	ErrNotEnoughConfirmations = fmt.Errorf("%w: not enough confirmations", vmerrs.ErrState)
)

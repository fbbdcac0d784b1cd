// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"math/big"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

// Kind is the action a proposal performs once executed.
type Kind uint8

const (
	KindTransfer Kind = iota
	KindAddSigner
	KindRemoveSigner
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindAddSigner:
		return "addSigner"
	case KindRemoveSigner:
		return "removeSigner"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool {
	return k <= KindRemoveSigner
}

// proposal is never deleted; executed is terminal.
type proposal struct {
	kind          Kind
	target        ids.ShortID
	amount        *big.Int
	confirmations set.Set[ids.ShortID]
	executed      bool
}

// Proposal is a read-only view of a proposal.
type Proposal struct {
	ID               uint64        `json:"id"`
	Kind             Kind          `json:"kind"`
	Target           ids.ShortID   `json:"target"`
	Amount           *big.Int      `json:"amount"`
	NumConfirmations int           `json:"numConfirmations"`
	Confirmations    []ids.ShortID `json:"confirmations"`
	Executed         bool          `json:"executed"`
}

func verifyProposal(kind Kind, target ids.ShortID, amount *big.Int) error {
	switch {
	case !kind.Valid():
		return ErrUnknownKind
	case target == ids.ShortEmpty:
		return ErrEmptyAddress
	case kind == KindTransfer && (amount == nil || amount.Sign() <= 0):
		return ErrZeroAmount
	default:
		return nil
	}
}

// hasQuorum reports whether a strict majority of signers confirmed. Only
// confirmations from current signers count.
func hasQuorum(confirmations set.Set[ids.ShortID], signers []ids.ShortID) bool {
	count := 0
	for _, signer := range signers {
		if confirmations.Contains(signer) {
			count++
		}
	}
	return count*2 > len(signers)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/CREESTL/FuseG/utils/json"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

type ProposalSnapshot struct {
	Kind          Kind          `json:"kind"`
	Target        ids.ShortID   `json:"target"`
	Amount        *json.BigInt  `json:"amount"`
	Confirmations []ids.ShortID `json:"confirmations"`
	Executed      bool          `json:"executed"`
}

// Snapshot is the serializable state of a Vault. Proposals are indexed by id.
type Snapshot struct {
	Config    Config             `json:"config"`
	Proposals []ProposalSnapshot `json:"proposals"`
}

func (v *Vault) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := Snapshot{
		Config: Config{
			Address: v.address,
			Signers: append([]ids.ShortID(nil), v.signers...),
		},
		Proposals: make([]ProposalSnapshot, len(v.proposals)),
	}
	for i, p := range v.proposals {
		s.Proposals[i] = ProposalSnapshot{
			Kind:          p.kind,
			Target:        p.target,
			Amount:        json.NewBigInt(p.amount),
			Confirmations: sortedConfirmations(p.confirmations),
			Executed:      p.executed,
		}
	}
	return s
}

func Restore(s Snapshot, ledger Ledger, emission RoundStarter, emitter events.Emitter) (*Vault, error) {
	v, err := New(s.Config, ledger, emission, emitter)
	if err != nil {
		return nil, err
	}
	for _, ps := range s.Proposals {
		if !ps.Kind.Valid() {
			return nil, ErrUnknownKind
		}
		v.proposals = append(v.proposals, &proposal{
			kind:          ps.Kind,
			target:        ps.Target,
			amount:        ps.Amount.Big(),
			confirmations: set.Of(ps.Confirmations...),
			executed:      ps.Executed,
		})
	}
	return v, nil
}

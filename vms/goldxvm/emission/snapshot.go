// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"math/big"

	"github.com/CREESTL/FuseG/utils/json"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
)

type RoundSnapshot struct {
	PhaseSupply  *json.BigInt   `json:"phaseSupply"`
	Coefficients []*json.BigInt `json:"coefficients"`
	Phase        json.Uint64    `json:"phase"`
	Remaining    *json.BigInt   `json:"remaining"`
	Mined        *json.BigInt   `json:"mined"`
	Depleted     bool           `json:"depleted"`
}

// Snapshot is the serializable state of a Vault. Round is nil before the
// first round starts.
type Snapshot struct {
	Config Config         `json:"config"`
	Round  *RoundSnapshot `json:"round,omitempty"`
}

func (v *Vault) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := Snapshot{Config: v.config}
	if r := v.round; r != nil {
		coeffs := make([]*json.BigInt, len(r.coefficients))
		for i, k := range r.coefficients {
			coeffs[i] = json.NewBigInt(k)
		}
		s.Round = &RoundSnapshot{
			PhaseSupply:  json.NewBigInt(r.phaseSupply),
			Coefficients: coeffs,
			Phase:        json.Uint64(r.phase),
			Remaining:    json.NewBigInt(r.remaining),
			Mined:        json.NewBigInt(r.mined),
			Depleted:     r.depleted,
		}
	}
	return s
}

func Restore(s Snapshot, ledger Ledger, emitter events.Emitter) (*Vault, error) {
	v, err := New(s.Config, ledger, emitter)
	if err != nil {
		return nil, err
	}
	if rs := s.Round; rs != nil {
		if uint64(rs.Phase) > uint64(len(rs.Coefficients)) {
			return nil, ErrPhaseOutOfBounds
		}
		r := &round{
			phaseSupply:  rs.PhaseSupply.Big(),
			coefficients: make([]*big.Int, len(rs.Coefficients)),
			phase:        uint64(rs.Phase),
			remaining:    rs.Remaining.Big(),
			mined:        rs.Mined.Big(),
			depleted:     rs.Depleted,
		}
		for i, k := range rs.Coefficients {
			r.coefficients[i] = k.Big()
		}
		v.round = r
	}
	return v, nil
}

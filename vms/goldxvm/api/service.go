// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the GOLDX VM over JSON-RPC.
package api

import (
	"math/big"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	"github.com/CREESTL/FuseG/utils/json"
	utilmetric "github.com/CREESTL/FuseG/utils/metric"
	"github.com/CREESTL/FuseG/vms/goldxvm"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/state"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"
)

// Name is the JSON-RPC service name. Methods are called as "goldx.<method>".
const Name = "goldx"

// NewHandler returns an HTTP handler serving the goldx service. Per method
// request metrics are registered with [registry].
func NewHandler(vm *goldxvm.VM, registry metric.Registry) (http.Handler, error) {
	interceptor, err := utilmetric.NewAPIInterceptor(vm.MetricsNamespace, registry)
	if err != nil {
		return nil, err
	}

	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(interceptor.InterceptRequest)
	server.RegisterAfterFunc(interceptor.AfterRequest)
	return server, server.RegisterService(&Service{vm: vm}, Name)
}

// Service is the JSON-RPC API. Callers are identified by the address they
// claim; authentication is left to the transport.
type Service struct {
	vm *goldxvm.VM
}

// HeightReply is returned by every state-changing call. Height is the height
// the call was committed at.
type HeightReply struct {
	Height json.Uint64 `json:"height"`
}

func (r *HeightReply) set(height uint64, err error) error {
	r.Height = json.Uint64(height)
	return err
}

// Token

type GetTokenInfoReply struct {
	Name           string       `json:"name"`
	Symbol         string       `json:"symbol"`
	Decimals       uint8        `json:"decimals"`
	Owner          ids.ShortID  `json:"owner"`
	Treasury       ids.ShortID  `json:"treasury"`
	InitialSupply  *json.BigInt `json:"initialSupply"`
	TotalSupply    *json.BigInt `json:"totalSupply"`
	TotalBurned    *json.BigInt `json:"totalBurned"`
	TotalFees      *json.BigInt `json:"totalFees"`
	ReferralReward *json.BigInt `json:"referralReward"`
	Paused         bool         `json:"paused"`
	Height         json.Uint64  `json:"height"`
}

func (s *Service) GetTokenInfo(_ *http.Request, _ *struct{}, reply *GetTokenInfoReply) error {
	l := s.vm.Ledger()
	*reply = GetTokenInfoReply{
		Name:           l.Name(),
		Symbol:         l.Symbol(),
		Decimals:       l.Decimals(),
		Owner:          l.Owner(),
		Treasury:       l.Treasury(),
		InitialSupply:  json.NewBigInt(l.InitialSupply()),
		TotalSupply:    json.NewBigInt(l.TotalSupply()),
		TotalBurned:    json.NewBigInt(l.TotalBurned()),
		TotalFees:      json.NewBigInt(l.TotalFees()),
		ReferralReward: json.NewBigInt(l.ReferralReward()),
		Paused:         l.Paused(),
		Height:         json.Uint64(s.vm.Height()),
	}
	return nil
}

type AddressArgs struct {
	Address ids.ShortID `json:"address"`
}

type BalanceReply struct {
	Balance *json.BigInt `json:"balance"`
}

func (s *Service) GetBalance(_ *http.Request, args *AddressArgs, reply *BalanceReply) error {
	reply.Balance = json.NewBigInt(s.vm.Ledger().BalanceOf(args.Address))
	return nil
}

type GetAccountReply struct {
	Balance     *json.BigInt  `json:"balance"`
	Excluded    bool          `json:"excluded"`
	Whitelisted bool          `json:"whitelisted"`
	Blacklisted bool          `json:"blacklisted"`
	SuperAdmin  bool          `json:"superAdmin"`
	IsReferrer  bool          `json:"isReferrer"`
	Referrer    *ids.ShortID  `json:"referrer,omitempty"`
	Referrals   []ids.ShortID `json:"referrals"`
}

func (s *Service) GetAccount(_ *http.Request, args *AddressArgs, reply *GetAccountReply) error {
	l := s.vm.Ledger()
	*reply = GetAccountReply{
		Balance:     json.NewBigInt(l.BalanceOf(args.Address)),
		Excluded:    l.IsExcluded(args.Address),
		Whitelisted: l.IsWhitelisted(args.Address),
		Blacklisted: l.IsBlacklisted(args.Address),
		SuperAdmin:  l.IsSuperAdmin(args.Address),
		IsReferrer:  l.IsReferrer(args.Address),
		Referrals:   l.ReferralsOf(args.Address),
	}
	if referrer, ok := l.ReferrerOf(args.Address); ok {
		reply.Referrer = &referrer
	}
	return nil
}

type AllowanceArgs struct {
	Owner   ids.ShortID `json:"owner"`
	Spender ids.ShortID `json:"spender"`
}

func (s *Service) GetAllowance(_ *http.Request, args *AllowanceArgs, reply *BalanceReply) error {
	reply.Balance = json.NewBigInt(s.vm.Ledger().Allowance(args.Owner, args.Spender))
	return nil
}

type FeesReply struct {
	Fees ledger.FeeConfig `json:"fees"`
}

func (s *Service) GetFees(_ *http.Request, _ *struct{}, reply *FeesReply) error {
	reply.Fees = s.vm.Ledger().Fees()
	return nil
}

type ReferrersReply struct {
	Referrers []ids.ShortID `json:"referrers"`
}

func (s *Service) GetReferrers(_ *http.Request, _ *struct{}, reply *ReferrersReply) error {
	reply.Referrers = s.vm.Ledger().Referrers()
	return nil
}

type SuperAdminsReply struct {
	SuperAdmins []ids.ShortID `json:"superAdmins"`
}

func (s *Service) GetSuperAdmins(_ *http.Request, _ *struct{}, reply *SuperAdminsReply) error {
	reply.SuperAdmins = s.vm.Ledger().SuperAdmins()
	return nil
}

type TransferArgs struct {
	From   ids.ShortID  `json:"from"`
	To     ids.ShortID  `json:"to"`
	Amount *json.BigInt `json:"amount"`
}

func (s *Service) Transfer(_ *http.Request, args *TransferArgs, reply *HeightReply) error {
	return reply.set(s.vm.Transfer(args.From, args.To, args.Amount.Big()))
}

type TransferFromArgs struct {
	Spender ids.ShortID  `json:"spender"`
	From    ids.ShortID  `json:"from"`
	To      ids.ShortID  `json:"to"`
	Amount  *json.BigInt `json:"amount"`
}

func (s *Service) TransferFrom(_ *http.Request, args *TransferFromArgs, reply *HeightReply) error {
	return reply.set(s.vm.TransferFrom(args.Spender, args.From, args.To, args.Amount.Big()))
}

type ApproveArgs struct {
	Owner   ids.ShortID  `json:"owner"`
	Spender ids.ShortID  `json:"spender"`
	Amount  *json.BigInt `json:"amount"`
}

func (s *Service) Approve(_ *http.Request, args *ApproveArgs, reply *HeightReply) error {
	return reply.set(s.vm.Approve(args.Owner, args.Spender, args.Amount.Big()))
}

type BurnArgs struct {
	From   ids.ShortID  `json:"from"`
	Amount *json.BigInt `json:"amount"`
}

func (s *Service) Burn(_ *http.Request, args *BurnArgs, reply *HeightReply) error {
	return reply.set(s.vm.Burn(args.From, args.Amount.Big()))
}

// Administration

type SetFeesArgs struct {
	Caller  ids.ShortID `json:"caller"`
	RateBps uint16      `json:"rateBps"`
}

func (s *Service) SetFees(_ *http.Request, args *SetFeesArgs, reply *HeightReply) error {
	return reply.set(s.vm.SetFees(args.Caller, args.RateBps))
}

type SetFeeDistributionArgs struct {
	Caller       ids.ShortID            `json:"caller"`
	Distribution ledger.FeeDistribution `json:"distribution"`
}

func (s *Service) SetFeeDistribution(_ *http.Request, args *SetFeeDistributionArgs, reply *HeightReply) error {
	return reply.set(s.vm.SetFeeDistribution(args.Caller, args.Distribution))
}

// AccountArgs names a single account an admin acts on.
type AccountArgs struct {
	Caller  ids.ShortID `json:"caller"`
	Account ids.ShortID `json:"account"`
}

func (s *Service) ExcludeAccount(_ *http.Request, args *AccountArgs, reply *HeightReply) error {
	return s.accountOp(s.vm.ExcludeAccount, args, reply)
}

func (s *Service) IncludeAccount(_ *http.Request, args *AccountArgs, reply *HeightReply) error {
	return s.accountOp(s.vm.IncludeAccount, args, reply)
}

func (s *Service) GrantSuperAdmin(_ *http.Request, args *AccountArgs, reply *HeightReply) error {
	return s.accountOp(s.vm.GrantSuperAdmin, args, reply)
}

func (s *Service) RevokeSuperAdmin(_ *http.Request, args *AccountArgs, reply *HeightReply) error {
	return s.accountOp(s.vm.RevokeSuperAdmin, args, reply)
}

func (s *Service) SetTreasury(_ *http.Request, args *AccountArgs, reply *HeightReply) error {
	return s.accountOp(s.vm.SetTreasury, args, reply)
}

func (s *Service) accountOp(op func(caller, account ids.ShortID) (uint64, error), args *AccountArgs, reply *HeightReply) error {
	return reply.set(op(args.Caller, args.Account))
}

// AccountsArgs names the accounts a list operation applies to.
type AccountsArgs struct {
	Caller   ids.ShortID   `json:"caller"`
	Accounts []ids.ShortID `json:"accounts"`
}

func (s *Service) AddToWhitelist(_ *http.Request, args *AccountsArgs, reply *HeightReply) error {
	return s.accountsOp(s.vm.AddToWhitelist, args, reply)
}

func (s *Service) RemoveFromWhitelist(_ *http.Request, args *AccountsArgs, reply *HeightReply) error {
	return s.accountsOp(s.vm.RemoveFromWhitelist, args, reply)
}

func (s *Service) AddToBlacklist(_ *http.Request, args *AccountsArgs, reply *HeightReply) error {
	return s.accountsOp(s.vm.AddToBlacklist, args, reply)
}

func (s *Service) RemoveFromBlacklist(_ *http.Request, args *AccountsArgs, reply *HeightReply) error {
	return s.accountsOp(s.vm.RemoveFromBlacklist, args, reply)
}

func (s *Service) AddReferrers(_ *http.Request, args *AccountsArgs, reply *HeightReply) error {
	return s.accountsOp(s.vm.AddReferrers, args, reply)
}

func (s *Service) accountsOp(op func(caller ids.ShortID, accounts ...ids.ShortID) (uint64, error), args *AccountsArgs, reply *HeightReply) error {
	return reply.set(op(args.Caller, args.Accounts...))
}

type CallerArgs struct {
	Caller ids.ShortID `json:"caller"`
}

func (s *Service) Pause(_ *http.Request, args *CallerArgs, reply *HeightReply) error {
	return reply.set(s.vm.Pause(args.Caller))
}

func (s *Service) Unpause(_ *http.Request, args *CallerArgs, reply *HeightReply) error {
	return reply.set(s.vm.Unpause(args.Caller))
}

type SetReferrerArgs struct {
	Referral ids.ShortID `json:"referral"`
	Referrer ids.ShortID `json:"referrer"`
}

func (s *Service) SetReferrer(_ *http.Request, args *SetReferrerArgs, reply *HeightReply) error {
	return reply.set(s.vm.SetReferrer(args.Referral, args.Referrer))
}

// Emission

type SetNewRoundArgs struct {
	Caller       ids.ShortID    `json:"caller"`
	PhaseSupply  *json.BigInt   `json:"phaseSupply"`
	PhaseCount   json.Uint64    `json:"phaseCount"`
	Coefficients []*json.BigInt `json:"coefficients"`
}

func (a *SetNewRoundArgs) coefficients() []*big.Int {
	out := make([]*big.Int, len(a.Coefficients))
	for i, k := range a.Coefficients {
		out[i] = k.Big()
	}
	return out
}

// SetNewRound starts a round as the emission owner or the treasury address.
func (s *Service) SetNewRound(_ *http.Request, args *SetNewRoundArgs, reply *HeightReply) error {
	return reply.set(s.vm.SetNewRound(args.Caller, args.PhaseSupply.Big(), uint64(args.PhaseCount), args.coefficients()))
}

type MineArgs struct {
	Caller    ids.ShortID  `json:"caller"`
	Recipient ids.ShortID  `json:"recipient"`
	Input     *json.BigInt `json:"input"`
}

type MineReply struct {
	Mined  *json.BigInt `json:"mined"`
	Height json.Uint64  `json:"height"`
}

func (s *Service) Mine(_ *http.Request, args *MineArgs, reply *MineReply) error {
	mined, height, err := s.vm.Mine(args.Caller, args.Recipient, args.Input.Big())
	if err != nil {
		return err
	}
	reply.Mined = json.NewBigInt(mined)
	reply.Height = json.Uint64(height)
	return nil
}

type GetRoundReply struct {
	Phase        json.Uint64    `json:"phase"`
	PhaseCount   json.Uint64    `json:"phaseCount"`
	Remaining    *json.BigInt   `json:"remaining"`
	RoundSupply  *json.BigInt   `json:"roundSupply"`
	Mined        *json.BigInt   `json:"mined"`
	Coefficients []*json.BigInt `json:"coefficients"`
	Depleted     bool           `json:"depleted"`
	VaultBalance *json.BigInt   `json:"vaultBalance"`
}

func (s *Service) GetRound(_ *http.Request, _ *struct{}, reply *GetRoundReply) error {
	e := s.vm.Emission()
	phase, remaining := e.MiningPhase()
	count := e.PhaseCount()
	coefficients := make([]*json.BigInt, 0, count)
	for i := range count {
		k, err := e.CoeffTable(i)
		if err != nil {
			return err
		}
		coefficients = append(coefficients, json.NewBigInt(k))
	}
	*reply = GetRoundReply{
		Phase:        json.Uint64(phase),
		PhaseCount:   json.Uint64(count),
		Remaining:    json.NewBigInt(remaining),
		RoundSupply:  json.NewBigInt(e.RoundSupply()),
		Mined:        json.NewBigInt(e.MinedAmount()),
		Coefficients: coefficients,
		Depleted:     e.Depleted(),
		VaultBalance: json.NewBigInt(s.vm.Ledger().BalanceOf(e.Address())),
	}
	return nil
}

// Treasury

type SubmitProposalArgs struct {
	Caller ids.ShortID   `json:"caller"`
	Kind   treasury.Kind `json:"kind"`
	Target ids.ShortID   `json:"target"`
	Amount *json.BigInt  `json:"amount"`
}

type SubmitProposalReply struct {
	ID     json.Uint64 `json:"id"`
	Height json.Uint64 `json:"height"`
}

func (s *Service) SubmitProposal(_ *http.Request, args *SubmitProposalArgs, reply *SubmitProposalReply) error {
	id, height, err := s.vm.SubmitProposal(args.Caller, args.Kind, args.Target, args.Amount.Big())
	if err != nil {
		return err
	}
	reply.ID = json.Uint64(id)
	reply.Height = json.Uint64(height)
	return nil
}

type ProposalArgs struct {
	Caller ids.ShortID `json:"caller"`
	ID     json.Uint64 `json:"id"`
}

func (s *Service) ConfirmProposal(_ *http.Request, args *ProposalArgs, reply *HeightReply) error {
	return s.proposalOp(s.vm.ConfirmProposal, args, reply)
}

func (s *Service) RevokeConfirmation(_ *http.Request, args *ProposalArgs, reply *HeightReply) error {
	return s.proposalOp(s.vm.RevokeConfirmation, args, reply)
}

func (s *Service) ExecuteProposal(_ *http.Request, args *ProposalArgs, reply *HeightReply) error {
	return s.proposalOp(s.vm.ExecuteProposal, args, reply)
}

func (s *Service) proposalOp(op func(caller ids.ShortID, id uint64) (uint64, error), args *ProposalArgs, reply *HeightReply) error {
	return reply.set(op(args.Caller, uint64(args.ID)))
}

// TreasurySetNewRound starts a round on behalf of the treasury vault.
func (s *Service) TreasurySetNewRound(_ *http.Request, args *SetNewRoundArgs, reply *HeightReply) error {
	return reply.set(s.vm.TreasurySetNewRound(args.Caller, args.PhaseSupply.Big(), uint64(args.PhaseCount), args.coefficients()))
}

type GetProposalArgs struct {
	ID json.Uint64 `json:"id"`
}

type GetProposalReply struct {
	Kind          string        `json:"kind"`
	Target        ids.ShortID   `json:"target"`
	Amount        *json.BigInt  `json:"amount"`
	Confirmations []ids.ShortID `json:"confirmations"`
	Executed      bool          `json:"executed"`
}

func (s *Service) GetProposal(_ *http.Request, args *GetProposalArgs, reply *GetProposalReply) error {
	p, err := s.vm.Treasury().GetProposal(uint64(args.ID))
	if err != nil {
		return err
	}
	*reply = GetProposalReply{
		Kind:          p.Kind.String(),
		Target:        p.Target,
		Amount:        json.NewBigInt(p.Amount),
		Confirmations: p.Confirmations,
		Executed:      p.Executed,
	}
	return nil
}

type GetProposalCountReply struct {
	Count json.Uint64 `json:"count"`
}

func (s *Service) GetProposalCount(_ *http.Request, _ *struct{}, reply *GetProposalCountReply) error {
	reply.Count = json.Uint64(s.vm.Treasury().GetProposalCount())
	return nil
}

type GetSignersReply struct {
	Signers []ids.ShortID `json:"signers"`
}

func (s *Service) GetSigners(_ *http.Request, _ *struct{}, reply *GetSignersReply) error {
	reply.Signers = s.vm.Treasury().GetSigners()
	return nil
}

type IsSignerReply struct {
	Signer bool `json:"signer"`
}

func (s *Service) IsSigner(_ *http.Request, args *AddressArgs, reply *IsSignerReply) error {
	reply.Signer = s.vm.Treasury().IsSigner(args.Address)
	return nil
}

type IsConfirmedArgs struct {
	ID     json.Uint64 `json:"id"`
	Signer ids.ShortID `json:"signer"`
}

type IsConfirmedReply struct {
	Confirmed bool `json:"confirmed"`
}

func (s *Service) IsConfirmed(_ *http.Request, args *IsConfirmedArgs, reply *IsConfirmedReply) error {
	reply.Confirmed = s.vm.Treasury().IsConfirmed(uint64(args.ID), args.Signer)
	return nil
}

// Journal

func (s *Service) GetHeight(_ *http.Request, _ *struct{}, reply *HeightReply) error {
	reply.Height = json.Uint64(s.vm.Height())
	return nil
}

type GetEventsArgs struct {
	Height json.Uint64 `json:"height"`
}

type GetEventsReply struct {
	Events []state.Record `json:"events"`
}

func (s *Service) GetEvents(_ *http.Request, args *GetEventsArgs, reply *GetEventsReply) error {
	records, err := s.vm.Events(uint64(args.Height))
	if err != nil {
		return err
	}
	reply.Events = records
	return nil
}

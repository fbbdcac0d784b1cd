// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luxfi/ids"
)

const (
	OwnerKey       = "owner"
	MinerKey       = "miner"
	TeamKey        = "team"
	MarketingKey   = "marketing"
	FeeTreasuryKey = "fee-treasury"
	EmissionKey    = "emission-vault"
	TreasuryKey    = "treasury-vault"
	SignersKey     = "signers"
	OutputKey      = "output"
)

var errNoSigners = errors.New("at least one signer is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(OwnerKey, "", "Address owning the token (required)")
	flags.String(MinerKey, "", "Address allowed to mine from the emission vault (required)")
	flags.String(TeamKey, "", "Address receiving the team allocation (required)")
	flags.String(MarketingKey, "", "Address receiving the marketing allocation (required)")
	flags.String(FeeTreasuryKey, "", "Address receiving the treasury share of fees (required)")
	flags.String(EmissionKey, "", "Address of the emission vault (required)")
	flags.String(TreasuryKey, "", "Address of the treasury vault (required)")
	flags.StringSlice(SignersKey, nil, "Treasury signer addresses (required)")
	flags.String(OutputKey, "", "File to write the genesis to, stdout if empty")
}

type Config struct {
	Owner       ids.ShortID
	Miner       ids.ShortID
	Team        ids.ShortID
	Marketing   ids.ShortID
	FeeTreasury ids.ShortID
	Emission    ids.ShortID
	Treasury    ids.ShortID
	Signers     []ids.ShortID
	Output      string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	config := &Config{}
	for key, addr := range map[string]*ids.ShortID{
		OwnerKey:       &config.Owner,
		MinerKey:       &config.Miner,
		TeamKey:        &config.Team,
		MarketingKey:   &config.Marketing,
		FeeTreasuryKey: &config.FeeTreasury,
		EmissionKey:    &config.Emission,
		TreasuryKey:    &config.Treasury,
	} {
		var err error
		*addr, err = shortIDFlag(flags, key)
		if err != nil {
			return nil, err
		}
	}

	signers, err := flags.GetStringSlice(SignersKey)
	if err != nil {
		return nil, err
	}
	if len(signers) == 0 {
		return nil, errNoSigners
	}
	for _, signer := range signers {
		addr, err := ids.ShortFromString(signer)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", SignersKey, signer, err)
		}
		config.Signers = append(config.Signers, addr)
	}

	config.Output, err = flags.GetString(OutputKey)
	return config, err
}

func shortIDFlag(flags *pflag.FlagSet, key string) (ids.ShortID, error) {
	str, err := flags.GetString(key)
	if err != nil {
		return ids.ShortEmpty, err
	}
	addr, err := ids.ShortFromString(str)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("invalid %s %q: %w", key, str, err)
	}
	return addr, nil
}

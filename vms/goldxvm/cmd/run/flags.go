// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/CREESTL/FuseG/utils"
	"github.com/CREESTL/FuseG/vms/goldxvm/config"
)

const (
	EnvPrefix = "GOLDX"

	ConfigFileKey       = "config-file"
	GenesisFileKey      = "genesis-file"
	DataDirKey          = "data-dir"
	AllowedOriginsKey   = "allowed-origins"
	APIAddressKey       = "api-address"
	MetricsNamespaceKey = "metrics-namespace"
	DatabasePrefixKey   = "database-prefix"
	ShutdownTimeoutKey  = "shutdown-timeout"
	ReferralCooldownKey = "referral-cooldown"
	FeeRateKey          = "fee-rate-bps"
	HoldersShareKey     = "fee-holders"
	TreasuryShareKey    = "fee-treasury"
	BurnShareKey        = "fee-burn"
	ReferralShareKey    = "fee-referral"
)

var errNoGenesisFile = errors.New("genesis file is required")

func AddFlags(flags *pflag.FlagSet) {
	defaults := config.DefaultConfig()

	flags.String(ConfigFileKey, "", "Optional config file, keys match the flag names")
	flags.String(GenesisFileKey, "", "Genesis file to initialize a fresh database with (required)")
	flags.String(DataDirKey, "", "Directory of the on-disk database, in memory if empty")
	flags.StringSlice(AllowedOriginsKey, []string{"*"}, "Origins allowed to call the API from a browser")
	flags.String(APIAddressKey, defaults.APIAddress, "Address to serve the API and metrics on")
	flags.String(MetricsNamespaceKey, defaults.MetricsNamespace, "Namespace of the exported metrics")
	flags.String(DatabasePrefixKey, defaults.DatabasePrefix, "Prefix of the VM's database keys")
	flags.Duration(ShutdownTimeoutKey, defaults.ShutdownTimeout, "Time allowed for a graceful shutdown")
	flags.Duration(ReferralCooldownKey, defaults.ReferralCooldown, "Minimum time between referrer changes")
	flags.Uint16(FeeRateKey, defaults.Fees.RateBps, "Transfer fee in basis points when the genesis sets none")
	flags.Uint8(HoldersShareKey, defaults.Fees.Distribution.Holders, "Percent of fees reflected to holders")
	flags.Uint8(TreasuryShareKey, defaults.Fees.Distribution.Treasury, "Percent of fees sent to the treasury")
	flags.Uint8(BurnShareKey, defaults.Fees.Distribution.Burn, "Percent of fees burned")
	flags.Uint8(ReferralShareKey, defaults.Fees.Distribution.Referral, "Percent of fees sent to the referral pool")
}

type Config struct {
	GenesisFile    string
	DataDir        string
	AllowedOrigins []string
	VM             config.Config
}

// ParseFlags resolves the configuration from, in decreasing priority, the
// command line, GOLDX_ prefixed environment variables, the config file and the
// flag defaults.
func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	if file := v.GetString(ConfigFileKey); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config %q: %w", file, err)
		}
	}

	c := &Config{
		GenesisFile:    utils.ExpandHome(v.GetString(GenesisFileKey)),
		DataDir:        utils.ExpandHome(v.GetString(DataDirKey)),
		AllowedOrigins: v.GetStringSlice(AllowedOriginsKey),
		VM: config.Config{
			ReferralCooldown: v.GetDuration(ReferralCooldownKey),
			APIAddress:       v.GetString(APIAddressKey),
			MetricsNamespace: v.GetString(MetricsNamespaceKey),
			DatabasePrefix:   v.GetString(DatabasePrefixKey),
			ShutdownTimeout:  v.GetDuration(ShutdownTimeoutKey),
		},
	}
	if c.GenesisFile == "" {
		return nil, errNoGenesisFile
	}

	rate := v.GetUint(FeeRateKey)
	if rate > math.MaxUint16 {
		return nil, fmt.Errorf("%s %d overflows", FeeRateKey, rate)
	}
	c.VM.Fees.RateBps = uint16(rate)

	dist := &c.VM.Fees.Distribution
	for key, share := range map[string]*uint8{
		HoldersShareKey:  &dist.Holders,
		TreasuryShareKey: &dist.Treasury,
		BurnShareKey:     &dist.Burn,
		ReferralShareKey: &dist.Referral,
	} {
		value := v.GetUint(key)
		if value > math.MaxUint8 {
			return nil, fmt.Errorf("%s %d overflows", key, value)
		}
		*share = uint8(value)
	}
	return c, c.VM.Verify()
}

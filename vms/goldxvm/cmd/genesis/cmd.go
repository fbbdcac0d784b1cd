// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/CREESTL/FuseG/utils"
	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/vms/goldxvm/genesis"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Writes a default genesis",
		RunE:  genesisFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func genesisFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	g := genesis.Default(
		config.Owner,
		config.Miner,
		config.Team,
		config.Marketing,
		config.FeeTreasury,
		config.Emission,
		config.Treasury,
		config.Signers,
	)
	if err := g.Verify(); err != nil {
		return err
	}
	genesisBytes, err := g.Bytes()
	if err != nil {
		return err
	}

	if config.Output == "" {
		if _, err := c.OutOrStdout().Write(append(genesisBytes, '\n')); err != nil {
			return err
		}
	} else if err := renameio.WriteFile(utils.ExpandHome(config.Output), genesisBytes, 0o644); err != nil {
		return err
	}
	return PrintSummary(c.ErrOrStderr(), g)
}

// PrintSummary writes a human readable overview of the allocations.
func PrintSummary(w io.Writer, g *genesis.Genesis) error {
	lines := []string{
		fmt.Sprintf("%s (%s), %d decimals", g.Name, g.Symbol, g.Decimals),
		"total supply:   " + tokens(g.TotalSupply()),
		"emission vault: " + tokens(g.Emission.Balance.Big()),
		"treasury vault: " + tokens(g.Treasury.Balance.Big()),
		fmt.Sprintf("fee treasury:   %s", g.FeeTreasury),
		fmt.Sprintf("signers:        %d", len(g.Treasury.Signers)),
	}
	for _, alloc := range g.Allocations {
		lines = append(lines, fmt.Sprintf("%s: %s", alloc.Address, tokens(alloc.Balance.Big())))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// tokens formats whole tokens with thousands separators. Fractions are
// truncated.
func tokens(amount *big.Int) string {
	whole := new(big.Int).Quo(amount, units.GoldX)
	return humanize.BigComma(whole) + " GLDX"
}

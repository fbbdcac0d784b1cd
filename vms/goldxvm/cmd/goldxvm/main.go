// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CREESTL/FuseG/vms/goldxvm/cmd/genesis"
	"github.com/CREESTL/FuseG/vms/goldxvm/cmd/run"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:   "goldxvm",
		Short: "Runs the GOLDX token VM",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		run.Command(),
		genesis.Command(),
	)
	cmd.SilenceUsage = true

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}

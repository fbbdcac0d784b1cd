// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	require := require.New(t)

	home, err := os.UserHomeDir()
	require.NoError(err)

	require.Empty(ExpandHome(""))
	require.Equal("/var/lib/goldx", ExpandHome("/var/lib/goldx"))
	require.Equal("~user/db", ExpandHome("~user/db"))
	require.Equal(home, ExpandHome("~"))
	require.Equal(filepath.Join(home, "goldx", "db"), ExpandHome("~/goldx/db"))
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vmerrs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("%w: not owner", ErrUnauthorized), ClassUnauthorized},
		{fmt.Errorf("%w: rate out of range", ErrInvalid), ClassInvalid},
		{fmt.Errorf("%w: paused", ErrState), ClassState},
		{fmt.Errorf("transfer: %w", fmt.Errorf("%w: insufficient balance", ErrResource)), ClassResource},
		{errors.New("disk on fire"), ClassInternal},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			require.Equal(t, test.expected, Classify(test.err))
		})
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vmerrs defines the classes every GOLDX VM failure belongs to.
//
// Component packages declare precise sentinel errors that wrap exactly one
// class, so callers can match either the precise failure or its class with
// errors.Is. All failures are synchronous rejections: the operation that
// produced one left no state behind.
package vmerrs

import "errors"

var (
	// ErrUnauthorized means the caller lacks the required role or signer status.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalid means an argument is out of range or malformed.
	ErrInvalid = errors.New("invalid argument")
	// ErrState means the operation is not allowed in the current state.
	ErrState = errors.New("invalid state")
	// ErrResource means a balance or allowance is insufficient.
	ErrResource = errors.New("insufficient resources")
)

// Class names reported by Classify.
const (
	ClassUnauthorized = "authorization"
	ClassInvalid      = "validation"
	ClassState        = "state"
	ClassResource     = "resource"
	ClassInternal     = "internal"
)

// Classify returns the class name of err. Errors outside the taxonomy are
// reported as internal.
func Classify(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ClassUnauthorized
	case errors.Is(err, ErrInvalid):
		return ClassInvalid
	case errors.Is(err, ErrState):
		return ClassState
	case errors.Is(err, ErrResource):
		return ClassResource
	default:
		return ClassInternal
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wrappers provides common wrapper types and utilities.
package wrappers

// Errs collects the first error produced during a series of checks.
type Errs struct {
	Err error
}

// Errored returns true if an error has been recorded.
func (errs *Errs) Errored() bool {
	return errs.Err != nil
}

// Add records the first non-nil error.
func (errs *Errs) Add(errors ...error) {
	if errs.Err == nil {
		for _, err := range errors {
			if err != nil {
				errs.Err = err
				break
			}
		}
	}
}

// Check records err when cond is false and no earlier error was recorded.
func (errs *Errs) Check(cond bool, err error) {
	if !cond {
		errs.Add(err)
	}
}

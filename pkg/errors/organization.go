// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// ParentResolution represents a data-integrity error where AWS Organizations
// reported zero or more than one parent for a node that must have exactly one.
// It is never retried here; callers decide whether it is transient.
type ParentResolution struct {
	base
}

// Error returns the error message for ParentResolution.
func (p ParentResolution) Error() string {
	return p.error()
}

// Unwrap returns the wrapped error for ParentResolution.
func (p ParentResolution) Unwrap() error {
	return p.unwrap()
}

// NewParentResolution creates a new ParentResolution error with the provided message.
func NewParentResolution(message string, err ...error) ParentResolution {
	return ParentResolution{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
